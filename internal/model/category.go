package model

// Category is one investment-strategy classification label and the rules that select it
type Category struct {
	ID       int        `yaml:"id" mapstructure:"id" validate:"required,min=1"`
	Name     string     `yaml:"name" mapstructure:"name" validate:"required,excludesall=/\\"` // Output filename stem
	Keywords []string   `yaml:"keywords,omitempty" mapstructure:"keywords" validate:"dive,required"`
	Words    []string   `yaml:"words,omitempty" mapstructure:"words" validate:"dive,required"` // Whole-word terms
	Near     []NearPair `yaml:"near,omitempty" mapstructure:"near" validate:"dive"`
}

// NearPair requires two whole-word terms within MaxWords intervening words, in either order
type NearPair struct {
	TermA    string `yaml:"a" mapstructure:"a" validate:"required"`
	TermB    string `yaml:"b" mapstructure:"b" validate:"required"`
	MaxWords *int   `yaml:"max_words,omitempty" mapstructure:"max_words" validate:"omitempty,min=0"` // nil uses Config.NearMaxWords
}

// Window returns the rule's word bound, falling back to def when unset
func (n NearPair) Window(def int) int {
	if n.MaxWords != nil {
		return *n.MaxWords
	}
	return def
}

// FileName returns the output file name for the category
func (c Category) FileName() string {
	return c.Name + ".csv"
}

// DefaultCategories returns the six built-in strategy categories
func DefaultCategories() []Category {
	return []Category{
		{
			ID:   1,
			Name: "Apply exclusions",
			Keywords: []string{
				"exclude", "harmful", "exclusion", "alcohol", "tobacco", "gambling",
				"guns", "weapons", "fossil fuel", "thermal coal extraction",
				"Arctic exploration", "sans drilling", "avoid",
			},
		},
		{
			ID:   2,
			Name: "Limit ESG Risk",
			Keywords: []string{
				"ESG risk", "ESG rating", "climate-related risk",
				"ESG integration", "ESG momentum",
			},
			Near: []NearPair{{TermA: "ESG", TermB: "risk"}},
		},
		{
			ID:   3,
			Name: "Seek ESG opportunities",
			Keywords: []string{
				"Seek ESG opportunities", "sustainability leader", "best in class",
				"positive screening", "best ESG rating", "better ESG rating",
				"ESG performance", "leading in sustainability practices",
				"leader in sustainability practices", "lead in sustainability practices",
			},
		},
		{
			ID:   4,
			Name: "Practice Active Ownership",
			Keywords: []string{
				"active owner", "active ownership", "stewardship", "engagement",
				"shareholder resolutions", "proxy voting", "actively engage",
			},
		},
		{
			ID:   5,
			Name: "Target Sustainability Themes",
			Keywords: []string{
				"target sustainability theme", "targets sustainability theme",
				"renewable energy", "Sustainability-themed investments",
				"Sustainable Development Goals", "themes",
				"healthy ecosystem", "natural resource security", "human development",
			},
			Words: []string{"SDG"},
			Near:  []NearPair{{TermA: "ESG", TermB: "theme"}},
		},
		{
			ID:   6,
			Name: "Assess Impact",
			Keywords: []string{
				"assess impact", "impact assessment", "benefit people", "benefit planet",
				"impact framework", "carbon footprint reduction",
			},
			Near: []NearPair{{TermA: "ESG", TermB: "impact"}},
		},
	}
}
