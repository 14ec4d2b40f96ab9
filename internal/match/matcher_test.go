package match

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/stratclass/internal/model"
)

func defaultMatchers(t *testing.T) map[int]*Matcher {
	t.Helper()
	matchers, err := CompileAll(model.DefaultCategories(), 100)
	require.NoError(t, err)

	byID := make(map[int]*Matcher, len(matchers))
	for _, m := range matchers {
		byID[m.ID] = m
	}
	return byID
}

// filler returns n neutral words
func filler(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func TestMatcher_CaseInsensitiveKeyword(t *testing.T) {
	m := defaultMatchers(t)[1]

	tests := []string{
		"We EXCLUDE gambling",
		"we exclude gambling",
		"Companies involved in Tobacco are removed",
		"No FOSSIL FUEL producers",
	}
	for _, text := range tests {
		assert.True(t, m.Match(text), "expected %q to match Apply exclusions", text)
	}
}

func TestMatcher_KeywordIsSubstring(t *testing.T) {
	m := defaultMatchers(t)[1]

	// Literal phrases match anywhere, including inside longer words
	assert.True(t, m.Match("the fund avoids controversy"))
	assert.True(t, m.Match("strict exclusionary screens"))
}

func TestMatcher_KeywordSpecialCharactersAreLiteral(t *testing.T) {
	cat := model.Category{
		ID:       1,
		Name:     "Special",
		Keywords: []string{"a.b", "c+d", "(e)"},
	}
	m, err := Compile(cat, 10)
	require.NoError(t, err)

	assert.True(t, m.Match("value a.b here"))
	assert.False(t, m.Match("value axb here"), "dot must not act as a wildcard")
	assert.True(t, m.Match("c+d"))
	assert.False(t, m.Match("ccd"), "plus must not act as a quantifier")
	assert.True(t, m.Match("see (e)"))
	assert.False(t, m.Match("see e"))
}

func TestMatcher_HyphenatedKeyword(t *testing.T) {
	m := defaultMatchers(t)[2]
	assert.True(t, m.Match("We monitor Climate-Related Risk across holdings"))
}

func TestMatcher_UnicodeCaseFolding(t *testing.T) {
	cat := model.Category{ID: 1, Name: "Unicode", Keywords: []string{"énergie"}}
	m, err := Compile(cat, 10)
	require.NoError(t, err)

	assert.True(t, m.Match("ÉNERGIE renouvelable"))
}

func TestMatcher_SDGWholeWord(t *testing.T) {
	m := defaultMatchers(t)[5]

	tests := []struct {
		text     string
		expected bool
		desc     string
	}{
		{"Aligned with the SDG framework", true, "standalone"},
		{"aligned with sdg 7", true, "lowercase"},
		{"(SDG)", true, "punctuation around"},
		{"contributes to SDG-aligned outcomes", true, "hyphen is a boundary"},
		{"mSDGtoken", false, "embedded in a longer token"},
		{"several SDGs", false, "plural is a longer token"},
		{"SDG_7", false, "underscore is a word character"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			assert.Equal(t, tt.expected, m.Match(tt.text), "text %q", tt.text)
		})
	}
}

func TestMatcher_MultiWordTerm(t *testing.T) {
	cat := model.Category{ID: 1, Name: "Terms", Words: []string{"net zero"}}
	m, err := Compile(cat, 10)
	require.NoError(t, err)

	assert.True(t, m.Match("a Net-Zero pathway"))
	assert.False(t, m.Match("a netzero pathway"))
	assert.False(t, m.Match("net positive, zero waste"))
}

func TestMatcher_NearPairBothOrders(t *testing.T) {
	m := defaultMatchers(t)[2]

	esgFirst := "ESG " + filler(50) + " risk"
	riskFirst := "risk " + filler(50) + " ESG"

	assert.True(t, m.Match(esgFirst))
	assert.True(t, m.Match(riskFirst))

	hit, ok := m.Explain(esgFirst)
	require.True(t, ok)
	assert.Equal(t, HitNear, hit.Kind)
	assert.Equal(t, "near:ESG~risk/100", hit.String())
}

func TestMatcher_NearPairDistanceBound(t *testing.T) {
	m := defaultMatchers(t)[2]

	assert.True(t, m.Match("ESG "+filler(100)+" risk"), "exactly 100 intervening words")
	assert.False(t, m.Match("ESG "+filler(101)+" risk"), "101 intervening words")
	assert.False(t, m.Match("risk "+filler(101)+" ESG"), "101 intervening words, reversed")

	// A literal phrase still matches regardless of the gap
	assert.True(t, m.Match("ESG "+filler(200)+" risk and our ESG rating"))
}

func TestMatcher_NearPairWholeWordAnchors(t *testing.T) {
	m := defaultMatchers(t)[2]

	assert.False(t, m.Match("ESGs carry risks"), "plural anchors are different tokens")
	assert.True(t, m.Match("esg: high RISK"))
}

func TestMatcher_NearPairPerRuleWindow(t *testing.T) {
	two := 2
	cat := model.Category{
		ID:   1,
		Name: "Tight",
		Near: []model.NearPair{{TermA: "carbon", TermB: "target", MaxWords: &two}},
	}
	m, err := Compile(cat, 100)
	require.NoError(t, err)

	assert.True(t, m.Match("carbon reduction target"))
	assert.True(t, m.Match("target for the carbon"))
	assert.False(t, m.Match("carbon emissions and reduction target"))
}

func TestMatcher_NearPairSameTermNeedsTwoOccurrences(t *testing.T) {
	cat := model.Category{
		ID:   1,
		Name: "Repeat",
		Near: []model.NearPair{{TermA: "green", TermB: "green"}},
	}
	m, err := Compile(cat, 3)
	require.NoError(t, err)

	assert.False(t, m.Match("green bonds"))
	assert.True(t, m.Match("green bonds and green loans"))
}

func TestMatcher_EmptyText(t *testing.T) {
	for id, m := range defaultMatchers(t) {
		assert.False(t, m.Match(""), "category %d matched empty text", id)
	}
}

func TestMatcher_ExplainKeyword(t *testing.T) {
	m := defaultMatchers(t)[4]

	hit, ok := m.Explain("We practise PROXY VOTING at all meetings")
	require.True(t, ok)
	assert.Equal(t, Hit{Kind: HitKeyword, Rule: "proxy voting"}, hit)
}

func TestMatcher_DefaultCategoriesMultiLabel(t *testing.T) {
	matchers := defaultMatchers(t)
	text := "We exclude tobacco and practise active ownership through proxy voting"

	assert.True(t, matchers[1].Match(text))
	assert.True(t, matchers[4].Match(text))
	assert.False(t, matchers[3].Match(text))
}

func TestCompile_RejectsBadTerms(t *testing.T) {
	_, err := Compile(model.Category{ID: 1, Name: "x", Words: []string{"--"}}, 10)
	assert.Error(t, err)

	_, err = Compile(model.Category{ID: 2, Name: "y", Near: []model.NearPair{{TermA: "two words", TermB: "b"}}}, 10)
	assert.Error(t, err)

	_, err = Compile(model.Category{ID: 3, Name: "z", Near: []model.NearPair{{TermA: "a", TermB: "b"}}}, -1)
	assert.Error(t, err)
}
