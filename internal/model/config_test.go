package model

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "result_together.csv", cfg.Input)
	assert.Equal(t, "investment_strategy", cfg.TextColumn)
	assert.Equal(t, 100, cfg.NearMaxWords)
	assert.Len(t, cfg.Categories, 6)
}

func TestDefaultCategories(t *testing.T) {
	cats := DefaultCategories()

	names := []string{
		"Apply exclusions",
		"Limit ESG Risk",
		"Seek ESG opportunities",
		"Practice Active Ownership",
		"Target Sustainability Themes",
		"Assess Impact",
	}
	for i, cat := range cats {
		assert.Equal(t, i+1, cat.ID)
		assert.Equal(t, names[i], cat.Name)
	}

	nearCount := map[int]int{}
	for _, cat := range cats {
		nearCount[cat.ID] = len(cat.Near)
	}
	assert.Equal(t, map[int]int{1: 0, 2: 1, 3: 0, 4: 0, 5: 1, 6: 1}, nearCount)
	assert.Equal(t, []string{"SDG"}, cats[4].Words)
}

func TestConfig_ValidateErrors(t *testing.T) {
	negative := -1

	tests := []struct {
		desc   string
		mutate func(c *Config)
	}{
		{"empty input", func(c *Config) { c.Input = "" }},
		{"empty text column", func(c *Config) { c.TextColumn = "" }},
		{"zero workers", func(c *Config) { c.Workers = 0 }},
		{"negative window", func(c *Config) { c.NearMaxWords = -1 }},
		{"no categories", func(c *Config) { c.Categories = nil }},
		{"duplicate id", func(c *Config) { c.Categories[1].ID = 1 }},
		{"duplicate name ignoring case", func(c *Config) { c.Categories[1].Name = "APPLY EXCLUSIONS" }},
		{"name collides with unclassified", func(c *Config) { c.Categories[0].Name = "Unclassified" }},
		{"slash in name", func(c *Config) { c.Categories[0].Name = "a/b" }},
		{"empty keyword", func(c *Config) { c.Categories[0].Keywords = []string{"ok", ""} }},
		{"no rules", func(c *Config) {
			c.Categories[0].Keywords = nil
		}},
		{"near pair missing term", func(c *Config) { c.Categories[1].Near = []NearPair{{TermA: "ESG"}} }},
		{"negative rule window", func(c *Config) { c.Categories[1].Near[0].MaxWords = &negative }},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig), "got %v", err)
		})
	}
}

func TestNearPair_Window(t *testing.T) {
	five := 5
	assert.Equal(t, 100, NearPair{TermA: "a", TermB: "b"}.Window(100))
	assert.Equal(t, 5, NearPair{TermA: "a", TermB: "b", MaxWords: &five}.Window(100))
}

func TestLoadCategories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cats.yaml")
	content := `categories:
  - id: 1
    name: Climate
    keywords: ["net zero", "Paris-aligned"]
    words: ["CO2"]
    near:
      - a: carbon
        b: target
        max_words: 10
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cats, err := LoadCategories(path)
	require.NoError(t, err)
	require.Len(t, cats, 1)

	assert.Equal(t, "Climate", cats[0].Name)
	assert.Equal(t, []string{"net zero", "Paris-aligned"}, cats[0].Keywords)
	assert.Equal(t, []string{"CO2"}, cats[0].Words)
	require.Len(t, cats[0].Near, 1)
	assert.Equal(t, 10, cats[0].Near[0].Window(100))
}

func TestLoadCategories_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadCategories(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("categories: []\n"), 0644))
	_, err = LoadCategories(empty)
	assert.True(t, errors.Is(err, ErrInvalidConfig))

	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("categories: [\n"), 0644))
	_, err = LoadCategories(broken)
	assert.Error(t, err)
}

func TestTable(t *testing.T) {
	tbl, ok := NewTable([]string{"a", "text"}, [][]string{{"1", "x"}, {"2"}}, "text")
	require.True(t, ok)

	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, []string{"x", ""}, tbl.Texts())

	_, ok = NewTable([]string{"a"}, nil, "text")
	assert.False(t, ok)
}
