package model

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a configuration fails validation
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all run settings
type Config struct {
	Input            string     `yaml:"input" mapstructure:"input" validate:"required"`
	TextColumn       string     `yaml:"text_column" mapstructure:"text_column" validate:"required"`
	OutputDir        string     `yaml:"output_dir" mapstructure:"output_dir" validate:"required"`
	UnclassifiedName string     `yaml:"unclassified_name" mapstructure:"unclassified_name" validate:"required,excludesall=/\\"`
	NearMaxWords     int        `yaml:"near_max_words" mapstructure:"near_max_words" validate:"min=0"`
	Workers          int        `yaml:"workers" mapstructure:"workers" validate:"min=1"`
	Cache            bool       `yaml:"cache" mapstructure:"cache"`
	StripHTML        bool       `yaml:"strip_html" mapstructure:"strip_html"`
	Verbose          bool       `yaml:"verbose" mapstructure:"verbose"`
	Categories       []Category `yaml:"categories" mapstructure:"categories" validate:"required,min=1,dive"`
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() *Config {
	return &Config{
		Input:            "result_together.csv",
		TextColumn:       "investment_strategy",
		OutputDir:        ".",
		UnclassifiedName: "unclassified",
		NearMaxWords:     100,
		Workers:          runtime.NumCPU(),
		Cache:            true,
		Categories:       DefaultCategories(),
	}
}

var validate = validator.New()

// Validate checks field constraints and cross-category uniqueness
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	ids := make(map[int]bool)
	names := map[string]bool{strings.ToLower(c.UnclassifiedName): true}
	for _, cat := range c.Categories {
		if ids[cat.ID] {
			return fmt.Errorf("%w: duplicate category id %d", ErrInvalidConfig, cat.ID)
		}
		ids[cat.ID] = true

		// Output files share a directory, and some filesystems fold case
		key := strings.ToLower(cat.Name)
		if names[key] {
			return fmt.Errorf("%w: category name %q collides with another output file", ErrInvalidConfig, cat.Name)
		}
		names[key] = true

		if len(cat.Keywords) == 0 && len(cat.Words) == 0 && len(cat.Near) == 0 {
			return fmt.Errorf("%w: category %d (%s) has no rules", ErrInvalidConfig, cat.ID, cat.Name)
		}
	}

	return nil
}

// CategoriesFile is the layout of a standalone category definitions file
type CategoriesFile struct {
	Categories []Category `yaml:"categories"`
}

// LoadCategories reads category definitions from a YAML file
func LoadCategories(path string) ([]Category, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read categories file: %w", err)
	}

	var file CategoriesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse categories file %s: %w", path, err)
	}

	if len(file.Categories) == 0 {
		return nil, fmt.Errorf("%w: no categories defined in %s", ErrInvalidConfig, path)
	}

	return file.Categories, nil
}
