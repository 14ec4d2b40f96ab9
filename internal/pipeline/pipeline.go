package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ppiankov/stratclass/internal/cache"
	"github.com/ppiankov/stratclass/internal/classify"
	"github.com/ppiankov/stratclass/internal/match"
	"github.com/ppiankov/stratclass/internal/model"
	"github.com/ppiankov/stratclass/internal/table"
)

// Pipeline orchestrates a complete classification run
type Pipeline struct {
	config *model.Config
	logger *zap.Logger
}

// NewPipeline creates a new pipeline with the given configuration
func NewPipeline(cfg *model.Config, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		config: cfg,
		logger: logger,
	}
}

// Result summarizes a completed run
type Result struct {
	Rows    int
	Masks   *model.Masks
	Subsets []model.Subset
	Written []table.Written
}

// Classifier validates the configuration and compiles every category
func (p *Pipeline) Classifier() (*classify.Classifier, error) {
	if err := p.config.Validate(); err != nil {
		return nil, err
	}

	matchers, err := match.CompileAll(p.config.Categories, p.config.NearMaxWords)
	if err != nil {
		return nil, fmt.Errorf("compile categories: %w", err)
	}

	var c cache.Cache
	if p.config.Cache {
		c = cache.NewMemoryCache()
	}

	return classify.New(matchers, classify.Options{
		Workers:   p.config.Workers,
		Cache:     c,
		StripHTML: p.config.StripHTML,
		Logger:    p.logger,
	}), nil
}

// Run loads the input, classifies every row and writes all outputs. Nothing
// is written unless loading and classification succeed.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	start := time.Now()

	// 1. Compile matchers
	classifier, err := p.Classifier()
	if err != nil {
		return nil, err
	}

	// 2. Load input
	tbl, err := table.Load(p.config.Input, p.config.TextColumn)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	p.logger.Info("loaded input",
		zap.String("path", p.config.Input),
		zap.Int("rows", tbl.Len()),
		zap.Int("columns", len(tbl.Columns)))

	// 3. Classify
	masks, err := classifier.Classify(ctx, tbl.Texts())
	if err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}

	// 4. Partition
	subsets := classify.Partition(p.config.Categories, masks, p.config.UnclassifiedName)

	// 5. Write
	written, err := table.WriteAll(p.config.OutputDir, tbl, subsets)
	if err != nil {
		return nil, fmt.Errorf("write outputs: %w", err)
	}

	p.logger.Info("run complete",
		zap.Int("rows", tbl.Len()),
		zap.Int("unclassified", len(subsets[len(subsets)-1].Rows)),
		zap.Int("files", len(written)),
		zap.Duration("elapsed", time.Since(start)))

	return &Result{
		Rows:    tbl.Len(),
		Masks:   masks,
		Subsets: subsets,
		Written: written,
	}, nil
}
