// Package classify applies compiled category matchers to every row of a
// table and partitions rows into per-category and unclassified subsets.
package classify

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/ppiankov/stratclass/internal/cache"
	"github.com/ppiankov/stratclass/internal/extract"
	"github.com/ppiankov/stratclass/internal/match"
	"github.com/ppiankov/stratclass/internal/model"
	"github.com/ppiankov/stratclass/internal/worker"
)

const (
	minShardSize     = 64
	shardsPerWorker  = 4
	cancelCheckEvery = 256
)

// Options configures a Classifier
type Options struct {
	Workers   int
	Cache     cache.Cache // nil disables verdict caching
	StripHTML bool
	Logger    *zap.Logger

	// ProgressInterval bounds how often progress is logged; zero means once per second
	ProgressInterval time.Duration
}

// Classifier evaluates every matcher against every row
type Classifier struct {
	matchers  []*match.Matcher
	workers   int
	cache     cache.Cache
	stripHTML bool
	logger    *zap.Logger
	progress  time.Duration
}

// New creates a classifier over the given matchers
func New(matchers []*match.Matcher, opts Options) *Classifier {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.ProgressInterval <= 0 {
		opts.ProgressInterval = time.Second
	}

	return &Classifier{
		matchers:  matchers,
		workers:   opts.Workers,
		cache:     opts.Cache,
		stripHTML: opts.StripHTML,
		logger:    opts.Logger,
		progress:  opts.ProgressInterval,
	}
}

// Matchers returns the matchers in category order
func (c *Classifier) Matchers() []*match.Matcher {
	return c.matchers
}

func (c *Classifier) normalize(text string) string {
	if c.stripHTML {
		return extract.VisibleText(text)
	}
	return text
}

// Verdict returns one result per matcher, in matcher order. Every matcher is
// evaluated; a match in one category never skips the others.
func (c *Classifier) Verdict(text string) []bool {
	if c.cache != nil {
		if v, ok := c.cache.Get(text); ok {
			return v
		}
	}

	normalized := c.normalize(text)
	verdict := make([]bool, len(c.matchers))
	for i, m := range c.matchers {
		verdict[i] = m.Match(normalized)
	}

	if c.cache != nil {
		c.cache.Set(text, verdict)
	}
	return verdict
}

// Explanation is one category's verdict with the rule that fired
type Explanation struct {
	CategoryID int
	Category   string
	Matched    bool
	Hit        match.Hit
}

// Explain evaluates a single text against all categories
func (c *Classifier) Explain(text string) []Explanation {
	normalized := c.normalize(text)
	out := make([]Explanation, len(c.matchers))
	for i, m := range c.matchers {
		hit, ok := m.Explain(normalized)
		out[i] = Explanation{CategoryID: m.ID, Category: m.Name, Matched: ok, Hit: hit}
	}
	return out
}

// Classify builds per-category masks for texts, aligned by position
func (c *Classifier) Classify(ctx context.Context, texts []string) (*model.Masks, error) {
	n := len(texts)
	perMatcher := make([][]bool, len(c.matchers))
	for i := range perMatcher {
		perMatcher[i] = make([]bool, n)
	}
	anyMask := make([]bool, n)

	var done atomic.Int64
	progress := &rate.Sometimes{Interval: c.progress}

	err := worker.RunShards(ctx, n, c.workers, c.shardSize(n), func(ctx context.Context, lo, hi int) error {
		for i := lo; i < hi; i++ {
			if (i-lo)%cancelCheckEvery == 0 {
				if err := ctx.Err(); err != nil {
					return err
				}
			}

			for j, v := range c.Verdict(texts[i]) {
				perMatcher[j][i] = v
				if v {
					anyMask[i] = true
				}
			}
		}

		total := done.Add(int64(hi - lo))
		progress.Do(func() {
			c.logger.Debug("classifying rows", zap.Int64("done", total), zap.Int("total", n))
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	masks := &model.Masks{
		ByCategory: make(map[int][]bool, len(c.matchers)),
		Any:        anyMask,
	}
	for j, m := range c.matchers {
		masks.ByCategory[m.ID] = perMatcher[j]
	}

	fields := []zap.Field{zap.Int("rows", n), zap.Int("classified", model.Count(anyMask))}
	if mc, ok := c.cache.(*cache.MemoryCache); ok {
		hits, misses := mc.Stats()
		fields = append(fields, zap.Int64("cache_hits", hits), zap.Int64("cache_misses", misses))
	}
	c.logger.Debug("classification complete", fields...)

	return masks, nil
}

func (c *Classifier) shardSize(n int) int {
	size := (n + c.workers*shardsPerWorker - 1) / (c.workers * shardsPerWorker)
	if size < minShardSize {
		size = minShardSize
	}
	return size
}
