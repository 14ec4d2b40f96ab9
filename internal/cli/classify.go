package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/stratclass/internal/pipeline"
	"github.com/ppiankov/stratclass/internal/table"
)

var noCache bool

// classifyCmd represents the classify command
var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify every row of the input table and write per-category files",
	Long: `Classify reads the input CSV, tests the strategy text of every row
against every category and writes:
- one "<category name>.csv" per category with the rows it matched
- "unclassified.csv" with the rows no category matched

Each output carries a leading uid column with the row's 0-based input position.
Outputs are written all-or-nothing and fully replaced on every run.

Example:
  stratclass classify
  stratclass classify --input funds.csv --column strategy --output-dir ./out
  stratclass classify --near-max-words 25 --categories my-categories.yaml`,
	Args: cobra.NoArgs,
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)

	classifyCmd.Flags().String("input", "", "input CSV path (default: result_together.csv)")
	classifyCmd.Flags().String("column", "", "name of the strategy text column (default: investment_strategy)")
	classifyCmd.Flags().String("output-dir", "", "directory for output files (default: current directory)")
	classifyCmd.Flags().Int("near-max-words", 0, "default word window for near-pair rules (default: 100)")
	classifyCmd.Flags().Int("workers", 0, "number of concurrent workers (default: number of CPUs)")
	classifyCmd.Flags().Bool("strip-html", false, "match against visible text only when strategies contain HTML")
	classifyCmd.Flags().BoolVar(&noCache, "no-cache", false, "evaluate repeated strategy texts again instead of reusing verdicts")

	_ = viper.BindPFlag("input", classifyCmd.Flags().Lookup("input"))
	_ = viper.BindPFlag("text_column", classifyCmd.Flags().Lookup("column"))
	_ = viper.BindPFlag("output_dir", classifyCmd.Flags().Lookup("output-dir"))
	_ = viper.BindPFlag("near_max_words", classifyCmd.Flags().Lookup("near-max-words"))
	_ = viper.BindPFlag("workers", classifyCmd.Flags().Lookup("workers"))
	_ = viper.BindPFlag("strip_html", classifyCmd.Flags().Lookup("strip-html"))
}

func runClassify(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if noCache {
		cfg.Cache = false
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Input:       %s (column %q)\n", cfg.Input, cfg.TextColumn)
		fmt.Fprintf(os.Stderr, "Output dir:  %s\n", cfg.OutputDir)
		fmt.Fprintf(os.Stderr, "Categories:  %d\n", len(cfg.Categories))
		fmt.Fprintf(os.Stderr, "Workers:     %d\n", cfg.Workers)
		fmt.Fprintln(os.Stderr)
	}

	result, err := pipeline.NewPipeline(cfg, logger).Run(ctx)
	if err != nil {
		var commitErr *table.CommitError
		if errors.As(err, &commitErr) {
			for _, w := range commitErr.Committed {
				fmt.Fprintf(os.Stderr, "✓ %s was written before the failure\n", w.Path)
			}
		}
		return err
	}

	for _, w := range result.Written {
		fmt.Printf("Wrote %d rows to “%s”\n", w.Rows, filepath.Base(w.Path))
	}

	return nil
}
