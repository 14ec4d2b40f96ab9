package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/stratclass/internal/classify"
	"github.com/ppiankov/stratclass/internal/pipeline"
)

// matchCmd represents the match command
var matchCmd = &cobra.Command{
	Use:   "match <text>",
	Short: "Show which categories a single strategy text falls into",
	Long: `Match tests one strategy text against every category and reports the
rule that fired for each matching category. Use "-" to read the text from stdin.

Example:
  stratclass match "We exclude tobacco and vote proxies"
  echo "ESG analysis shapes our risk view" | stratclass match -`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMatch,
}

func init() {
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	if text == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		text = string(data)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	classifier, err := pipeline.NewPipeline(cfg, logger).Classifier()
	if err != nil {
		return err
	}

	printExplanations(cmd.OutOrStdout(), classifier.Explain(text))
	return nil
}

func printExplanations(w io.Writer, explanations []classify.Explanation) {
	matched := 0
	for _, e := range explanations {
		if e.Matched {
			matched++
			fmt.Fprintf(w, "✓ %d %-30s %s\n", e.CategoryID, e.Category, e.Hit)
		} else {
			fmt.Fprintf(w, "  %d %s\n", e.CategoryID, e.Category)
		}
	}
	if matched == 0 {
		fmt.Fprintln(w, "\nunclassified")
	}
}
