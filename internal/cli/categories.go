package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/stratclass/internal/model"
)

var categoriesYAML bool

// categoriesCmd represents the categories command
var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the active category definitions",
	Long: `List shows every category with its keyword phrases, whole-word terms and
near-pair rules after config and --categories overrides are applied.

Use --yaml to print a definitions file that can be edited and passed back
with --categories.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if categoriesYAML {
			data, err := yaml.Marshal(model.CategoriesFile{Categories: cfg.Categories})
			if err != nil {
				return fmt.Errorf("error marshaling categories: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}

		printCategories(cmd.OutOrStdout(), cfg)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
	categoriesCmd.Flags().BoolVar(&categoriesYAML, "yaml", false, "print definitions as YAML")
}

func printCategories(w io.Writer, cfg *model.Config) {
	for _, cat := range cfg.Categories {
		fmt.Fprintf(w, "%d. %s  →  %s\n", cat.ID, cat.Name, cat.FileName())
		if len(cat.Keywords) > 0 {
			fmt.Fprintf(w, "   keywords: %s\n", strings.Join(cat.Keywords, ", "))
		}
		if len(cat.Words) > 0 {
			fmt.Fprintf(w, "   words:    %s\n", strings.Join(cat.Words, ", "))
		}
		for _, np := range cat.Near {
			fmt.Fprintf(w, "   near:     %s ~ %s within %d words\n", np.TermA, np.TermB, np.Window(cfg.NearMaxWords))
		}
	}
	fmt.Fprintf(w, "unclassified  →  %s.csv\n", cfg.UnclassifiedName)
}
