package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ppiankov/stratclass/internal/model"
)

const version = "stratclass v0.3.0"

var (
	cfgFile        string
	categoriesFile string
	verbose        bool

	logger = zap.NewNop()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "stratclass",
	Short: "stratclass - keyword classification of investment strategies",
	Long: `stratclass sorts free-text investment-strategy descriptions into
sustainable-investing categories using keyword and word-proximity rules.

Every row of the input table is tested against every category. A row may
land in several category files; rows matching no category are written to
the unclassified file.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l.With(zap.String("run_id", uuid.NewString()))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.stratclass/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&categoriesFile, "categories", "", "YAML file with category definitions (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	d := model.DefaultConfig()
	viper.SetDefault("input", d.Input)
	viper.SetDefault("text_column", d.TextColumn)
	viper.SetDefault("output_dir", d.OutputDir)
	viper.SetDefault("unclassified_name", d.UnclassifiedName)
	viper.SetDefault("near_max_words", d.NearMaxWords)
	viper.SetDefault("workers", d.Workers)
	viper.SetDefault("cache", d.Cache)
	viper.SetDefault("strip_html", d.StripHTML)

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in .env, the config file and ENV variables
func initConfig() {
	// A missing .env is normal
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env: %v\n", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(filepath.Join(home, ".stratclass"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match STRATCLASS_*
	viper.SetEnvPrefix("STRATCLASS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	} else if err != nil && cfgFile != "" {
		fmt.Fprintf(os.Stderr, "Warning: failed to read config file %s: %v\n", cfgFile, err)
	}
}

// loadConfig resolves flags, environment, config file and defaults into a
// validated configuration
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.Categories = nil

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode configuration: %w", err)
	}

	if categoriesFile != "" {
		cats, err := model.LoadCategories(categoriesFile)
		if err != nil {
			return nil, err
		}
		cfg.Categories = cats
	}
	if len(cfg.Categories) == 0 {
		cfg.Categories = model.DefaultCategories()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
