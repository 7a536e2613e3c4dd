package cmd

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ByLCY/catalogo/config"
)

type rootOptions struct {
	configPath string
	envFile    string
	verbose    bool
}

func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "catalogo",
		Short: "Product catalog PDF generator",
		Long: `Catalogo turns a product table (xlsx, csv or parquet) into a print-ready A4 PDF
catalog of product cards laid out in a three-column grid.

Settings come from catalogo.yaml (or --config), a .env file, CATALOGO_* environment
variables and finally command-line flags.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
			if opts.envFile != "" {
				if err := config.LoadEnvFile(opts.envFile); err != nil {
					return err
				}
			}
			setupLogging(opts.verbose)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML configuration file (default catalogo.yaml when present)")
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "Additional dotenv file to load")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose logging")

	cmd.AddCommand(newBuildCmd(opts))
	cmd.AddCommand(newPlanCmd(opts))
	cmd.AddCommand(newSampleAccentCmd())

	return cmd
}

func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
