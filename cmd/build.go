package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ByLCY/catalogo/catalog"
	"github.com/ByLCY/catalogo/config"
)

func newBuildCmd(root *rootOptions) *cobra.Command {
	var (
		flags  catalogFlags
		output string
		plan   string
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Render the product catalog to PDF",
		Example: `  # Build catalogo.pdf from productos.xlsx
  catalogo build --header portada.png --continuation-header cabecera.png

  # Build from a CSV export, naming images after the product code
  catalogo build --table productos.csv --image-template '${codigo}.jpg' \
    --header portada.png --continuation-header cabecera.png -o salida/catalogo.pdf`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request(cmd, root, func(cfg *config.Config) {
				if cmd.Flags().Changed("output") {
					cfg.Output = output
				}
			})
			if err != nil {
				return err
			}
			req.PlanOutput = plan

			report, err := catalog.NewBuilder(slog.Default()).Build(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("build catalog: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Catalog written to %s: %d products on %d pages\n", report.Output, report.Cards, report.Pages)
			if report.ImageFallbacks > 0 || report.DrawFallbacks > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%d products without image\n", report.ImageFallbacks+report.DrawFallbacks)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output PDF (default catalogo.pdf)")
	cmd.Flags().StringVar(&plan, "plan", "", "Also write the layout as JSON to this file")

	return cmd
}
