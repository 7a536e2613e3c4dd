package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ByLCY/catalogo/catalog"
	"github.com/ByLCY/catalogo/layout"
)

func newPlanCmd(root *rootOptions) *cobra.Command {
	var (
		flags catalogFlags
		out   string
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Compute the catalog layout and print it as JSON without rendering",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request(cmd, root, nil)
			if err != nil {
				return err
			}
			if out != "-" {
				req.PlanOutput = out
			}
			res, report, err := catalog.NewBuilder(slog.Default()).Plan(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("plan catalog: %w", err)
			}
			if out == "-" {
				return layout.EncodeDebugJSON(res, cmd.OutOrStdout())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Layout written to %s: %d products on %d pages\n", out, report.Cards, report.Pages)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&out, "out", "-", "Where to write the layout JSON, - for stdout")

	return cmd
}
