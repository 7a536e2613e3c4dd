package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ByLCY/catalogo/palette"
)

func newSampleAccentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sample-accent <image>",
		Short: "Print the accent colour the catalog would take from a header image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := palette.Sample(args[0])
			fmt.Fprintln(cmd.OutOrStdout(), palette.Hex(res.Value))
			if res.IsFallback() {
				fmt.Fprintf(cmd.ErrOrStderr(), "fallback colour used: %s\n", res.ReasonString())
			}
			return nil
		},
	}
}
