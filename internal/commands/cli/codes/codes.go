// Package codes provides the code table listing command.
package codes

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrei-cloud/go_segop/internal/cli"
)

// NewCodesCommand creates the codes command.
func NewCodesCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "codes [tiers|kinds|types]",
		Short:     "List BUDS tier, data-kind and record type codes",
		Long:      `List the fixed code tables used when building payloads. With no argument every table is printed.`,
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: cli.Tables(),
		RunE:      runCodes,
	}
}

func runCodes(cmd *cobra.Command, args []string) error {
	tables := args
	if len(tables) == 0 {
		tables = cli.Tables()
	}

	out := cmd.OutOrStdout()
	for i, table := range tables {
		if len(tables) > 1 {
			if i > 0 {
				fmt.Fprintln(out) //nolint:errcheck
			}
			fmt.Fprintf(out, "%s:\n", table) //nolint:errcheck
		}
		if err := cli.PrintCodeTable(out, table); err != nil {
			return err
		}
	}

	return nil
}
