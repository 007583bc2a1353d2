// Package cli provides centralized command registration.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/andrei-cloud/go_segop/internal/commands/cli/batch"
	"github.com/andrei-cloud/go_segop/internal/commands/cli/build"
	"github.com/andrei-cloud/go_segop/internal/commands/cli/codes"
	"github.com/andrei-cloud/go_segop/internal/commands/cli/server"
)

// RegisterCommands registers all root commands.
func RegisterCommands(root *cobra.Command) error {
	root.AddCommand(build.NewBuildCommand())
	root.AddCommand(codes.NewCodesCommand())
	root.AddCommand(batch.NewBatchCommand())
	root.AddCommand(server.NewServeCommand())

	return nil
}
