// Package batch provides the manifest-driven batch generation command.
package batch

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/andrei-cloud/go_segop/internal/config"
	"github.com/andrei-cloud/go_segop/internal/manifest"
)

// NewBatchCommand creates the batch command.
func NewBatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch MANIFEST",
		Short: "Generate every payload listed in a TOML manifest",
		Long: `Generate the payload files listed in a TOML manifest. Every entry is built
and size checked before any file is written. Relative output paths resolve
against --out-dir, or the manifest's directory when it is not set.

With --watch the manifest is regenerated whenever it changes, until interrupted.`,
		Example: `  go_segop batch examples/manifest.toml
  go_segop batch examples/manifest.toml --out-dir build/payloads --watch`,
		Args: cobra.ExactArgs(1),
		RunE: runBatch,
	}

	cmd.Flags().String("out-dir", "", "Directory for relative output paths (default: manifest directory)")
	cmd.Flags().Bool("watch", false, "Regenerate whenever the manifest changes")

	return cmd
}

func generate(out io.Writer, path, outDir string, limit int) error {
	outputs, err := manifest.GenerateFile(path, outDir, limit)
	if err != nil {
		return err
	}

	for _, o := range outputs {
		fmt.Fprintf(out, "%s %s\n", o.Path, hex.EncodeToString(o.Payload)) //nolint:errcheck
	}

	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	path := args[0]
	outDir, _ := cmd.Flags().GetString("out-dir")
	watch, _ := cmd.Flags().GetBool("watch")
	limit := config.Get().Payload.MaxSize
	out := cmd.OutOrStdout()

	if err := generate(out, path, outDir, limit); err != nil {
		return err
	}
	if !watch {
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := &manifest.Watcher{
		Path: path,
		OnChange: func() {
			if err := generate(out, path, outDir, limit); err != nil {
				log.Error().Err(err).Str("manifest", path).Msg("regeneration failed")
				return
			}
			log.Info().Str("manifest", path).Msg("manifest regenerated")
		},
	}

	log.Info().Str("manifest", path).Msg("watching manifest for changes")

	return w.Run(ctx)
}
