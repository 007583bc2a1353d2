// Package build provides the payload build command.
package build

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrei-cloud/go_segop/internal/cli"
	"github.com/andrei-cloud/go_segop/internal/config"
	"github.com/andrei-cloud/go_segop/internal/sink"
	"github.com/andrei-cloud/go_segop/pkg/payload"
)

// pickMetadata is replaced in tests to avoid starting a terminal program.
var pickMetadata = func(initial payload.Metadata) (payload.Metadata, bool, error) {
	return runMetadataTUI(initial)
}

// NewBuildCommand creates the build command.
func NewBuildCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a segOP TLV payload",
		Long: `Build a segOP TLV payload from exactly one content source (text, JSON or
hex blob), optionally preceded by BUDS tier and data-kind marker records.
The payload is written to --out and its hex is printed to stdout.`,
		Example: `  # Plain text payload
  go_segop build --out plain_hello_world.tlv --text "Hello world"

  # Text payload with BUDS tier and kind markers
  go_segop build --out buds_t1_textnote.tlv --tier T1_METADATA --kind TEXT_NOTE \
      --text "BUDS structured test"

  # JSON payload
  go_segop build --out simple_object.tlv --json '{"foo":"bar","n":42}'

  # Blob payload from hex, also printing the commitment blob
  go_segop build --out small_blob_deadbeef.tlv --blob-hex deadbeef00ff --commitment`,
		RunE: runBuild,
	}

	cmd.Flags().String("out", "", "Output file path for the binary payload (omit to print hex only)")
	cmd.Flags().String("text", "", "TEXT content as a UTF-8 string")
	cmd.Flags().String("json", "", "JSON content as an already serialized UTF-8 string")
	cmd.Flags().String("blob-hex", "", "BLOB content as hex (e.g. deadbeef00ff)")
	cmd.Flags().String("tier", "", "BUDS tier marker to prepend (e.g. T1_METADATA)")
	cmd.Flags().String("kind", "", "BUDS data-kind marker to prepend (e.g. TEXT_NOTE)")
	cmd.Flags().Bool("interactive", false, "Choose tier and kind interactively")
	cmd.Flags().Bool("commitment", false, "Also print the P2SOP commitment blob hex")

	return cmd
}

// requestFromFlags maps the content flags that were actually given to a request.
func requestFromFlags(cmd *cobra.Command) cli.Request {
	var req cli.Request
	flags := cmd.Flags()

	if flags.Changed("text") {
		v, _ := flags.GetString("text")
		req.Text = &v
	}
	if flags.Changed("json") {
		v, _ := flags.GetString("json")
		req.JSON = &v
	}
	if flags.Changed("blob-hex") {
		v, _ := flags.GetString("blob-hex")
		req.BlobHex = &v
	}
	req.Tier, _ = flags.GetString("tier")
	req.Kind, _ = flags.GetString("kind")

	return req
}

func runBuild(cmd *cobra.Command, _ []string) error {
	req := requestFromFlags(cmd)
	out, _ := cmd.Flags().GetString("out")
	interactive, _ := cmd.Flags().GetBool("interactive")
	withCommitment, _ := cmd.Flags().GetBool("commitment")

	if interactive {
		meta, ok, err := pickMetadata(req.Metadata())
		if err != nil {
			return err
		}
		if !ok {
			return errors.New("metadata selection cancelled")
		}
		req.Tier, req.Kind = meta.Tier, meta.Kind
	}

	runID := cli.NewRunID()
	buf, err := cli.GeneratePayload(runID, "build", req, config.Get().Payload.MaxSize)
	if err != nil {
		return err
	}

	if out != "" {
		if err := (sink.FileSink{Path: out}).Write(buf); err != nil {
			return err
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(buf)) //nolint:errcheck
	if withCommitment {
		fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(payload.CommitmentBlob(buf))) //nolint:errcheck
	}

	return nil
}
