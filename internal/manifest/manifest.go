// Package manifest generates a set of payload files described by a TOML manifest.
//
// Example:
//
//	[[payload]]
//	out  = "text/buds_t1_textnote.tlv"
//	tier = "T1_METADATA"
//	kind = "TEXT_NOTE"
//	text = "BUDS structured test"
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/andrei-cloud/go_segop/internal/cli"
	"github.com/andrei-cloud/go_segop/internal/sink"
)

// Entry is one payload in the manifest.
type Entry struct {
	Out     string  `toml:"out"`
	Text    *string `toml:"text"`
	JSON    *string `toml:"json"`
	BlobHex *string `toml:"blob_hex"`
	Tier    string  `toml:"tier"`
	Kind    string  `toml:"kind"`
}

// Request converts the entry into a generation request.
func (e Entry) Request() cli.Request {
	return cli.Request{Text: e.Text, JSON: e.JSON, BlobHex: e.BlobHex, Tier: e.Tier, Kind: e.Kind}
}

// Manifest is a parsed manifest file.
type Manifest struct {
	Payloads []Entry `toml:"payload"`
}

// Load reads and parses a TOML manifest.
func Load(path string) (Manifest, error) {
	var m Manifest
	b, err := os.ReadFile(path)
	if err != nil {
		return m, err
	}
	if err := toml.Unmarshal(b, &m); err != nil {
		return m, fmt.Errorf("parse manifest %s: %w", path, err)
	}

	for i, e := range m.Payloads {
		if e.Out == "" {
			return m, fmt.Errorf("manifest %s: payload %d has no out path", path, i)
		}
	}

	return m, nil
}

// Output is one generated payload file.
type Output struct {
	Path    string
	Payload []byte
}

// Generate builds every entry and then writes the files under outDir.
// Nothing is written unless every entry builds and fits limit.
func Generate(m Manifest, outDir string, limit int) ([]Output, error) {
	runID := cli.NewRunID()

	outputs := make([]Output, 0, len(m.Payloads))
	for i, e := range m.Payloads {
		buf, err := cli.GeneratePayload(runID, "batch:"+e.Out, e.Request(), limit)
		if err != nil {
			return nil, fmt.Errorf("payload %d (%s): %w", i, e.Out, err)
		}

		path := e.Out
		if !filepath.IsAbs(path) {
			path = filepath.Join(outDir, path)
		}
		outputs = append(outputs, Output{Path: path, Payload: buf})
	}

	for _, o := range outputs {
		if err := (sink.FileSink{Path: o.Path}).Write(o.Payload); err != nil {
			return nil, fmt.Errorf("write %s: %w", o.Path, err)
		}
	}

	return outputs, nil
}

// GenerateFile loads the manifest at path and generates it. An empty outDir
// resolves relative outputs against the manifest's directory.
func GenerateFile(path, outDir string, limit int) ([]Output, error) {
	m, err := Load(path)
	if err != nil {
		return nil, err
	}
	if outDir == "" {
		outDir = filepath.Dir(path)
	}

	return Generate(m, outDir, limit)
}
