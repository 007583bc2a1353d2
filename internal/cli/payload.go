// Package cli contains utilities for CLI operations.
package cli

import (
	"github.com/google/uuid"

	"github.com/andrei-cloud/go_segop/internal/logging"
	"github.com/andrei-cloud/go_segop/pkg/payload"
	"github.com/andrei-cloud/go_segop/pkg/tlv"
)

// Request describes one payload as supplied by a front end.
type Request struct {
	Text    *string `json:"text,omitempty"`
	JSON    *string `json:"json,omitempty"`
	BlobHex *string `json:"blob_hex,omitempty"`
	Tier    string  `json:"tier,omitempty"`
	Kind    string  `json:"kind,omitempty"`
}

// Content returns the content selection of the request.
func (r Request) Content() payload.Content {
	return payload.Content{Text: r.Text, JSON: r.JSON, BlobHex: r.BlobHex}
}

// Metadata returns the metadata selection of the request.
func (r Request) Metadata() payload.Metadata {
	return payload.Metadata{Tier: r.Tier, Kind: r.Kind}
}

// NewRunID returns a fresh identifier for correlating log events.
func NewRunID() string {
	return uuid.NewString()
}

// GeneratePayload builds the payload for req and enforces the size limit (0 disables it).
func GeneratePayload(runID, source string, req Request, limit int) ([]byte, error) {
	records, err := payload.Records(req.Content(), req.Metadata())
	if err != nil {
		logging.LogPayloadRejected(runID, source, err)
		return nil, err
	}

	buf := tlv.EncodeSequence(records)
	if err := payload.CheckSize(buf, limit); err != nil {
		logging.LogPayloadRejected(runID, source, err)
		return nil, err
	}

	logging.LogPayloadBuilt(runID, source, len(records), buf)

	return buf, nil
}
