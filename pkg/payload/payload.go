// Package payload assembles segOP TLV payloads: optional BUDS metadata
// records followed by exactly one content record.
package payload

import (
	"encoding/hex"
	"fmt"
	"unicode/utf8"

	"github.com/andrei-cloud/go_segop/pkg/errorcodes"
	"github.com/andrei-cloud/go_segop/pkg/tlv"
)

// MaxPayloadSize is the segOP lane limit on payload bytes.
const MaxPayloadSize = 64_000

// Content selects the content record. Exactly one field must be set.
type Content struct {
	Text    *string // TEXT record, UTF-8
	JSON    *string // JSON record, already serialized, UTF-8
	BlobHex *string // BLOB record from a hex string
	Blob    []byte  // BLOB record from raw bytes; nil means unset
}

// Metadata selects optional BUDS marker records. Empty names are omitted.
type Metadata struct {
	Tier string
	Kind string
}

// TextContent is shorthand for a TEXT content selection.
func TextContent(s string) Content { return Content{Text: &s} }

// JSONContent is shorthand for a JSON content selection.
func JSONContent(s string) Content { return Content{JSON: &s} }

// BlobHexContent is shorthand for a hex BLOB content selection.
func BlobHexContent(s string) Content { return Content{BlobHex: &s} }

func (c Content) count() int {
	n := 0
	for _, set := range []bool{c.Text != nil, c.JSON != nil, c.BlobHex != nil, c.Blob != nil} {
		if set {
			n++
		}
	}

	return n
}

// Record derives the content record.
func (c Content) Record() (tlv.Record, error) {
	switch n := c.count(); {
	case n == 0:
		return tlv.Record{}, errorcodes.ErrNoContentSpecified
	case n > 1:
		return tlv.Record{}, fmt.Errorf("%w: %d variants set", errorcodes.ErrMultipleContentSpecified, n)
	}

	switch {
	case c.Text != nil:
		if !utf8.ValidString(*c.Text) {
			return tlv.Record{}, fmt.Errorf("%w: text", errorcodes.ErrEncoding)
		}
		return tlv.Record{Type: tlv.TypeText, Value: []byte(*c.Text)}, nil
	case c.JSON != nil:
		if !utf8.ValidString(*c.JSON) {
			return tlv.Record{}, fmt.Errorf("%w: json", errorcodes.ErrEncoding)
		}
		return tlv.Record{Type: tlv.TypeJSON, Value: []byte(*c.JSON)}, nil
	case c.BlobHex != nil:
		raw, err := hex.DecodeString(*c.BlobHex)
		if err != nil {
			return tlv.Record{}, fmt.Errorf("%w: %q: %v", errorcodes.ErrInvalidHexEncoding, *c.BlobHex, err)
		}
		return tlv.Record{Type: tlv.TypeBlob, Value: raw}, nil
	default:
		return tlv.Record{Type: tlv.TypeBlob, Value: c.Blob}, nil
	}
}

// Records returns the metadata records followed by the content record:
// tier, kind, content.
func Records(content Content, meta Metadata) ([]tlv.Record, error) {
	records := make([]tlv.Record, 0, 3)

	if meta.Tier != "" {
		code, err := TierCode(meta.Tier)
		if err != nil {
			return nil, err
		}
		records = append(records, tlv.Record{Type: tlv.TypeMetadataTier, Value: []byte{code}})
	}

	if meta.Kind != "" {
		code, err := KindCode(meta.Kind)
		if err != nil {
			return nil, err
		}
		records = append(records, tlv.Record{Type: tlv.TypeMetadataKind, Value: []byte{code}})
	}

	rec, err := content.Record()
	if err != nil {
		return nil, err
	}

	return append(records, rec), nil
}

// Build encodes the payload for content and meta. On error no bytes are returned.
func Build(content Content, meta Metadata) ([]byte, error) {
	records, err := Records(content, meta)
	if err != nil {
		return nil, err
	}

	return tlv.EncodeSequence(records), nil
}

// CheckSize reports ErrPayloadTooLarge when len(buf) exceeds limit. A limit of zero disables the check.
func CheckSize(buf []byte, limit int) error {
	if limit > 0 && len(buf) > limit {
		return fmt.Errorf("%w: %d bytes, limit %d", errorcodes.ErrPayloadTooLarge, len(buf), limit)
	}

	return nil
}
