package payload_test

import (
	"bytes"
	"crypto/sha256"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrei-cloud/go_segop/pkg/errorcodes"
	"github.com/andrei-cloud/go_segop/pkg/payload"
	"github.com/andrei-cloud/go_segop/pkg/tlv"
)

func TestBuildPlainText(t *testing.T) {
	t.Parallel()

	got, err := payload.Build(payload.TextContent("Hello world"), payload.Metadata{})
	require.NoError(t, err)

	want := append([]byte{0x01, 0x0B}, []byte("Hello world")...)
	assert.Equal(t, want, got)
}

func TestBuildWithMetadata(t *testing.T) {
	t.Parallel()

	got, err := payload.Build(
		payload.TextContent("BUDS structured test"),
		payload.Metadata{Tier: "T1_METADATA", Kind: "TEXT_NOTE"},
	)
	require.NoError(t, err)

	// "BUDS structured test" is 20 bytes.
	want := []byte{0xF0, 0x01, 0x10, 0xF1, 0x01, 0x01, 0x01, 0x14}
	want = append(want, []byte("BUDS structured test")...)
	assert.Equal(t, want, got)
}

func TestBuildBlobHex(t *testing.T) {
	t.Parallel()

	got, err := payload.Build(payload.BlobHexContent("deadbeef00ff"), payload.Metadata{})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x03, 0x06, 0xDE, 0xAD, 0xBE, 0xEF, 0x00, 0xFF}, got)

	upper, err := payload.Build(payload.BlobHexContent("DEADBEEF00FF"), payload.Metadata{})
	require.NoError(t, err)
	assert.Equal(t, got, upper)
}

func TestBuildJSON(t *testing.T) {
	t.Parallel()

	doc := `{"foo":"bar","n":42}`
	got, err := payload.Build(payload.JSONContent(doc), payload.Metadata{Kind: "L2_STATE_ANCHOR"})
	require.NoError(t, err)

	want := []byte{0xF1, 0x01, 0x02, 0x02, byte(len(doc))}
	want = append(want, doc...)
	assert.Equal(t, want, got)

	// Not validated as JSON.
	_, err = payload.Build(payload.JSONContent("{not json"), payload.Metadata{})
	assert.NoError(t, err)
}

func TestBuildRawBlob(t *testing.T) {
	t.Parallel()

	got, err := payload.Build(payload.Content{Blob: []byte{}}, payload.Metadata{Tier: "T3_ARBITRARY"})
	require.NoError(t, err)
	assert.Equal(t, []byte{0xF0, 0x01, 0x30, 0x03, 0x00}, got)
}

func TestBuildErrors(t *testing.T) {
	t.Parallel()

	text := "hello"
	hexStr := "00"
	invalidUTF8 := string([]byte{0xC3, 0x28})

	tests := []struct {
		name    string
		content payload.Content
		meta    payload.Metadata
		wantErr error
		wantMsg string
	}{
		{
			name:    "no content",
			content: payload.Content{},
			wantErr: errorcodes.ErrNoContentSpecified,
		},
		{
			name:    "text and blob hex",
			content: payload.Content{Text: &text, BlobHex: &hexStr},
			wantErr: errorcodes.ErrMultipleContentSpecified,
		},
		{
			name:    "json and raw blob",
			content: payload.Content{JSON: &text, Blob: []byte{1}},
			wantErr: errorcodes.ErrMultipleContentSpecified,
		},
		{
			name:    "unknown tier",
			content: payload.TextContent("x"),
			meta:    payload.Metadata{Tier: "T9_NOPE"},
			wantErr: errorcodes.ErrUnknownMetadataCode,
			wantMsg: "T9_NOPE",
		},
		{
			name:    "unknown kind",
			content: payload.TextContent("x"),
			meta:    payload.Metadata{Tier: "T1_METADATA", Kind: "text_note"},
			wantErr: errorcodes.ErrUnknownMetadataCode,
			wantMsg: "text_note",
		},
		{
			name:    "odd length hex",
			content: payload.BlobHexContent("abc"),
			wantErr: errorcodes.ErrInvalidHexEncoding,
			wantMsg: "abc",
		},
		{
			name:    "non hex characters",
			content: payload.BlobHexContent("zz00"),
			wantErr: errorcodes.ErrInvalidHexEncoding,
			wantMsg: "zz00",
		},
		{
			name:    "whitespace between hex pairs",
			content: payload.BlobHexContent("de ad be ef"),
			wantErr: errorcodes.ErrInvalidHexEncoding,
			wantMsg: "de ad be ef",
		},
		{
			name:    "invalid utf-8 text",
			content: payload.TextContent(invalidUTF8),
			wantErr: errorcodes.ErrEncoding,
		},
		{
			name:    "invalid utf-8 json",
			content: payload.JSONContent(invalidUTF8),
			wantErr: errorcodes.ErrEncoding,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := payload.Build(tt.content, tt.meta)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, got, "no partial payload")
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestRecordsOrder(t *testing.T) {
	t.Parallel()

	records, err := payload.Records(
		payload.BlobHexContent("ff"),
		payload.Metadata{Tier: "T2_OPERATIONAL", Kind: "PROOF_REF"},
	)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, tlv.Record{Type: tlv.TypeMetadataTier, Value: []byte{0x20}}, records[0])
	assert.Equal(t, tlv.Record{Type: tlv.TypeMetadataKind, Value: []byte{0x03}}, records[1])
	assert.Equal(t, tlv.Record{Type: tlv.TypeBlob, Value: []byte{0xFF}}, records[2])
}

func TestBuildLargeText(t *testing.T) {
	t.Parallel()

	text := string(bytes.Repeat([]byte{'z'}, 300))
	got, err := payload.Build(payload.TextContent(text), payload.Metadata{})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0xFD, 0x2C, 0x01}, got[:4])
	assert.Len(t, got, 304)
}

func TestBuildConcurrent(t *testing.T) {
	t.Parallel()

	want, err := payload.Build(payload.TextContent("same"), payload.Metadata{Tier: "T1_METADATA"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([][]byte, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = payload.Build(payload.TextContent("same"), payload.Metadata{Tier: "T1_METADATA"})
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestCheckSize(t *testing.T) {
	t.Parallel()

	buf := make([]byte, payload.MaxPayloadSize)
	assert.NoError(t, payload.CheckSize(buf, payload.MaxPayloadSize))
	assert.NoError(t, payload.CheckSize(append(buf, 0), 0))
	assert.ErrorIs(t, payload.CheckSize(append(buf, 0), payload.MaxPayloadSize), errorcodes.ErrPayloadTooLarge)
}

func TestCodeTables(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"T1_METADATA", "T2_OPERATIONAL", "T3_ARBITRARY"}, payload.TierNames())
	assert.Equal(t, []string{"TEXT_NOTE", "L2_STATE_ANCHOR", "PROOF_REF"}, payload.KindNames())

	code, err := payload.TierCode("T3_ARBITRARY")
	require.NoError(t, err)
	assert.Equal(t, byte(0x30), code)

	code, err = payload.KindCode("L2_STATE_ANCHOR")
	require.NoError(t, err)
	assert.Equal(t, byte(0x02), code)

	assert.NotEmpty(t, payload.TierDescription("T1_METADATA"))
	assert.Empty(t, payload.KindDescription("NOPE"))
}

func TestCommitment(t *testing.T) {
	t.Parallel()

	data, err := payload.Build(payload.TextContent("Hello world"), payload.Metadata{})
	require.NoError(t, err)

	tag := sha256.Sum256([]byte("segop:commitment"))
	h := sha256.New()
	h.Write(tag[:])
	h.Write(tag[:])
	h.Write(data)
	want := h.Sum(nil)

	got := payload.Commitment(data)
	assert.Equal(t, want, got[:])

	blob := payload.CommitmentBlob(data)
	require.Len(t, blob, 37)
	assert.Equal(t, []byte("P2SOP"), blob[:5])
	assert.Equal(t, want, blob[5:])
}
