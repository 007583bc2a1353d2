// Package tlv builds segOP type-length-value records.
//
// A record is one type byte, the value length as a CompactSize integer and
// the raw value bytes. Records concatenate back to back with no separator,
// terminator or outer length.
package tlv

import (
	"fmt"
	"io"

	"github.com/andrei-cloud/go_segop/pkg/compactsize"
	"github.com/andrei-cloud/go_segop/pkg/errorcodes"
)

// TypeCode names the kind of value a record carries.
type TypeCode uint8

// Record type registry.
const (
	TypeText         TypeCode = 0x01 // UTF-8 text
	TypeJSON         TypeCode = 0x02 // UTF-8 JSON document
	TypeBlob         TypeCode = 0x03 // opaque bytes
	TypeMetadataTier TypeCode = 0xF0 // BUDS tier marker, one-byte value
	TypeMetadataKind TypeCode = 0xF1 // BUDS data-kind marker, one-byte value
)

var typeNames = map[TypeCode]string{
	TypeText:         "TEXT",
	TypeJSON:         "JSON",
	TypeBlob:         "BLOB",
	TypeMetadataTier: "BUDS_TIER",
	TypeMetadataKind: "BUDS_TYPE",
}

// String returns the registry name, or the hex code for unregistered types.
func (t TypeCode) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}

	return fmt.Sprintf("0x%02X", uint8(t))
}

// Types returns the registered type codes in ascending order.
func Types() []TypeCode {
	return []TypeCode{TypeText, TypeJSON, TypeBlob, TypeMetadataTier, TypeMetadataKind}
}

// Record is one (type, value) pair. Value is not copied.
type Record struct {
	Type  TypeCode
	Value []byte
}

// NewRecord builds a record from an untyped code, rejecting codes outside 0-255.
func NewRecord(code int, value []byte) (Record, error) {
	if code < 0 || code > 0xFF {
		return Record{}, fmt.Errorf("%w: %d", errorcodes.ErrInvalidTypeCode, code)
	}

	return Record{Type: TypeCode(code), Value: value}, nil
}

// Len returns the encoded size of the record.
func (r Record) Len() int {
	n := uint64(len(r.Value))
	return 1 + compactsize.Size(n) + len(r.Value)
}

// AppendTo appends the record encoding to dst.
func (r Record) AppendTo(dst []byte) []byte {
	dst = append(dst, byte(r.Type))
	dst = compactsize.Append(dst, uint64(len(r.Value)))

	return append(dst, r.Value...)
}

// Marshal returns the TLV encoding of the record.
func (r Record) Marshal() []byte {
	return r.AppendTo(make([]byte, 0, r.Len()))
}

// Encode returns [t][CompactSize(len(value))][value].
func Encode(t TypeCode, value []byte) []byte {
	return Record{Type: t, Value: value}.Marshal()
}

// EncodeSequence concatenates the encodings of records in order.
func EncodeSequence(records []Record) []byte {
	size := 0
	for _, r := range records {
		size += r.Len()
	}

	out := make([]byte, 0, size)
	for _, r := range records {
		out = r.AppendTo(out)
	}

	return out
}

// WriteSequence streams the encodings of records to w and returns the bytes written.
func WriteSequence(w io.Writer, records []Record) (int64, error) {
	var total int64
	for _, r := range records {
		n, err := w.Write(r.Marshal())
		total += int64(n)
		if err != nil {
			return total, fmt.Errorf("write %s record: %w", r.Type, err)
		}
	}

	return total, nil
}
