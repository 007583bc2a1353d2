// Package compactsize encodes lengths as Bitcoin CompactSize integers.
//
// Values below 0xFD are a single byte. Larger values are a marker byte
// (0xFD, 0xFE or 0xFF) followed by a 2, 4 or 8 byte little-endian integer,
// always using the smallest form that fits. Marker values never occur as a
// single-byte length, so every encoding is unambiguous.
package compactsize

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/andrei-cloud/go_segop/pkg/errorcodes"
)

// Marker bytes announcing a wider integer.
const (
	Marker16 byte = 0xFD
	Marker32 byte = 0xFE
	Marker64 byte = 0xFF
)

// MaxSize is the longest encoding in bytes.
const MaxSize = 9

// Size returns the number of bytes needed to encode n.
func Size(n uint64) int {
	switch {
	case n < uint64(Marker16):
		return 1
	case n <= math.MaxUint16:
		return 3
	case n <= math.MaxUint32:
		return 5
	default:
		return MaxSize
	}
}

// Append appends the CompactSize encoding of n to dst and returns the extended slice.
func Append(dst []byte, n uint64) []byte {
	switch {
	case n < uint64(Marker16):
		return append(dst, byte(n))
	case n <= math.MaxUint16:
		dst = append(dst, Marker16)
		return binary.LittleEndian.AppendUint16(dst, uint16(n))
	case n <= math.MaxUint32:
		dst = append(dst, Marker32)
		return binary.LittleEndian.AppendUint32(dst, uint32(n))
	default:
		dst = append(dst, Marker64)
		return binary.LittleEndian.AppendUint64(dst, n)
	}
}

// Encode returns the CompactSize encoding of n.
func Encode(n uint64) []byte {
	return Append(make([]byte, 0, Size(n)), n)
}

// EncodeInt encodes a signed length, rejecting negative values.
func EncodeInt(n int64) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d is negative", errorcodes.ErrInvalidLength, n)
	}

	return Encode(uint64(n)), nil
}
