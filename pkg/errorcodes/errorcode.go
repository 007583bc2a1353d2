// Package errorcodes defines segOP payload errors using a structured type.
// CodecError holds the two-character code and human-readable description.
package errorcodes

import "errors"

// Predefined payload error instances.
var (
	ErrInvalidLength            = CodecError{"10", "Length not representable as CompactSize"}
	ErrInvalidTypeCode          = CodecError{"11", "Record type code outside 0-255"}
	ErrUnknownMetadataCode      = CodecError{"12", "Unknown metadata tier or kind name"}
	ErrInvalidHexEncoding       = CodecError{"13", "Malformed hexadecimal input"}
	ErrNoContentSpecified       = CodecError{"14", "No content record specified"}
	ErrMultipleContentSpecified = CodecError{"15", "More than one content record specified"}
	ErrEncoding                 = CodecError{"16", "Content is not valid UTF-8"}
	ErrPayloadTooLarge          = CodecError{"17", "Payload exceeds the configured size limit"}
	ErrIOFailure                = CodecError{"20", "Payload sink write failure"}
	ErrMalformedRequest         = CodecError{"51", "Invalid request message"}
	ErrUnknownCommand           = CodecError{"68", "Command not recognized"}
)

// CodeUnknown is reported for errors that do not carry a CodecError.
const CodeUnknown = "99"

// CodecError represents a payload error with its code and description.
type CodecError struct {
	Code        string // two-character error code
	Description string // human-readable description
}

// Error implements the Go error interface: "<Code>: <Description>".
func (e CodecError) Error() string {
	return e.Code + ": " + e.Description
}

// CodeOnly returns only the error code (e.g., "13"), for embedding in responses.
func (e CodecError) CodeOnly() string {
	return e.Code
}

// Code returns the two-character code of the first CodecError in err's chain,
// or CodeUnknown when there is none.
func Code(err error) string {
	var ce CodecError
	if errors.As(err, &ce) {
		return ce.Code
	}

	return CodeUnknown
}
