package png

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTypeCode  = errors.New("invalid chunk type code")
	ErrTruncatedChunk   = errors.New("truncated chunk")
	ErrBadSignature     = errors.New("invalid PNG signature")
	ErrChunkNotFound    = errors.New("chunk not found")
	ErrNonUTF8Payload   = errors.New("chunk data is not valid UTF-8")
	ErrChecksumMismatch = errors.New("chunk CRC mismatch")
	ErrLengthMismatch   = errors.New("chunk length mismatch")
)

// ChecksumError reports a chunk whose trailing CRC does not match the CRC
// computed over its type and data.
type ChecksumError struct {
	Type    TypeCode
	Nominal uint32
	Actual  uint32
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("%s (%s): 0x%08x expected 0x%08x", ErrChecksumMismatch, e.Type, e.Nominal, e.Actual)
}

func (e *ChecksumError) Unwrap() error {
	return ErrChecksumMismatch
}

// LengthError reports a chunk whose length field disagrees with the number of
// data bytes actually present.
type LengthError struct {
	Type     TypeCode
	Declared uint32
	Actual   uint32
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("%s (%s): declared %d, found %d", ErrLengthMismatch, e.Type, e.Declared, e.Actual)
}

func (e *LengthError) Unwrap() error {
	return ErrLengthMismatch
}
