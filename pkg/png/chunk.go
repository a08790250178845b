package png

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"strings"
	"unicode/utf8"
)

const (
	chunkLengthSize = 4
	chunkTypeSize   = 4
	chunkCRCSize    = 4

	// ChunkOverhead is the number of bytes a chunk occupies beyond its data.
	ChunkOverhead = chunkLengthSize + chunkTypeSize + chunkCRCSize
)

// DecodeOptions relaxes the integrity checks applied while decoding.
// The zero value checks everything.
type DecodeOptions struct {
	// SkipChecksum accepts chunks whose trailing CRC does not match the
	// CRC computed over their type and data. The computed CRC is kept.
	SkipChecksum bool

	// SkipLength ignores the encoded length field and trusts the slice
	// boundaries handed to ParseChunk.
	SkipLength bool
}

// Chunk is a single {length, type, data, crc} record.
// A Chunk is immutable once built.
type Chunk struct {
	typ  TypeCode
	data []byte
	crc  uint32
}

// NewChunk builds a chunk and computes its CRC. The data is copied.
func NewChunk(t TypeCode, data []byte) Chunk {
	d := make([]byte, len(data))
	copy(d, data)
	return Chunk{
		typ:  t,
		data: d,
		crc:  checksum(t, d),
	}
}

// ParseChunk decodes exactly one encoded chunk. b must hold the whole chunk
// and nothing else.
func ParseChunk(b []byte) (Chunk, error) {
	return ParseChunkWithOptions(b, DecodeOptions{})
}

// ParseChunkWithOptions is ParseChunk with relaxed integrity checks.
func ParseChunkWithOptions(b []byte, opts DecodeOptions) (Chunk, error) {
	if len(b) < ChunkOverhead {
		return Chunk{}, fmt.Errorf("%w: have %d bytes, need at least %d", ErrTruncatedChunk, len(b), ChunkOverhead)
	}

	var raw [4]byte
	copy(raw[:], b[chunkLengthSize:chunkLengthSize+chunkTypeSize])
	typ, err := TypeCodeFromBytes(raw)
	if err != nil {
		return Chunk{}, err
	}

	crcStart := len(b) - chunkCRCSize
	payload := b[chunkLengthSize+chunkTypeSize : crcStart]

	if !opts.SkipLength {
		declared := binary.BigEndian.Uint32(b[:chunkLengthSize])
		if uint64(declared) != uint64(len(payload)) {
			return Chunk{}, &LengthError{Type: typ, Declared: declared, Actual: uint32(len(payload))}
		}
	}

	crc := crc32.ChecksumIEEE(b[chunkLengthSize:crcStart])
	if !opts.SkipChecksum {
		nominal := binary.BigEndian.Uint32(b[crcStart:])
		if nominal != crc {
			return Chunk{}, &ChecksumError{Type: typ, Nominal: nominal, Actual: crc}
		}
	}

	data := make([]byte, len(payload))
	copy(data, payload)
	return Chunk{typ: typ, data: data, crc: crc}, nil
}

// Type returns the chunk's type code.
func (c Chunk) Type() TypeCode {
	return c.typ
}

// Data returns the chunk payload. Callers must not modify it.
func (c Chunk) Data() []byte {
	return c.data
}

// Length returns the payload length in bytes.
func (c Chunk) Length() uint32 {
	return uint32(len(c.data))
}

// CRC returns the CRC-32 over type and data.
func (c Chunk) CRC() uint32 {
	return c.crc
}

// DataString returns the payload as text.
func (c Chunk) DataString() (string, error) {
	if !utf8.Valid(c.data) {
		return "", fmt.Errorf("%w: %s chunk", ErrNonUTF8Payload, c.typ)
	}
	return string(c.data), nil
}

// Size is the encoded size of the chunk.
func (c Chunk) Size() int {
	return ChunkOverhead + len(c.data)
}

// Bytes returns the wire encoding of the chunk.
func (c Chunk) Bytes() []byte {
	return c.AppendTo(make([]byte, 0, c.Size()))
}

// AppendTo appends the wire encoding of the chunk to dst.
func (c Chunk) AppendTo(dst []byte) []byte {
	dst = binary.BigEndian.AppendUint32(dst, c.Length())
	dst = append(dst, c.typ[:]...)
	dst = append(dst, c.data...)
	return binary.BigEndian.AppendUint32(dst, c.crc)
}

// Equal reports whether both chunks have the same type, data and CRC.
func (c Chunk) Equal(o Chunk) bool {
	return c.typ == o.typ && c.crc == o.crc && string(c.data) == string(o.data)
}

func (c Chunk) String() string {
	var sb strings.Builder
	sb.WriteString("Chunk {\n")
	fmt.Fprintf(&sb, "  Length: %d\n", c.Length())
	fmt.Fprintf(&sb, "  Type: %s\n", c.typ)
	fmt.Fprintf(&sb, "  Data: %d bytes\n", len(c.data))
	fmt.Fprintf(&sb, "  CRC: 0x%08x\n", c.crc)
	sb.WriteString("}")
	return sb.String()
}

func checksum(t TypeCode, data []byte) uint32 {
	h := crc32.NewIEEE()
	_, _ = h.Write(t[:])
	_, _ = h.Write(data)
	return h.Sum32()
}
