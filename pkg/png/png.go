// Package png implements the PNG chunk layout.
//
// A PNG datastream is an 8-byte signature followed by chunks, each encoded as
// a big-endian length, a 4-byte type code, the data and a CRC-32 over type and
// data. The package reads and writes that layout exactly; it never interprets
// image data.
package png

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"slices"
	"strings"
)

// Signature is the PNG file magic: "\x89PNG\r\n\x1a\n".
var Signature = [8]byte{137, 80, 78, 71, 13, 10, 26, 10}

// Png is an ordered sequence of chunks behind the PNG signature.
//
// A Png is not safe for concurrent use.
type Png struct {
	chunks []Chunk
}

// New returns a Png holding the given chunks in order.
func New(chunks ...Chunk) *Png {
	return &Png{chunks: slices.Clone(chunks)}
}

// Parse decodes a complete PNG datastream. Parsing stops at the first bad
// chunk; no partial Png is returned.
func Parse(b []byte) (*Png, error) {
	return ParseWithOptions(b, DecodeOptions{})
}

// ParseWithOptions is Parse with relaxed chunk integrity checks.
func ParseWithOptions(b []byte, opts DecodeOptions) (*Png, error) {
	if len(b) < len(Signature) || !bytes.Equal(b[:len(Signature)], Signature[:]) {
		return nil, ErrBadSignature
	}

	p := &Png{}
	off := len(Signature)
	for off < len(b) {
		rest := b[off:]
		if len(rest) < ChunkOverhead {
			return nil, fmt.Errorf("chunk at offset %d: %w: %d trailing bytes", off, ErrTruncatedChunk, len(rest))
		}
		n := uint64(binary.BigEndian.Uint32(rest[:4]))
		end := uint64(ChunkOverhead) + n
		if end > uint64(len(rest)) {
			return nil, fmt.Errorf("chunk at offset %d: %w: length %d exceeds remaining %d bytes",
				off, ErrTruncatedChunk, n, len(rest)-ChunkOverhead)
		}

		c, err := ParseChunkWithOptions(rest[:end], opts)
		if err != nil {
			return nil, fmt.Errorf("chunk at offset %d: %w", off, err)
		}
		p.chunks = append(p.chunks, c)
		off += c.Size()
	}
	return p, nil
}

// Decode reads r to EOF and parses the result.
func Decode(r io.Reader, opts DecodeOptions) (*Png, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseWithOptions(b, opts)
}

// AppendChunk adds c after the last chunk. Type codes need not be unique.
func (p *Png) AppendChunk(c Chunk) {
	p.chunks = append(p.chunks, c)
}

// RemoveFirstChunk removes and returns the first chunk whose type is typ.
// The Png is left untouched when no chunk matches.
func (p *Png) RemoveFirstChunk(typ string) (Chunk, error) {
	i := p.index(typ)
	if i < 0 {
		return Chunk{}, fmt.Errorf("%w: %q", ErrChunkNotFound, typ)
	}
	c := p.chunks[i]
	p.chunks = slices.Delete(p.chunks, i, i+1)
	return c, nil
}

// ChunkByType returns the first chunk whose type is typ.
func (p *Png) ChunkByType(typ string) (Chunk, bool) {
	i := p.index(typ)
	if i < 0 {
		return Chunk{}, false
	}
	return p.chunks[i], true
}

// ChunksByType returns every chunk whose type is typ, in order.
func (p *Png) ChunksByType(typ string) []Chunk {
	var out []Chunk
	for _, c := range p.chunks {
		if c.typ.String() == typ {
			out = append(out, c)
		}
	}
	return out
}

// Chunks returns the chunks in order. The returned slice is a snapshot and
// does not follow later mutations.
func (p *Png) Chunks() []Chunk {
	return slices.Clone(p.chunks)
}

func (p *Png) Len() int {
	return len(p.chunks)
}

// Size is the encoded size of the Png.
func (p *Png) Size() int {
	n := len(Signature)
	for _, c := range p.chunks {
		n += c.Size()
	}
	return n
}

// Bytes returns the signature followed by every chunk's encoding.
func (p *Png) Bytes() []byte {
	buf := make([]byte, 0, p.Size())
	buf = append(buf, Signature[:]...)
	for _, c := range p.chunks {
		buf = c.AppendTo(buf)
	}
	return buf
}

// WriteTo writes the encoded Png to w.
func (p *Png) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(Signature[:])
	total := int64(n)
	if err != nil {
		return total, err
	}
	var buf []byte
	for _, c := range p.chunks {
		buf = c.AppendTo(buf[:0])
		n, err = w.Write(buf)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func (p *Png) String() string {
	var sb strings.Builder
	sb.WriteString("Png {\n")
	for _, c := range p.chunks {
		sb.WriteString(c.String())
		sb.WriteByte('\n')
	}
	sb.WriteString("}")
	return sb.String()
}

func (p *Png) index(typ string) int {
	return slices.IndexFunc(p.chunks, func(c Chunk) bool {
		return c.typ.String() == typ
	})
}
