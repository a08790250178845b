// Package commands implements the message operations behind the pngme CLI
// and HTTP API: hide a message in a chunk, read it back, remove a chunk and
// list chunks.
package commands

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/samcharles93/pngme/pkg/png"
)

// ChunkInfo is the printable summary of one chunk.
type ChunkInfo struct {
	Index      int    `json:"index"`
	Offset     int    `json:"offset"`
	Length     uint32 `json:"length"`
	Type       string `json:"type"`
	Critical   bool   `json:"critical"`
	Public     bool   `json:"public"`
	SafeToCopy bool   `json:"safe_to_copy"`
	CRC        string `json:"crc"`
}

// Encode appends a chunk of type typ carrying message.
func Encode(p *png.Png, typ, message string) (png.Chunk, error) {
	t, err := png.ParseTypeCode(typ)
	if err != nil {
		return png.Chunk{}, err
	}
	c := png.NewChunk(t, []byte(message))
	p.AppendChunk(c)
	return c, nil
}

// Decode returns the message stored in the first chunk of type typ.
func Decode(p *png.Png, typ string) (string, error) {
	if _, err := png.ParseTypeCode(typ); err != nil {
		return "", err
	}
	c, ok := p.ChunkByType(typ)
	if !ok {
		return "", fmt.Errorf("%w: %q", png.ErrChunkNotFound, typ)
	}
	return c.DataString()
}

// Remove deletes the first chunk of type typ. A png.ErrChunkNotFound result
// leaves p unchanged; callers usually report it as a warning.
func Remove(p *png.Png, typ string) (png.Chunk, error) {
	if _, err := png.ParseTypeCode(typ); err != nil {
		return png.Chunk{}, err
	}
	return p.RemoveFirstChunk(typ)
}

// Describe summarises every chunk in order.
func Describe(p *png.Png) []ChunkInfo {
	chunks := p.Chunks()
	out := make([]ChunkInfo, 0, len(chunks))
	off := len(png.Signature)
	for i, c := range chunks {
		t := c.Type()
		out = append(out, ChunkInfo{
			Index:      i,
			Offset:     off,
			Length:     c.Length(),
			Type:       t.String(),
			Critical:   t.IsCritical(),
			Public:     t.IsPublic(),
			SafeToCopy: t.IsSafeToCopy(),
			CRC:        fmt.Sprintf("0x%08x", c.CRC()),
		})
		off += c.Size()
	}
	return out
}

// Print writes the display form of every chunk to w.
func Print(w io.Writer, p *png.Png) error {
	for _, c := range p.Chunks() {
		if _, err := fmt.Fprintln(w, c.String()); err != nil {
			return err
		}
	}
	return nil
}

// PrintJSON writes Describe(p) as indented JSON.
func PrintJSON(w io.Writer, p *png.Png) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Describe(p))
}
