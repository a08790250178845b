package png

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// 1x1 RGB image: IHDR, IDAT, IEND.
const tinyPNGHex = "89504e470d0a1a0a0000000d4948445200000001000000010802000000907753de" +
	"0000000c49444154789c63f8cfc0000003010100c9fe92ef0000000049454e44ae426082"

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	b, err := hex.DecodeString(tinyPNGHex)
	require.NoError(t, err)
	return b
}

func testChunks() []Chunk {
	return []Chunk{
		NewChunk(MustTypeCode("FrSt"), []byte("I am the first chunk")),
		NewChunk(MustTypeCode("miDl"), []byte("I am another chunk")),
		NewChunk(MustTypeCode("LASt"), []byte("I am the last chunk")),
	}
}

func testingPng() *Png {
	return New(testChunks()...)
}

func TestParseRealPNG(t *testing.T) {
	t.Parallel()

	raw := tinyPNG(t)
	p, err := Parse(raw)
	require.NoError(t, err)
	require.Equal(t, 3, p.Len())

	var types []string
	for _, c := range p.Chunks() {
		types = append(types, c.Type().String())
	}
	require.Equal(t, []string{"IHDR", "IDAT", "IEND"}, types)

	ihdr, ok := p.ChunkByType("IHDR")
	require.True(t, ok)
	require.Equal(t, uint32(13), ihdr.Length())

	require.Equal(t, raw, p.Bytes())
}

func TestPngRoundTrip(t *testing.T) {
	t.Parallel()

	want := testingPng()
	encoded := want.Bytes()
	require.Equal(t, Signature[:], encoded[:len(Signature)])
	require.Len(t, encoded, want.Size())

	got, err := Parse(encoded)
	require.NoError(t, err)
	if diff := cmp.Diff(want.Chunks(), got.Chunks()); diff != "" {
		t.Fatalf("chunks mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, encoded, got.Bytes())
}

func TestParseSignatureOnly(t *testing.T) {
	t.Parallel()

	p, err := Parse(Signature[:])
	require.NoError(t, err)
	require.Zero(t, p.Len())
	require.Equal(t, Signature[:], p.Bytes())
}

func TestParseBadSignature(t *testing.T) {
	t.Parallel()

	for name, in := range map[string][]byte{
		"empty": nil,
		"short": Signature[:5],
		"wrong": append([]byte{13, 80, 78, 71, 13, 10, 26, 10}, testChunks()[0].Bytes()...),
	} {
		_, err := Parse(in)
		if !errors.Is(err, ErrBadSignature) {
			t.Fatalf("%s: got %v want ErrBadSignature", name, err)
		}
	}
}

func TestParseTruncated(t *testing.T) {
	t.Parallel()

	full := testingPng().Bytes()

	// Cut inside the last chunk's CRC.
	_, err := Parse(full[:len(full)-2])
	require.ErrorIs(t, err, ErrTruncatedChunk)

	// Fewer than 12 trailing bytes after a complete chunk.
	first := testChunks()[0]
	cut := len(Signature) + first.Size() + 5
	_, err = Parse(full[:cut])
	require.ErrorIs(t, err, ErrTruncatedChunk)
}

func TestParseCorruptChunk(t *testing.T) {
	t.Parallel()

	raw := tinyPNG(t)
	// Flip a byte inside the IDAT payload.
	raw[len(Signature)+25+10] ^= 0xff

	_, err := Parse(raw)
	require.ErrorIs(t, err, ErrChecksumMismatch)

	var csErr *ChecksumError
	require.ErrorAs(t, err, &csErr)
	require.Equal(t, IDAT, csErr.Type)
	require.NotEqual(t, csErr.Nominal, csErr.Actual)
	require.Contains(t, err.Error(), "chunk at offset 33")

	p, err := ParseWithOptions(raw, DecodeOptions{SkipChecksum: true})
	require.NoError(t, err)
	require.Equal(t, 3, p.Len())
}

func TestDecodeReader(t *testing.T) {
	t.Parallel()

	p, err := Decode(bytes.NewReader(tinyPNG(t)), DecodeOptions{})
	require.NoError(t, err)
	require.Equal(t, 3, p.Len())
}

func TestAppendChunk(t *testing.T) {
	t.Parallel()

	p := testingPng()
	extra := NewChunk(MustTypeCode("TeSt"), []byte("Message"))
	p.AppendChunk(extra)

	require.Equal(t, 4, p.Len())
	chunks := p.Chunks()
	require.True(t, chunks[3].Equal(extra))
	for i, want := range testChunks() {
		require.True(t, chunks[i].Equal(want), "chunk %d moved", i)
	}

	got, ok := p.ChunkByType("TeSt")
	require.True(t, ok)
	msg, err := got.DataString()
	require.NoError(t, err)
	require.Equal(t, "Message", msg)
}

func TestRemoveFirstChunk(t *testing.T) {
	t.Parallel()

	p := testingPng()
	first := NewChunk(MustTypeCode("TeSt"), []byte("one"))
	second := NewChunk(MustTypeCode("TeSt"), []byte("two"))
	p.AppendChunk(first)
	p.AppendChunk(NewChunk(MustTypeCode("zzZz"), []byte("between")))
	p.AppendChunk(second)

	removed, err := p.RemoveFirstChunk("TeSt")
	require.NoError(t, err)
	require.True(t, removed.Equal(first))
	require.Equal(t, 5, p.Len())

	chunks := p.Chunks()
	require.Equal(t, "zzZz", chunks[3].Type().String())
	require.True(t, chunks[4].Equal(second))

	left := p.ChunksByType("TeSt")
	require.Len(t, left, 1)
	require.True(t, left[0].Equal(second))
}

func TestRemoveFirstChunkNotFound(t *testing.T) {
	t.Parallel()

	p := testingPng()
	before := p.Bytes()

	_, err := p.RemoveFirstChunk("NoPe")
	require.ErrorIs(t, err, ErrChunkNotFound)
	require.Equal(t, before, p.Bytes())

	_, ok := p.ChunkByType("NoPe")
	require.False(t, ok)
	require.Empty(t, p.ChunksByType("NoPe"))
}

func TestChunksSnapshot(t *testing.T) {
	t.Parallel()

	p := testingPng()
	view := p.Chunks()
	_, err := p.RemoveFirstChunk("FrSt")
	require.NoError(t, err)

	require.Len(t, view, 3)
	require.Equal(t, "FrSt", view[0].Type().String())
	require.Equal(t, 2, p.Len())
}

func TestNewCopiesChunks(t *testing.T) {
	t.Parallel()

	chunks := testChunks()
	p := New(chunks...)
	chunks[0] = NewChunk(MustTypeCode("XxXx"), nil)
	require.Equal(t, "FrSt", p.Chunks()[0].Type().String())
}

func TestWriteTo(t *testing.T) {
	t.Parallel()

	p := testingPng()
	var buf bytes.Buffer
	n, err := p.WriteTo(&buf)
	require.NoError(t, err)
	require.Equal(t, int64(p.Size()), n)
	require.Equal(t, p.Bytes(), buf.Bytes())
}

func TestPngString(t *testing.T) {
	t.Parallel()

	s := testingPng().String()
	require.Contains(t, s, "Png {")
	require.Contains(t, s, "Type: miDl")
	require.Contains(t, s, "Data: 18 bytes")
}
