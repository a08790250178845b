package pngfile

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/samcharles93/pngme/pkg/png"
)

func samplePng() *png.Png {
	return png.New(
		png.NewChunk(png.IHDR, []byte{0, 0, 0, 1, 0, 0, 0, 1, 8, 2, 0, 0, 0}),
		png.NewChunk(png.MustTypeCode("ruSt"), []byte("hidden")),
		png.NewChunk(png.IEND, nil),
	)
}

func TestWriteOpenRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "image.png")
	want := samplePng()
	if err := Write(path, want); err != nil {
		t.Fatalf("write: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if !bytes.Equal(raw, want.Bytes()) {
		t.Fatalf("file contents mismatch: got %x want %x", raw, want.Bytes())
	}

	got, err := Open(path, png.DecodeOptions{})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if !bytes.Equal(got.Bytes(), want.Bytes()) {
		t.Fatalf("round trip mismatch")
	}
	c, ok := got.ChunkByType("ruSt")
	if !ok {
		t.Fatalf("missing ruSt chunk")
	}
	if string(c.Data()) != "hidden" {
		t.Fatalf("payload mismatch: got %q", c.Data())
	}
}

func TestWriteReplacesExisting(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "image.png")
	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := Write(path, samplePng()); err != nil {
		t.Fatalf("write: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("temporary files left behind: %d entries", len(entries))
	}
	if _, err := Open(path, png.DecodeOptions{}); err != nil {
		t.Fatalf("open replaced file: %v", err)
	}
}

func TestWriteKeepsPermissions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	private := filepath.Join(dir, "private.png")
	if err := os.WriteFile(private, samplePng().Bytes(), 0o600); err != nil {
		t.Fatalf("seed: %v", err)
	}
	// WriteFile is subject to the umask; pin the mode explicitly.
	if err := os.Chmod(private, 0o600); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	if err := Write(private, samplePng()); err != nil {
		t.Fatalf("write: %v", err)
	}
	fi, err := os.Stat(private)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if got := fi.Mode().Perm(); got != 0o600 {
		t.Fatalf("mode after rewrite: got %v want %v", got, os.FileMode(0o600))
	}

	fresh := filepath.Join(dir, "fresh.png")
	if err := Write(fresh, samplePng()); err != nil {
		t.Fatalf("write new: %v", err)
	}
	fi, err = os.Stat(fresh)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if got := fi.Mode().Perm(); got != 0o644 {
		t.Fatalf("mode of new file: got %v want %v", got, os.FileMode(0o644))
	}
}

func TestReadAt(t *testing.T) {
	t.Parallel()

	raw := samplePng().Bytes()
	p, err := Read(bytes.NewReader(raw), int64(len(raw)), png.DecodeOptions{})
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if p.Len() != 3 {
		t.Fatalf("chunk count: got %d want 3", p.Len())
	}
}

func TestOpenErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	if _, err := Open(filepath.Join(dir, "missing.png"), png.DecodeOptions{}); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing file: got %v want ErrNotExist", err)
	}

	empty := filepath.Join(dir, "empty.png")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := Open(empty, png.DecodeOptions{}); !errors.Is(err, png.ErrBadSignature) {
		t.Fatalf("empty file: got %v want ErrBadSignature", err)
	}

	notPNG := filepath.Join(dir, "note.txt")
	if err := os.WriteFile(notPNG, []byte("definitely not a png"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := Open(notPNG, png.DecodeOptions{}); !errors.Is(err, png.ErrBadSignature) {
		t.Fatalf("text file: got %v want ErrBadSignature", err)
	}
}
