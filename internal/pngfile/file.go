// Package pngfile loads and stores PNG containers on disk.
package pngfile

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"github.com/samcharles93/pngme/pkg/png"
)

var ErrFileTooLarge = errors.New("pngfile: file too large")

// Open maps path read-only, parses it and releases the mapping.
// If mmap is unavailable, it falls back to ReadAt-based loading.
// Chunks copy their payloads, so the returned Png does not reference the file.
func Open(path string, opts png.DecodeOptions) (*png.Png, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size64 := stat.Size()
	if size64 < 0 || size64 > int64(int(^uint(0)>>1)) {
		return nil, fmt.Errorf("%w: %s", ErrFileTooLarge, path)
	}
	size := int(size64)
	if size == 0 {
		// mmap rejects zero-length mappings.
		return png.ParseWithOptions(nil, opts)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err == nil {
		p, parseErr := png.ParseWithOptions(data, opts)
		if unmapErr := unix.Munmap(data); unmapErr != nil && parseErr == nil {
			return nil, unmapErr
		}
		return p, parseErr
	}

	return Read(f, size64, opts)
}

// Read loads and parses a PNG from a random-access reader without mmap.
func Read(r io.ReaderAt, size int64, opts png.DecodeOptions) (*png.Png, error) {
	if size < 0 || size > int64(int(^uint(0)>>1)) {
		return nil, ErrFileTooLarge
	}
	data, err := readAllAt(r, int(size))
	if err != nil {
		return nil, err
	}
	return png.ParseWithOptions(data, opts)
}

func readAllAt(r io.ReaderAt, size int) ([]byte, error) {
	if size == 0 {
		return []byte{}, nil
	}
	out := make([]byte, size)
	var off int64
	for off < int64(size) {
		n, err := r.ReadAt(out[off:], off)
		off += int64(n)
		if err == nil {
			continue
		}
		if err == io.EOF && off == int64(size) {
			break
		}
		return nil, err
	}
	return out, nil
}

// Write stores p at path. The data goes to a temporary file in the same
// directory first and is renamed over path once fully synced. An existing
// file keeps its permission bits; new files are created 0644.
func Write(path string, p *png.Png) (err error) {
	perm := os.FileMode(0o644)
	if fi, statErr := os.Stat(path); statErr == nil {
		perm = fi.Mode().Perm()
	} else if !errors.Is(statErr, fs.ErrNotExist) {
		return statErr
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = writeFull(tmp, p.Bytes()); err != nil {
		return err
	}
	if err = tmp.Chmod(perm); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func writeFull(f *os.File, p []byte) error {
	for len(p) > 0 {
		n, err := f.Write(p)
		if err != nil {
			return err
		}
		p = p[n:]
	}
	return nil
}
