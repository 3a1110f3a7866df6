// Package textio opens the pipeline's text files, layering zstd
// compression transparently for paths that carry the .zst extension.
package textio

import (
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// CompressedExt marks files stored with zstd.
const CompressedExt = ".zst"

// IsCompressed reports whether path names a zstd-compressed file.
func IsCompressed(path string) bool {
	return strings.HasSuffix(path, CompressedExt)
}

// Create opens path for writing, truncating any existing file. For
// compressed paths the returned writer encodes on the fly; it must be
// closed to flush the final frame.
func Create(path string) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if !IsCompressed(path) {
		return f, nil
	}

	zw, err := zstd.NewWriter(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &zstdWriteCloser{zw: zw, f: f}, nil
}

// Open opens path for reading, decoding on the fly for compressed paths.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !IsCompressed(path) {
		return f, nil
	}

	zr, err := zstd.NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &zstdReadCloser{zr: zr, f: f}, nil
}

type zstdWriteCloser struct {
	zw *zstd.Encoder
	f  *os.File
}

func (w *zstdWriteCloser) Write(p []byte) (int, error) {
	return w.zw.Write(p)
}

func (w *zstdWriteCloser) Close() error {
	if err := w.zw.Close(); err != nil {
		w.f.Close()
		return err
	}
	return w.f.Close()
}

type zstdReadCloser struct {
	zr *zstd.Decoder
	f  *os.File
}

func (r *zstdReadCloser) Read(p []byte) (int, error) {
	return r.zr.Read(p)
}

func (r *zstdReadCloser) Close() error {
	r.zr.Close()
	return r.f.Close()
}
