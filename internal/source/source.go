// Package source opens PGN inputs: plain files, zstd-compressed files and
// standard input.
package source

import (
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/eikopf/konig/internal/errors"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

// ZstdSuffix marks a zstd-compressed input.
const ZstdSuffix = ".zst"

// stdin is swapped in tests.
var stdin io.Reader = os.Stdin

type zstdReadCloser struct {
	*zstd.Decoder
	file *os.File
}

func (z zstdReadCloser) Close() error {
	z.Decoder.Close()
	return z.file.Close()
}

// Open returns a reader over the decoded contents of path. An empty path
// or "-" reads standard input, which is never closed by the returned
// reader. Paths ending in .zst are decompressed on the fly.
func Open(path string) (io.ReadCloser, error) {
	if path == "" || path == Stdin {
		return io.NopCloser(stdin), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	if !strings.HasSuffix(path, ZstdSuffix) {
		return f, nil
	}

	dec, err := zstd.NewReader(f)
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "zstd %s", path)
	}
	return zstdReadCloser{Decoder: dec, file: f}, nil
}

// ReadAll returns the full decoded contents of path.
func ReadAll(path string) ([]byte, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return data, nil
}

// Name returns a display name for path.
func Name(path string) string {
	if path == "" || path == Stdin {
		return "<stdin>"
	}
	return path
}
