package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
)

// SamplePGN is a short two-game PGN used across package tests.
const SamplePGN = `[Event "Casual Game"]
[Site "London"]
[Result "1-0"]

1. e4 e5 2. Nf3 Nc6 3. Bb5 {Ruy Lopez} a6 $1 4. Ba4 1-0

[Event "Casual Game"]
[Result "*"]

1. d4 d5 (1... Nf6 2. c4) 2. c4 *
`

// WriteFile writes data to name inside a fresh temporary directory and
// returns the full path.
func WriteFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WriteZstdFile is like WriteFile but stores data zstd-compressed.
// The name should carry a .zst suffix.
func WriteZstdFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		t.Fatalf("zstd writer: %v", err)
	}
	defer encoder.Close()
	return WriteFile(t, name, encoder.EncodeAll(data, nil))
}
