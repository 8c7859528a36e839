// Package fs provides filesystem access to the source document.
package fs

import (
	"fmt"
	"os"

	"github.com/cespare/xxhash/v2"
)

// Source reads the static legislative XML document from a fixed path. The
// document is read once at startup; there is no runtime write path.
type Source struct {
	path string
}

// NewSource creates a Source for the given path.
func NewSource(path string) *Source {
	return &Source{path: path}
}

// Path returns the configured document path.
func (s *Source) Path() string {
	return s.path
}

// Read returns the raw document bytes and a content hash. The hash
// identifies the snapshot a cached answer was computed against.
func (s *Source) Read() ([]byte, string, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, "", fmt.Errorf("read document %q: %w", s.path, err)
	}
	return raw, fmt.Sprintf("%016x", xxhash.Sum64(raw)), nil
}
