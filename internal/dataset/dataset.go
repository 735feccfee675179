// Package dataset provides the bundled General American vowel set and
// loads replacements from disk.
package dataset

import (
	_ "embed"
	"fmt"

	"github.com/ha1tch/vowelchart/pkg/vowel"
)

//go:embed phonemes.json
var defaultJSON []byte

// Default parses the embedded dataset.
func Default() (*vowel.Dataset, error) {
	ds, err := vowel.ParseJSON(defaultJSON)
	if err != nil {
		return nil, fmt.Errorf("dataset: embedded: %w", err)
	}
	return ds, nil
}

// Load reads path, or the embedded dataset when path is empty.
func Load(path string) (*vowel.Dataset, error) {
	if path == "" {
		return Default()
	}
	ds, err := vowel.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	return ds, nil
}

// Raw returns a copy of the embedded JSON document.
func Raw() []byte {
	return append([]byte(nil), defaultJSON...)
}
