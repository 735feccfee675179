package vowel

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// fileDataset is the on-disk representation shared by JSON and YAML.
type fileDataset struct {
	Phonemes []filePhoneme `json:"phonemes" yaml:"phonemes"`
}

type filePhoneme struct {
	Key     string    `json:"key" yaml:"key"`
	IPA     string    `json:"ipa" yaml:"ipa"`
	Display string    `json:"display,omitempty" yaml:"display,omitempty"`
	Tongue  string    `json:"tongue,omitempty" yaml:"tongue,omitempty"`
	Type    string    `json:"type,omitempty" yaml:"type,omitempty"`
	Lips    string    `json:"lips,omitempty" yaml:"lips,omitempty"`
	Length  string    `json:"length,omitempty" yaml:"length,omitempty"`
	Rhotic  bool      `json:"rhotic,omitempty" yaml:"rhotic,omitempty"`
	Example []string  `json:"example,omitempty" yaml:"example,omitempty"`
	Slot    *SlotSpec `json:"slot,omitempty" yaml:"slot,omitempty"`
	Quad    *fileQuad `json:"quad,omitempty" yaml:"quad,omitempty"`
	Tile    *Tile     `json:"tile,omitempty" yaml:"tile,omitempty"`
}

// fileQuad keeps both coordinates optional: a legacy point only counts when
// both are present.
type fileQuad struct {
	X *float64 `json:"x,omitempty" yaml:"x,omitempty"`
	Y *float64 `json:"y,omitempty" yaml:"y,omitempty"`
}

// ParseJSON parses a {"phonemes": [...]} document. Unknown fields are
// rejected, as ParseYAML rejects them.
func ParseJSON(data []byte) (*Dataset, error) {
	var f fileDataset
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("vowel: parse json: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("vowel: parse json: trailing data after document")
	}
	return f.toDataset()
}

// LoadFile reads a dataset, choosing the codec by file extension
// (.yaml/.yml for YAML, anything else JSON).
func LoadFile(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("vowel: read %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	}
	return ParseJSON(data)
}

// ToJSON encodes a dataset in the document format ParseJSON reads.
func ToJSON(d *Dataset, pretty bool) ([]byte, error) {
	f := d.toFile()
	if pretty {
		return json.MarshalIndent(f, "", "  ")
	}
	return json.Marshal(f)
}

func (d *Dataset) toFile() fileDataset {
	f := fileDataset{Phonemes: make([]filePhoneme, 0, d.Len())}
	for _, p := range d.phonemes {
		fp := filePhoneme{
			Key:     p.Key,
			IPA:     p.IPA,
			Display: p.Display,
			Tongue:  p.Tongue,
			Type:    p.Type,
			Lips:    p.Lips,
			Length:  p.Length,
			Rhotic:  p.Rhotic,
			Example: p.Examples,
			Slot:    p.Slot,
			Tile:    p.Tile,
		}
		if p.Quad != nil {
			x, y := p.Quad.X, p.Quad.Y
			fp.Quad = &fileQuad{X: &x, Y: &y}
		}
		f.Phonemes = append(f.Phonemes, fp)
	}
	return f
}

func (f fileDataset) toDataset() (*Dataset, error) {
	phonemes := make([]Phoneme, 0, len(f.Phonemes))
	for i, fp := range f.Phonemes {
		key := strings.TrimSpace(fp.Key)
		if key == "" {
			return nil, fmt.Errorf("vowel: phoneme %d: %w: missing key", i, ErrInvalidDataset)
		}
		p := Phoneme{
			Key:      key,
			IPA:      fp.IPA,
			Display:  fp.Display,
			Tongue:   fp.Tongue,
			Type:     fp.Type,
			Lips:     fp.Lips,
			Length:   fp.Length,
			Rhotic:   fp.Rhotic,
			Slot:     fp.Slot,
			Tile:     fp.Tile,
			Examples: fp.Example,
		}
		if fp.Quad != nil && fp.Quad.X != nil && fp.Quad.Y != nil {
			p.Quad = &Quad{X: *fp.Quad.X, Y: *fp.Quad.Y}
		}
		phonemes = append(phonemes, p)
	}
	return NewDataset(phonemes), nil
}
