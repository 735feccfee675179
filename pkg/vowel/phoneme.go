// Package vowel provides the phoneme model for vowel charts: records,
// datasets, articulatory label parsing and diphthong linking.
package vowel

import (
	"errors"
	"strings"
)

// Sentinel errors.
var (
	ErrInvalidDataset = errors.New("invalid dataset")
	ErrUnknownPhoneme = errors.New("unknown phoneme")
)

// SlotSpec is an explicit row/column placement with an optional pixel nudge.
// Row and Col hold the raw names from the dataset; they are parsed with
// ParseRow and ParseColumn at resolution time.
type SlotSpec struct {
	Row string  `json:"row,omitempty" yaml:"row,omitempty"`
	Col string  `json:"col,omitempty" yaml:"col,omitempty"`
	DX  float64 `json:"dx,omitempty" yaml:"dx,omitempty"`
	DY  float64 `json:"dy,omitempty" yaml:"dy,omitempty"`
}

// HasSlot reports whether both the row and the column are set.
func (s *SlotSpec) HasSlot() bool {
	return s != nil && s.Row != "" && s.Col != ""
}

// Nudge returns the pixel offset, zero for a nil spec.
func (s *SlotSpec) Nudge() (dx, dy float64) {
	if s == nil {
		return 0, 0
	}
	return s.DX, s.DY
}

// Quad is a legacy absolute diagram coordinate.
type Quad struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Tile holds coarse grid indices for records with no other placement.
type Tile struct {
	C int `json:"c" yaml:"c"`
	R int `json:"r" yaml:"r"`
}

// Phoneme is a single vowel record. It is read-only to the chart engine.
type Phoneme struct {
	Key      string    `json:"key"`
	IPA      string    `json:"ipa"`
	Display  string    `json:"display,omitempty"`
	Tongue   string    `json:"tongue,omitempty"`
	Type     string    `json:"type,omitempty"`
	Lips     string    `json:"lips,omitempty"`
	Length   string    `json:"length,omitempty"`
	Rhotic   bool      `json:"rhotic,omitempty"`
	Slot     *SlotSpec `json:"slot,omitempty"`
	Quad     *Quad     `json:"quad,omitempty"`
	Tile     *Tile     `json:"tile,omitempty"`
	Examples []string  `json:"example,omitempty"`
}

// Label returns the text drawn on a marker: Display if set, otherwise IPA,
// otherwise the key.
func (p Phoneme) Label() string {
	switch {
	case p.Display != "":
		return p.Display
	case p.IPA != "":
		return p.IPA
	}
	return p.Key
}

// IsGliding reports whether p is a diphthong: its normalised tongue label
// contains the glide arrow, or its type mentions "diphthong".
func (p Phoneme) IsGliding() bool {
	return strings.Contains(NormalizeTongue(p.Tongue), GlideArrow) ||
		strings.Contains(strings.ToLower(p.Type), "diphthong")
}

// TypeDisplay is the type shown in detail panels. Diphthongs show their
// glide label, falling back to the type.
func (p Phoneme) TypeDisplay() string {
	if p.IsGliding() {
		if p.Tongue != "" {
			return p.Tongue
		}
		return p.Type
	}
	if p.Type == "" {
		return "—"
	}
	return p.Type
}
