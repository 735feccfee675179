package chart

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidSheet is returned for sheet entries with unknown bands or
// positions outside [0,1].
var ErrInvalidSheet = errors.New("invalid sheet entry")

// SheetRow is a coarse height band: the trapezoid split into thirds.
type SheetRow string

const (
	SheetHigh SheetRow = "high"
	SheetMid  SheetRow = "mid"
	SheetLow  SheetRow = "low"
)

// span returns the band's t range along the side edges.
func (r SheetRow) span() (t0, t1 float64, ok bool) {
	switch r {
	case SheetHigh:
		return 0, 1.0 / 3, true
	case SheetMid:
		return 1.0 / 3, 2.0 / 3, true
	case SheetLow:
		return 2.0 / 3, 1, true
	}
	return 0, 0, false
}

// SheetColumn is a coarse backness band bounded by the trapezoid edges and
// the internal dividers.
type SheetColumn string

const (
	SheetFront   SheetColumn = "front"
	SheetCentral SheetColumn = "central"
	SheetBack    SheetColumn = "back"
)

func (c SheetColumn) valid() bool {
	return c == SheetFront || c == SheetCentral || c == SheetBack
}

// SheetEntry places a symbol inside a band: V runs from the band's top guide
// line to its bottom one, U from its left boundary to its right one.
type SheetEntry struct {
	Row SheetRow    `yaml:"row" json:"row"`
	Col SheetColumn `yaml:"col" json:"col"`
	U   float64     `yaml:"u" json:"u"`
	V   float64     `yaml:"v" json:"v"`
}

// Validate checks the band names and that U and V lie in [0,1]. NaN is
// rejected.
func (e SheetEntry) Validate() error {
	if _, _, ok := e.Row.span(); !ok {
		return fmt.Errorf("%w: row %q", ErrInvalidSheet, e.Row)
	}
	if !e.Col.valid() {
		return fmt.Errorf("%w: col %q", ErrInvalidSheet, e.Col)
	}
	if !(e.U >= 0 && e.U <= 1 && e.V >= 0 && e.V <= 1) {
		return fmt.Errorf("%w: u=%g v=%g outside [0,1]", ErrInvalidSheet, e.U, e.V)
	}
	return nil
}

// Sheet maps phoneme keys to precise chart placements.
type Sheet map[string]SheetEntry

// DefaultSheet covers the canonical monophthongs of the bundled dataset.
func DefaultSheet() Sheet {
	return Sheet{
		"i":  {SheetHigh, SheetFront, 0.2, 0.15},
		"ɪ":  {SheetHigh, SheetFront, 0.7, 0.6},
		"ɛ":  {SheetMid, SheetFront, 0.45, 0.5},
		"æ":  {SheetLow, SheetFront, 0.5, 0.45},
		"ɝ":  {SheetMid, SheetCentral, 0.5, 0.15},
		"ə":  {SheetMid, SheetCentral, 0.5, 0.55},
		"ʌ":  {SheetLow, SheetCentral, 0.55, 0.1},
		"u":  {SheetHigh, SheetBack, 0.8, 0.15},
		"ʊ":  {SheetHigh, SheetBack, 0.3, 0.6},
		"ɔ":  {SheetMid, SheetBack, 0.6, 0.8},
		"ɑ":  {SheetLow, SheetBack, 0.3, 0.7},
		"ɑ2": {SheetLow, SheetBack, 0.8, 0.7},
	}
}

// Merge returns a new sheet with other's entries laid over s.
func (s Sheet) Merge(other Sheet) Sheet {
	out := make(Sheet, len(s)+len(other))
	for k, e := range s {
		out[k] = e
	}
	for k, e := range other {
		out[k] = e
	}
	return out
}

// LoadSheetYAML reads a key -> entry mapping. Names are case-insensitive.
func LoadSheetYAML(r io.Reader) (Sheet, error) {
	var raw map[string]SheetEntry
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return Sheet{}, nil
		}
		return nil, fmt.Errorf("chart: parse sheet: %w", err)
	}
	sheet := make(Sheet, len(raw))
	for key, e := range raw {
		e.Row = SheetRow(strings.ToLower(strings.TrimSpace(string(e.Row))))
		e.Col = SheetColumn(strings.ToLower(strings.TrimSpace(string(e.Col))))
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("chart: sheet %q: %w", key, err)
		}
		sheet[key] = e
	}
	return sheet, nil
}

// Band returns the vertical extent of a row band: the heights of its top
// and bottom guide lines.
func (d Diagram) Band(r SheetRow) (yTop, yBottom float64, ok bool) {
	t0, t1, ok := r.span()
	if !ok {
		return 0, 0, false
	}
	return d.guideY(t0), d.guideY(t1), true
}

// guideY is the height of the row guide line at t, taken at its midpoint.
func (d Diagram) guideY(t float64) float64 {
	left, right := d.PointOnEdges(t)
	return (left.Y + right.Y) / 2
}

// ColumnBounds returns the left and right x of a column band at height y.
// Boundaries are the trapezoid side edges and the slanted dividers.
func (d Diagram) ColumnBounds(c SheetColumn, y float64) (left, right float64, ok bool) {
	leftEdge := XAtY(d.Quad.TL, d.Quad.BL, y)
	rightEdge := XAtY(d.Quad.TR, d.Quad.BR, y)
	fc := d.DividerSegment(d.FrontCentral)
	cb := d.DividerSegment(d.CentralBack)
	switch c {
	case SheetFront:
		return leftEdge, XAtY(fc.A, fc.B, y), true
	case SheetCentral:
		return XAtY(fc.A, fc.B, y), XAtY(cb.A, cb.B, y), true
	case SheetBack:
		return XAtY(cb.A, cb.B, y), rightEdge, true
	}
	return 0, 0, false
}

// SheetPoint places a sheet entry. Invalid entries report false.
func (d Diagram) SheetPoint(e SheetEntry) (Point, bool) {
	yTop, yBottom, ok := d.Band(e.Row)
	if !ok {
		return Point{}, false
	}
	y := Lerp(yTop, yBottom, e.V)
	left, right, ok := d.ColumnBounds(e.Col, y)
	if !ok {
		return Point{}, false
	}
	return Point{Lerp(left, right, e.U), y}, true
}
