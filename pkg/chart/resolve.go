package chart

import (
	"github.com/ha1tch/vowelchart/pkg/vowel"
)

// View selects which placement rules apply.
type View int

const (
	// ViewChart is the primary chart; sheet placements take precedence.
	ViewChart View = iota
	// ViewTable covers table and detail views, which use the raw record.
	ViewTable
)

func (v View) String() string {
	if v == ViewTable {
		return "table"
	}
	return "chart"
}

// ParseView maps "chart" or "table" to a View. Anything else is ViewChart.
func ParseView(s string) View {
	if s == "table" {
		return ViewTable
	}
	return ViewChart
}

// Strategy names.
const (
	StrategySheet  = "sheet"
	StrategyTongue = "tongue"
	StrategySlot   = "slot"
	StrategyLegacy = "legacy"
	StrategyGrid   = "grid"
)

// Strategy is one named placement rule. Resolve reports false to pass the
// phoneme on to the next rule.
type Strategy struct {
	Name    string
	Resolve func(p vowel.Phoneme) (Point, bool)
}

// SheetStrategy places phonemes listed in the sheet.
func SheetStrategy(d Diagram, sheet Sheet) Strategy {
	return Strategy{Name: StrategySheet, Resolve: func(p vowel.Phoneme) (Point, bool) {
		e, ok := sheet[p.Key]
		if !ok {
			return Point{}, false
		}
		return d.SheetPoint(e)
	}}
}

// TongueStrategy places phonemes whose tongue label names a known slot,
// applying the record's pixel nudge.
func TongueStrategy(d Diagram) Strategy {
	return Strategy{Name: StrategyTongue, Resolve: func(p vowel.Phoneme) (Point, bool) {
		slot, ok := vowel.ParseTongue(p.Tongue)
		if !ok {
			return Point{}, false
		}
		dx, dy := p.Slot.Nudge()
		return d.SlotPoint(slot, dx, dy), true
	}}
}

// SlotStrategy places phonemes with an explicit row and column. Unknown
// names fall back to the centre fraction.
func SlotStrategy(d Diagram) Strategy {
	return Strategy{Name: StrategySlot, Resolve: func(p vowel.Phoneme) (Point, bool) {
		if !p.Slot.HasSlot() {
			return Point{}, false
		}
		row, _ := vowel.ParseRow(p.Slot.Row)
		col, _ := vowel.ParseColumn(p.Slot.Col)
		return d.SlotPoint(vowel.Slot{Row: row, Col: col}, p.Slot.DX, p.Slot.DY), true
	}}
}

// LegacyStrategy uses a record's absolute coordinate verbatim.
func LegacyStrategy() Strategy {
	return Strategy{Name: StrategyLegacy, Resolve: func(p vowel.Phoneme) (Point, bool) {
		if p.Quad == nil {
			return Point{}, false
		}
		return Point{p.Quad.X, p.Quad.Y}, true
	}}
}

// Grid tile size in diagram units.
const (
	gridCellW = 44
	gridCellH = 56
)

// GridStrategy lays records out on a coarse tile grid. It always resolves;
// missing or zero indices count as 1.
func GridStrategy() Strategy {
	return Strategy{Name: StrategyGrid, Resolve: func(p vowel.Phoneme) (Point, bool) {
		c, r := 1, 1
		if p.Tile != nil {
			if p.Tile.C != 0 {
				c = p.Tile.C
			}
			if p.Tile.R != 0 {
				r = p.Tile.R
			}
		}
		return Point{float64(c) * gridCellW, float64(r) * gridCellH}, true
	}}
}

// Resolver maps phonemes to diagram points through an ordered strategy list.
type Resolver struct {
	diagram Diagram
	chart   []Strategy
	table   []Strategy
}

// NewResolver builds a resolver. A nil sheet disables sheet placement.
func NewResolver(d Diagram, sheet Sheet) *Resolver {
	table := []Strategy{
		TongueStrategy(d),
		SlotStrategy(d),
		LegacyStrategy(),
		GridStrategy(),
	}
	chart := table
	if len(sheet) > 0 {
		chart = append([]Strategy{SheetStrategy(d, sheet)}, table...)
	}
	return &Resolver{diagram: d, chart: chart, table: table}
}

// Diagram returns the geometry the resolver places points on.
func (r *Resolver) Diagram() Diagram {
	return r.diagram
}

// Strategies returns the rules applied for a view, in precedence order.
func (r *Resolver) Strategies(v View) []Strategy {
	if v == ViewChart {
		return r.chart
	}
	return r.table
}

// Resolve returns the phoneme's point for the given view.
func (r *Resolver) Resolve(p vowel.Phoneme, v View) Point {
	pt, _ := r.ResolveWith(p, v)
	return pt
}

// ResolveWith returns the point together with the name of the rule that
// produced it.
func (r *Resolver) ResolveWith(p vowel.Phoneme, v View) (Point, string) {
	for _, s := range r.Strategies(v) {
		if pt, ok := s.Resolve(p); ok {
			return pt, s.Name
		}
	}
	return Point{gridCellW, gridCellH}, StrategyGrid // unreachable: GridStrategy always resolves
}
