// Geometric model of the vowel trapezoid.
// Rows are fractions along the slanted side edges, columns are fractions
// across the resulting horizontal cross-section.

package chart

import (
	"math"

	"github.com/ha1tch/vowelchart/pkg/vowel"
)

// Point represents a 2D coordinate in diagram units.
type Point struct {
	X, Y float64
}

// Add returns p translated by (dx, dy).
func (p Point) Add(dx, dy float64) Point {
	return Point{p.X + dx, p.Y + dy}
}

// Segment is a straight line between two points.
type Segment struct {
	A, B Point
}

// Lerp interpolates linearly between a and b. t is not clamped.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpPoint interpolates between two points. t is not clamped.
func LerpPoint(a, b Point, t float64) Point {
	return Point{Lerp(a.X, b.X, t), Lerp(a.Y, b.Y, t)}
}

// XAtY returns the x coordinate of the line through a and b at height y.
// A segment with (nearly) no vertical extent yields its midpoint x.
func XAtY(a, b Point, y float64) float64 {
	dy := b.Y - a.Y
	if math.Abs(dy) < 1e-9 {
		return (a.X + b.X) / 2
	}
	return Lerp(a.X, b.X, (y-a.Y)/dy)
}

// Quad holds the four corners of the trapezoid.
type Quad struct {
	TL, TR, BR, BL Point
}

// Divider is a slanted internal guide line given by its fractions across the
// top and bottom edges.
type Divider struct {
	Top, Bottom float64
}

// AxisLabel is a caption drawn around the trapezoid.
type AxisLabel struct {
	At   Point
	Text string
}

// Diagram is the trapezoid configuration. It is a value type; build it once
// with DefaultDiagram and share copies.
type Diagram struct {
	Width, Height float64
	Quad          Quad

	// Rows and Cols are indexed by vowel.Row and vowel.Column. The
	// unknown entry holds the centre fraction used for unrecognised names.
	Rows [vowel.RowOpen + 1]float64
	Cols [vowel.ColBack + 1]float64

	FrontCentral Divider
	CentralBack  Divider

	Axes []AxisLabel
}

// DefaultDiagram returns the standard 520x360 vowel chart.
func DefaultDiagram() Diagram {
	d := Diagram{
		Width:  520,
		Height: 360,
		Quad: Quad{
			TL: Point{90, 40},
			TR: Point{420, 40},
			BR: Point{360, 300},
			BL: Point{150, 300},
		},
		FrontCentral: Divider{Top: 0.33, Bottom: 0.62},
		CentralBack:  Divider{Top: 0.67, Bottom: 0.85},
		Axes: []AxisLabel{
			{Point{78, 30}, "High"},
			{Point{78, 130}, "Mid"},
			{Point{78, 312}, "Low"},
			{Point{155, 24}, "Front"},
			{Point{250, 24}, "Central"},
			{Point{350, 24}, "Back"},
		},
	}
	d.Rows = [...]float64{
		vowel.RowUnknown:  0.5,
		vowel.RowHigh:     0.08,
		vowel.RowNearHigh: 0.2,
		vowel.RowUpperMid: 0.35,
		vowel.RowMid:      0.5,
		vowel.RowLowerMid: 0.62,
		vowel.RowNearOpen: 0.76,
		vowel.RowOpen:     0.9,
	}
	d.Cols = [...]float64{
		vowel.ColumnUnknown:   0.5,
		vowel.ColFront:        0.12,
		vowel.ColFrontCentral: 0.3,
		vowel.ColCentral:      0.5,
		vowel.ColBackCentral:  0.68,
		vowel.ColBack:         0.86,
	}
	return d
}

// RowFraction returns the vertical fraction t of a row.
func (d Diagram) RowFraction(r vowel.Row) float64 {
	if r < 0 || int(r) >= len(d.Rows) {
		return d.Rows[vowel.RowUnknown]
	}
	return d.Rows[r]
}

// ColFraction returns the horizontal fraction u of a column.
func (d Diagram) ColFraction(c vowel.Column) float64 {
	if c < 0 || int(c) >= len(d.Cols) {
		return d.Cols[vowel.ColumnUnknown]
	}
	return d.Cols[c]
}

// PointOnEdges returns the points at fraction t along the left (TL to BL)
// and right (TR to BR) edges. Values outside [0,1] extrapolate.
func (d Diagram) PointOnEdges(t float64) (left, right Point) {
	left = LerpPoint(d.Quad.TL, d.Quad.BL, t)
	right = LerpPoint(d.Quad.TR, d.Quad.BR, t)
	return left, right
}

// PointAt samples the trapezoid: first along the slanted edges by t, then
// across the resulting cross-section by u.
func (d Diagram) PointAt(t, u float64) Point {
	left, right := d.PointOnEdges(t)
	return LerpPoint(left, right, u)
}

// PointAtOffset is PointAt translated by a pixel nudge.
func (d Diagram) PointAtOffset(t, u, dx, dy float64) Point {
	return d.PointAt(t, u).Add(dx, dy)
}

// SlotPoint places a parsed slot with a pixel nudge.
func (d Diagram) SlotPoint(s vowel.Slot, dx, dy float64) Point {
	return d.PointAtOffset(d.RowFraction(s.Row), d.ColFraction(s.Col), dx, dy)
}

// TopPoint returns the point at fraction u across the top edge.
func (d Diagram) TopPoint(u float64) Point {
	return LerpPoint(d.Quad.TL, d.Quad.TR, u)
}

// BottomPoint returns the point at fraction u across the bottom edge.
func (d Diagram) BottomPoint(u float64) Point {
	return LerpPoint(d.Quad.BL, d.Quad.BR, u)
}

// DividerSegment returns a divider as a segment from top edge to bottom edge.
func (d Diagram) DividerSegment(div Divider) Segment {
	return Segment{d.TopPoint(div.Top), d.BottomPoint(div.Bottom)}
}

// Outline returns the trapezoid corners in drawing order.
func (d Diagram) Outline() []Point {
	return []Point{d.Quad.TL, d.Quad.TR, d.Quad.BR, d.Quad.BL}
}

// GridLines returns one line per row across the trapezoid followed by one
// line per column from the top edge to the bottom edge.
func (d Diagram) GridLines() []Segment {
	lines := make([]Segment, 0, len(vowel.Rows())+len(vowel.Columns()))
	for _, r := range vowel.Rows() {
		left, right := d.PointOnEdges(d.RowFraction(r))
		lines = append(lines, Segment{left, right})
	}
	for _, c := range vowel.Columns() {
		u := d.ColFraction(c)
		lines = append(lines, Segment{d.TopPoint(u), d.BottomPoint(u)})
	}
	return lines
}

// GridDots returns the row/column intersections, row by row.
func (d Diagram) GridDots() []Point {
	dots := make([]Point, 0, len(vowel.Rows())*len(vowel.Columns()))
	for _, r := range vowel.Rows() {
		for _, c := range vowel.Columns() {
			dots = append(dots, d.PointAt(d.RowFraction(r), d.ColFraction(c)))
		}
	}
	return dots
}

// Bounds returns the axis-aligned bounding box of a set of points.
func Bounds(points []Point) (minX, minY, maxX, maxY float64) {
	if len(points) == 0 {
		return 0, 0, 0, 0
	}
	minX, minY = points[0].X, points[0].Y
	maxX, maxY = points[0].X, points[0].Y
	for _, p := range points[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return minX, minY, maxX, maxY
}
