package chart

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ha1tch/vowelchart/pkg/vowel"
)

const eps = 1e-9

func TestPointOnEdgesEndpoints(t *testing.T) {
	d := DefaultDiagram()

	left, right := d.PointOnEdges(0)
	assert.Equal(t, d.Quad.TL, left)
	assert.Equal(t, d.Quad.TR, right)

	left, right = d.PointOnEdges(1)
	assert.Equal(t, d.Quad.BL, left)
	assert.Equal(t, d.Quad.BR, right)

	left, right = d.PointOnEdges(0.5)
	assert.InDelta(t, 120, left.X, eps)
	assert.InDelta(t, 170, left.Y, eps)
	assert.InDelta(t, 390, right.X, eps)
	assert.InDelta(t, 170, right.Y, eps)
}

func TestPointOnEdgesExtrapolates(t *testing.T) {
	d := DefaultDiagram()
	left, right := d.PointOnEdges(-0.1)
	assert.InDelta(t, 84, left.X, eps)
	assert.InDelta(t, 14, left.Y, eps)
	assert.InDelta(t, 426, right.X, eps)

	left, _ = d.PointOnEdges(1.1)
	assert.InDelta(t, 156, left.X, eps)
	assert.InDelta(t, 326, left.Y, eps)
}

func TestPointAtLiesOnCrossSection(t *testing.T) {
	d := DefaultDiagram()
	for _, tt := range []float64{0, 0.08, 0.25, 0.5, 0.76, 1} {
		left, right := d.PointOnEdges(tt)
		assert.Equal(t, left, d.PointAt(tt, 0))
		end := d.PointAt(tt, 1)
		assert.InDelta(t, right.X, end.X, eps)
		assert.InDelta(t, right.Y, end.Y, eps)

		for _, u := range []float64{0.12, 0.3, 0.5, 0.86} {
			p := d.PointAt(tt, u)
			// Collinear with the cross-section: zero cross product.
			cross := (right.X-left.X)*(p.Y-left.Y) - (right.Y-left.Y)*(p.X-left.X)
			assert.InDelta(t, 0, cross, 1e-6)
			assert.InDelta(t, u*math.Hypot(right.X-left.X, right.Y-left.Y),
				math.Hypot(p.X-left.X, p.Y-left.Y), 1e-6)
		}
	}
}

func TestPointAtDeterministic(t *testing.T) {
	d := DefaultDiagram()
	a := d.PointAt(0.35, 0.68)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a, d.PointAt(0.35, 0.68))
	}
	assert.Equal(t, a, DefaultDiagram().PointAt(0.35, 0.68))
}

func TestPointAtAffineInU(t *testing.T) {
	d := DefaultDiagram()
	p0 := d.PointAt(0.2, 0.2)
	p1 := d.PointAt(0.2, 0.4)
	p2 := d.PointAt(0.2, 0.6)
	assert.InDelta(t, p1.X-p0.X, p2.X-p1.X, 1e-9)
	assert.InDelta(t, p1.Y-p0.Y, p2.Y-p1.Y, 1e-9)
}

func TestPointAtOffset(t *testing.T) {
	d := DefaultDiagram()
	base := d.PointAt(0.5, 0.5)
	got := d.PointAtOffset(0.5, 0.5, 3, -4)
	assert.Equal(t, Point{base.X + 3, base.Y - 4}, got)
	assert.Equal(t, Point{255, 170}, base)
}

func TestSlotPoint(t *testing.T) {
	d := DefaultDiagram()
	got := d.SlotPoint(vowel.Slot{Row: vowel.RowHigh, Col: vowel.ColFront}, 0, 0)
	want := d.PointAt(0.08, 0.12)
	assert.Equal(t, want, got)

	// Unknown row and column sit at the centre of the trapezoid.
	assert.Equal(t, d.PointAt(0.5, 0.5), d.SlotPoint(vowel.Slot{}, 0, 0))
	assert.Equal(t, 0.5, d.RowFraction(vowel.Row(42)))
	assert.Equal(t, 0.5, d.ColFraction(vowel.Column(-1)))
}

func TestXAtY(t *testing.T) {
	a := Point{0, 0}
	b := Point{10, 20}
	assert.InDelta(t, 5, XAtY(a, b, 10), eps)
	assert.InDelta(t, 15, XAtY(a, b, 30), eps, "extrapolates past the segment")
	assert.InDelta(t, 5, XAtY(b, a, 10), eps)

	// Horizontal segments return their midpoint instead of dividing by zero.
	assert.Equal(t, 50.0, XAtY(Point{0, 7}, Point{100, 7}, 123))
	assert.Equal(t, 50.0, XAtY(Point{0, 7}, Point{100, 7 + 1e-12}, 0))
}

func TestGridLinesAndDots(t *testing.T) {
	d := DefaultDiagram()
	lines := d.GridLines()
	require.Len(t, lines, 7+5)

	// Row lines run between the side edges at the row fraction.
	left, right := d.PointOnEdges(0.2)
	assert.Equal(t, Segment{left, right}, lines[1])

	// Column lines run from top edge to bottom edge.
	assert.Equal(t, Segment{d.TopPoint(0.86), d.BottomPoint(0.86)}, lines[len(lines)-1])

	dots := d.GridDots()
	require.Len(t, dots, 35)
	assert.Equal(t, d.PointAt(0.08, 0.12), dots[0])
	assert.Equal(t, d.PointAt(0.9, 0.86), dots[34])
}

func TestBounds(t *testing.T) {
	minX, minY, maxX, maxY := Bounds(DefaultDiagram().Outline())
	assert.Equal(t, []float64{90, 40, 420, 300}, []float64{minX, minY, maxX, maxY})

	minX, minY, maxX, maxY = Bounds(nil)
	assert.Equal(t, []float64{0, 0, 0, 0}, []float64{minX, minY, maxX, maxY})
}
