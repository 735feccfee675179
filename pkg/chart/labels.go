// Callout placement next to markers.
// Used for tooltips: a box is placed around an anchor where it covers the
// fewest other markers.

package chart

import "math"

// Rect represents an axis-aligned rectangle.
type Rect struct {
	X, Y float64 // Center
	W, H float64 // Full width and height
}

// Min returns the top-left corner.
func (r Rect) Min() Point {
	return Point{r.X - r.W/2, r.Y - r.H/2}
}

// RectOverlap returns the overlap area between two rectangles.
// Returns 0 if they don't overlap.
func RectOverlap(a, b Rect) float64 {
	overlapX := (a.W/2 + b.W/2) - math.Abs(a.X-b.X)
	overlapY := (a.H/2 + b.H/2) - math.Abs(a.Y-b.Y)
	if overlapX <= 0 || overlapY <= 0 {
		return 0
	}
	return overlapX * overlapY
}

// LabelPlacer manages callout placement with collision avoidance.
type LabelPlacer struct {
	obstacles []Rect
	bounds    *Rect
}

// NewLabelPlacer creates a placer whose initial obstacles are the markers,
// each a square of side 2*radius. Coordinates are those of the markers.
func NewLabelPlacer(markers []Point, radius float64) *LabelPlacer {
	obstacles := make([]Rect, len(markers))
	for i, m := range markers {
		obstacles[i] = Rect{m.X, m.Y, radius * 2, radius * 2}
	}
	return &LabelPlacer{obstacles: obstacles}
}

// Clip restricts placements to candidates fully inside bounds when any
// such candidate exists.
func (lp *LabelPlacer) Clip(bounds Rect) {
	lp.bounds = &bounds
}

func (lp *LabelPlacer) inside(r Rect) bool {
	if lp.bounds == nil {
		return true
	}
	b := *lp.bounds
	return r.X-r.W/2 >= b.X-b.W/2 && r.X+r.W/2 <= b.X+b.W/2 &&
		r.Y-r.H/2 >= b.Y-b.H/2 && r.Y+r.H/2 <= b.Y+b.H/2
}

// PlaceLabel finds the best position for a box near an anchor point and
// records it as a new obstacle. The anchor's own marker is not counted.
// Returns the center position for the box.
func (lp *LabelPlacer) PlaceLabel(anchor Point, labelW, labelH, gap float64) Point {
	candidates := []Point{
		{anchor.X + labelW/2 + gap, anchor.Y + labelH/2 + gap}, // bottom-right
		{anchor.X + labelW/2 + gap, anchor.Y - labelH/2 - gap}, // top-right
		{anchor.X - labelW/2 - gap, anchor.Y + labelH/2 + gap}, // bottom-left
		{anchor.X - labelW/2 - gap, anchor.Y - labelH/2 - gap}, // top-left
		{anchor.X, anchor.Y - labelH/2 - gap},                  // above
		{anchor.X, anchor.Y + labelH/2 + gap},                  // below
		{anchor.X + labelW/2 + gap, anchor.Y},                  // right
		{anchor.X - labelW/2 - gap, anchor.Y},                  // left
	}

	bestPos := candidates[0]
	bestOverlap := math.MaxFloat64
	bestInside := false

	for _, pos := range candidates {
		labelRect := Rect{pos.X, pos.Y, labelW, labelH}
		inside := lp.inside(labelRect)
		if bestInside && !inside {
			continue
		}

		totalOverlap := 0.0
		for _, obs := range lp.obstacles {
			if obs.X == anchor.X && obs.Y == anchor.Y {
				continue
			}
			totalOverlap += RectOverlap(labelRect, obs)
		}

		if totalOverlap == 0 && inside {
			lp.obstacles = append(lp.obstacles, labelRect)
			return pos
		}

		if (inside && !bestInside) || totalOverlap < bestOverlap {
			bestOverlap = totalOverlap
			bestPos = pos
			bestInside = inside
		}
	}

	lp.obstacles = append(lp.obstacles, Rect{bestPos.X, bestPos.Y, labelW, labelH})
	return bestPos
}
