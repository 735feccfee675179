// Glide paths for diphthongs.
// A glide is drawn as a smooth cubic Bézier spline through the chart
// positions of its component vowels, in articulation order.

package chart

import "math"

// GlidePath builds a cubic spline [P0, C1, C2, P1, C3, C4, P2, ...] through
// the given waypoints. Two waypoints get a single arc bowed to the left of
// the direction of travel by bow units; more waypoints get a Catmull-Rom
// curve. Ends are pulled in by inset so the path stops at marker edges.
func GlidePath(waypoints []Point, bow, inset float64) []Point {
	if len(waypoints) < 2 {
		return nil
	}
	pts := make([]Point, len(waypoints))
	copy(pts, waypoints)
	pts[0] = moveToward(pts[0], pts[1], inset)
	pts[len(pts)-1] = moveToward(pts[len(pts)-1], pts[len(pts)-2], inset)

	if len(pts) == 2 {
		return bowedArc(pts[0], pts[1], bow)
	}
	return fitBezierToWaypoints(pts)
}

// bowedArc returns a single cubic segment from a to b whose control points
// sit at the thirds of the chord, pushed sideways by bow.
func bowedArc(a, b Point, bow float64) []Point {
	dx := b.X - a.X
	dy := b.Y - a.Y
	dist := math.Hypot(dx, dy)
	if dist < 1 {
		return []Point{a, a, b, b}
	}
	perpX := dy / dist * bow
	perpY := -dx / dist * bow
	return []Point{
		a,
		{a.X + dx/3 + perpX, a.Y + dy/3 + perpY},
		{a.X + 2*dx/3 + perpX, a.Y + 2*dy/3 + perpY},
		b,
	}
}

// moveToward moves p by dist toward q, never past the midpoint.
func moveToward(p, q Point, dist float64) Point {
	dx := q.X - p.X
	dy := q.Y - p.Y
	length := math.Hypot(dx, dy)
	if length < 1e-9 || dist <= 0 {
		return p
	}
	if dist > length/2 {
		dist = length / 2
	}
	return Point{p.X + dx/length*dist, p.Y + dy/length*dist}
}

// fitBezierToWaypoints creates a smooth curve through waypoints using
// Catmull-Rom to cubic Bézier conversion.
func fitBezierToWaypoints(waypoints []Point) []Point {
	if len(waypoints) <= 2 {
		return waypoints
	}

	result := []Point{waypoints[0]}

	for i := 0; i < len(waypoints)-1; i++ {
		p0 := waypoints[max(0, i-1)]
		p1 := waypoints[i]
		p2 := waypoints[min(len(waypoints)-1, i+1)]
		p3 := waypoints[min(len(waypoints)-1, i+2)]

		// The conversion uses 1/6 of the tangent vectors
		ctrl1 := Point{
			X: p1.X + (p2.X-p0.X)/6,
			Y: p1.Y + (p2.Y-p0.Y)/6,
		}
		ctrl2 := Point{
			X: p2.X - (p3.X-p1.X)/6,
			Y: p2.Y - (p3.Y-p1.Y)/6,
		}

		result = append(result, ctrl1, ctrl2, p2)
	}

	return result
}

// EvaluateSpline computes the point on a spline at parameter t ∈ [0,1].
func EvaluateSpline(spline []Point, t float64) Point {
	switch len(spline) {
	case 0:
		return Point{}
	case 1:
		return spline[0]
	}
	if len(spline) < 4 {
		idx := int(t * float64(len(spline)-1))
		if idx >= len(spline)-1 {
			return spline[len(spline)-1]
		}
		localT := t*float64(len(spline)-1) - float64(idx)
		return LerpPoint(spline[idx], spline[idx+1], localT)
	}

	p0, p1, p2, p3, localT := splineSegment(spline, t)

	mt := 1 - localT
	mt2 := mt * mt
	mt3 := mt2 * mt
	t2 := localT * localT
	t3 := t2 * localT

	return Point{
		X: mt3*p0.X + 3*mt2*localT*p1.X + 3*mt*t2*p2.X + t3*p3.X,
		Y: mt3*p0.Y + 3*mt2*localT*p1.Y + 3*mt*t2*p2.Y + t3*p3.Y,
	}
}

// EvaluateSplineTangent computes the tangent vector at parameter t.
func EvaluateSplineTangent(spline []Point, t float64) Point {
	if len(spline) < 4 {
		if len(spline) >= 2 {
			last := spline[len(spline)-1]
			return Point{last.X - spline[0].X, last.Y - spline[0].Y}
		}
		return Point{1, 0}
	}

	p0, p1, p2, p3, localT := splineSegment(spline, t)

	// Derivative of cubic Bézier
	mt := 1 - localT
	mt2 := mt * mt
	t2 := localT * localT

	return Point{
		X: 3*mt2*(p1.X-p0.X) + 6*mt*localT*(p2.X-p1.X) + 3*t2*(p3.X-p2.X),
		Y: 3*mt2*(p1.Y-p0.Y) + 6*mt*localT*(p2.Y-p1.Y) + 3*t2*(p3.Y-p2.Y),
	}
}

// splineSegment picks the cubic segment holding t and the local parameter.
func splineSegment(spline []Point, t float64) (p0, p1, p2, p3 Point, localT float64) {
	numSegments := max((len(spline)-1)/3, 1)
	segment := min(int(t*float64(numSegments)), numSegments-1)
	segment = max(segment, 0)
	localT = math.Max(0, math.Min(1, t*float64(numSegments)-float64(segment)))
	i := segment * 3
	return spline[i], spline[i+1], spline[i+2], spline[i+3], localT
}

// ArrowHead returns the two back corners of an arrowhead whose tip is the
// end of the spline.
func ArrowHead(spline []Point, size float64) (tip, left, right Point) {
	if len(spline) == 0 {
		return
	}
	tip = spline[len(spline)-1]
	tan := EvaluateSplineTangent(spline, 1)
	length := math.Hypot(tan.X, tan.Y)
	if length < 1e-9 {
		return tip, tip, tip
	}
	ux, uy := tan.X/length, tan.Y/length
	base := Point{tip.X - ux*size, tip.Y - uy*size}
	half := size * 0.5
	left = Point{base.X - uy*half, base.Y + ux*half}
	right = Point{base.X + uy*half, base.Y - ux*half}
	return tip, left, right
}

// SplineLength approximates the length of a spline by sampling.
func SplineLength(spline []Point) float64 {
	if len(spline) < 2 {
		return 0
	}

	length := 0.0
	numSamples := 100
	prev := EvaluateSpline(spline, 0)

	for i := 1; i <= numSamples; i++ {
		curr := EvaluateSpline(spline, float64(i)/float64(numSamples))
		length += math.Hypot(curr.X-prev.X, curr.Y-prev.Y)
		prev = curr
	}

	return length
}
