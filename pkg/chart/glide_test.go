package chart

import (
	"math"
	"testing"
)

func TestGlidePathTwoPoints(t *testing.T) {
	a := Point{0, 0}
	b := Point{100, 0}

	spline := GlidePath([]Point{a, b}, 10, 0)
	if len(spline) != 4 {
		t.Fatalf("Expected a single cubic segment, got %d points", len(spline))
	}
	if spline[0] != a || spline[3] != b {
		t.Errorf("Endpoints wrong: %v, %v", spline[0], spline[3])
	}

	// Travelling right, the bow pushes the control points to negative Y
	if spline[1].Y >= 0 || spline[2].Y >= 0 {
		t.Errorf("Control points should bow to -Y, got %v %v", spline[1], spline[2])
	}

	mid := EvaluateSpline(spline, 0.5)
	if math.Abs(mid.X-50) > 1e-9 {
		t.Errorf("Symmetric arc midpoint X expected 50, got %.2f", mid.X)
	}
	if math.Abs(mid.Y+7.5) > 1e-9 { // 3/4 of the control offset
		t.Errorf("Arc midpoint Y expected -7.5, got %.2f", mid.Y)
	}
}

func TestGlidePathInset(t *testing.T) {
	spline := GlidePath([]Point{{0, 0}, {100, 0}}, 0, 13)
	if math.Abs(spline[0].X-13) > 1e-9 {
		t.Errorf("Start should be pulled in to 13, got %.2f", spline[0].X)
	}
	if math.Abs(spline[3].X-87) > 1e-9 {
		t.Errorf("End should be pulled in to 87, got %.2f", spline[3].X)
	}

	// Inset never crosses the midpoint
	spline = GlidePath([]Point{{0, 0}, {10, 0}}, 0, 13)
	if spline[0].X > 5 || spline[3].X < 5 {
		t.Errorf("Inset crossed the midpoint: %v", spline)
	}
}

func TestGlidePathThroughWaypoints(t *testing.T) {
	pts := []Point{{0, 0}, {50, 50}, {100, 0}}
	spline := GlidePath(pts, 10, 0)
	if len(spline) != 7 {
		t.Fatalf("Expected 7 points for two segments, got %d", len(spline))
	}
	if spline[3] != pts[1] {
		t.Errorf("Spline should pass through the middle waypoint, got %v", spline[3])
	}
	if got := EvaluateSpline(spline, 0.5); got != pts[1] {
		t.Errorf("t=0.5 should hit the middle waypoint, got %v", got)
	}
}

func TestGlidePathDegenerate(t *testing.T) {
	if GlidePath(nil, 10, 0) != nil {
		t.Error("Expected nil for no waypoints")
	}
	if GlidePath([]Point{{1, 1}}, 10, 0) != nil {
		t.Error("Expected nil for a single waypoint")
	}
}

func TestEvaluateSplineEndpoints(t *testing.T) {
	spline := GlidePath([]Point{{10, 20}, {200, 120}}, 12, 0)
	if got := EvaluateSpline(spline, 0); got != spline[0] {
		t.Errorf("t=0 expected %v, got %v", spline[0], got)
	}
	end := EvaluateSpline(spline, 1)
	if math.Abs(end.X-200) > 1e-9 || math.Abs(end.Y-120) > 1e-9 {
		t.Errorf("t=1 expected (200,120), got %v", end)
	}
}

func TestArrowHead(t *testing.T) {
	spline := GlidePath([]Point{{0, 0}, {100, 0}}, 0, 0)
	tip, left, right := ArrowHead(spline, 10)
	if tip != (Point{100, 0}) {
		t.Errorf("Tip should be the spline end, got %v", tip)
	}
	if math.Abs(left.X-90) > 1e-9 || math.Abs(right.X-90) > 1e-9 {
		t.Errorf("Arrowhead base should be 10 behind the tip, got %v %v", left, right)
	}
	if math.Abs(left.Y-right.Y) < 9 {
		t.Errorf("Arrowhead wings should spread, got %v %v", left, right)
	}
}

func TestSplineLength(t *testing.T) {
	straight := GlidePath([]Point{{0, 0}, {100, 0}}, 0, 0)
	if l := SplineLength(straight); math.Abs(l-100) > 0.5 {
		t.Errorf("Straight glide length expected ~100, got %.2f", l)
	}
	bowed := GlidePath([]Point{{0, 0}, {100, 0}}, 20, 0)
	if SplineLength(bowed) <= SplineLength(straight) {
		t.Error("A bowed glide should be longer than a straight one")
	}
	if SplineLength(nil) != 0 {
		t.Error("Empty spline should have zero length")
	}
}
