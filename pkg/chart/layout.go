package chart

import (
	"math"

	"github.com/ha1tch/vowelchart/pkg/vowel"
)

// Marker is a placed phoneme: what a renderer draws at one point.
type Marker struct {
	Key      string  `json:"key"`
	Label    string  `json:"label"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Strategy string  `json:"strategy"`
	Gliding  bool    `json:"gliding,omitempty"`
}

// Point returns the marker position.
func (m Marker) Point() Point {
	return Point{m.X, m.Y}
}

// Layout places every phoneme for a view, in dataset order. The chart view
// leaves out gliding vowels, which are drawn as glides between markers
// instead; the table view keeps every record.
func (r *Resolver) Layout(ds *vowel.Dataset, v View) []Marker {
	markers := make([]Marker, 0, ds.Len())
	for _, p := range ds.Phonemes() {
		gliding := p.IsGliding()
		if v == ViewChart && gliding {
			continue
		}
		pt, strategy := r.ResolveWith(p, v)
		markers = append(markers, Marker{
			Key:      p.Key,
			Label:    p.Label(),
			X:        pt.X,
			Y:        pt.Y,
			Strategy: strategy,
			Gliding:  gliding,
		})
	}
	return markers
}

// MarkerIndex maps keys to positions in a marker slice. Later markers win.
func MarkerIndex(markers []Marker) map[string]int {
	idx := make(map[string]int, len(markers))
	for i, m := range markers {
		idx[m.Key] = i
	}
	return idx
}

// Glide returns the spline for a gliding phoneme drawn between the chart
// markers of its component vowels, or nil when fewer than two of them are
// on the chart.
func Glide(ds *vowel.Dataset, markers []Marker, key string, bow, inset float64) []Point {
	idx := MarkerIndex(markers)
	var waypoints []Point
	for _, k := range ds.GlideKeys(key) {
		if i, ok := idx[k]; ok {
			waypoints = append(waypoints, markers[i].Point())
		}
	}
	if len(waypoints) < 2 {
		return nil
	}
	return GlidePath(waypoints, bow, inset)
}

// Hit returns the marker nearest to p within radius.
func Hit(markers []Marker, p Point, radius float64) (Marker, bool) {
	best := -1
	bestDist := radius
	for i, m := range markers {
		if d := math.Hypot(m.X-p.X, m.Y-p.Y); d <= bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return Marker{}, false
	}
	return markers[best], true
}

// Viewport maps diagram units onto an output surface. Scales differ when
// the surface cells are not square (terminal cells are about twice as tall
// as they are wide).
type Viewport struct {
	ScaleX, ScaleY   float64
	OffsetX, OffsetY float64
}

// FitViewport scales the diagram to fit width x height surface units,
// preserving its aspect ratio, and centres it. cellAspect is the height of
// one surface unit relative to its width.
func FitViewport(d Diagram, width, height, cellAspect float64) Viewport {
	if cellAspect <= 0 {
		cellAspect = 1
	}
	if d.Width <= 0 || d.Height <= 0 || width <= 0 || height <= 0 {
		return Viewport{ScaleX: 1, ScaleY: 1 / cellAspect}
	}
	s := math.Min(width/d.Width, height*cellAspect/d.Height)
	vp := Viewport{ScaleX: s, ScaleY: s / cellAspect}
	vp.OffsetX = (width - d.Width*vp.ScaleX) / 2
	vp.OffsetY = (height - d.Height*vp.ScaleY) / 2
	return vp
}

// Apply maps a diagram point to surface coordinates.
func (v Viewport) Apply(p Point) Point {
	return Point{p.X*v.ScaleX + v.OffsetX, p.Y*v.ScaleY + v.OffsetY}
}

// Invert maps surface coordinates back to diagram units.
func (v Viewport) Invert(p Point) Point {
	if v.ScaleX == 0 || v.ScaleY == 0 {
		return p
	}
	return Point{(p.X - v.OffsetX) / v.ScaleX, (p.Y - v.OffsetY) / v.ScaleY}
}
