package chart

import (
	"strings"

	"github.com/ha1tch/vowelchart/pkg/vowel"
)

// Highlights reports the current interaction state to renderers.
type Highlights interface {
	Hovered() string
	Selected() string
	// Classes reports whether key should be drawn hovered and/or selected,
	// either directly or through a diphthong link.
	Classes(key string) (hover, selected bool)
}

// MarkerState is the highlight class of one marker.
type MarkerState struct {
	Hover    bool
	Selected bool
}

// GlideLine is a drawn diphthong path.
type GlideLine struct {
	Key      string
	Points   []Point
	Selected bool
}

// Glide drawing parameters in diagram units.
const (
	MarkerRadius = 11.0
	glideBow     = 14.0
	glideInset   = MarkerRadius + 2
)

// Scene is everything a static renderer needs for one frame.
type Scene struct {
	Diagram Diagram
	Markers []Marker
	States  map[string]MarkerState
	Tips    map[string]string
	Glides  []GlideLine
}

// BuildScene lays out the chart view and applies the highlight state. A nil
// h draws nothing highlighted.
func BuildScene(r *Resolver, ds *vowel.Dataset, h Highlights) Scene {
	s := Scene{
		Diagram: r.Diagram(),
		Markers: r.Layout(ds, ViewChart),
		States:  make(map[string]MarkerState),
		Tips:    make(map[string]string),
	}
	for _, m := range s.Markers {
		if p, ok := ds.Get(m.Key); ok {
			s.Tips[m.Key] = Tooltip(p)
		}
	}
	if h == nil {
		return s
	}
	for _, m := range s.Markers {
		hover, selected := h.Classes(m.Key)
		if hover || selected {
			s.States[m.Key] = MarkerState{Hover: hover, Selected: selected}
		}
	}
	for _, k := range []string{h.Selected(), h.Hovered()} {
		if k == "" || (len(s.Glides) > 0 && s.Glides[0].Key == k) {
			continue
		}
		if pts := Glide(ds, s.Markers, k, glideBow, glideInset); pts != nil {
			s.Glides = append(s.Glides, GlideLine{Key: k, Points: pts, Selected: k == h.Selected()})
		}
	}
	return s
}

// Tooltip is the hover text for a phoneme: its symbol between slashes and
// up to three example words.
func Tooltip(p vowel.Phoneme) string {
	tip := "/" + p.IPA + "/"
	ex := p.Examples
	if len(ex) > 3 {
		ex = ex[:3]
	}
	if len(ex) > 0 {
		tip += " " + strings.Join(ex, ", ")
	}
	return tip
}
