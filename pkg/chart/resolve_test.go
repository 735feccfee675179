package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ha1tch/vowelchart/pkg/vowel"
)

func TestResolverPrecedence(t *testing.T) {
	d := DefaultDiagram()
	r := NewResolver(d, nil)

	tests := []struct {
		name     string
		p        vowel.Phoneme
		strategy string
		want     Point
	}{
		{
			name:     "tongue with nudge from slot",
			p:        vowel.Phoneme{Key: "ɪ", Tongue: "high-front", Slot: &vowel.SlotSpec{Row: "nearHigh", Col: "frontCentral", DX: 6, DY: -2}},
			strategy: StrategyTongue,
			want:     d.PointAtOffset(0.08, 0.12, 6, -2),
		},
		{
			name:     "rhotic glide uses base descriptor",
			p:        vowel.Phoneme{Key: "ɑr", Tongue: "Low-Back+r -> Mid-Central+r"},
			strategy: StrategyTongue,
			want:     d.PointAt(0.76, 0.68),
		},
		{
			name:     "unknown label falls through to slot",
			p:        vowel.Phoneme{Key: "ɨ", Tongue: "retroflex", Slot: &vowel.SlotSpec{Row: "high", Col: "central"}},
			strategy: StrategySlot,
			want:     d.PointAt(0.08, 0.5),
		},
		{
			name:     "slot wins over legacy point",
			p:        vowel.Phoneme{Key: "e", Slot: &vowel.SlotSpec{Row: "upperMid", Col: "front", DX: 1}, Quad: &vowel.Quad{X: 1, Y: 2}},
			strategy: StrategySlot,
			want:     d.PointAtOffset(0.35, 0.12, 1, 0),
		},
		{
			name:     "slot with unknown names sits at the centre",
			p:        vowel.Phoneme{Key: "?", Slot: &vowel.SlotSpec{Row: "middling", Col: "sideways"}},
			strategy: StrategySlot,
			want:     d.PointAt(0.5, 0.5),
		},
		{
			name:     "half a slot is not a slot",
			p:        vowel.Phoneme{Key: "o", Slot: &vowel.SlotSpec{Row: "mid"}, Quad: &vowel.Quad{X: 300, Y: 150}},
			strategy: StrategyLegacy,
			want:     Point{300, 150},
		},
		{
			name:     "grid with tile",
			p:        vowel.Phoneme{Key: "x", Tile: &vowel.Tile{C: 3, R: 0}},
			strategy: StrategyGrid,
			want:     Point{132, 56},
		},
		{
			name:     "grid without anything",
			p:        vowel.Phoneme{Key: "y"},
			strategy: StrategyGrid,
			want:     Point{44, 56},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, v := range []View{ViewChart, ViewTable} {
				got, strategy := r.ResolveWith(tt.p, v)
				assert.Equal(t, tt.strategy, strategy)
				assert.Equal(t, tt.want, got)
				assert.Equal(t, got, r.Resolve(tt.p, v))
			}
		})
	}
}

func TestStrategiesInIsolation(t *testing.T) {
	d := DefaultDiagram()
	empty := vowel.Phoneme{Key: "empty"}

	for _, s := range []Strategy{SheetStrategy(d, DefaultSheet()), TongueStrategy(d), SlotStrategy(d), LegacyStrategy()} {
		_, ok := s.Resolve(empty)
		assert.False(t, ok, s.Name)
	}
	_, ok := GridStrategy().Resolve(empty)
	assert.True(t, ok)

	_, ok = TongueStrategy(d).Resolve(vowel.Phoneme{Tongue: "→"})
	assert.False(t, ok)
	_, ok = LegacyStrategy().Resolve(vowel.Phoneme{Quad: &vowel.Quad{}})
	assert.True(t, ok, "a zero point is still a point")
}

func TestSheetOnlyAppliesToChartView(t *testing.T) {
	d := DefaultDiagram()
	r := NewResolver(d, DefaultSheet())
	p := vowel.Phoneme{Key: "i", Tongue: "high-front"}

	chartPt, strategy := r.ResolveWith(p, ViewChart)
	assert.Equal(t, StrategySheet, strategy)
	want, ok := d.SheetPoint(DefaultSheet()["i"])
	require.True(t, ok)
	assert.Equal(t, want, chartPt)

	tablePt, strategy := r.ResolveWith(p, ViewTable)
	assert.Equal(t, StrategyTongue, strategy)
	assert.Equal(t, d.PointAt(0.08, 0.12), tablePt)

	assert.Len(t, r.Strategies(ViewChart), 5)
	assert.Len(t, r.Strategies(ViewTable), 4)
	assert.Equal(t, StrategySheet, r.Strategies(ViewChart)[0].Name)
}

func TestParseView(t *testing.T) {
	assert.Equal(t, ViewTable, ParseView("table"))
	assert.Equal(t, ViewChart, ParseView("chart"))
	assert.Equal(t, ViewChart, ParseView(""))
	assert.Equal(t, "table", ViewTable.String())
}

func TestLayout(t *testing.T) {
	ds := vowel.NewDataset([]vowel.Phoneme{
		{Key: "ɪ", IPA: "ɪ", Tongue: "high-front"},
		{Key: "ɑ", IPA: "ɑ", Tongue: "low-central"},
		{Key: "aɪ", IPA: "aɪ", Tongue: "low-central→high-front"},
		{Key: "x", Display: "X"},
	})
	r := NewResolver(DefaultDiagram(), nil)

	chart := r.Layout(ds, ViewChart)
	require.Len(t, chart, 3, "glides are not chart markers")
	assert.Equal(t, "ɪ", chart[0].Key)
	assert.Equal(t, "X", chart[2].Label)
	assert.Equal(t, StrategyGrid, chart[2].Strategy)

	table := r.Layout(ds, ViewTable)
	require.Len(t, table, 4)
	assert.True(t, table[2].Gliding)
	assert.Equal(t, StrategyTongue, table[2].Strategy)
}

func TestGlide(t *testing.T) {
	ds := vowel.NewDataset([]vowel.Phoneme{
		{Key: "ɪ", Tongue: "high-front"},
		{Key: "ɑ", Tongue: "low-central"},
		{Key: "aɪ", Tongue: "low-central→high-front"},
		{Key: "ɪɪ", Tongue: "high-front→high-front"},
	})
	r := NewResolver(DefaultDiagram(), nil)
	markers := r.Layout(ds, ViewChart)

	spline := Glide(ds, markers, "aɪ", 10, 0)
	require.Len(t, spline, 4)
	idx := MarkerIndex(markers)
	assert.Equal(t, markers[idx["ɑ"]].Point(), spline[0])
	assert.Equal(t, markers[idx["ɪ"]].Point(), spline[3])

	assert.Nil(t, Glide(ds, markers, "ɪɪ", 10, 0), "a glide needs two distinct vowels")
	assert.Nil(t, Glide(ds, markers, "ɪ", 10, 0))
}

func TestHit(t *testing.T) {
	markers := []Marker{{Key: "a", X: 10, Y: 10}, {Key: "b", X: 30, Y: 10}}
	m, ok := Hit(markers, Point{27, 11}, 11)
	require.True(t, ok)
	assert.Equal(t, "b", m.Key)

	_, ok = Hit(markers, Point{20, 40}, 11)
	assert.False(t, ok)
}

func TestViewport(t *testing.T) {
	d := DefaultDiagram()

	vp := FitViewport(d, 1040, 720, 1)
	assert.Equal(t, 2.0, vp.ScaleX)
	assert.Equal(t, 2.0, vp.ScaleY)
	assert.Equal(t, Point{0, 0}, vp.Apply(Point{0, 0}))

	// Terminal cells are twice as tall as wide.
	vp = FitViewport(d, 104, 36, 2)
	assert.InDelta(t, 0.2, vp.ScaleX, eps)
	assert.InDelta(t, 0.1, vp.ScaleY, eps)

	p := Point{255, 170}
	back := vp.Invert(vp.Apply(p))
	assert.InDelta(t, p.X, back.X, 1e-9)
	assert.InDelta(t, p.Y, back.Y, 1e-9)

	// Wide surfaces centre the diagram horizontally.
	vp = FitViewport(d, 2000, 360, 1)
	assert.Equal(t, 1.0, vp.ScaleX)
	assert.Equal(t, 740.0, vp.OffsetX)
	assert.Equal(t, 0.0, vp.OffsetY)
}
