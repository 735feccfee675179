package main

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ha1tch/vowelchart/internal/app"
	"github.com/ha1tch/vowelchart/pkg/chart"
)

func newTestViewer(t *testing.T, w, h int) (*Viewer, tcell.SimulationScreen) {
	t.Helper()
	ds, r, err := app.LoadChart("", "")
	require.NoError(t, err)

	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	t.Cleanup(s.Fini)
	s.SetSize(w, h)

	v := NewViewer(ds, r, slog.New(slog.NewTextHandler(io.Discard, nil)))
	v.screen = s
	v.layout()
	return v, s
}

func screenRow(s tcell.SimulationScreen, y int) string {
	w, _ := s.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func screenText(s tcell.SimulationScreen) string {
	_, h := s.Size()
	rows := make([]string, h)
	for y := range rows {
		rows[y] = screenRow(s, y)
	}
	return strings.Join(rows, "\n")
}

func TestLayoutFollowsScreenSize(t *testing.T) {
	v, s := newTestViewer(t, 120, 40)
	assert.Equal(t, 84, v.canvasW)
	assert.Equal(t, 38, v.canvasH)
	before := v.vp

	s.SetSize(160, 50)
	v.layout()
	assert.Equal(t, 124, v.canvasW)
	assert.Greater(t, v.vp.ScaleX, before.ScaleX, "coordinates are recomputed on resize")

	s.SetSize(30, 10)
	v.layout()
	assert.Equal(t, 15, v.sidebarWidth)
	assert.GreaterOrEqual(t, v.tableHeight, 1)

	s.SetSize(120, 40)
	v.layout()
	assert.Equal(t, sidebarDefault, v.sidebarWidth, "the sidebar grows back")
}

func TestHoverMarker(t *testing.T) {
	v, _ := newTestViewer(t, 120, 40)

	for _, m := range v.markers {
		x, y := v.cell(m.Point())
		key := v.keyAt(x, y)
		require.NotEmpty(t, key, "marker %s at %d,%d", m.Key, x, y)

		v.handleMouse(tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone))
		assert.Equal(t, key, v.view.Hovered())
	}

	v.handleMouse(tcell.NewEventMouse(0, 0, tcell.ButtonNone, tcell.ModNone))
	assert.Empty(t, v.view.Hovered(), "empty canvas clears the hover")
}

func TestClickSelects(t *testing.T) {
	v, _ := newTestViewer(t, 120, 40)

	row := v.tableTop + 2
	v.handleMouse(tcell.NewEventMouse(v.canvasW+4, row, tcell.Button1, tcell.ModNone))
	assert.Equal(t, v.rows[2].Key, v.view.Selected())
	assert.Equal(t, v.rows[2].Key, v.view.Hovered())
	v.handleMouse(tcell.NewEventMouse(v.canvasW+4, row, tcell.ButtonNone, tcell.ModNone))

	m := v.markers[0]
	x, y := v.cell(m.Point())
	v.handleMouse(tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone))
	assert.Equal(t, v.keyAt(x, y), v.view.Selected())
	assert.Equal(t, "Audio disabled", v.message, "chart clicks play the vowel")
}

func TestKeyboardNavigation(t *testing.T) {
	v, _ := newTestViewer(t, 120, 40)
	key := func(k tcell.Key, r rune) bool {
		return v.handleKey(tcell.NewEventKey(k, r, tcell.ModNone))
	}

	key(tcell.KeyDown, 0)
	assert.Equal(t, v.rows[0].Key, v.view.Selected(), "nothing selected starts at the top")
	key(tcell.KeyRune, 'j')
	assert.Equal(t, v.rows[1].Key, v.view.Selected())
	key(tcell.KeyEnd, 0)
	assert.Equal(t, v.rows[len(v.rows)-1].Key, v.view.Selected())
	assert.Equal(t, len(v.rows)-v.tableHeight, v.tableScroll, "selection scrolls into view")
	key(tcell.KeyHome, 0)
	assert.Equal(t, 0, v.tableScroll)

	key(tcell.KeyRune, 'l')
	assert.False(t, v.showLabels)
	key(tcell.KeyRune, 'g')
	assert.False(t, v.showGrid)

	assert.False(t, key(tcell.KeyEscape, 0), "first Esc clears the selection")
	assert.Empty(t, v.view.Selected())
	assert.True(t, key(tcell.KeyEscape, 0))
	assert.True(t, key(tcell.KeyRune, 'q'))
}

func TestSearchMode(t *testing.T) {
	v, _ := newTestViewer(t, 120, 40)
	typeText := func(s string) {
		for _, r := range s {
			v.handleKey(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
		}
	}

	typeText("/")
	require.Equal(t, ModeSearch, v.mode)
	typeText("boyx")
	v.handleKey(tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone))
	assert.Equal(t, "boy", v.inputBuffer)
	assert.False(t, v.handleKey(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)), "q is text while searching")
	v.handleKey(tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone))
	v.handleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))

	assert.Equal(t, ModeChart, v.mode)
	assert.Equal(t, "ɔɪ", v.view.Selected())
	assert.Equal(t, MsgSuccess, v.messageType)

	typeText("/zebra")
	v.handleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	assert.Equal(t, "ɔɪ", v.view.Selected())
	assert.Equal(t, MsgError, v.messageType)
}

func TestDrawShowsSelection(t *testing.T) {
	v, s := newTestViewer(t, 120, 40)
	v.selectKey("aɪ")
	v.view.SetHover("ɪ")
	v.draw()
	s.Show()

	text := screenText(s)
	assert.Contains(t, text, "Vowels: 24")
	assert.Contains(t, text, "/aɪ/")
	assert.Contains(t, text, "Links:  ɑ → ɪ")
	assert.Contains(t, text, "1 ▶ my")
	assert.Contains(t, text, "/ɪ/ sit, bit, kit", "hover tooltip")

	i := v.rowIndex("aɪ")
	_, _, style, _ := s.GetContent(v.canvasW+2, v.tableTop+i-v.tableScroll)
	assert.Equal(t, styleRowSel, style)

	_, _, style, _ = s.GetContent(v.cell(v.markers[chart.MarkerIndex(v.markers)["ɑ"]].Point()))
	assert.Equal(t, styleMarkerSel, style, "linked vowels share the selected style")
}

func TestHelpOverlay(t *testing.T) {
	v, s := newTestViewer(t, 120, 40)
	v.handleKey(tcell.NewEventKey(tcell.KeyRune, '?', tcell.ModNone))
	v.draw()
	s.Show()
	assert.Contains(t, screenText(s), "play an example word")

	assert.False(t, v.handleKey(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)), "any key closes help")
	assert.Equal(t, ModeChart, v.mode)
}
