package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/ha1tch/vowelchart/pkg/chart"
	"github.com/ha1tch/vowelchart/pkg/vowel"
)

// Styles
var (
	styleDefault    = tcell.StyleDefault
	styleTitle      = tcell.StyleDefault.Bold(true).Foreground(tcell.ColorWhite)
	styleOutline    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleGrid       = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	styleAxis       = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleMarker     = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleMarkerHov  = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorTeal)
	styleMarkerSel  = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow).Bold(true)
	styleGlide      = tcell.StyleDefault.Foreground(tcell.ColorTeal)
	styleGlideSel   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleTooltip    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkSlateGray)
	styleSidebar    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleSidebarH   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleRowSel     = tcell.StyleDefault.Background(tcell.ColorBlue).Foreground(tcell.ColorWhite)
	styleRowHov     = tcell.StyleDefault.Background(tcell.ColorDarkSlateGray).Foreground(tcell.ColorWhite)
	styleStatus     = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	styleMsgInfo    = tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorNavy)
	styleMsgError   = tcell.StyleDefault.Foreground(tcell.ColorRed).Background(tcell.ColorNavy).Bold(true)
	styleMsgSuccess = tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorNavy)
	styleHelp       = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleInput      = tcell.StyleDefault.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite)
	styleBorder     = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

func (v *Viewer) draw() {
	v.screen.Clear()
	w, h := v.screen.Size()

	scene := chart.BuildScene(v.resolver, v.ds, v.view)
	v.drawCanvas(scene)
	v.drawSidebar(w)

	switch v.mode {
	case ModeSearch:
		v.drawInputBox(w, h)
	case ModeHelp:
		v.drawHelp(w, h)
	}

	v.drawStatusBar(w, h)
}

// cell maps a diagram point to the screen cell containing it.
func (v *Viewer) cell(p chart.Point) (int, int) {
	q := v.vp.Apply(p)
	return int(math.Floor(q.X)), int(math.Floor(q.Y))
}

func (v *Viewer) inCanvas(x, y int) bool {
	return x >= 0 && x < v.canvasW && y >= 0 && y < v.canvasH
}

func (v *Viewer) plot(x, y int, r rune, style tcell.Style) {
	if v.inCanvas(x, y) {
		v.screen.SetContent(x, y, r, nil, style)
	}
}

// drawSegment plots a straight line between two diagram points.
func (v *Viewer) drawSegment(a, b chart.Point, r rune, style tcell.Style) {
	x0, y0 := v.cell(a)
	x1, y1 := v.cell(b)
	steps := max(abs(x1-x0), abs(y1-y0), 1)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		v.plot(x0+int(math.Round(float64(x1-x0)*t)), y0+int(math.Round(float64(y1-y0)*t)), r, style)
	}
}

func (v *Viewer) drawCanvas(scene chart.Scene) {
	d := scene.Diagram

	for y := 0; y < v.canvasH; y++ {
		v.screen.SetContent(v.canvasW, y, '│', nil, styleBorder)
	}

	if v.showGrid {
		for _, p := range d.GridDots() {
			x, y := v.cell(p)
			v.plot(x, y, '·', styleGrid)
		}
		for _, div := range []chart.Divider{d.FrontCentral, d.CentralBack} {
			seg := d.DividerSegment(div)
			v.drawSegment(seg.A, seg.B, '┊', styleGrid)
		}
	}

	outline := d.Outline()
	for i := range outline {
		v.drawSegment(outline[i], outline[(i+1)%len(outline)], '•', styleOutline)
	}

	if v.showLabels {
		for _, a := range d.Axes {
			x, y := v.cell(a.At)
			v.drawClipped(x-runewidth.StringWidth(a.Text)/2, y, a.Text, styleAxis)
		}
	}

	// Glides under markers
	for _, g := range scene.Glides {
		style := styleGlide
		if g.Selected {
			style = styleGlideSel
		}
		n := int(chart.SplineLength(g.Points)*v.vp.ScaleX) + 2
		for i := 0; i <= n; i++ {
			x, y := v.cell(chart.EvaluateSpline(g.Points, float64(i)/float64(n)))
			v.plot(x, y, '∙', style)
		}
		tip, _, _ := chart.ArrowHead(g.Points, 1)
		x, y := v.cell(tip)
		v.plot(x, y, '◆', style)
	}

	for _, m := range scene.Markers {
		style := styleMarker
		st := scene.States[m.Key]
		if st.Hover {
			style = styleMarkerHov
		}
		if st.Selected {
			style = styleMarkerSel
		}
		x, y := v.cell(m.Point())
		text := "●"
		if v.showLabels {
			if p, ok := v.ds.Get(m.Key); ok {
				text = p.Label()
			}
		}
		v.drawClipped(x-runewidth.StringWidth(text)/2, y, text, style)
	}

	if tip, ok := scene.Tips[v.view.Hovered()]; ok {
		v.drawTooltip(scene, v.view.Hovered(), tip)
	}
}

// drawTooltip places the hovered marker's tip where it overlaps the fewest
// markers and stays on the canvas.
func (v *Viewer) drawTooltip(scene chart.Scene, key, tip string) {
	points := make([]chart.Point, 0, len(scene.Markers))
	var anchor chart.Point
	for _, m := range scene.Markers {
		x, y := v.cell(m.Point())
		p := chart.Point{X: float64(x), Y: float64(y)}
		if m.Key == key {
			anchor = p
		}
		points = append(points, p)
	}

	text := " " + tip + " "
	tw := float64(runewidth.StringWidth(text))
	placer := chart.NewLabelPlacer(points, 1)
	placer.Clip(chart.Rect{X: float64(v.canvasW) / 2, Y: float64(v.canvasH) / 2, W: float64(v.canvasW), H: float64(v.canvasH)})
	c := placer.PlaceLabel(anchor, tw, 1, 1)
	v.drawClipped(int(math.Round(c.X-tw/2)), int(math.Round(c.Y)), text, styleTooltip)
}

func (v *Viewer) drawSidebar(w int) {
	x := v.canvasW + 2
	width := w - x - 1
	if width < 4 {
		return
	}
	y := 0

	title := fmt.Sprintf("Vowels: %d", len(v.rows))
	v.drawString(x, y, truncate(title, width), styleTitle)
	y = v.tableTop - 1
	v.drawString(x, y, truncate(fmt.Sprintf("%-5s %-8s %s", "IPA", "TYPE", "EXAMPLES"), width), styleSidebarH)

	for row := 0; row < v.tableHeight; row++ {
		i := v.tableScroll + row
		if i >= len(v.rows) {
			break
		}
		p := v.rows[i]
		style := styleSidebar
		if v.view.Hovered() == p.Key {
			style = styleRowHov
		}
		if v.view.RowSelected(p.Key) {
			style = styleRowSel
		}
		line := fmt.Sprintf("%-5s %-8s %s", p.Label(), truncate(rowType(p), 8), strings.Join(p.Examples, ", "))
		v.drawString(x, v.tableTop+row, padRight(truncate(line, width), width), style)
	}
	if v.tableScroll+v.tableHeight < len(v.rows) {
		v.drawString(x+width-1, v.tableTop+v.tableHeight-1, "↓", styleHelp)
	}

	v.drawDetails(x, v.tableTop+v.tableHeight+1, width)
}

func rowType(p vowel.Phoneme) string {
	if p.IsGliding() {
		return "glide"
	}
	return p.TypeDisplay()
}

// drawDetails shows the selected phoneme's card below the table.
func (v *Viewer) drawDetails(x, y, width int) {
	if y >= v.canvasH {
		return
	}
	p, ok := v.ds.Get(v.view.Selected())
	if !ok {
		v.drawString(x, y, truncate("Select a vowel to see details.", width), styleHelp)
		return
	}

	lines := []string{
		fmt.Sprintf("/%s/", p.IPA),
		"Type:   " + p.TypeDisplay(),
		"Tongue: " + orDash(p.Tongue),
		"Lips:   " + orDash(p.Lips),
		"Length: " + orDash(p.Length),
		fmt.Sprintf("Rhotic: %v", p.Rhotic),
	}
	if related := v.ds.RelatedKeys(p.Key); len(related) > 0 {
		lines = append(lines, "Links:  "+strings.Join(related, " "+vowel.GlideArrow+" "))
	}
	for i, ex := range p.Examples {
		if i >= 9 {
			break
		}
		lines = append(lines, fmt.Sprintf("  %d ▶ %s", i+1, ex))
	}

	for i, line := range lines {
		if y+i >= v.canvasH {
			return
		}
		style := styleSidebar
		if i == 0 {
			style = styleSidebarH
		}
		v.drawString(x, y+i, truncate(line, width), style)
	}
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

func (v *Viewer) drawStatusBar(w, h int) {
	y := h - 1

	for x := 0; x < w; x++ {
		v.screen.SetContent(x, y, ' ', nil, styleStatus)
	}

	info := "no selection"
	if p, ok := v.ds.Get(v.view.Selected()); ok {
		info = "/" + p.IPA + "/"
		if hov, ok := v.ds.Get(v.view.Hovered()); ok && hov.Key != p.Key {
			info += "  hover /" + hov.IPA + "/"
		}
	}
	v.drawString(1, y, info, styleStatus)

	modeStr := v.modeString()
	v.drawString(w/2-len(modeStr)/2, y, modeStr, styleStatus)

	if v.message != "" {
		style := styleMsgInfo
		switch v.messageType {
		case MsgError:
			style = styleMsgError
		case MsgSuccess, MsgWarning:
			style = styleMsgSuccess
		}
		if flashes(v.messageType) && flashInverted(nowMillis()-v.messageFlashStart.Load()) {
			style = style.Reverse(true)
		}
		v.drawString(w-runewidth.StringWidth(v.message)-2, y, v.message, style)
	}

	// Help bar
	y = h - 2
	for x := 0; x < w; x++ {
		v.screen.SetContent(x, y, ' ', nil, styleDefault)
	}
	v.drawString(1, y, v.helpString(), styleHelp)
}

func (v *Viewer) drawInputBox(w, h int) {
	boxW := min(50, w)
	boxH := 3
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	v.drawBox(boxX, boxY, boxW, boxH, styleInput)
	prompt := "Find: "
	v.drawString(boxX+2, boxY+1, prompt, styleInput)
	v.drawString(boxX+2+len(prompt), boxY+1, v.inputBuffer+"_", styleInput)
}

var helpLines = []string{
	"Mouse        hover and click vowels or rows",
	"↑↓ j k       move the selection",
	"Enter Space  play the selected vowel",
	"1-9          play an example word",
	"/            find by symbol or word",
	"l            toggle labels",
	"g            toggle grid",
	"c            clear hover and selection",
	"o            open the chart as PNG",
	"Esc          clear selection, then quit",
	"q Ctrl+C     quit",
}

func (v *Viewer) drawHelp(w, h int) {
	boxW := min(50, w)
	boxH := len(helpLines) + 4
	boxX := max((w-boxW)/2, 0)
	boxY := max((h-boxH)/2, 0)

	v.drawBox(boxX, boxY, boxW, boxH, styleDefault)
	v.drawString(boxX+2, boxY+1, "vowelview", styleSidebarH)
	for i, line := range helpLines {
		v.drawString(boxX+2, boxY+3+i, truncate(line, boxW-4), styleDefault)
	}
}

func (v *Viewer) drawBox(x, y, w, h int, style tcell.Style) {
	v.screen.SetContent(x, y, '┌', nil, styleBorder)
	v.screen.SetContent(x+w-1, y, '┐', nil, styleBorder)
	v.screen.SetContent(x, y+h-1, '└', nil, styleBorder)
	v.screen.SetContent(x+w-1, y+h-1, '┘', nil, styleBorder)

	for i := x + 1; i < x+w-1; i++ {
		v.screen.SetContent(i, y, '─', nil, styleBorder)
		v.screen.SetContent(i, y+h-1, '─', nil, styleBorder)
	}
	for i := y + 1; i < y+h-1; i++ {
		v.screen.SetContent(x, i, '│', nil, styleBorder)
		v.screen.SetContent(x+w-1, i, '│', nil, styleBorder)
	}

	for row := y + 1; row < y+h-1; row++ {
		for col := x + 1; col < x+w-1; col++ {
			v.screen.SetContent(col, row, ' ', nil, style)
		}
	}
}

// drawString writes s from column x, advancing by each rune's display
// width.
func (v *Viewer) drawString(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		v.screen.SetContent(x, y, r, nil, style)
		x += max(runewidth.RuneWidth(r), 1)
	}
}

// drawClipped is drawString restricted to the canvas.
func (v *Viewer) drawClipped(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		v.plot(x, y, r, style)
		x += max(runewidth.RuneWidth(r), 1)
	}
}

func (v *Viewer) modeString() string {
	switch v.mode {
	case ModeSearch:
		return "FIND"
	case ModeHelp:
		return "HELP"
	default:
		return ""
	}
}

func (v *Viewer) helpString() string {
	switch v.mode {
	case ModeSearch:
		return "Type a symbol or word  Enter:Find  Esc:Cancel"
	case ModeHelp:
		return "Any key:Close"
	default:
		return "↑↓:Select  Enter:Play  1-9:Word  /:Find  l:Labels  g:Grid  o:Open  ?:Help  q:Quit"
	}
}

// flashInverted reports whether a flashing message is drawn inverted
// elapsed milliseconds after it was shown: normal and inverted alternate
// every 125ms for the first 500ms.
func flashInverted(elapsed int64) bool {
	if elapsed < 0 || elapsed >= 500 {
		return false
	}
	phase := elapsed / 125
	return phase == 1 || phase == 3
}

// flashes reports whether messages of a type flash.
func flashes(t MessageType) bool {
	switch t {
	case MsgError, MsgSuccess, MsgWarning:
		return true
	default:
		return false
	}
}

// truncate shortens s to at most maxWidth display columns.
func truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

func padRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
