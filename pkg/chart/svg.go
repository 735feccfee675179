package chart

import (
	"fmt"
	"html"
	"strings"
)

// SVGOptions controls native SVG rendering.
type SVGOptions struct {
	Width      int    // output width in pixels (0 = diagram width)
	Height     int    // output height in pixels (0 = diagram height)
	Title      string // diagram title
	FontSize   int    // marker label font size
	ShowLabels bool   // draw the symbol inside each marker
	ShowGrid   bool   // draw the row/column guide grid
}

// DefaultSVGOptions returns sensible defaults.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		FontSize:   13,
		ShowLabels: true,
		ShowGrid:   true,
	}
}

// RenderSVG draws a scene as a standalone SVG document. The viewBox is the
// diagram's own coordinate space, so marker points are written unscaled.
func RenderSVG(s Scene, opts SVGOptions) string {
	d := s.Diagram
	if opts.Width == 0 {
		opts.Width = int(d.Width)
	}
	if opts.Height == 0 {
		opts.Height = int(d.Height)
	}
	if opts.FontSize == 0 {
		opts.FontSize = 13
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %g %g" aria-label="Vowel quadrilateral diagram">
<defs>
  <marker id="glide-head" markerWidth="8" markerHeight="6" refX="7" refY="3" orient="auto">
    <polygon points="0 0, 8 3, 0 6" fill="#1d4ed8"/>
  </marker>
</defs>
<style>
  .guide { fill: none; stroke: rgba(17,24,39,.85); stroke-width: 2.25; }
  .slot-grid-line { stroke: rgba(17,24,39,.12); stroke-width: 1; }
  .slot-grid-dot { fill: rgba(17,24,39,.25); }
  .quad__label { font-family: sans-serif; font-size: 11px; fill: #6b7280; }
  .vowel-node__dot { fill: white; stroke: #111827; stroke-width: 1.5; }
  .vowel-node__ipa { font-family: serif; font-size: %dpx; text-anchor: middle; dominant-baseline: middle; }
  .is-hover .vowel-node__dot { fill: #fef3c7; stroke: #d97706; }
  .is-selected .vowel-node__dot { fill: #dbeafe; stroke: #1d4ed8; stroke-width: 2.5; }
  .glide { fill: none; stroke: #d97706; stroke-width: 1.75; stroke-dasharray: 4 3; marker-end: url(#glide-head); }
  .glide.is-selected { stroke: #1d4ed8; stroke-dasharray: none; }
  .title { font-family: sans-serif; font-size: 14px; font-weight: bold; text-anchor: middle; }
</style>
`, opts.Width, opts.Height, d.Width, d.Height, opts.FontSize))

	sb.WriteString(fmt.Sprintf(`<rect width="%g" height="%g" fill="white"/>
`, d.Width, d.Height))

	if opts.Title != "" {
		sb.WriteString(fmt.Sprintf(`<text x="%g" y="16" class="title">%s</text>
`, d.Width/2, html.EscapeString(opts.Title)))
	}

	q := d.Quad
	sb.WriteString(fmt.Sprintf(`<path class="guide" d="M %g %g L %g %g L %g %g L %g %g Z"/>
`, q.TL.X, q.TL.Y, q.TR.X, q.TR.Y, q.BR.X, q.BR.Y, q.BL.X, q.BL.Y))

	if opts.ShowGrid {
		for _, l := range d.GridLines() {
			sb.WriteString(fmt.Sprintf(`<line class="slot-grid-line" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"/>
`, l.A.X, l.A.Y, l.B.X, l.B.Y))
		}
		for _, p := range d.GridDots() {
			sb.WriteString(fmt.Sprintf(`<circle class="slot-grid-dot" cx="%.2f" cy="%.2f" r="1.9"/>
`, p.X, p.Y))
		}
	}

	for _, a := range d.Axes {
		sb.WriteString(fmt.Sprintf(`<text x="%g" y="%g" class="quad__label">%s</text>
`, a.At.X, a.At.Y, html.EscapeString(a.Text)))
	}

	// Glides go under the markers they connect
	for _, g := range s.Glides {
		class := "glide"
		if g.Selected {
			class += " is-selected"
		}
		sb.WriteString(fmt.Sprintf(`<path class="%s" data-key="%s" d="%s"/>
`, class, html.EscapeString(g.Key), splinePathData(g.Points)))
	}

	for _, m := range s.Markers {
		class := "vowel-node"
		st := s.States[m.Key]
		if st.Hover {
			class += " is-hover"
		}
		if st.Selected {
			class += " is-selected"
		}
		sb.WriteString(fmt.Sprintf(`<g class="%s" data-key="%s" transform="translate(%.2f %.2f)">
`, class, html.EscapeString(m.Key), m.X, m.Y))
		if tip := s.Tips[m.Key]; tip != "" {
			sb.WriteString(fmt.Sprintf("  <title>%s</title>\n", html.EscapeString(tip)))
		}
		sb.WriteString(fmt.Sprintf(`  <circle class="vowel-node__dot" cx="0" cy="0" r="%g"/>
`, MarkerRadius))
		if opts.ShowLabels {
			sb.WriteString(fmt.Sprintf(`  <text class="vowel-node__ipa" x="0" y="1.5">%s</text>
`, html.EscapeString(m.Label)))
		}
		sb.WriteString("</g>\n")
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

// splinePathData converts a spline from GlidePath into SVG path data.
func splinePathData(spline []Point) string {
	if len(spline) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("M%.2f,%.2f", spline[0].X, spline[0].Y))
	if len(spline) < 4 {
		for _, p := range spline[1:] {
			sb.WriteString(fmt.Sprintf(" L%.2f,%.2f", p.X, p.Y))
		}
		return sb.String()
	}
	for i := 1; i+2 < len(spline); i += 3 {
		c1, c2, p := spline[i], spline[i+1], spline[i+2]
		sb.WriteString(fmt.Sprintf(" C%.2f,%.2f %.2f,%.2f %.2f,%.2f", c1.X, c1.Y, c2.X, c2.Y, p.X, p.Y))
	}
	return sb.String()
}
