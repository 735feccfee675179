// Native PNG rendering for vowel charts.
// Mirrors the SVG renderer output using Go's image packages.

package chart

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// PNGOptions configures PNG rendering.
type PNGOptions struct {
	Width      int
	Height     int
	FontSize   int // marker label size in diagram units
	ShowLabels bool
	ShowGrid   bool

	// Font draws labels; nil uses DejaVu Sans. Runes it lacks fall back
	// to Go Regular.
	Font *opentype.Font
}

// DefaultPNGOptions returns sensible defaults for PNG rendering.
func DefaultPNGOptions() PNGOptions {
	return PNGOptions{
		Width:      1040,
		Height:     720,
		FontSize:   13,
		ShowLabels: true,
		ShowGrid:   true,
	}
}

// Colors used in rendering
var (
	colorWhite     = color.RGBA{255, 255, 255, 255}
	colorInk       = color.RGBA{17, 24, 39, 255}    // #111827
	colorGuide     = color.RGBA{17, 24, 39, 217}    // outline, .85 alpha
	colorGrid      = color.RGBA{226, 227, 230, 255} // .12 ink on white
	colorGridDot   = color.RGBA{197, 199, 202, 255} // .25 ink on white
	colorAxis      = color.RGBA{107, 114, 128, 255} // #6b7280
	colorHoverFill = color.RGBA{254, 243, 199, 255} // #fef3c7
	colorHoverBdr  = color.RGBA{217, 119, 6, 255}   // #d97706
	colorSelFill   = color.RGBA{219, 234, 254, 255} // #dbeafe
	colorSelBdr    = color.RGBA{29, 78, 216, 255}   // #1d4ed8
)

// supersample is the oversampling factor; the image is drawn large and
// scaled down with Catmull-Rom.
const supersample = 4

// renderContext holds rendering parameters including scale
type renderContext struct {
	img       *image.RGBA
	vp        Viewport
	scale     float64 // output pixels per diagram unit
	lineWidth float64
	face      font.Face
	axisFace  font.Face
}

func newRenderContext(img *image.RGBA, vp Viewport, opts PNGOptions) (*renderContext, error) {
	face, err := newLabelFace(opts.Font, float64(opts.FontSize)*vp.ScaleX)
	if err != nil {
		return nil, err
	}
	axisFace, err := newLabelFace(opts.Font, 11*vp.ScaleX)
	if err != nil {
		return nil, err
	}
	return &renderContext{
		img:       img,
		vp:        vp,
		scale:     vp.ScaleX,
		lineWidth: vp.ScaleX * 1.5,
		face:      face,
		axisFace:  axisFace,
	}, nil
}

// RenderPNG renders a scene to PNG. Uses 4x supersampling for smoother
// output.
func RenderPNG(s Scene, w io.Writer, opts PNGOptions) error {
	img, err := RenderImage(s, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// RenderImage renders a scene to an in-memory image of opts.Width x
// opts.Height pixels.
func RenderImage(s Scene, opts PNGOptions) (*image.RGBA, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("chart: invalid png size %dx%d", opts.Width, opts.Height)
	}
	if opts.FontSize == 0 {
		opts.FontSize = 13
	}

	large := image.NewRGBA(image.Rect(0, 0, opts.Width*supersample, opts.Height*supersample))
	draw.Draw(large, large.Bounds(), image.NewUniform(colorWhite), image.Point{}, draw.Src)

	vp := FitViewport(s.Diagram, float64(large.Bounds().Dx()), float64(large.Bounds().Dy()), 1)
	ctx, err := newRenderContext(large, vp, opts)
	if err != nil {
		return nil, err
	}
	renderScene(ctx, s, opts)

	final := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.CatmullRom.Scale(final, final.Bounds(), large, large.Bounds(), draw.Over, nil)
	return final, nil
}

func renderScene(ctx *renderContext, s Scene, opts PNGOptions) {
	d := s.Diagram

	if opts.ShowGrid {
		for _, l := range d.GridLines() {
			drawSegment(ctx, l.A, l.B, colorGrid, 0.7)
		}
		for _, p := range d.GridDots() {
			drawDisc(ctx, p, 1.9, colorGridDot, colorGridDot)
		}
	}

	outline := d.Outline()
	for i := range outline {
		drawSegment(ctx, outline[i], outline[(i+1)%len(outline)], colorGuide, 1.5)
	}

	for _, a := range d.Axes {
		drawText(ctx, ctx.axisFace, a.At, a.Text, colorAxis, false)
	}

	for _, g := range s.Glides {
		c := colorHoverBdr
		if g.Selected {
			c = colorSelBdr
		}
		drawSpline(ctx, g.Points, c)
	}

	for _, m := range s.Markers {
		fill, stroke := colorWhite, colorInk
		st := s.States[m.Key]
		switch {
		case st.Selected:
			fill, stroke = colorSelFill, colorSelBdr
		case st.Hover:
			fill, stroke = colorHoverFill, colorHoverBdr
		}
		drawDisc(ctx, m.Point(), MarkerRadius, fill, stroke)
		if opts.ShowLabels {
			drawText(ctx, ctx.face, m.Point(), m.Label, colorInk, true)
		}
	}
}

// drawDisc draws a filled circle with an outline, radius in diagram units.
func drawDisc(ctx *renderContext, center Point, radius float64, fill, stroke color.Color) {
	c := ctx.vp.Apply(center)
	r := radius * ctx.scale
	r2 := r * r
	inner := (r - ctx.lineWidth) * (r - ctx.lineWidth)
	for y := math.Floor(c.Y - r); y <= c.Y+r; y++ {
		for x := math.Floor(c.X - r); x <= c.X+r; x++ {
			dx, dy := x+0.5-c.X, y+0.5-c.Y
			dist := dx*dx + dy*dy
			switch {
			case dist <= inner:
				ctx.img.Set(int(x), int(y), fill)
			case dist <= r2:
				ctx.img.Set(int(x), int(y), stroke)
			}
		}
	}
}

// drawSegment draws a line in diagram units; width is relative to the base
// line width.
func drawSegment(ctx *renderContext, a, b Point, c color.Color, width float64) {
	drawLine(ctx, ctx.vp.Apply(a), ctx.vp.Apply(b), c, ctx.lineWidth*width)
}

// drawLine draws a thick line between two image points.
func drawLine(ctx *renderContext, a, b Point, c color.Color, thickness float64) {
	img := ctx.img
	dx := b.X - a.X
	dy := b.Y - a.Y
	steps := math.Max(math.Max(math.Abs(dx), math.Abs(dy)), 1)
	halfThick := thickness / 2

	dist := math.Hypot(dx, dy)
	if dist < 1 {
		for ty := -halfThick; ty <= halfThick; ty++ {
			for tx := -halfThick; tx <= halfThick; tx++ {
				img.Set(int(a.X+tx), int(a.Y+ty), c)
			}
		}
		return
	}

	perpX := -dy / dist
	perpY := dx / dist

	for i := 0.0; i <= steps; i++ {
		t := i / steps
		cx := a.X + dx*t
		cy := a.Y + dy*t
		for offset := -halfThick; offset <= halfThick; offset += 0.5 {
			img.Set(int(cx+perpX*offset), int(cy+perpY*offset), c)
		}
	}
}

// drawSpline samples a glide spline and finishes it with a filled
// arrowhead.
func drawSpline(ctx *renderContext, spline []Point, c color.Color) {
	if len(spline) < 2 {
		return
	}
	const steps = 100
	prev := EvaluateSpline(spline, 0)
	for i := 1; i <= steps; i++ {
		curr := EvaluateSpline(spline, float64(i)/steps)
		drawSegment(ctx, prev, curr, c, 1.2)
		prev = curr
	}

	tip, left, right := ArrowHead(spline, 7)
	t, l, r := ctx.vp.Apply(tip), ctx.vp.Apply(left), ctx.vp.Apply(right)
	for f := 0.0; f <= 1.0; f += 0.05 {
		drawLine(ctx, t, LerpPoint(l, r, f), c, ctx.lineWidth)
	}
}

// drawText draws text at a diagram point, centred on it or starting at it.
func drawText(ctx *renderContext, face font.Face, at Point, text string, c color.Color, centred bool) {
	p := ctx.vp.Apply(at)
	x := int(p.X)
	y := int(p.Y)
	if centred {
		x -= font.MeasureString(face, text).Ceil() / 2
		// Baseline sits below the visual centre by about a third of the ascent
		y += int(float64(face.Metrics().Ascent.Ceil()) * 0.35)
	}
	d := &font.Drawer{
		Dst:  ctx.img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}
