// Package rest serves the vowel chart over HTTP: phoneme data, marker
// layouts, highlight state and rendered SVG/PNG charts.
package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"log/slog"
	"net/http"
	"strconv"

	"golang.org/x/image/font/opentype"

	"github.com/ha1tch/vowelchart/internal/config"
	"github.com/ha1tch/vowelchart/pkg/audio"
	"github.com/ha1tch/vowelchart/pkg/chart"
	"github.com/ha1tch/vowelchart/pkg/highlight"
	"github.com/ha1tch/vowelchart/pkg/vowel"
)

// maxRenderSize caps width and height query parameters.
const maxRenderSize = 1600

// ChartHandler serves the chart endpoints. The dataset and resolver are
// read-only after construction, so one handler serves concurrent requests;
// each request builds its own highlight.View.
type ChartHandler struct {
	ds       *vowel.Dataset
	resolver *chart.Resolver
	chart    config.ChartConfig
	font     *opentype.Font
	locator  audio.Locator
	log      *slog.Logger
}

// NewChartHandler creates a ChartHandler. PNG labels use labelFont, or the
// embedded default when it is nil. Clip URLs in responses are built under
// audioBase.
func NewChartHandler(ds *vowel.Dataset, resolver *chart.Resolver, cfg config.ChartConfig, labelFont *opentype.Font, audioBase string, logger *slog.Logger) *ChartHandler {
	return &ChartHandler{
		ds:       ds,
		resolver: resolver,
		chart:    cfg,
		font:     labelFont,
		locator:  audio.NewLocator(audioBase),
		log:      logger.With("handler", "chart"),
	}
}

type audioResponse struct {
	Phoneme string   `json:"phoneme"`
	Words   []string `json:"words,omitempty"`
}

type phonemeResponse struct {
	Key      string        `json:"key"`
	IPA      string        `json:"ipa"`
	Label    string        `json:"label"`
	Tongue   string        `json:"tongue,omitempty"`
	Type     string        `json:"type"`
	Lips     string        `json:"lips,omitempty"`
	Length   string        `json:"length,omitempty"`
	Rhotic   bool          `json:"rhotic"`
	Gliding  bool          `json:"gliding"`
	Examples []string      `json:"examples"`
	Related  []string      `json:"related"`
	Audio    audioResponse `json:"audio"`
}

type relatedResponse struct {
	Key      string   `json:"key"`
	Segments []string `json:"segments"`
	Related  []string `json:"related"`
}

type highlightsResponse struct {
	Hover    string             `json:"hover"`
	Selected string             `json:"selected"`
	Markers  []highlight.Marker `json:"markers"`
	Rows     []rowResponse      `json:"rows"`
}

type rowResponse struct {
	Key      string `json:"key"`
	Selected bool   `json:"selected"`
}

func (h *ChartHandler) toResponse(p vowel.Phoneme) phonemeResponse {
	words := make([]string, 0, len(p.Examples))
	for _, w := range p.Examples {
		if audio.Slug(w) != "" {
			words = append(words, h.locator.WordClip(w))
		}
	}
	examples := p.Examples
	if examples == nil {
		examples = []string{}
	}
	related := h.ds.RelatedKeys(p.Key)
	if related == nil {
		related = []string{}
	}
	return phonemeResponse{
		Key:      p.Key,
		IPA:      p.IPA,
		Label:    p.Label(),
		Tongue:   p.Tongue,
		Type:     p.TypeDisplay(),
		Lips:     p.Lips,
		Length:   p.Length,
		Rhotic:   p.Rhotic,
		Gliding:  p.IsGliding(),
		Examples: examples,
		Related:  related,
		Audio: audioResponse{
			Phoneme: h.locator.PhonemeClip(p.Key),
			Words:   words,
		},
	}
}

// List returns every phoneme in dataset order.
// GET /api/phonemes
func (h *ChartHandler) List(w http.ResponseWriter, r *http.Request) {
	phonemes := h.ds.Phonemes()
	out := make([]phonemeResponse, len(phonemes))
	for i, p := range phonemes {
		out[i] = h.toResponse(p)
	}
	writeJSON(w, http.StatusOK, out)
}

// Get returns one phoneme.
// GET /api/phonemes/{key}
func (h *ChartHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.ds.MustGet(r.PathValue("key"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.toResponse(p))
}

// Related returns the glide segments of a phoneme and the simple vowels
// they link to.
// GET /api/phonemes/{key}/related
func (h *ChartHandler) Related(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	if _, err := h.ds.MustGet(key); err != nil {
		h.handleError(w, r, err)
		return
	}
	resp := relatedResponse{
		Key:      key,
		Segments: h.ds.Segments(key),
		Related:  h.ds.RelatedKeys(key),
	}
	if resp.Segments == nil {
		resp.Segments = []string{}
	}
	if resp.Related == nil {
		resp.Related = []string{}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Search finds a phoneme by symbol or example word.
// GET /api/search?q=
func (h *ChartHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if vowel.NormalizeQuery(q) == "" {
		writeError(w, http.StatusBadRequest, "missing query")
		return
	}
	p, ok := h.ds.Search(q)
	if !ok {
		writeError(w, http.StatusNotFound, "no match")
		return
	}
	writeJSON(w, http.StatusOK, h.toResponse(p))
}

// Layout returns marker positions for a view.
// GET /api/layout?view=chart|table
func (h *ChartHandler) Layout(w http.ResponseWriter, r *http.Request) {
	view := chart.ParseView(r.URL.Query().Get("view"))
	writeJSON(w, http.StatusOK, h.resolver.Layout(h.ds, view))
}

// Highlights evaluates a hover/selection pair against every phoneme.
// GET /api/highlights?hover=&selected=
func (h *ChartHandler) Highlights(w http.ResponseWriter, r *http.Request) {
	v := h.view(r)
	keys := h.ds.Keys()
	rows := make([]rowResponse, len(keys))
	for i, k := range keys {
		rows[i] = rowResponse{Key: k, Selected: v.RowSelected(k)}
	}
	writeJSON(w, http.StatusOK, highlightsResponse{
		Hover:    v.Hovered(),
		Selected: v.Selected(),
		Markers:  v.Apply(keys),
		Rows:     rows,
	})
}

// SVG renders the chart.
// GET /chart.svg?hover=&selected=&labels=&grid=&width=&height=
func (h *ChartHandler) SVG(w http.ResponseWriter, r *http.Request) {
	width, height, err := h.size(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	opts := chart.SVGOptions{
		Width:      width,
		Height:     height,
		Title:      r.URL.Query().Get("title"),
		FontSize:   h.chart.FontSize,
		ShowLabels: queryBool(r, "labels", !h.chart.HideLabels),
		ShowGrid:   queryBool(r, "grid", !h.chart.HideGrid),
	}
	scene := chart.BuildScene(h.resolver, h.ds, h.view(r))
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(chart.RenderSVG(scene, opts))) //nolint:errcheck
}

// PNG renders the chart as a raster image.
// GET /chart.png?hover=&selected=&labels=&grid=&width=&height=
func (h *ChartHandler) PNG(w http.ResponseWriter, r *http.Request) {
	width, height, err := h.size(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if width == 0 {
		width = h.chart.Width
	}
	if height == 0 {
		height = h.chart.Height
	}
	opts := chart.PNGOptions{
		Width:      width,
		Height:     height,
		FontSize:   h.chart.FontSize,
		ShowLabels: queryBool(r, "labels", !h.chart.HideLabels),
		ShowGrid:   queryBool(r, "grid", !h.chart.HideGrid),
		Font:       h.font,
	}
	scene := chart.BuildScene(h.resolver, h.ds, h.view(r))
	img, err := chart.RenderImage(scene, opts)
	if err != nil {
		h.log.ErrorContext(r.Context(), "render png", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if err := png.Encode(w, img); err != nil {
		h.log.WarnContext(r.Context(), "write png", slog.String("error", err.Error()))
	}
}

// view builds the interaction state named by the hover and selected query
// parameters.
func (h *ChartHandler) view(r *http.Request) *highlight.View {
	v := highlight.New(h.ds)
	q := r.URL.Query()
	v.SetHover(q.Get("hover"))
	v.SetSelected(q.Get("selected"))
	return v
}

var errBadSize = fmt.Errorf("width and height must be integers in 1..%d", maxRenderSize)

// size reads optional width/height query parameters; 0 means unset.
func (h *ChartHandler) size(r *http.Request) (int, int, error) {
	parse := func(name string) (int, error) {
		raw := r.URL.Query().Get(name)
		if raw == "" {
			return 0, nil
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxRenderSize {
			return 0, errBadSize
		}
		return n, nil
	}
	width, err := parse("width")
	if err != nil {
		return 0, 0, err
	}
	height, err := parse("height")
	if err != nil {
		return 0, 0, err
	}
	return width, height, nil
}

func (h *ChartHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, vowel.ErrUnknownPhoneme) {
		writeError(w, http.StatusNotFound, "unknown phoneme")
		return
	}
	h.log.ErrorContext(r.Context(), "request failed", slog.String("error", err.Error()))
	writeError(w, http.StatusInternalServerError, "internal server error")
}

// queryBool reads a boolean query parameter, falling back to def when the
// parameter is absent or unparseable.
func queryBool(r *http.Request, name string, def bool) bool {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return b
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
