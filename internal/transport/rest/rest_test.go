package rest

import (
	"bytes"
	"encoding/json"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ha1tch/vowelchart/internal/config"
	"github.com/ha1tch/vowelchart/pkg/audio"
	"github.com/ha1tch/vowelchart/pkg/chart"
	"github.com/ha1tch/vowelchart/pkg/highlight"
	"github.com/ha1tch/vowelchart/pkg/vowel"
)

func testDataset() *vowel.Dataset {
	return vowel.NewDataset([]vowel.Phoneme{
		{Key: "ɪ", IPA: "ɪ", Tongue: "high-front", Examples: []string{"sit", "bit"}},
		{Key: "ʊ", IPA: "ʊ", Tongue: "high-back", Examples: []string{"book"}},
		{Key: "ɑ", IPA: "ɑ", Tongue: "low-central", Examples: []string{"father"}},
		{Key: "aɪ", IPA: "aɪ", Tongue: "low-central→high-front", Type: "diphthong", Examples: []string{"my", "ɪɪ"}},
	})
}

func newServer(t *testing.T, clipDir string) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ds := testDataset()
	cfg := config.ChartConfig{Width: 260, Height: 180, FontSize: 13}
	charts := NewChartHandler(ds, chart.NewResolver(chart.DefaultDiagram(), chart.DefaultSheet()), cfg, nil, "/audio", logger)
	var clips *AudioHandler
	if clipDir != "" {
		clips = NewAudioHandler(clipDir, logger)
	}
	return NewRouter(NewHealthHandler("test", ds.Len()), charts, clips)
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func TestHealth(t *testing.T) {
	rec := get(t, newServer(t, ""), "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	decode(t, rec, &resp)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "test", resp.Version)
	assert.Equal(t, 4, resp.Phonemes)
}

func TestListPhonemes(t *testing.T) {
	rec := get(t, newServer(t, ""), "/api/phonemes")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp []phonemeResponse
	decode(t, rec, &resp)
	require.Len(t, resp, 4)
	assert.Equal(t, "ɪ", resp[0].Key)
	assert.Equal(t, "ɪ", resp[0].Label)
	assert.Equal(t, "—", resp[0].Type)
	assert.Empty(t, resp[0].Related)
	assert.NotNil(t, resp[0].Related)
	assert.Equal(t, "/audio/phonemes/%C9%AA.mp3", resp[0].Audio.Phoneme)
	assert.Equal(t, []string{"/audio/words/sit.mp3", "/audio/words/bit.mp3"}, resp[0].Audio.Words)

	assert.True(t, resp[3].Gliding)
	assert.Equal(t, []string{"ɑ", "ɪ"}, resp[3].Related)
	assert.Equal(t, []string{"/audio/words/my.mp3"}, resp[3].Audio.Words, "words without a slug have no clip")
}

func TestGetPhoneme(t *testing.T) {
	h := newServer(t, "")

	rec := get(t, h, "/api/phonemes/%C9%AA")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp phonemeResponse
	decode(t, rec, &resp)
	assert.Equal(t, "ɪ", resp.Key)

	rec = get(t, h, "/api/phonemes/zz")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown phoneme")
}

func TestRelated(t *testing.T) {
	h := newServer(t, "")

	rec := get(t, h, "/api/phonemes/a%C9%AA/related")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp relatedResponse
	decode(t, rec, &resp)
	assert.Equal(t, relatedResponse{
		Key:      "aɪ",
		Segments: []string{"low-central", "high-front"},
		Related:  []string{"ɑ", "ɪ"},
	}, resp)

	rec = get(t, h, "/api/phonemes/%C9%AA/related")
	decode(t, rec, &resp)
	assert.Empty(t, resp.Related)
	assert.Empty(t, resp.Segments)

	assert.Equal(t, http.StatusNotFound, get(t, h, "/api/phonemes/zz/related").Code)
}

func TestSearch(t *testing.T) {
	h := newServer(t, "")

	rec := get(t, h, "/api/search?q=/%C9%AA/")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp phonemeResponse
	decode(t, rec, &resp)
	assert.Equal(t, "ɪ", resp.Key)

	rec = get(t, h, "/api/search?q=Book")
	decode(t, rec, &resp)
	assert.Equal(t, "ʊ", resp.Key)

	assert.Equal(t, http.StatusNotFound, get(t, h, "/api/search?q=zebra").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, h, "/api/search?q=%20/").Code)
}

func TestLayout(t *testing.T) {
	h := newServer(t, "")

	var markers []chart.Marker
	decode(t, get(t, h, "/api/layout"), &markers)
	assert.Len(t, markers, 3, "chart view leaves out glides")
	for _, m := range markers {
		assert.Equal(t, chart.StrategySheet, m.Strategy, m.Key)
	}

	decode(t, get(t, h, "/api/layout?view=table"), &markers)
	require.Len(t, markers, 4)
	assert.Equal(t, chart.StrategyTongue, markers[0].Strategy)
}

func TestHighlights(t *testing.T) {
	rec := get(t, newServer(t, ""), "/api/highlights?selected=a%C9%AA&hover=%CA%8A")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp highlightsResponse
	decode(t, rec, &resp)
	assert.Equal(t, "aɪ", resp.Selected)
	assert.Equal(t, "ʊ", resp.Hover)
	assert.Equal(t, []highlight.Marker{
		{Key: "ɪ", Selected: true},
		{Key: "ʊ", Hover: true},
		{Key: "ɑ", Selected: true},
		{Key: "aɪ", Selected: true},
	}, resp.Markers)
	assert.Equal(t, []rowResponse{
		{Key: "ɪ"}, {Key: "ʊ"}, {Key: "ɑ"}, {Key: "aɪ", Selected: true},
	}, resp.Rows)
}

func TestChartSVG(t *testing.T) {
	h := newServer(t, "")

	rec := get(t, h, "/chart.svg?selected=a%C9%AA&width=400&height=300")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, `width="400" height="300"`)
	assert.Contains(t, body, `class="glide is-selected" data-key="aɪ"`)
	assert.Contains(t, body, `class="vowel-node is-selected" data-key="ɪ"`)
	assert.Contains(t, body, `class="vowel-node__ipa"`)

	rec = get(t, h, "/chart.svg?labels=false&grid=0")
	assert.NotContains(t, rec.Body.String(), `class="vowel-node__ipa"`)
	assert.NotContains(t, rec.Body.String(), `class="slot-grid-dot"`)

	for _, q := range []string{"width=0", "width=abc", "height=99999"} {
		assert.Equal(t, http.StatusBadRequest, get(t, h, "/chart.svg?"+q).Code, q)
	}
}

func TestChartPNG(t *testing.T) {
	rec := get(t, newServer(t, ""), "/chart.png?hover=%C9%AA")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))

	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 260, img.Bounds().Dx(), "configured default width")
	assert.Equal(t, 180, img.Bounds().Dy())
}

func TestAudioClips(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "phonemes"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "phonemes", "%C9%AA.mp3"), []byte("ID3clip"), 0o644))
	h := newServer(t, dir)

	rec := get(t, h, "/audio/phonemes/%C9%AA.mp3")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "audio/mpeg", rec.Header().Get("Content-Type"))
	assert.Equal(t, "ID3clip", rec.Body.String())

	for _, target := range []string{
		"/audio/phonemes/%CA%8A.mp3",
		"/audio/other/%C9%AA.mp3",
		"/audio/phonemes/clip.wav",
		"/audio/phonemes/.hidden.mp3",
	} {
		assert.Equal(t, http.StatusNotFound, get(t, h, target).Code, target)
	}

	assert.Equal(t, http.StatusNotFound, get(t, newServer(t, ""), "/audio/phonemes/%C9%AA.mp3").Code)
}

func TestAudioClipsMatchRecordedNames(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "phonemes"), 0o755))
	for _, name := range []string{"a%2Bb.mp3", "%C9%99(r).mp3"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "phonemes", name), []byte(name), 0o644))
	}
	h := newServer(t, dir)

	loc := audio.NewLocator("/audio")
	for key, name := range map[string]string{"a+b": "a%2Bb.mp3", "ə(r)": "%C9%99(r).mp3"} {
		rec := get(t, h, loc.PhonemeClip(key))
		require.Equal(t, http.StatusOK, rec.Code, key)
		assert.Equal(t, name, rec.Body.String())
	}
}

func TestMethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	newServer(t, "").ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/phonemes", strings.NewReader("{}")))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
