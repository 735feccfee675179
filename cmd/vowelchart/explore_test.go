package main

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ha1tch/vowelchart/internal/dataset"
	"github.com/ha1tch/vowelchart/pkg/audio"
	"github.com/ha1tch/vowelchart/pkg/highlight"
)

func newTestExplorer(t *testing.T, withAudio bool) (*explorer, *strings.Builder) {
	t.Helper()
	ds, err := dataset.Default()
	require.NoError(t, err)
	var seq *audio.Sequencer
	if withAudio {
		seq = audio.NewSequencer(audio.Silent{}, audio.NewLocator("clips"), audio.Options{
			Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		})
	}
	var out strings.Builder
	return newExplorer(ds, seq, &out), &out
}

func TestExploreSearchSelects(t *testing.T) {
	e, out := newTestExplorer(t, false)
	e.run(strings.NewReader("boy\nlinks\nquit\nstatus\n"))

	assert.Equal(t, "ɔɪ", e.view.Selected())
	assert.Equal(t, []string{"ɔ", "ɪ"}, e.view.Linked(highlight.Selected))
	text := out.String()
	assert.Contains(t, text, "Selected: ɔɪ [ɔ ɪ]")
	assert.Contains(t, text, "1: mid-back -> ɔ")
	assert.Contains(t, text, "2: high-front -> ɪ")
	assert.Equal(t, 1, strings.Count(text, "Selected:"), "quit stops before status")
}

func TestExploreHoverAndClear(t *testing.T) {
	e, out := newTestExplorer(t, false)

	assert.True(t, e.exec("hover aʊ"))
	assert.Equal(t, "aʊ", e.view.Hovered())
	assert.True(t, e.view.IsHighlighted("ʊ", highlight.Hover).Linked)

	assert.True(t, e.exec("hover zz"))
	assert.Equal(t, "aʊ", e.view.Hovered(), "unknown keys leave the state alone")
	assert.Contains(t, out.String(), "unknown phoneme")

	e.exec("select /ɪ/")
	assert.Contains(t, out.String(), `unknown phoneme: "/ɪ/"`, "select takes exact keys")
	e.exec("select ɪ")
	assert.Equal(t, "ɪ", e.view.Selected())

	e.exec("clear")
	assert.Empty(t, e.view.Hovered())
	assert.Empty(t, e.view.Selected())
	assert.Contains(t, out.String(), "Nothing highlighted")
}

func TestExploreNoMatch(t *testing.T) {
	e, out := newTestExplorer(t, false)
	e.exec("zebra")
	assert.Empty(t, e.view.Selected())
	assert.Contains(t, out.String(), `No vowel matches "zebra"`)
}

func TestExplorePlay(t *testing.T) {
	e, out := newTestExplorer(t, false)
	e.exec("play")
	assert.Contains(t, out.String(), "Nothing selected")
	e.exec("father")
	e.exec("play")
	assert.Contains(t, out.String(), "Audio is disabled")

	e, out = newTestExplorer(t, true)
	e.exec("father")
	assert.True(t, e.seq.Cached("clips/phonemes/%C9%91.mp3"), "selection primes the phoneme clip")
	assert.True(t, e.seq.Cached("clips/words/father.mp3"))
	e.exec("play")
	e.exec("play spa")
	assert.NotContains(t, out.String(), "Error")
}

func TestExploreLinksOnSimpleVowel(t *testing.T) {
	e, out := newTestExplorer(t, false)
	e.exec("select ɪ")
	e.exec("links")
	assert.Contains(t, out.String(), "ɪ is not a gliding vowel")
}
