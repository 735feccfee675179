package rest

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/ha1tch/vowelchart/pkg/audio"
)

// AudioHandler serves pre-recorded clips from a directory laid out as
// <dir>/phonemes/<escaped key>.mp3 and <dir>/words/<escaped slug>.mp3.
// File names on disk stay percent-escaped, so the decoded path segment is
// escaped again before lookup.
type AudioHandler struct {
	dir string
	log *slog.Logger
}

// NewAudioHandler creates an AudioHandler rooted at dir.
func NewAudioHandler(dir string, logger *slog.Logger) *AudioHandler {
	return &AudioHandler{dir: dir, log: logger.With("handler", "audio")}
}

// Clip serves one clip.
// GET /audio/{kind}/{file}
func (h *AudioHandler) Clip(w http.ResponseWriter, r *http.Request) {
	kind := r.PathValue("kind")
	if kind != "phonemes" && kind != "words" {
		writeError(w, http.StatusNotFound, "unknown clip kind")
		return
	}
	file := r.PathValue("file")
	if !strings.HasSuffix(file, ".mp3") || strings.ContainsAny(file, `/\`) || strings.HasPrefix(file, ".") {
		writeError(w, http.StatusNotFound, "clip not found")
		return
	}

	path := filepath.Join(h.dir, kind, audio.EscapeComponent(strings.TrimSuffix(file, ".mp3"))+".mp3")
	f, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			h.log.WarnContext(r.Context(), "open clip", slog.String("path", path), slog.String("error", err.Error()))
		}
		writeError(w, http.StatusNotFound, "clip not found")
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		writeError(w, http.StatusNotFound, "clip not found")
		return
	}
	w.Header().Set("Content-Type", "audio/mpeg")
	http.ServeContent(w, r, file, info.ModTime(), f)
}
