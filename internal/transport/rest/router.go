package rest

import "net/http"

// NewRouter registers every endpoint on a Go 1.22 pattern mux. A nil audio
// handler leaves /audio unrouted.
func NewRouter(health *HealthHandler, charts *ChartHandler, clips *AudioHandler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", health.Live)

	mux.HandleFunc("GET /api/phonemes", charts.List)
	mux.HandleFunc("GET /api/phonemes/{key}", charts.Get)
	mux.HandleFunc("GET /api/phonemes/{key}/related", charts.Related)
	mux.HandleFunc("GET /api/search", charts.Search)
	mux.HandleFunc("GET /api/layout", charts.Layout)
	mux.HandleFunc("GET /api/highlights", charts.Highlights)
	mux.HandleFunc("GET /chart.svg", charts.SVG)
	mux.HandleFunc("GET /chart.png", charts.PNG)

	if clips != nil {
		mux.HandleFunc("GET /audio/{kind}/{file}", clips.Clip)
	}

	return mux
}
