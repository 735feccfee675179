package rest

import (
	"net/http"
	"time"
)

// HealthHandler serves the liveness endpoint.
type HealthHandler struct {
	version  string
	phonemes int
}

// NewHealthHandler creates a HealthHandler reporting the loaded dataset size.
func NewHealthHandler(version string, phonemes int) *HealthHandler {
	return &HealthHandler{version: version, phonemes: phonemes}
}

// HealthResponse is the JSON response for /healthz.
type HealthResponse struct {
	Status    string    `json:"status"`
	Version   string    `json:"version,omitempty"`
	Phonemes  int       `json:"phonemes"`
	Timestamp time.Time `json:"timestamp"`
}

// Live always returns 200.
// GET /healthz
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Version:   h.version,
		Phonemes:  h.phonemes,
		Timestamp: time.Now(),
	})
}
