package handler

import (
	"net/http"
	"time"
)

type healthResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// HealthHandler reports liveness. It never touches the store.
type HealthHandler struct {
	version string
	now     func() time.Time
}

func NewHealthHandler(version string) *HealthHandler {
	return &HealthHandler{version: version, now: time.Now}
}

// HandleHealth is GET /api/health.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Success:   true,
		Message:   "Portfolio API is running",
		Timestamp: h.now().UTC(),
		Version:   h.version,
	})
}
