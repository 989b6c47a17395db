package handlers

import (
	"net/http"
	"time"
)

// SystemHandler serves the welcome and health endpoints.
type SystemHandler struct {
	started time.Time
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler() *SystemHandler {
	return &SystemHandler{started: time.Now()}
}

// Home returns the welcome message.
func (h *SystemHandler) Home(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"msg": "Welcome to the movie catalog API"})
}

// Health reports liveness and uptime.
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(h.started).Round(time.Second).String(),
	})
}
