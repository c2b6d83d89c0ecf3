package api

import (
	"net/http"

	"github.com/PANAMA-HIVE/Backend-Deploy/internal/api/shared"
)

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	shared.Envelope
	Status string `json:"status"`
}

// Hello handles GET /.
func Hello(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, shared.Succeeded(r, "hello from backend"))
}

// HelloPost handles POST /.
func HelloPost(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, shared.Succeeded(r, "POST request received"))
}

// APIHealth handles GET /api/health.
func APIHealth(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{
		Envelope: shared.Succeeded(r, "API is healthy"),
		Status:   "UP",
	})
}

// NotFound answers unknown routes with the JSON envelope.
func NotFound(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithError(w, r, http.StatusNotFound, CodeNotFound, "Route not found")
}
