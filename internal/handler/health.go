package handler

import (
	"net/http"
	"time"

	"soapify/internal/httputil"
)

// HealthCheck reports liveness for load balancer probes
// GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now(),
	})
}
