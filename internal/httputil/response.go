package httputil

import (
	"encoding/json"
	"net/http"
)

// RespondJSON writes a JSON response with the given status code.
// It handles encoding errors safely by marshaling first, preventing
// partial responses if encoding fails after headers are sent.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		RespondError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}

// errorBody is the uniform error payload: {"error": "..."} plus the status.
// Every failure surfaced to the client goes through this shape so the UI
// can render it without caring which handler produced it.
type errorBody struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

// RespondError writes a uniform JSON error response
func RespondError(w http.ResponseWriter, status int, message string) {
	payload, err := json.Marshal(errorBody{Error: message, Status: status})
	if err != nil {
		// Fallback to plain text if JSON encoding fails
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("internal server error"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}
