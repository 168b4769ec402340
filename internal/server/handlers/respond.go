// Package handlers contains the HTTP boundary: request parsing and
// validation, the admission pipeline invocation, and response shaping.
package handlers

import (
	"encoding/json"
	"net/http"
)

// respondJSON writes v with the given status. Encoding failures are
// ignored; headers are already on the wire by then.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// applyAdmissionHeaders copies the gate quota headers onto the response.
// They are set before the status line so denials carry them too.
func applyAdmissionHeaders(w http.ResponseWriter, headers http.Header) {
	for name, values := range headers {
		for _, v := range values {
			w.Header().Set(name, v)
		}
	}
}
