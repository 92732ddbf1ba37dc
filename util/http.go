package util

import (
	"encoding/json"
	"log"
	"net/http"
)

// RespondJSON writes v as a JSON response.
// nolint:errcheck
func RespondJSON(w http.ResponseWriter, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		RespondError(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(b)
}

// RespondError returns a JSON error response.
// nolint:errcheck
func RespondError(w http.ResponseWriter, error string, status int) {
	var resp struct {
		Error string `json:"errorMessage"`
	}
	resp.Error = error
	b, err := json.Marshal(resp)
	if err != nil {
		log.Printf("failed to encode error response: %s", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(b)
}
