package handlers

import (
	"encoding/json"
	"net/http"
)

// Response is the JSON envelope every endpoint answers with. Details is
// only populated for validation failures.
type Response struct {
	OK      bool     `json:"ok"`
	Error   string   `json:"error,omitempty"`
	Details []string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeOK(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, Response{OK: true})
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, Response{OK: false, Error: code})
}
