package server

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
)

// writeJSON encodes into a buffer before touching the ResponseWriter, so an
// encoding failure can still produce a clean 500 instead of a torn body.
func writeJSON(w http.ResponseWriter, status int, data any) {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(data); err != nil {
		slog.Error("encoding response", "err", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Debug("writing response body", "err", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// redirectResponse tells the UI where to navigate next. The embedded status
// is part of the body, not the HTTP status line: the UI performs the
// redirect itself.
type redirectResponse struct {
	Status    int    `json:"status"`
	Warning   string `json:"warning,omitempty"`
	Redirects string `json:"redirects"`
}

type statusResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}
