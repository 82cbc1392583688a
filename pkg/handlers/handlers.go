// Package handlers writes JSON success and error responses.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"maps"
	"net/http"
)

// Detailer is implemented by errors that carry extra response fields, such
// as the list of missing columns for a rejected record.
type Detailer interface {
	Details() map[string]any
}

// RespondJSON writes data as JSON with the given status code.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondError writes {"error": err.Error()} with the given status code,
// merged with any Details the error chain carries. Server errors are logged
// at error level, client errors at debug.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "error", err)
	} else {
		logger.Debug("request rejected", "status", status, "error", err)
	}

	body := map[string]any{}

	var d Detailer
	if errors.As(err, &d) {
		maps.Copy(body, d.Details())
	}
	body["error"] = err.Error()

	RespondJSON(w, status, body)
}
