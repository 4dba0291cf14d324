package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/s4ng4/winelist"
)

// Envelope is the JSON body of every API response.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// writeJSON writes data wrapped in an Envelope with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any, logger *slog.Logger) {
	writeEnvelope(w, status, Envelope{Success: status < 400, Data: data}, logger)
}

// writeError writes an error envelope. Application errors map to their
// status code and message; any other error is logged and reported as 500.
func writeError(w http.ResponseWriter, err error, logger *slog.Logger) {
	code := winelist.ErrorCode(err)
	if code == winelist.EINTERNAL {
		logger.Error("unhandled error", "error", err)
	}
	writeEnvelope(w, ErrorStatusCode(code), Envelope{Error: winelist.ErrorMessage(err)}, logger)
}

func writeEnvelope(w http.ResponseWriter, status int, env Envelope, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

// codes maps application error codes to HTTP status codes.
var codes = map[string]int{
	winelist.EINVALID:     http.StatusBadRequest,
	winelist.ENOTFOUND:    http.StatusNotFound,
	winelist.EUNAVAILABLE: http.StatusServiceUnavailable,
	winelist.EINTERNAL:    http.StatusInternalServerError,
}

// ErrorStatusCode returns the HTTP status code for an application error code.
func ErrorStatusCode(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}
