package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"log/slog"

	"github.com/garnizeh/jobly/internal/apperr"
)

// errorResponse is the envelope of every failed request.
type errorResponse struct {
	Status  int      `json:"status"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode response", slog.Any("err", err))
	}
}

func writeStatus(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Status: status, Message: message})
}

// writeError translates err into its HTTP envelope. Internal failures are
// logged with their cause and reported without detail.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	resp := errorResponse{Status: apperr.StatusOf(err)}

	var ae *apperr.Error
	if errors.As(err, &ae) && ae.Kind != apperr.Internal {
		resp.Message = ae.Message
		resp.Errors = ae.Details
		logger.Info("request failed",
			slog.String("kind", ae.Kind.String()),
			slog.String("message", ae.Message),
			slog.String("path", r.URL.Path),
			slog.String("request_id", RequestIDFrom(r.Context())),
		)
	} else {
		resp.Message = "Internal Server Error"
		logger.Error("request failed",
			slog.Any("err", err),
			slog.String("path", r.URL.Path),
			slog.String("request_id", RequestIDFrom(r.Context())),
		)
	}

	writeJSON(w, resp.Status, resp)
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	writeStatus(w, http.StatusNotFound, "Not Found")
}

func methodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	writeStatus(w, http.StatusMethodNotAllowed, "Method Not Allowed")
}
