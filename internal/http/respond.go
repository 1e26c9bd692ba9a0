package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dukasmart/partspos/internal/apperr"
	"github.com/dukasmart/partspos/internal/http/apierr"
)

// responder writes JSON responses and maps errors to the wire error model.
type responder struct {
	logger *slog.Logger
}

func (re *responder) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		re.logger.ErrorContext(r.Context(), "error encoding response",
			slog.Any("error", err))
	}
}

func (re *responder) writeError(w http.ResponseWriter, r *http.Request, err error) {
	res := apierr.New(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(res.StatusCode)

	logLevel := slog.LevelInfo
	if res.StatusCode >= 500 {
		logLevel = slog.LevelError
	} else if res.StatusCode >= 400 {
		logLevel = slog.LevelWarn
	}
	re.logger.Log(r.Context(), logLevel, "http response error", slog.Any("error", err))

	if err := json.NewEncoder(w).Encode(res); err != nil {
		re.logger.ErrorContext(r.Context(), "error encoding error response",
			slog.Any("error", err))
	}
}

// decodeJSON parses the request body into v. Malformed bodies surface as a
// validation error, not a 500.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.ValidationErr.WrapParent(err)
	}
	return nil
}

// uuidParam parses a chi URL parameter as a UUID.
func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, apperr.ValidationErr.WrapParent(err)
	}
	return id, nil
}
