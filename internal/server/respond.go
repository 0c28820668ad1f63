package server

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"bedwars-tracker/internal/api"
	"bedwars-tracker/internal/middleware"
	"bedwars-tracker/internal/ranked"
)

type APIError struct {
	Error     string `json:"error"`
	Status    int    `json:"status"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *TrackerServer) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode response")
	}
}

func (s *TrackerServer) writeError(w http.ResponseWriter, r *http.Request, message string, status int) {
	s.writeJSON(w, status, APIError{
		Error:     message,
		Status:    status,
		RequestID: middleware.GetRequestID(r.Context()),
	})
}

// writeServiceError translates service failures into HTTP statuses.
func (s *TrackerServer) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *ranked.ValidationError
	switch {
	case errors.As(err, &verr):
		s.writeError(w, r, verr.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, api.ErrNotFound), errors.Is(err, sql.ErrNoRows):
		s.writeError(w, r, "player not found", http.StatusNotFound)
	default:
		s.logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		s.writeError(w, r, "internal server error", http.StatusInternalServerError)
	}
}
