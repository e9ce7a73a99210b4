package server

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/jrsteele09/go-contacts-server/internal/errors"
	"github.com/rs/zerolog/log"
)

const contentTypeJSON = "application/json"

// ErrorResponse is the body of every error reply
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// StatusResponse is the body of replies that carry no resource
type StatusResponse struct {
	Status string `json:"status"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

// writeError maps err onto the error taxonomy and writes {"detail": ...}
func writeError(w http.ResponseWriter, err error) {
	status, detail := errorStatus(err)
	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}
	writeJSON(w, status, ErrorResponse{Detail: detail})
}

func errorStatus(err error) (int, string) {
	switch {
	case apperrors.Is(err, apperrors.ErrValidation):
		return http.StatusUnprocessableEntity, err.Error()
	case apperrors.Is(err, apperrors.ErrConflict):
		return http.StatusBadRequest, apperrors.ErrConflict.Error()
	case apperrors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, apperrors.ErrInvalidCredentials.Error()
	case apperrors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized, apperrors.ErrUnauthorized.Error()
	case apperrors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, "contact not found"
	case apperrors.Is(err, apperrors.ErrServiceUnavailable):
		return http.StatusInternalServerError, apperrors.ErrServiceUnavailable.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
