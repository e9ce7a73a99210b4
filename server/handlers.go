package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	apperrors "github.com/jrsteele09/go-contacts-server/internal/errors"
)

const maxBodyBytes = 1 << 20

func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
	}
}

// decodeJSON reads a single JSON value from the request body. Unknown fields
// are ignored; a missing or malformed body is a validation error.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperrors.Validationf("request body is required")
		}
		return apperrors.Validationf("invalid request body: %s", err.Error())
	}
	if dec.More() {
		return apperrors.Validationf("request body must contain a single JSON value")
	}
	return nil
}

// parseBoolParam accepts the usual spellings of a boolean query value
func parseBoolParam(name, value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yes", "on":
		return true, nil
	case "no", "off":
		return false, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return false, apperrors.Validationf("%s must be a boolean", name)
	}
	return b, nil
}
