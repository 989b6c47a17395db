package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/isdelr/movie-catalog-be/internal/auth"
	"github.com/isdelr/movie-catalog-be/internal/services"
	"github.com/isdelr/movie-catalog-be/internal/store"
	"github.com/rs/zerolog/log"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func decodeStrict(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// writeError maps a service error to a status code and a generic message.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials), auth.IsTokenError(err):
		auth.Unauthorized(w, auth.ErrInvalidCredentials.Error())
	case errors.Is(err, auth.ErrAlreadyExists):
		writeDetail(w, http.StatusBadRequest, auth.ErrAlreadyExists.Error())
	case errors.Is(err, auth.ErrInactiveAccount):
		writeDetail(w, http.StatusBadRequest, auth.ErrInactiveAccount.Error())
	case errors.Is(err, services.ErrInvalidInput):
		writeDetail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrMovieNotFound), errors.Is(err, store.ErrNotFound):
		writeDetail(w, http.StatusNotFound, err.Error())
	default:
		log.Error().Err(err).Msg("Unhandled request error")
		writeDetail(w, http.StatusInternalServerError, "internal error")
	}
}
