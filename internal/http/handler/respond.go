package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"jot/internal/memo"
)

var validate = validator.New()

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// writeMemoError maps service sentinels to HTTP statuses. Anything unexpected
// is logged and surfaced as a generic failure so store internals never leak.
func writeMemoError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, memo.ErrNotFound):
		writeError(w, http.StatusNotFound, "memo not found")
	case errors.Is(err, memo.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, memo.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, memo.ErrEmptyContent):
		writeError(w, http.StatusBadRequest, "content required")
	default:
		log.Error().Err(err).Msg("memo operation failed")
		writeError(w, http.StatusInternalServerError, "server error")
	}
}
