package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/mkanyika/shamba/internal/domain"
)

// maxBodyBytes caps JSON request bodies. Image uploads have their own limit.
const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func errorJSON(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// serviceError maps domain sentinels onto HTTP status codes; anything else
// is a 500 with a generic body.
func (s *Server) serviceError(w http.ResponseWriter, err error, what string) {
	switch {
	case errors.Is(err, domain.ErrFarmNotFound), errors.Is(err, domain.ErrNotFound):
		errorJSON(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, domain.ErrInvalidType),
		errors.Is(err, domain.ErrInvalidCategory),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrValidation):
		errorJSON(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error(what, "error", err)
		errorJSON(w, http.StatusInternalServerError, "internal error")
	}
}

// queryRange builds an optional date range from from/to query parameters.
func queryRange(r *http.Request) *domain.DateRange {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" && to == "" {
		return nil
	}
	return &domain.DateRange{Start: from, End: to}
}

// queryLimit parses the limit query parameter; 0 means unbounded.
func queryLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, fmt.Errorf("invalid limit %q", raw)
	}
	return limit, nil
}
