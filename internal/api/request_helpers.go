package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/velder/taskboard-api/internal/api/shared"
	"github.com/velder/taskboard-api/internal/domain"
)

// getAuthEmail extracts the authenticated caller's email from the request
// context. It writes a 401 response and returns false when the middleware
// did not attach one.
func getAuthEmail(w http.ResponseWriter, r *http.Request) (string, bool) {
	email, ok := shared.GetAuthEmail(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return "", false
	}
	return email, true
}

// getPathID extracts a positive int64 from the URL path parameters.
func getPathID(r *http.Request, paramName string) (int64, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return 0, fmt.Errorf("%w: %s is required", domain.ErrInvalidID, paramName)
	}

	id, err := strconv.ParseInt(pathParam, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s has invalid format", domain.ErrInvalidID, paramName)
	}

	return id, nil
}

// parsePageRange reads the start and end query parameters and derives the
// page index and size: index = start, size = end - start. A range that does
// not cover at least one element (end - start < 1) is rejected with
// ErrPaginationOutOfRange, whatever the individual values.
func parsePageRange(r *http.Request) (page, size int, err error) {
	start, err := parseQueryInt(r, "start")
	if err != nil {
		return 0, 0, err
	}

	end, err := parseQueryInt(r, "end")
	if err != nil {
		return 0, 0, err
	}

	if end-start < 1 {
		return 0, 0, ErrPaginationOutOfRange
	}
	if start < 0 {
		return 0, 0, ErrPaginationOutOfRange
	}

	return start, end - start, nil
}

func parseQueryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, fmt.Errorf("%w: query parameter %s is required", domain.ErrValidation, name)
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: query parameter %s must be an integer", domain.ErrValidation, name)
	}

	return value, nil
}
