// Package httpserver contains the REST handlers and middleware.
//
// It exposes the platform's API surface: auth, tutoring, code evaluation,
// resume analysis, mock interviews, dashboard stats, achievements, and the
// leaderboard. HTTP concerns stay here; behavior lives in the usecases.
package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/learnovatex/platform/internal/domain"
)

type errorEnvelope struct {
	Error apiError `json:"error"`
}

type apiError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorStatus maps domain sentinels to their HTTP status and wire code.
// Order matters only in that the first matching sentinel wins.
var errorStatus = []struct {
	sentinel error
	status   int
	code     string
}{
	{domain.ErrInvalidArgument, http.StatusBadRequest, "INVALID_ARGUMENT"},
	{domain.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
	{domain.ErrConflict, http.StatusConflict, "CONFLICT"},
	{domain.ErrRateLimited, http.StatusTooManyRequests, "RATE_LIMITED"},
	{domain.ErrUpstreamTimeout, http.StatusServiceUnavailable, "UPSTREAM_TIMEOUT"},
}

func writeError(w http.ResponseWriter, _ *http.Request, err error, details interface{}) {
	status, code := http.StatusInternalServerError, "INTERNAL"
	for _, m := range errorStatus {
		if errors.Is(err, m.sentinel) {
			status, code = m.status, m.code
			break
		}
	}
	writeJSON(w, status, errorEnvelope{Error: apiError{Code: code, Message: err.Error(), Details: details}})
}
