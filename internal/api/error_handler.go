package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mouvement-ensemble/membership-portal/internal/api/metrics"
	"github.com/mouvement-ensemble/membership-portal/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps the auth error taxonomy and known domain errors to their HTTP codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// The auth gateway's uniform error shape → deterministic HTTP codes.
	var ae *domain.AuthError
	if errors.As(err, &ae) {
		switch ae.Kind {
		case domain.KindInvalidInput:
			return http.StatusBadRequest, ae.Message
		case domain.KindRejected:
			return http.StatusUnauthorized, ae.Message
		case domain.KindUnreachable:
			log.Warn().Err(ae).Str("path", c.Path()).Msg("member API unreachable")
			return http.StatusBadGateway, "member API unreachable"
		case domain.KindUnauthenticated:
			// The session was already cleared by the service layer.
			metrics.ForcedLogoutsTotal.Inc()
			return http.StatusUnauthorized, "session expired, please log in again"
		}
	}

	switch {
	case errors.Is(err, domain.ErrNoSession):
		return http.StatusUnauthorized, "not logged in"
	case errors.Is(err, domain.ErrLoginInFlight):
		return http.StatusTooManyRequests, "a login attempt is already in progress"
	case errors.Is(err, domain.ErrAdminOnly):
		return http.StatusForbidden, "admin role required"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
