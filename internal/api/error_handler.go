package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tkaing/ecologie-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all non-validation API
// errors. Validation failures use their own {"errors": [...]} envelope at
// the handler level.
type errorResponse struct {
	Message string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"message": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Message: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from the router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes. Messages stay French,
	// like the validation messages.
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "Document introuvable."
	case errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest, "Identifiant invalide."
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Mot de passe incorrect."
	case errors.Is(err, domain.ErrTooManyAttempts):
		return http.StatusTooManyRequests, "Trop de tentatives, réessayez plus tard."
	case errors.Is(err, domain.ErrLoginNotSupported):
		return http.StatusNotFound, "Document introuvable."
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Une erreur interne est survenue."
}
