package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Sypyx/certificatetrackermvp/internal/core/domain"
	"github.com/Sypyx/certificatetrackermvp/internal/core/service"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Sends requests that lost their session back to the login view.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders everything else as a plain-text status page.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		// A missing or denied session means the page cannot be shown at
		// all; the login view is the only place left to go.
		if isAuthError(err) {
			_ = c.Redirect(http.StatusSeeOther, service.PathLogin)
			return
		}

		// Echo's own errors (bind failures, 404 from the router, etc.)
		var he *echo.HTTPError
		if errors.As(err, &he) {
			_ = c.String(he.Code, fmt.Sprintf("%v", he.Message))
			return
		}

		// Unexpected error: log the real cause, return a generic page.
		log.Error().
			Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("unhandled error")

		_ = c.String(http.StatusInternalServerError, "Внутренняя ошибка сервера.")
	}
}

func isAuthError(err error) bool {
	if errors.Is(err, domain.ErrUnauthenticated) || errors.Is(err, domain.ErrForbidden) {
		return true
	}
	var he *echo.HTTPError
	return errors.As(err, &he) && he.Code == http.StatusUnauthorized
}
