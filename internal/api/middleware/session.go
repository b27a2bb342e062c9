package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Sypyx/certificatetrackermvp/internal/core/domain"
	"github.com/Sypyx/certificatetrackermvp/internal/core/ports"
	"github.com/Sypyx/certificatetrackermvp/internal/core/service"
)

const sessionKey = "session"

// WithSession resolves the persisted session once per request and stashes it
// in the echo context. It never redirects; gating is Bootstrap's job.
func WithSession(store ports.SessionStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if s, ok := store.Get(c.Request()); ok {
				c.Set(sessionKey, s)
			}
			return next(c)
		}
	}
}

// CurrentSession returns the session resolved by WithSession, if any.
func CurrentSession(c echo.Context) (domain.Session, bool) {
	s, ok := c.Get(sessionKey).(domain.Session)
	return s, ok
}

// Bootstrap applies the page-load gating decision for the given view:
// unauthenticated requests are sent to the login view, and authenticated
// ones are steered away from it toward their landing page.
func Bootstrap(view service.View) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, ok := CurrentSession(c)
			if d := service.Bootstrap(view, sess, ok); d.Redirect {
				return c.Redirect(http.StatusSeeOther, d.Target)
			}
			return next(c)
		}
	}
}
