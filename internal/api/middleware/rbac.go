package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Sypyx/certificatetrackermvp/internal/core/service"
	sessioncookie "github.com/Sypyx/certificatetrackermvp/internal/infrastructure/session"
)

// RBAC restricts a view to sessions carrying one of the allowed roles.
// Denied sessions never see the page: they are flashed an access message and
// sent back to the login view.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, ok := CurrentSession(c)
			if !ok {
				return c.Redirect(http.StatusSeeOther, service.PathLogin)
			}
			if _, ok := allowed[sess.Identity.Role]; !ok {
				sessioncookie.SetFlash(c.Response(), "Доступ запрещён")
				return c.Redirect(http.StatusSeeOther, service.PathLogin)
			}
			return next(c)
		}
	}
}
