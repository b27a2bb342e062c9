package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Sypyx/certificatetrackermvp/internal/api/middleware"
	"github.com/Sypyx/certificatetrackermvp/internal/core/domain"
	"github.com/Sypyx/certificatetrackermvp/internal/core/ports"
	sessioncookie "github.com/Sypyx/certificatetrackermvp/internal/infrastructure/session"
)

// currentSession pulls the session injected by the session middleware.
// Protected routes are gated before the handler runs, so a miss means a
// wiring bug; it is answered with 401, which the error handler turns into a
// login redirect.
func currentSession(c echo.Context) (domain.Session, error) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		return domain.Session{}, echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	return sess, nil
}

func subjectParams(c echo.Context) ports.SubjectParams {
	return ports.SubjectParams{
		UserID:   c.QueryParam("user_id"),
		Username: c.QueryParam("username"),
	}
}

func flash(c echo.Context, msg string) {
	sessioncookie.SetFlash(c.Response(), msg)
}

func takeFlash(c echo.Context) string {
	return sessioncookie.TakeFlash(c.Response(), c.Request())
}

func seeOther(c echo.Context, target string) error {
	return c.Redirect(http.StatusSeeOther, target)
}

// confirmPage is the data for the generic pending-action confirmation view.
type confirmPage struct {
	Prompt    string
	ActionURL string
	CancelURL string
}

func renderConfirm(c echo.Context, prompt, actionURL, cancelURL string) error {
	return c.Render(http.StatusOK, "confirm.html", confirmPage{
		Prompt:    prompt,
		ActionURL: actionURL,
		CancelURL: cancelURL,
	})
}
