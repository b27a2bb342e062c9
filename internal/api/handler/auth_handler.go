package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Sypyx/certificatetrackermvp/internal/api/metrics"
	"github.com/Sypyx/certificatetrackermvp/internal/core/ports"
	"github.com/Sypyx/certificatetrackermvp/internal/core/service"
)

// AuthHandler serves the login view and drives the session lifecycle.
type AuthHandler struct {
	auth  ports.AuthService
	store ports.SessionStore
}

func NewAuthHandler(auth ports.AuthService, store ports.SessionStore) *AuthHandler {
	return &AuthHandler{auth: auth, store: store}
}

type loginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

type registerForm struct {
	Username string `form:"username"`
	Email    string `form:"email"`
	Password string `form:"password"`
	Phone    string `form:"phone"`
	Role     string `form:"role"`
}

type loginPage struct {
	Flash string
}

// LoginPage renders the combined login/registration view. The bootstrap
// middleware has already steered authenticated sessions away.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", loginPage{Flash: takeFlash(c)})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var form loginForm
	if err := c.Bind(&form); err != nil {
		flash(c, msgLoginFieldsRequired)
		return seeOther(c, service.PathLogin)
	}

	sess, err := h.auth.Login(c.Request().Context(), form.Username, form.Password)
	if err != nil {
		flash(c, userMessage(err, msgLoginFieldsRequired, msgLoginFailed))
		return seeOther(c, service.PathLogin)
	}

	h.store.Set(c.Response(), sess)
	metrics.SessionsEstablishedTotal.WithLabelValues(sess.Identity.Role).Inc()
	return seeOther(c, service.Landing(sess.Identity))
}

// Register handles self-registration. Success lands back on the login view;
// it never authenticates the fresh account.
func (h *AuthHandler) Register(c echo.Context) error {
	var form registerForm
	if err := c.Bind(&form); err != nil {
		flash(c, msgFillAllFields)
		return seeOther(c, service.PathLogin)
	}

	err := h.auth.Register(c.Request().Context(), ports.RegisterInput{
		Username: form.Username,
		Email:    form.Email,
		Password: form.Password,
		Phone:    form.Phone,
	})
	if err != nil {
		flash(c, userMessage(err, msgFillAllFields, msgRegisterFailed))
		return seeOther(c, service.PathLogin)
	}

	flash(c, msgRegisterDone)
	return seeOther(c, service.PathLogin)
}

// Logout destroys both halves of the persisted session in one go.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.store.Clear(c.Response())
	return seeOther(c, service.PathLogin)
}
