package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Sypyx/certificatetrackermvp/internal/core/domain"
	"github.com/Sypyx/certificatetrackermvp/internal/core/ports"
	"github.com/Sypyx/certificatetrackermvp/internal/core/service"
)

// UsersHandler serves the manager-only user directory view.
type UsersHandler struct {
	directory ports.DirectoryService
	auth      ports.AuthService
	store     ports.SessionStore
}

func NewUsersHandler(directory ports.DirectoryService, auth ports.AuthService, store ports.SessionStore) *UsersHandler {
	return &UsersHandler{directory: directory, auth: auth, store: store}
}

type usersPage struct {
	Flash string
	Query string
	Users []userRow
}

type userRow struct {
	ID              int64
	Username        string
	Email           string
	Phone           string
	Role            string
	NextCertificate string
	DaysLeft        string
	CertificatesURL string
	NotifyURL       string
}

type createUserForm struct {
	Username string `form:"username" validate:"required"`
	Email    string `form:"email"    validate:"required"`
	Password string `form:"password" validate:"required"`
	Phone    string `form:"phone"`
	Role     string `form:"role"`
}

// List renders the directory. The name filter is applied to the fetched
// rows at render time; changing it never issues another upstream call for
// the same page load.
func (h *UsersHandler) List(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}

	pageFlash := takeFlash(c)
	users, err := h.directory.ListUsers(c.Request().Context(), sess)
	if err != nil {
		pageFlash = userMessage(err, msgUsersLoadFailed, msgUsersLoadFailed)
	}

	query := c.QueryParam("q")
	rows := make([]userRow, 0, len(users))
	for _, u := range service.FilterUsers(users, query) {
		rows = append(rows, newUserRow(u))
	}

	return c.Render(http.StatusOK, "users.html", usersPage{
		Flash: pageFlash,
		Query: query,
		Users: rows,
	})
}

// Create adds an account on behalf of the manager, reusing the auth
// service's registration endpoint with an explicit role.
func (h *UsersHandler) Create(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}

	var form createUserForm
	if err := c.Bind(&form); err != nil {
		flash(c, msgFillAllFields)
		return seeOther(c, service.PathUsers)
	}
	if err := c.Validate(&form); err != nil {
		flash(c, msgFillAllFields)
		return seeOther(c, service.PathUsers)
	}

	err = h.auth.RegisterManaged(c.Request().Context(), sess, ports.RegisterInput{
		Username: form.Username,
		Email:    form.Email,
		Password: form.Password,
		Phone:    form.Phone,
		Role:     form.Role,
	})
	if err != nil {
		flash(c, userMessage(err, msgFillAllFields, msgUserCreateFailed))
		return seeOther(c, service.PathUsers)
	}

	flash(c, msgUserCreated)
	return seeOther(c, service.PathUsers)
}

// NotifyConfirm renders the pending-action step for the per-user
// notification; the action fires only on the confirming POST.
func (h *UsersHandler) NotifyConfirm(c echo.Context) error {
	return renderConfirm(c, promptNotifyUser, c.Request().URL.Path, service.PathUsers)
}

func (h *UsersHandler) Notify(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	msg, err := h.directory.NotifyUser(c.Request().Context(), sess, userID)
	if err != nil {
		flash(c, userMessage(err, msgNotifyFailed, msgNotifyFailed))
		return seeOther(c, service.PathUsers)
	}
	flash(c, msg)
	return seeOther(c, service.PathUsers)
}

func newUserRow(u domain.User) userRow {
	row := userRow{
		ID:              u.ID,
		Username:        u.Username,
		Email:           u.Email,
		Phone:           dash(u.Phone),
		Role:            u.Role,
		NextCertificate: dash(u.NextCertificate),
		DaysLeft:        "—",
		CertificatesURL: service.CertificatesURL(domain.Subject{ID: u.ID, Username: u.Username}),
		NotifyURL:       "/users/" + strconv.FormatInt(u.ID, 10) + "/notify",
	}
	if u.DaysLeft != nil {
		row.DaysLeft = strconv.Itoa(*u.DaysLeft) + " дн."
	}
	return row
}

func dash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
