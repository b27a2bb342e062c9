package handler

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/Sypyx/certificatetrackermvp/internal/api/middleware"
	"github.com/Sypyx/certificatetrackermvp/internal/core/domain"
	"github.com/Sypyx/certificatetrackermvp/internal/core/ports"
)

type stubSessionStore struct {
	session domain.Session
	present bool
	saved   []domain.Session
	cleared bool
}

func (s *stubSessionStore) Set(_ http.ResponseWriter, sess domain.Session) {
	s.saved = append(s.saved, sess)
}

func (s *stubSessionStore) Get(*http.Request) (domain.Session, bool) {
	return s.session, s.present
}

func (s *stubSessionStore) Clear(http.ResponseWriter) {
	s.cleared = true
}

type stubAuthService struct {
	loginFn           func(ctx context.Context, username, password string) (domain.Session, error)
	registerFn        func(ctx context.Context, in ports.RegisterInput) error
	registerManagedFn func(ctx context.Context, session domain.Session, in ports.RegisterInput) error
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (domain.Session, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) error {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) RegisterManaged(ctx context.Context, session domain.Session, in ports.RegisterInput) error {
	return s.registerManagedFn(ctx, session, in)
}

// captureRenderer records the last rendered view instead of producing HTML,
// so tests assert on the view model directly.
type captureRenderer struct {
	name string
	data any
}

func (r *captureRenderer) Render(_ io.Writer, name string, data any, _ echo.Context) error {
	r.name = name
	r.data = data
	return nil
}

func managerSession() domain.Session {
	return domain.Session{
		Credential: "manager-token",
		Identity:   domain.Identity{ID: 1, Username: "boss", Role: domain.RoleManager},
	}
}

func userSession() domain.Session {
	return domain.Session{
		Credential: "user-token",
		Identity:   domain.Identity{ID: 7, Username: "ivan", Role: domain.RoleUser},
	}
}

func newEcho() (*echo.Echo, *captureRenderer) {
	e := echo.New()
	r := &captureRenderer{}
	e.Renderer = r
	e.Validator = NewValidator()
	return e, r
}

func formRequest(method, target string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

// perform runs the handler behind the session middleware, the way the
// router wires it.
func perform(t *testing.T, e *echo.Echo, store *stubSessionStore, h echo.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := middleware.WithSession(store)(h)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

// performWithID is perform for routes carrying an :id path parameter.
func performWithID(t *testing.T, e *echo.Echo, store *stubSessionStore, h echo.HandlerFunc, req *http.Request, id string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)
	if err := middleware.WithSession(store)(h)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

// flashValue decodes the one-shot message the handler queued, if any.
func flashValue(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == "flash" && c.MaxAge >= 0 && c.Value != "" {
			raw, err := base64.URLEncoding.DecodeString(c.Value)
			if err != nil {
				t.Fatalf("decode flash: %v", err)
			}
			return string(raw)
		}
	}
	return ""
}

func redirectTarget(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	return rec.Header().Get("Location")
}

func TestAuthHandler_Login_ManagerLandsOnDirectory(t *testing.T) {
	e, _ := newEcho()
	store := &stubSessionStore{}
	auth := &stubAuthService{
		loginFn: func(_ context.Context, username, password string) (domain.Session, error) {
			if username != "boss" || password != "secret" {
				t.Fatalf("unexpected credentials: %s %s", username, password)
			}
			return managerSession(), nil
		},
	}
	h := NewAuthHandler(auth, store)

	req := formRequest(http.MethodPost, "/login", url.Values{"username": {"boss"}, "password": {"secret"}})
	rec := perform(t, e, store, h.Login, req)

	if got := redirectTarget(t, rec); got != "/users" {
		t.Fatalf("manager should land on /users, got %s", got)
	}
	if len(store.saved) != 1 || store.saved[0] != managerSession() {
		t.Fatalf("session must be persisted, got %+v", store.saved)
	}
}

func TestAuthHandler_Login_UserLandsOnOwnCertificates(t *testing.T) {
	e, _ := newEcho()
	store := &stubSessionStore{}
	auth := &stubAuthService{
		loginFn: func(context.Context, string, string) (domain.Session, error) {
			return userSession(), nil
		},
	}
	h := NewAuthHandler(auth, store)

	req := formRequest(http.MethodPost, "/login", url.Values{"username": {"ivan"}, "password": {"secret"}})
	rec := perform(t, e, store, h.Login, req)

	if got := redirectTarget(t, rec); got != "/certificates?user_id=7&username=ivan" {
		t.Fatalf("user should land on their own certificates, got %s", got)
	}
}

func TestAuthHandler_Login_RejectedSurfacesUpstreamMessage(t *testing.T) {
	e, _ := newEcho()
	store := &stubSessionStore{}
	auth := &stubAuthService{
		loginFn: func(context.Context, string, string) (domain.Session, error) {
			return domain.Session{}, &domain.UpstreamError{Service: "auth", Status: 401, Message: "Неправильный username или password"}
		},
	}
	h := NewAuthHandler(auth, store)

	req := formRequest(http.MethodPost, "/login", url.Values{"username": {"ivan"}, "password": {"bad"}})
	rec := perform(t, e, store, h.Login, req)

	if got := redirectTarget(t, rec); got != "/login" {
		t.Fatalf("rejected login should return to /login, got %s", got)
	}
	if len(store.saved) != 0 {
		t.Fatalf("no session may be persisted on rejection")
	}
	if got := flashValue(t, rec); got != "Неправильный username или password" {
		t.Fatalf("upstream message must surface verbatim, got %q", got)
	}
}

func TestAuthHandler_Login_EmptyFields(t *testing.T) {
	e, _ := newEcho()
	store := &stubSessionStore{}
	auth := &stubAuthService{
		loginFn: func(context.Context, string, string) (domain.Session, error) {
			return domain.Session{}, domain.ErrEmptyFields
		},
	}
	h := NewAuthHandler(auth, store)

	req := formRequest(http.MethodPost, "/login", url.Values{"username": {""}, "password": {""}})
	rec := perform(t, e, store, h.Login, req)

	if got := flashValue(t, rec); got != msgLoginFieldsRequired {
		t.Fatalf("expected %q, got %q", msgLoginFieldsRequired, got)
	}
}

func TestAuthHandler_Login_Unavailable(t *testing.T) {
	e, _ := newEcho()
	store := &stubSessionStore{}
	auth := &stubAuthService{
		loginFn: func(context.Context, string, string) (domain.Session, error) {
			return domain.Session{}, domain.ErrUnavailable
		},
	}
	h := NewAuthHandler(auth, store)

	req := formRequest(http.MethodPost, "/login", url.Values{"username": {"ivan"}, "password": {"secret"}})
	rec := perform(t, e, store, h.Login, req)

	if got := flashValue(t, rec); got != msgServerUnavailable {
		t.Fatalf("expected %q, got %q", msgServerUnavailable, got)
	}
}

func TestAuthHandler_LoginPage_ShowsFlashOnce(t *testing.T) {
	e, renderer := newEcho()
	store := &stubSessionStore{}
	h := NewAuthHandler(&stubAuthService{}, store)

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.AddCookie(&http.Cookie{
		Name:  "flash",
		Value: base64.URLEncoding.EncodeToString([]byte("Сертификат сохранён")),
	})
	rec := perform(t, e, store, h.LoginPage, req)

	if renderer.name != "login.html" {
		t.Fatalf("expected login view, got %q", renderer.name)
	}
	page, ok := renderer.data.(loginPage)
	if !ok {
		t.Fatalf("unexpected view model: %T", renderer.data)
	}
	if page.Flash != "Сертификат сохранён" {
		t.Fatalf("unexpected flash: %q", page.Flash)
	}

	// The flash cookie must be expired by the render.
	for _, c := range rec.Result().Cookies() {
		if c.Name == "flash" && c.MaxAge != -1 {
			t.Fatalf("flash cookie must be expired after display")
		}
	}
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e, _ := newEcho()
	store := &stubSessionStore{}
	auth := &stubAuthService{
		registerFn: func(_ context.Context, in ports.RegisterInput) error {
			if in.Username != "new" || in.Email != "new@example.com" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return nil
		},
	}
	h := NewAuthHandler(auth, store)

	req := formRequest(http.MethodPost, "/register", url.Values{
		"username": {"new"}, "email": {"new@example.com"}, "password": {"secret"},
	})
	rec := perform(t, e, store, h.Register, req)

	if got := redirectTarget(t, rec); got != "/login" {
		t.Fatalf("registration should land back on /login, got %s", got)
	}
	if got := flashValue(t, rec); got != msgRegisterDone {
		t.Fatalf("expected %q, got %q", msgRegisterDone, got)
	}
	if len(store.saved) != 0 {
		t.Fatalf("registration must not establish a session")
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	e, _ := newEcho()
	store := &stubSessionStore{session: userSession(), present: true}
	h := NewAuthHandler(&stubAuthService{}, store)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	rec := perform(t, e, store, h.Logout, req)

	if got := redirectTarget(t, rec); got != "/login" {
		t.Fatalf("logout should land on /login, got %s", got)
	}
	if !store.cleared {
		t.Fatalf("both session cookies must be cleared")
	}
}
