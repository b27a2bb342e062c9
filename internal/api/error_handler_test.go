package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Sypyx/certificatetrackermvp/internal/core/domain"
)

func handleError(err error) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/certificates", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	NewHTTPErrorHandler(zerolog.Nop())(err, c)
	return rec
}

func TestHTTPErrorHandler_AuthErrorsRedirectToLogin(t *testing.T) {
	for _, err := range []error{
		domain.ErrUnauthenticated,
		domain.ErrForbidden,
		echo.NewHTTPError(http.StatusUnauthorized, "missing session"),
	} {
		rec := handleError(err)
		if rec.Code != http.StatusSeeOther {
			t.Fatalf("%v: expected 303, got %d", err, rec.Code)
		}
		if got := rec.Header().Get("Location"); got != "/login" {
			t.Fatalf("%v: expected redirect to /login, got %s", err, got)
		}
	}
}

func TestHTTPErrorHandler_EchoError(t *testing.T) {
	rec := handleError(echo.NewHTTPError(http.StatusNotFound, "not found"))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestHTTPErrorHandler_UnexpectedError(t *testing.T) {
	rec := handleError(errors.New("boom"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if rec.Body.String() == "boom" {
		t.Fatalf("internal details must not leak to the client")
	}
}
