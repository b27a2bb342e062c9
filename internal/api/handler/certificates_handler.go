package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Sypyx/certificatetrackermvp/internal/core/domain"
	"github.com/Sypyx/certificatetrackermvp/internal/core/ports"
	"github.com/Sypyx/certificatetrackermvp/internal/core/service"
)

// CertificatesHandler serves the certificate view: the owner-scoped listing,
// the create/edit form and the per-certificate actions.
type CertificatesHandler struct {
	certs ports.CertificateService
	store ports.SessionStore
}

func NewCertificatesHandler(certs ports.CertificateService, store ports.SessionStore) *CertificatesHandler {
	return &CertificatesHandler{certs: certs, store: store}
}

type certificatesPage struct {
	Flash      string
	Title      string
	IsManager  bool
	NewFormURL string
	ExportURL  string
	ImportURL  string
	Rows       []certRow
	Form       *certFormView
	Report     *domain.ImportReport
}

type certRow struct {
	Index          int
	Name           string
	DateStart      string
	DateEnd        string
	DaysLeft       string
	EditURL        string
	DeleteURL      string
	NotifyEmailURL string
	NotifySMSURL   string
}

type certFormView struct {
	Title       string
	SubmitLabel string
	EditingID   int64
	Name        string
	DateStart   string
	DateEnd     string
	ActionURL   string
	CancelURL   string
	UserID      int64
	Username    string
}

type submitCertForm struct {
	Name      string `form:"name"       validate:"required"`
	DateStart string `form:"date_start" validate:"required"`
	DateEnd   string `form:"date_end"   validate:"required"`
	EditingID int64  `form:"editing_id"`
	UserID    string `form:"user_id"`
	Username  string `form:"username"`
}

// List renders the certificate view. The form state machine is driven by
// query state: ?form=create opens an empty form, ?edit=<id> opens the form
// pre-populated from that record, anything else shows the plain listing.
func (h *CertificatesHandler) List(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	subject, err := h.certs.ResolveSubject(sess, subjectParams(c))
	if errors.Is(err, domain.ErrNoSubject) {
		return seeOther(c, service.PathUsers)
	}
	if err != nil {
		return err
	}

	form := domain.CertificateForm{}
	if sess.IsManager() {
		if c.QueryParam("form") == "create" {
			form = domain.CreateForm()
		} else if raw := c.QueryParam("edit"); raw != "" {
			if id, parseErr := strconv.ParseInt(raw, 10, 64); parseErr == nil {
				form = domain.EditForm(id)
			}
		}
	}

	page, err := h.buildPage(c, sess, subject, takeFlash(c), form, nil)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "certificates.html", page)
}

// Submit creates or updates a certificate and then always returns to the
// listing: the form closes and the redirect re-fetches current server state
// whatever the outcome. Only local rejections and transport failures keep
// the form open, mirroring a submission that never produced a response.
func (h *CertificatesHandler) Submit(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}

	var form submitCertForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	subject, err := h.certs.ResolveSubject(sess, ports.SubjectParams{UserID: form.UserID, Username: form.Username})
	if errors.Is(err, domain.ErrNoSubject) {
		return seeOther(c, service.PathUsers)
	}
	if err != nil {
		return err
	}

	listing := service.CertificatesURL(subject)
	formURL := listing + "&form=create"
	state := domain.CreateForm()
	if form.EditingID != 0 {
		state = domain.EditForm(form.EditingID)
		formURL = listing + "&edit=" + strconv.FormatInt(form.EditingID, 10)
	}

	if err := c.Validate(&form); err != nil {
		flash(c, msgFillAllFields)
		return seeOther(c, formURL)
	}

	err = h.certs.Submit(c.Request().Context(), sess, subject, state, ports.CertificateInput{
		Name:      form.Name,
		DateStart: form.DateStart,
		DateEnd:   form.DateEnd,
	})
	switch {
	case err == nil:
		flash(c, msgCertSaved)
		return seeOther(c, listing)
	case errors.Is(err, domain.ErrEmptyFields):
		flash(c, msgFillAllFields)
		return seeOther(c, formURL)
	case errors.Is(err, domain.ErrUnavailable):
		flash(c, msgServerUnavailable)
		return seeOther(c, formURL)
	default:
		flash(c, userMessage(err, msgFillAllFields, msgCertSaveFailed))
		return seeOther(c, listing)
	}
}

func (h *CertificatesHandler) DeleteConfirm(c echo.Context) error {
	listing, err := h.listingURL(c)
	if errors.Is(err, domain.ErrNoSubject) {
		return seeOther(c, service.PathUsers)
	}
	if err != nil {
		return err
	}
	return renderConfirm(c, promptDeleteCert, c.Request().URL.RequestURI(), listing)
}

// Delete removes the certificate and returns to the listing regardless of
// the outcome, so the re-fetch always shows current server state.
func (h *CertificatesHandler) Delete(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	listing, err := h.listingURL(c)
	if errors.Is(err, domain.ErrNoSubject) {
		return seeOther(c, service.PathUsers)
	}
	if err != nil {
		return err
	}
	certID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid certificate id")
	}

	if err := h.certs.Delete(c.Request().Context(), sess, certID); err != nil {
		flash(c, userMessage(err, msgCertDeleteFailed, msgCertDeleteFailed))
	} else {
		flash(c, msgCertDeleted)
	}
	return seeOther(c, listing)
}

func (h *CertificatesHandler) NotifyEmailConfirm(c echo.Context) error {
	listing, err := h.listingURL(c)
	if errors.Is(err, domain.ErrNoSubject) {
		return seeOther(c, service.PathUsers)
	}
	if err != nil {
		return err
	}
	return renderConfirm(c, promptNotifyEmail, c.Request().URL.RequestURI(), listing)
}

func (h *CertificatesHandler) NotifyEmail(c echo.Context) error {
	return h.notify(c, msgNotifyFailed, h.certs.NotifyEmail)
}

func (h *CertificatesHandler) NotifySMSConfirm(c echo.Context) error {
	listing, err := h.listingURL(c)
	if errors.Is(err, domain.ErrNoSubject) {
		return seeOther(c, service.PathUsers)
	}
	if err != nil {
		return err
	}
	return renderConfirm(c, promptNotifySMS, c.Request().URL.RequestURI(), listing)
}

func (h *CertificatesHandler) NotifySMS(c echo.Context) error {
	return h.notify(c, msgNotifySMSFailed, h.certs.NotifySMS)
}

func (h *CertificatesHandler) notify(c echo.Context, fallback string, send func(ctx context.Context, sess domain.Session, certID int64) (string, error)) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	listing, err := h.listingURL(c)
	if errors.Is(err, domain.ErrNoSubject) {
		return seeOther(c, service.PathUsers)
	}
	if err != nil {
		return err
	}
	certID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid certificate id")
	}

	msg, err := send(c.Request().Context(), sess, certID)
	if err != nil {
		flash(c, userMessage(err, fallback, fallback))
	} else {
		flash(c, msg)
	}
	return seeOther(c, listing)
}

func (h *CertificatesHandler) resolveSubject(c echo.Context, sess domain.Session) (domain.Subject, error) {
	return h.certs.ResolveSubject(sess, subjectParams(c))
}

// listingURL resolves the subject carried in the request and rebuilds the
// listing URL from it. A manager without a subject gets domain.ErrNoSubject
// back; the caller decides where to send them.
func (h *CertificatesHandler) listingURL(c echo.Context) (string, error) {
	sess, err := currentSession(c)
	if err != nil {
		return "", err
	}
	subject, err := h.certs.ResolveSubject(sess, subjectParams(c))
	if err != nil {
		return "", err
	}
	return service.CertificatesURL(subject), nil
}

// buildPage assembles the certificate view model: fetch, ownership filter,
// per-render days-left computation and form pre-population. It is shared
// with the import flow, which renders the same view with a report attached.
func (h *CertificatesHandler) buildPage(c echo.Context, sess domain.Session, subject domain.Subject, pageFlash string, form domain.CertificateForm, report *domain.ImportReport) (certificatesPage, error) {
	certs, err := h.certs.ListFor(c.Request().Context(), sess, subject)
	if err != nil {
		pageFlash = userMessage(err, msgCertsLoadFailed, msgCertsLoadFailed)
		certs = nil
	}

	listing := service.CertificatesURL(subject)
	query := subjectQuery(subject)
	now := time.Now()

	rows := make([]certRow, 0, len(certs))
	for i, cert := range certs {
		id := strconv.FormatInt(cert.ID, 10)
		rows = append(rows, certRow{
			Index:          i + 1,
			Name:           cert.Name,
			DateStart:      cert.DateStart,
			DateEnd:        cert.DateEnd,
			DaysLeft:       daysLeftLabel(cert, now),
			EditURL:        listing + "&edit=" + id,
			DeleteURL:      service.PathCertificates + "/" + id + "/delete?" + query,
			NotifyEmailURL: service.PathCertificates + "/" + id + "/notify/email?" + query,
			NotifySMSURL:   service.PathCertificates + "/" + id + "/notify/sms?" + query,
		})
	}

	page := certificatesPage{
		Flash:      pageFlash,
		Title:      pageTitle(sess, subject),
		IsManager:  sess.IsManager(),
		NewFormURL: listing + "&form=create",
		ExportURL:  service.PathCertificates + "/export?" + query,
		ImportURL:  service.PathCertificates + "/import?" + query,
		Rows:       rows,
		Report:     report,
	}

	if sess.IsManager() && form.Mode() != domain.FormHidden {
		view := certFormView{
			Title:       "Новый сертификат",
			SubmitLabel: "Создать",
			ActionURL:   service.PathCertificates + "/submit",
			CancelURL:   listing,
			UserID:      subject.ID,
			Username:    subject.Username,
		}
		if id, editing := form.EditingID(); editing {
			for _, cert := range certs {
				if cert.ID == id {
					view.Title = "Редактировать сертификат"
					view.SubmitLabel = "Сохранить"
					view.EditingID = id
					view.Name = cert.Name
					view.DateStart = cert.DateStart
					view.DateEnd = cert.DateEnd
					page.Form = &view
					break
				}
			}
			// An edit target that is not in the listing leaves the form
			// closed: the record is gone or belongs to someone else.
		} else {
			page.Form = &view
		}
	}

	return page, nil
}

func daysLeftLabel(cert domain.Certificate, now time.Time) string {
	days, err := cert.DaysLeft(now)
	if err != nil {
		return "—"
	}
	if days < 0 {
		return "Истёк"
	}
	return fmt.Sprintf("%d дн.", days)
}

func pageTitle(sess domain.Session, subject domain.Subject) string {
	if sess.IsManager() {
		return fmt.Sprintf("Certificate Tracker — сертификаты пользователя %s", subject.Username)
	}
	return "Certificate Tracker — мои сертификаты"
}

func subjectQuery(subject domain.Subject) string {
	return fmt.Sprintf("user_id=%d&username=%s", subject.ID, url.QueryEscape(subject.Username))
}
