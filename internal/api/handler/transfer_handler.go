package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Sypyx/certificatetrackermvp/internal/api/metrics"
	"github.com/Sypyx/certificatetrackermvp/internal/core/domain"
	"github.com/Sypyx/certificatetrackermvp/internal/core/ports"
	"github.com/Sypyx/certificatetrackermvp/internal/core/service"
)

const (
	exportFilename  = "certificates_export.xlsx"
	spreadsheetMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// TransferHandler serves the manager-only bulk export/import round-trip on
// top of the certificate view.
type TransferHandler struct {
	transfer ports.TransferService
	certs    *CertificatesHandler
}

func NewTransferHandler(transfer ports.TransferService, certs *CertificatesHandler) *TransferHandler {
	return &TransferHandler{transfer: transfer, certs: certs}
}

// Export streams the upstream spreadsheet to the operator as a file
// download. An upstream failure surfaces a generic message back on the
// listing instead of a download.
func (h *TransferHandler) Export(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	listing, err := h.certs.listingURL(c)
	if errors.Is(err, domain.ErrNoSubject) {
		return seeOther(c, service.PathUsers)
	}
	if err != nil {
		return err
	}

	doc, err := h.transfer.Export(c.Request().Context(), sess)
	if err != nil {
		flash(c, userMessage(err, msgExportFailed, msgExportFailed))
		return seeOther(c, listing)
	}
	defer doc.Body.Close()

	contentType := doc.ContentType
	if contentType == "" {
		contentType = spreadsheetMIME
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+exportFilename+`"`)
	return c.Stream(http.StatusOK, contentType, doc.Body)
}

// Import forwards the uploaded spreadsheet for the subject carried in the
// URL, then renders the listing again with the per-row report on top, so
// the freshly created records and the report are visible together.
func (h *TransferHandler) Import(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	subject, err := h.certs.resolveSubject(c, sess)
	if errors.Is(err, domain.ErrNoSubject) {
		flash(c, msgImportNoSubject)
		return seeOther(c, service.PathUsers)
	}
	if err != nil {
		return err
	}
	listing := service.CertificatesURL(subject)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		flash(c, msgImportNoFile)
		return seeOther(c, listing)
	}
	file, err := fileHeader.Open()
	if err != nil {
		flash(c, msgImportNoFile)
		return seeOther(c, listing)
	}
	defer file.Close()

	report, err := h.transfer.Import(c.Request().Context(), sess, subject.ID, fileHeader.Filename, file)
	if err != nil {
		metrics.ImportsTotal.WithLabelValues("error").Inc()
		flash(c, importErrorMessage(err))
		return seeOther(c, listing)
	}
	metrics.ImportsTotal.WithLabelValues("ok").Inc()

	page, err := h.certs.buildPage(c, sess, subject, takeFlash(c), domain.CertificateForm{}, report)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "certificates.html", page)
}

// importErrorMessage keeps the import failure prefix in front of whatever
// the upstream answered, falling back to the generic transport text when it
// never answered at all.
func importErrorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrNoSubject):
		return msgImportNoSubject
	case errors.Is(err, domain.ErrUnavailable):
		return msgServerUnavailable
	case errors.Is(err, domain.ErrActionInFlight):
		return msgActionInFlight
	}
	var upstream *domain.UpstreamError
	if errors.As(err, &upstream) {
		return msgImportFailedPrefix + upstream.Message
	}
	return msgImportFailedPrefix + err.Error()
}
