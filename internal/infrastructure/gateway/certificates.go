package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/Sypyx/certificatetrackermvp/internal/api/metrics"
	"github.com/Sypyx/certificatetrackermvp/internal/core/domain"
	"github.com/Sypyx/certificatetrackermvp/internal/core/ports"
)

// CertificateClient implements ports.CertificateGateway against the
// certificate service.
type CertificateClient struct {
	baseClient
}

func NewCertificateClient(baseURL string, httpClient *http.Client, log zerolog.Logger) *CertificateClient {
	return &CertificateClient{baseClient: newBaseClient("certificates", baseURL, httpClient, log)}
}

type certificateRequest struct {
	Name      string `json:"name"`
	DateStart string `json:"date_start"`
	DateEnd   string `json:"date_end"`
	OwnerID   int64  `json:"owner_id"`
}

func (c *CertificateClient) List(ctx context.Context, credential string) ([]domain.Certificate, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/certificates/", credential, nil, "")
	if err != nil {
		return nil, err
	}

	var resp struct {
		Certificates []domain.Certificate `json:"certificates"`
	}
	if err := c.doJSON(req, &resp); err != nil {
		return nil, err
	}
	return resp.Certificates, nil
}

func (c *CertificateClient) Create(ctx context.Context, credential string, in ports.CertificateInput) error {
	body, err := jsonBody(certificateRequest{Name: in.Name, DateStart: in.DateStart, DateEnd: in.DateEnd, OwnerID: in.OwnerID})
	if err != nil {
		return err
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/certificates/", credential, body, "application/json")
	if err != nil {
		return err
	}
	return c.doJSON(req, nil)
}

func (c *CertificateClient) Update(ctx context.Context, credential string, certID int64, in ports.CertificateInput) error {
	body, err := jsonBody(certificateRequest{Name: in.Name, DateStart: in.DateStart, DateEnd: in.DateEnd, OwnerID: in.OwnerID})
	if err != nil {
		return err
	}
	req, err := c.newRequest(ctx, http.MethodPut, fmt.Sprintf("/certificates/%d", certID), credential, body, "application/json")
	if err != nil {
		return err
	}
	return c.doJSON(req, nil)
}

func (c *CertificateClient) Delete(ctx context.Context, credential string, certID int64) error {
	req, err := c.newRequest(ctx, http.MethodDelete, fmt.Sprintf("/certificates/%d", certID), credential, nil, "")
	if err != nil {
		return err
	}
	return c.doJSON(req, nil)
}

// Export streams the spreadsheet back without reading it into memory. The
// caller owns the returned body.
func (c *CertificateClient) Export(ctx context.Context, credential string) (*ports.ExportDocument, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/certificates/export", credential, nil, "")
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		metrics.UpstreamRequestsTotal.WithLabelValues(c.service, metrics.OutcomeRejected).Inc()
		return nil, &domain.UpstreamError{Service: c.service, Status: resp.StatusCode, Message: upstreamMessage(body)}
	}
	metrics.UpstreamRequestsTotal.WithLabelValues(c.service, metrics.OutcomeOK).Inc()
	return &ports.ExportDocument{ContentType: resp.Header.Get("Content-Type"), Body: resp.Body}, nil
}

// Import submits the spreadsheet plus the designated owner as a multipart
// payload. On rejection the error message falls back to a raw dump of the
// response body when the upstream did not send a structured one.
func (c *CertificateClient) Import(ctx context.Context, credential string, ownerID int64, filename string, file io.Reader) (*domain.ImportReport, error) {
	var payload bytes.Buffer
	form := multipart.NewWriter(&payload)
	part, err := form.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("%s: build multipart: %w", c.service, err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("%s: copy upload: %w", c.service, err)
	}
	if err := form.WriteField("user_id", strconv.FormatInt(ownerID, 10)); err != nil {
		return nil, fmt.Errorf("%s: build multipart: %w", c.service, err)
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("%s: build multipart: %w", c.service, err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/certificates/import", credential, &payload, form.FormDataContentType())
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: read response: %w", c.service, err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		metrics.UpstreamRequestsTotal.WithLabelValues(c.service, metrics.OutcomeRejected).Inc()
		msg := upstreamMessage(body)
		if msg == "" {
			msg = string(body)
		}
		return nil, &domain.UpstreamError{Service: c.service, Status: resp.StatusCode, Message: msg}
	}
	metrics.UpstreamRequestsTotal.WithLabelValues(c.service, metrics.OutcomeOK).Inc()

	var report domain.ImportReport
	if err := json.Unmarshal(body, &report); err != nil {
		return nil, fmt.Errorf("%s: decode report: %w", c.service, err)
	}
	return &report, nil
}
