// Package gateway contains the HTTP clients for the four upstream services
// (auth, user directory, certificates, notification dispatch). All clients
// share the same plumbing: the bearer credential is attached at dispatch
// time, non-success statuses become *domain.UpstreamError carrying the
// upstream's own message, and transport failures map to domain.ErrUnavailable.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/Sypyx/certificatetrackermvp/internal/api/metrics"
	"github.com/Sypyx/certificatetrackermvp/internal/core/domain"
)

type baseClient struct {
	service string // label used in errors, logs and metrics
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

func newBaseClient(service, baseURL string, httpClient *http.Client, log zerolog.Logger) baseClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return baseClient{service: service, baseURL: baseURL, http: httpClient, log: log}
}

func (c *baseClient) newRequest(ctx context.Context, method, path, credential string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", c.service, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if credential != "" {
		req.Header.Set("Authorization", "Bearer "+credential)
	}
	return req, nil
}

// do issues the request once. A transport-level failure is logged and
// wrapped in domain.ErrUnavailable so callers can surface the distinct
// "server unavailable" message.
func (c *baseClient) do(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues(c.service).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(c.service, metrics.OutcomeUnavailable).Inc()
		c.log.Error().Err(err).
			Str("service", c.service).
			Str("method", req.Method).
			Str("url", req.URL.String()).
			Msg("upstream unreachable")
		return nil, fmt.Errorf("%s: %w", c.service, domain.ErrUnavailable)
	}
	return resp, nil
}

// doJSON issues the request, maps non-success statuses to *domain.UpstreamError
// and decodes a 2xx JSON body into out when out is non-nil.
func (c *baseClient) doJSON(req *http.Request, out any) error {
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: read response: %w", c.service, err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		metrics.UpstreamRequestsTotal.WithLabelValues(c.service, metrics.OutcomeRejected).Inc()
		return &domain.UpstreamError{Service: c.service, Status: resp.StatusCode, Message: upstreamMessage(body)}
	}
	metrics.UpstreamRequestsTotal.WithLabelValues(c.service, metrics.OutcomeOK).Inc()

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("%s: decode response: %w", c.service, err)
		}
	}
	return nil
}

func jsonBody(v any) (io.Reader, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(raw), nil
}

// upstreamMessage extracts the conventional message field from an error
// body. The services are not consistent about its name: the Flask services
// answer {"msg": ...}, the import endpoint answers {"error": ...}. An empty
// result means the caller should fall back to its generic message.
func upstreamMessage(body []byte) string {
	var envelope struct {
		Msg   string `json:"msg"`
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	if envelope.Msg != "" {
		return envelope.Msg
	}
	return envelope.Error
}
