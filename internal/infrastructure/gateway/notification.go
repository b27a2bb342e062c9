package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
)

// NotificationClient implements ports.NotificationGateway against the
// notification service. Every call returns the upstream confirmation text,
// which the views surface verbatim.
type NotificationClient struct {
	baseClient
}

func NewNotificationClient(baseURL string, httpClient *http.Client, log zerolog.Logger) *NotificationClient {
	return &NotificationClient{baseClient: newBaseClient("notify", baseURL, httpClient, log)}
}

func (c *NotificationClient) NotifyCertificateEmail(ctx context.Context, credential string, certID int64) (string, error) {
	return c.post(ctx, credential, fmt.Sprintf("/notify/certificate/%d", certID))
}

func (c *NotificationClient) NotifyCertificateSMS(ctx context.Context, credential string, certID int64) (string, error) {
	return c.post(ctx, credential, fmt.Sprintf("/notify/sms/%d", certID))
}

func (c *NotificationClient) NotifyUser(ctx context.Context, credential string, userID int64) (string, error) {
	return c.post(ctx, credential, fmt.Sprintf("/notify/user/%d", userID))
}

func (c *NotificationClient) post(ctx context.Context, credential, path string) (string, error) {
	req, err := c.newRequest(ctx, http.MethodPost, path, credential, nil, "")
	if err != nil {
		return "", err
	}

	var resp struct {
		Msg string `json:"msg"`
	}
	if err := c.doJSON(req, &resp); err != nil {
		return "", err
	}
	return resp.Msg, nil
}
