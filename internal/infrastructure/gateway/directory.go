package gateway

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Sypyx/certificatetrackermvp/internal/core/domain"
)

// DirectoryClient implements ports.DirectoryGateway against the user service.
type DirectoryClient struct {
	baseClient
}

func NewDirectoryClient(baseURL string, httpClient *http.Client, log zerolog.Logger) *DirectoryClient {
	return &DirectoryClient{baseClient: newBaseClient("users", baseURL, httpClient, log)}
}

func (c *DirectoryClient) ListUsers(ctx context.Context, credential string) ([]domain.User, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/users/", credential, nil, "")
	if err != nil {
		return nil, err
	}

	var resp struct {
		Users []domain.User `json:"users"`
	}
	if err := c.doJSON(req, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}
