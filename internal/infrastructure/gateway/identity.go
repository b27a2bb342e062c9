package gateway

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Sypyx/certificatetrackermvp/internal/core/domain"
	"github.com/Sypyx/certificatetrackermvp/internal/core/ports"
)

// IdentityClient implements ports.IdentityGateway against the auth service.
type IdentityClient struct {
	baseClient
}

func NewIdentityClient(baseURL string, httpClient *http.Client, log zerolog.Logger) *IdentityClient {
	return &IdentityClient{baseClient: newBaseClient("auth", baseURL, httpClient, log)}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string          `json:"access_token"`
	User        domain.Identity `json:"user"`
}

func (c *IdentityClient) Login(ctx context.Context, username, password string) (domain.Session, error) {
	body, err := jsonBody(loginRequest{Username: username, Password: password})
	if err != nil {
		return domain.Session{}, err
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/auth/login", "", body, "application/json")
	if err != nil {
		return domain.Session{}, err
	}

	var resp loginResponse
	if err := c.doJSON(req, &resp); err != nil {
		return domain.Session{}, err
	}
	// A 2xx answer without a credential is still a rejection.
	if resp.AccessToken == "" {
		return domain.Session{}, &domain.UpstreamError{Service: c.service, Status: http.StatusOK}
	}
	return domain.Session{Credential: resp.AccessToken, Identity: resp.User}, nil
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

func (c *IdentityClient) Register(ctx context.Context, in ports.RegisterInput) error {
	return c.register(ctx, "", in)
}

func (c *IdentityClient) RegisterManaged(ctx context.Context, credential string, in ports.RegisterInput) error {
	return c.register(ctx, credential, in)
}

func (c *IdentityClient) register(ctx context.Context, credential string, in ports.RegisterInput) error {
	body, err := jsonBody(registerRequest{
		Username: in.Username,
		Email:    in.Email,
		Password: in.Password,
		Phone:    in.Phone,
		Role:     in.Role,
	})
	if err != nil {
		return err
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/auth/register", credential, body, "application/json")
	if err != nil {
		return err
	}
	return c.doJSON(req, nil)
}
