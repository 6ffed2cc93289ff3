package client

import (
	"context"
	"time"

	"voltworks/pkg/model"
)

// AuthClient talks to the external auth service. Credential checking and
// token issuing happen there; the dashboard only relays.
type AuthClient struct {
	httpClient *HttpClient
}

func NewAuthClient(baseURL string, timeout time.Duration) *AuthClient {
	return &AuthClient{
		httpClient: NewHttpClient(baseURL, timeout),
	}
}

func (c *AuthClient) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	resp, err := c.httpClient.POST(ctx, "/api/v1/auth/login", req)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, upstreamError(resp)
	}

	var login model.LoginResponse
	if err := decodeData(resp, &login); err != nil {
		return nil, err
	}
	return &login, nil
}

func (c *AuthClient) Logout(ctx context.Context, token string) error {
	resp, err := c.httpClient.POST(ctx, "/api/v1/auth/logout", map[string]string{"token": token})
	if err != nil {
		return err
	}
	if !resp.IsSuccess() {
		return upstreamError(resp)
	}
	return nil
}
