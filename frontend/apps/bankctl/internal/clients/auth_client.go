package clients

import (
	"context"
	"net/http"
	"net/url"

	"bankportal/frontend/apps/bankctl/internal/models"
)

// AuthClient calls the /auth endpoints.
type AuthClient struct {
	base *BaseClient
}

// NewAuthClient returns client.
func NewAuthClient(base *BaseClient) *AuthClient {
	return &AuthClient{base: base}
}

// Register creates a user (and its default account) on the backend.
func (c *AuthClient) Register(ctx context.Context, req models.RegisterRequest) (*models.RegisterResult, error) {
	var out models.RegisterResult
	if err := c.base.DoJSON(ctx, Request{
		Method: http.MethodPost,
		Path:   "/auth/register",
		JSON:   req,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Token exchanges credentials for an access token using the OAuth2 password form.
// A 2xx reply that is not a JSON object yields an empty result rather than an error;
// the caller decides what a missing token means.
func (c *AuthClient) Token(ctx context.Context, username, password string) (*models.LoginResult, error) {
	resp, err := c.base.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   "/auth/token",
		Form: url.Values{
			"username": {username},
			"password": {password},
		},
	})
	if err != nil {
		return nil, err
	}

	out := &models.LoginResult{}
	fields, ok := resp.Data.(map[string]interface{})
	if !ok {
		return out, nil
	}
	out.AccessToken, _ = fields["access_token"].(string)
	out.TokenType, _ = fields["token_type"].(string)
	return out, nil
}
