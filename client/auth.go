package client

import (
	"context"
	"net/http"

	"github.com/pettrack/console/session"
)

// AuthClient calls the platform auth endpoints. Login and Register run
// without a bearer token; the interceptor simply has nothing to attach.
type AuthClient struct {
	base *BaseClient
}

var _ session.AuthService = (*AuthClient)(nil)

// NewAuthClient returns an AuthClient over the shared base client
func NewAuthClient(base *BaseClient) *AuthClient {
	return &AuthClient{base: base}
}

// Login posts credentials and returns the issued token plus profile
func (c *AuthClient) Login(ctx context.Context, payload session.LoginPayload) (*session.LoginResult, error) {
	result := &session.LoginResult{}
	err := c.base.executeRequest(ctx, outboundRequest{
		method:      http.MethodPost,
		path:        "/auth/login",
		reqBodyObj:  payload,
		respObj:     result,
		successCode: http.StatusOK,
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Register creates an account. No meaningful response body is expected.
func (c *AuthClient) Register(ctx context.Context, payload session.RegisterPayload) error {
	return c.base.executeRequest(ctx, outboundRequest{
		method:      http.MethodPost,
		path:        "/auth/register",
		reqBodyObj:  payload,
		successCode: http.StatusCreated,
	})
}
