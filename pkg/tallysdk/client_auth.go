package tallysdk

import (
	"context"
	"net/http"
)

// Register creates an account and returns a session for it.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*Session, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, c.apiURL("/auth/register"), req, "")
	if err != nil {
		return nil, err
	}

	var out AuthResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}

	return newSession(c, out), nil
}

// Login signs in with an email or username.
func (c *Client) Login(ctx context.Context, emailOrUsername, password string) (*Session, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, c.apiURL("/auth/login"), LoginRequest{
		EmailOrUsername: emailOrUsername,
		Password:        password,
	}, "")
	if err != nil {
		return nil, err
	}

	var out AuthResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}

	return newSession(c, out), nil
}

// Refresh exchanges refreshToken for a new pair. The old refresh token is
// spent whether or not the caller keeps the result.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, c.apiURL("/auth/refresh"), RefreshRequest{
		RefreshToken: refreshToken,
	}, "")
	if err != nil {
		return nil, err
	}

	var out AuthResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}

	return &out, nil
}

// ResumeSession rebuilds a session from a stored refresh token.
func (c *Client) ResumeSession(ctx context.Context, refreshToken string) (*Session, error) {
	out, err := c.Refresh(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	return newSession(c, *out), nil
}
