// Package authapi is the low-level client for the authentication endpoints
// (POST /auth/login, POST /auth/refresh). It knows nothing about persistence
// or retries; the session manager owns those concerns.
package authapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRefreshRejected    = errors.New("refresh token rejected")
)

const (
	loginPath   = "/auth/login"
	refreshPath = "/auth/refresh"
)

// Client calls the authentication endpoints of the desk server.
type Client struct {
	rest *resty.Client
	log  zerolog.Logger
}

// ClientOption defines a function type to modify the Client instance.
type ClientOption func(*Client)

// WithLogger sets the logger used for request diagnostics.
func WithLogger(log zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.log = log
	}
}

// WithTimeout sets a client-enforced timeout on auth calls. Zero leaves
// deadlines to the underlying transport.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.rest.SetTimeout(timeout)
	}
}

// New creates an auth API client for the given base URL.
func New(baseURL string, options ...ClientOption) *Client {
	c := &Client{
		rest: resty.New().SetBaseURL(baseURL),
		log:  zerolog.Nop(),
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// Login exchanges a username and password for tokens and the user record.
// Failed logins are never retried here; the caller decides whether to offer
// a retry affordance.
func (c *Client) Login(ctx context.Context, username, password string) (*TokenResponse, error) {
	var (
		tokenResponse TokenResponse
		errorResponse ErrorResponse
	)

	resp, err := c.rest.R().
		SetContext(ctx).
		SetBody(&LoginRequest{Username: username, Password: password}).
		SetResult(&tokenResponse).
		SetError(&errorResponse).
		Post(loginPath)
	if err != nil {
		return nil, errors.Wrap(err, "[Client.Login] post")
	}

	if resp.StatusCode() == http.StatusUnauthorized || resp.StatusCode() == http.StatusForbidden {
		c.log.Debug().Str("username", username).Msg("login rejected")
		return nil, errors.Wrap(ErrInvalidCredentials, errorResponse.String())
	}
	if !resp.IsSuccess() {
		return nil, errors.Errorf("[Client.Login] unexpected status %d: %s", resp.StatusCode(), errorResponse.String())
	}
	if tokenResponse.AccessToken == nil || *tokenResponse.AccessToken == "" {
		return nil, errors.New("[Client.Login] response missing access token")
	}

	return &tokenResponse, nil
}

// Refresh exchanges a refresh token for a new access token.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	if refreshToken == "" {
		return nil, errors.Wrap(ErrRefreshRejected, "no refresh token")
	}

	var (
		tokenResponse TokenResponse
		errorResponse ErrorResponse
	)

	resp, err := c.rest.R().
		SetContext(ctx).
		SetBody(&RefreshRequest{RefreshToken: refreshToken}).
		SetResult(&tokenResponse).
		SetError(&errorResponse).
		Post(refreshPath)
	if err != nil {
		return nil, errors.Wrap(err, "[Client.Refresh] post")
	}

	if !resp.IsSuccess() {
		c.log.Debug().Int("status", resp.StatusCode()).Msg("refresh rejected")
		return nil, errors.Wrap(ErrRefreshRejected, errorResponse.String())
	}
	if tokenResponse.AccessToken == nil || *tokenResponse.AccessToken == "" {
		return nil, errors.Wrap(ErrRefreshRejected, "response missing access token")
	}

	return &tokenResponse, nil
}
