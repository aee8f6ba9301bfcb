// Package transport implements the shared authenticated HTTP pipeline. Every
// outbound request carries the current bearer token; a 401 response triggers
// at most one silent token refresh and one replay of the original request.
// Refresh failure escalates to a forced sign-out via the session's Expire.
package transport

import (
	"context"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

// ErrNetwork marks transport-level failures where no response arrived at
// all. Callers distinguish it from a rejected request to decide whether to
// offer a retry affordance.
var ErrNetwork = errors.New("network failure")

// expiredMessage accompanies the forced navigation to the sign-in route.
const expiredMessage = "Your session has expired. Please sign in again."

// Session is the slice of the session manager the pipeline needs. The
// pipeline only reads tokens and triggers Refresh/Expire; it never writes
// credential storage itself.
type Session interface {
	oauth2.TokenSource
	Refresh(ctx context.Context) (*oauth2.Token, error)
	Expire(message string)
}

// retriedKey marks a request that has already been replayed once. Marked
// requests that fail authentication again are never retried, which bounds
// amplification to one extra round-trip per logical request.
type retriedKey struct{}

// Transport is an http.RoundTripper shared by all resource clients.
type Transport struct {
	session Session
	base    http.RoundTripper
	log     zerolog.Logger
}

var _ http.RoundTripper = (*Transport)(nil)

// Option defines a function type to modify the Transport instance.
type Option func(*Transport)

// WithBase sets the underlying round tripper (defaults to
// http.DefaultTransport).
func WithBase(base http.RoundTripper) Option {
	return func(t *Transport) {
		t.base = base
	}
}

// WithLogger sets the logger used for pipeline diagnostics.
func WithLogger(log zerolog.Logger) Option {
	return func(t *Transport) {
		t.log = log
	}
}

// New creates the authenticated pipeline around the given session.
func New(session Session, options ...Option) (*Transport, error) {
	if session == nil {
		return nil, errors.New("[transport.New] session is required")
	}
	t := &Transport{
		session: session,
		base:    http.DefaultTransport,
		log:     zerolog.Nop(),
	}
	for _, opt := range options {
		opt(t)
	}
	return t, nil
}

// RoundTrip dispatches the request with the current bearer token attached.
// On a 401 for a not-yet-retried request it refreshes once and replays once;
// the replayed response is returned as-is whatever its outcome.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	requestID := uuid.New().String()

	resp, err := t.dispatch(req, t.currentToken(), nil)
	if err != nil {
		return nil, errors.Wrap(ErrNetwork, err.Error())
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}
	if alreadyRetried(req) {
		t.log.Debug().Str("request_id", requestID).Str("url", req.URL.String()).
			Msg("authentication failed after retry, giving up")
		return resp, nil
	}

	token, refreshErr := t.session.Refresh(req.Context())
	if refreshErr != nil {
		t.log.Warn().Str("request_id", requestID).Err(refreshErr).
			Msg("token refresh failed, expiring session")
		t.session.Expire(expiredMessage)
		return resp, nil
	}

	replayBody, bodyErr := replayableBody(req)
	if bodyErr != nil {
		// The original body cannot be reproduced, so the replay would not be
		// byte-identical. Surface the authentication failure instead.
		t.log.Warn().Str("request_id", requestID).Err(bodyErr).
			Msg("request body not replayable, skipping retry")
		return resp, nil
	}
	drain(resp)

	t.log.Debug().Str("request_id", requestID).Str("url", req.URL.String()).
		Msg("replaying request with refreshed token")

	replay := req.WithContext(context.WithValue(req.Context(), retriedKey{}, true))
	retryResp, err := t.dispatch(replay, token.AccessToken, replayBody)
	if err != nil {
		return nil, errors.Wrap(ErrNetwork, err.Error())
	}
	return retryResp, nil
}

// dispatch sends a shallow clone of req with the given bearer token. Requests
// with no token go out unauthenticated; the server enforces authorization.
func (t *Transport) dispatch(req *http.Request, token string, body io.ReadCloser) (*http.Response, error) {
	out := req.Clone(req.Context())
	if body != nil {
		out.Body = body
	}
	if token != "" {
		out.Header.Set("Authorization", "Bearer "+token)
	}
	return t.base.RoundTrip(out)
}

func (t *Transport) currentToken() string {
	token, err := t.session.Token()
	if err != nil || token == nil {
		return ""
	}
	return token.AccessToken
}

func alreadyRetried(req *http.Request) bool {
	retried, _ := req.Context().Value(retriedKey{}).(bool)
	return retried
}

// replayableBody returns a fresh reader for the request body, or an error
// when the body was consumed and cannot be reproduced.
func replayableBody(req *http.Request) (io.ReadCloser, error) {
	if req.Body == nil || req.Body == http.NoBody {
		return nil, nil
	}
	if req.GetBody == nil {
		return nil, errors.New("request body is not replayable")
	}
	return req.GetBody()
}

// drain discards an abandoned response body so the underlying connection can
// be reused.
func drain(resp *http.Response) {
	if resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
