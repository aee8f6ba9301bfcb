// Package api provides typed clients for the desk server's authenticated
// CRUD endpoints (documents, sync logs, roles, users, settings). All services
// share one HTTP pipeline; authentication and 401 recovery happen there, so
// nothing in this package touches tokens.
package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/jrsteele09/go-desk-client/authapi"
	ierrors "github.com/jrsteele09/go-desk-client/internal/errors"
)

// ErrUnauthorized is returned when a request is rejected even after the
// pipeline's refresh-and-replay recovery.
var ErrUnauthorized = errors.New("unauthorized")

// Client aggregates the resource services.
type Client struct {
	rest *resty.Client
	log  zerolog.Logger

	Documents *DocumentsService
	SyncLogs  *SyncLogsService
	Roles     *RolesService
	Users     *UsersService
	Settings  *SettingsService
}

type service struct {
	client *Client
}

// Option defines a function type to modify the Client instance.
type Option func(*Client)

// WithLogger sets the logger used for request diagnostics.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// WithTimeout sets a client-enforced timeout on resource calls. Zero leaves
// deadlines to the underlying transport.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.rest.SetTimeout(timeout)
	}
}

// New creates a resource client over the given pipeline. The pipeline is the
// shared authenticated round tripper from the transport package; passing a
// bare http.RoundTripper dispatches everything unauthenticated.
func New(baseURL string, pipeline http.RoundTripper, options ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("[api.New] base URL is required")
	}
	if pipeline == nil {
		return nil, errors.New("[api.New] pipeline is required")
	}

	c := &Client{
		rest: resty.NewWithClient(&http.Client{Transport: pipeline}).SetBaseURL(baseURL),
		log:  zerolog.Nop(),
	}
	for _, opt := range options {
		opt(c)
	}

	c.Documents = &DocumentsService{client: c}
	c.SyncLogs = &SyncLogsService{client: c}
	c.Roles = &RolesService{client: c}
	c.Users = &UsersService{client: c}
	c.Settings = &SettingsService{client: c}

	return c, nil
}

// newRequest returns a request builder with the error payload decoder wired
// in. Callers attach context, body and result, then dispatch.
func (c *Client) newRequest() *resty.Request {
	return c.rest.R().SetError(&authapi.ErrorResponse{})
}

// checkResponse maps non-success responses onto the client error taxonomy.
func checkResponse(resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}

	message := ""
	if errorResponse, ok := resp.Error().(*authapi.ErrorResponse); ok {
		message = errorResponse.String()
	}
	if message == "" {
		message = resp.Status()
	}

	switch resp.StatusCode() {
	case http.StatusUnauthorized, http.StatusForbidden:
		return errors.Wrap(ErrUnauthorized, message)
	case http.StatusNotFound:
		return ierrors.Wrapf(ierrors.ErrNotFound, "%s %s: %s", resp.Request.Method, resp.Request.URL, message)
	default:
		return fmt.Errorf("%s %s: status %d: %s", resp.Request.Method, resp.Request.URL, resp.StatusCode(), message)
	}
}

// ListOptions carries the shared pagination parameters of the list
// endpoints. The zero value asks for the server's defaults.
type ListOptions struct {
	Page    int
	PerPage int
}

func (o ListOptions) query() map[string]string {
	query := map[string]string{}
	if o.Page > 0 {
		query["page"] = strconv.Itoa(o.Page)
	}
	if o.PerPage > 0 {
		query["per_page"] = strconv.Itoa(o.PerPage)
	}
	return query
}

// Page describes the pagination block the list endpoints return.
type Page struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Total   int `json:"total"`
}
