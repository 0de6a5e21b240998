package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/userdesk/internal/client/models"
	"github.com/dmitrijs2005/userdesk/internal/logging"
	"github.com/dmitrijs2005/userdesk/internal/netx"
	"github.com/google/uuid"
)

// RequestIDHeader carries a per-request uuid for correlating client and
// server logs.
const RequestIDHeader = "X-Request-ID"

// HTTPClient talks to the users API over HTTP/JSON.
type HTTPClient struct {
	baseURL string
	hc      *http.Client
	logger  logging.Logger
	now     func() time.Time
}

// NewHTTPClient builds a client for the API rooted at baseURL. timeout bounds
// every request; zero means no client-side limit.
func NewHTTPClient(baseURL string, timeout time.Duration, logger logging.Logger) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base url %q: scheme must be http or https", baseURL)
	}
	if logger == nil {
		logger = logging.Nop{}
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
		logger:  logger.With("module", "gateway"),
		now:     time.Now,
	}, nil
}

// createRequest adds the creation timestamp the API stores with new users.
type createRequest struct {
	models.UserDraft
	CreatedAt string `json:"createdAt"`
}

func (c *HTTPClient) FetchAll(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.do(ctx, http.MethodGet, "/users", nil, &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

func (c *HTTPClient) FetchOne(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodGet, userPath(id), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) Create(ctx context.Context, draft models.UserDraft) (*models.User, error) {
	req := createRequest{UserDraft: draft, CreatedAt: c.now().UTC().Format(time.RFC3339)}
	var u models.User
	if err := c.do(ctx, http.MethodPost, "/users", req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) Update(ctx context.Context, id int64, draft models.UserDraft) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodPut, userPath(id), draft, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, userPath(id), nil, nil)
}

func (c *HTTPClient) Close() error {
	c.hc.CloseIdleConnections()
	return nil
}

func userPath(id int64) string {
	return fmt.Sprintf("/users/%d", id)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	reqID := uuid.NewString()
	h := http.Header{}
	h.Set(RequestIDHeader, reqID)

	c.logger.Debug(ctx, "request", "method", method, "path", path, "request_id", reqID)

	err := netx.DoJSON(ctx, c.hc, method, c.baseURL+path, h, in, out)
	if err == nil {
		return nil
	}

	terr := c.mapError(err)
	c.logger.Warn(ctx, "API Error", "method", method, "path", path,
		"status", terr.StatusCode, "message", terr.Message, "request_id", reqID)
	return terr
}

func (c *HTTPClient) mapError(err error) *TransportError {
	var se *netx.StatusError
	if errors.As(err, &se) {
		return &TransportError{StatusCode: se.StatusCode, Message: se.Message, Err: err}
	}
	// the decode cause is flattened so payload errors such as an unknown
	// role do not match form validation errors
	var de *netx.DecodeError
	if errors.As(err, &de) {
		return &TransportError{
			StatusCode: de.StatusCode,
			Message:    de.Error(),
			Err:        fmt.Errorf("%w: %v", ErrBadResponse, de.Err),
		}
	}
	return &TransportError{Message: err.Error(), Err: err}
}
