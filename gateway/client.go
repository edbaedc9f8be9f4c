// Package gateway maps goal-tracker operations onto the remote REST API.
package gateway

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/vastriantafyllou/goal-tracker/domain"
	"github.com/vastriantafyllou/goal-tracker/pkg/logger"
)

// Credentials supplies the bearer token for authenticated calls.
type Credentials interface {
	Token() string
}

// Doer is satisfied by *fasthttp.Client and *fasthttp.HostClient.
type Doer interface {
	DoDeadline(req *fasthttp.Request, resp *fasthttp.Response, deadline time.Time) error
}

// Config controls the upstream connection.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Name    string
}

// Client talks to the API. It is safe for concurrent use; bind a session with
// WithCredentials.
type Client struct {
	baseURL string
	timeout time.Duration
	http    Doer
	creds   Credentials
	logger  *zap.Logger
}

// New builds a client. A nil doer gets a default fasthttp.Client.
func New(cfg Config, doer Doer, log *zap.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Name == "" {
		cfg.Name = "goal-tracker"
	}
	if log == nil {
		log = zap.NewNop()
	}
	if doer == nil {
		doer = &fasthttp.Client{
			Name:                cfg.Name,
			ReadTimeout:         cfg.Timeout,
			WriteTimeout:        cfg.Timeout,
			MaxIdleConnDuration: time.Minute,
		}
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		timeout: cfg.Timeout,
		http:    doer,
		logger:  log,
	}
}

// WithCredentials returns a copy of c that authenticates with creds.
func (c *Client) WithCredentials(creds Credentials) *Client {
	cp := *c
	cp.creds = creds
	return &cp
}

// BaseURL returns the upstream root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type call struct {
	method  string
	path    string
	body    interface{}
	auth    bool
	failure failure
}

// do performs op and decodes a JSON body into out. It reports whether a body
// was present.
func (c *Client) do(ctx context.Context, op call, out interface{}) (bool, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return false, domain.WrapError(domain.ErrCodeUnavailable, op.failure.fallback, err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + op.path)
	req.Header.SetMethod(op.method)
	req.Header.SetContentType("application/json")
	req.Header.Set(fasthttp.HeaderAccept, "application/json")
	if op.auth && c.creds != nil {
		if token := c.creds.Token(); token != "" {
			req.Header.Set(fasthttp.HeaderAuthorization, "Bearer "+token)
		}
	}
	if reqID, ok := logger.RequestID(ctx); ok {
		req.Header.Set("X-Request-ID", reqID)
	}
	if op.body != nil {
		payload, err := json.Marshal(op.body)
		if err != nil {
			return false, domain.WrapError(domain.ErrCodeInvalid, op.failure.fallback, err)
		}
		req.SetBodyRaw(payload)
	}

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	log := logger.WithRequestID(ctx, c.logger).With(
		zap.String("method", op.method),
		zap.String("path", op.path),
	)

	started := time.Now()
	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		log.Warn("upstream request failed", zap.Error(err))
		return false, domain.WrapError(domain.ErrCodeUnavailable, op.failure.fallback, err)
	}

	status := resp.StatusCode()
	log.Debug("upstream response", zap.Int("status", status), zap.Duration("elapsed", time.Since(started)))

	body := resp.Body()
	if status < fasthttp.StatusOK || status >= fasthttp.StatusMultipleChoices {
		return false, op.failure.err(status, body)
	}
	if out == nil || len(strings.TrimSpace(string(body))) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		log.Warn("undecodable upstream response", zap.Error(err))
		return false, domain.WrapError(domain.ErrCodeUpstream, op.failure.fallback, err)
	}
	return true, nil
}
