package httpcontext

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	appLogger "github.com/vastriantafyllou/goal-tracker/pkg/logger"
)

// HeaderRequestID is echoed to the browser and forwarded to the API.
const HeaderRequestID = "X-Request-ID"

// maxRequestIDLen bounds ids accepted from clients.
const maxRequestIDLen = 128

// Adapter derives the context of the upstream calls made while serving one
// request: a deadline and the request id.
type Adapter struct {
	timeout time.Duration
	newID   func() string
}

func NewAdapter(timeout time.Duration) *Adapter {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Adapter{
		timeout: timeout,
		newID:   uuid.NewString,
	}
}

// Attach returns the request context. The id is reused from the incoming
// header when present and set on the response.
func (a *Adapter) Attach(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	stdCtx, cancel := context.WithTimeout(context.Background(), a.timeout)

	reqID := a.requestID(ctx)
	ctx.Response.Header.Set(HeaderRequestID, reqID)

	return appLogger.ContextWithRequestID(stdCtx, reqID), cancel
}

func (a *Adapter) requestID(ctx *fasthttp.RequestCtx) string {
	if ctx == nil {
		return a.newID()
	}
	header := strings.TrimSpace(string(ctx.Request.Header.Peek(HeaderRequestID)))
	if header == "" || len(header) > maxRequestIDLen {
		return a.newID()
	}
	return header
}
