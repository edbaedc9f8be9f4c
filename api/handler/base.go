package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/vastriantafyllou/goal-tracker/api/transport"
	"github.com/vastriantafyllou/goal-tracker/domain"
	"github.com/vastriantafyllou/goal-tracker/gateway"
	"github.com/vastriantafyllou/goal-tracker/internal/middleware"
	"github.com/vastriantafyllou/goal-tracker/pkg/httpcontext"
	"github.com/vastriantafyllou/goal-tracker/pkg/logger"
	"github.com/vastriantafyllou/goal-tracker/query"
	"github.com/vastriantafyllou/goal-tracker/session"
)

type baseHandler struct {
	adapter  *httpcontext.Adapter
	sessions middleware.SessionOpener
	api      *gateway.Client
	logger   *zap.Logger
}

func newBaseHandler(deps Deps) baseHandler {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return baseHandler{
		adapter:  deps.Adapter,
		sessions: deps.Sessions,
		api:      deps.API,
		logger:   deps.Logger,
	}
}

// Deps are shared by every handler.
type Deps struct {
	Adapter  *httpcontext.Adapter
	Sessions middleware.SessionOpener
	API      *gateway.Client
	Logger   *zap.Logger
}

func (h baseHandler) requestContext(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	if h.adapter != nil {
		return h.adapter.Attach(ctx)
	}
	return context.WithCancel(context.Background())
}

func (h baseHandler) session(ctx *fasthttp.RequestCtx) *session.Store {
	return middleware.Session(ctx, h.sessions)
}

// client returns the API client authenticated as the request's session.
func (h baseHandler) client(ctx *fasthttp.RequestCtx) *gateway.Client {
	return h.api.WithCredentials(h.session(ctx))
}

func (h baseHandler) log(ctx context.Context) *zap.Logger {
	return logger.WithRequestID(ctx, h.logger)
}

func (h baseHandler) respondJSON(ctx *fasthttp.RequestCtx, status int, payload transport.Envelope) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(payload)
	ctx.SetBody(body)
}

func (h baseHandler) respondSuccess(ctx *fasthttp.RequestCtx, status int, data interface{}) {
	h.respondJSON(ctx, status, transport.NewSuccess(data, nil))
}

func (h baseHandler) respondView(ctx *fasthttp.RequestCtx, data interface{}, q query.Query) {
	meta := transport.QueryMeta{Search: q.Search, Filters: q.Filters}
	if q.SortKey != "" {
		meta.Sort = q.SortKey + "-" + string(q.Direction)
	}
	h.respondJSON(ctx, http.StatusOK, transport.NewSuccess(data, meta))
}

func (h baseHandler) respondError(ctx *fasthttp.RequestCtx, err error) {
	status, code := mapError(err)
	if status >= http.StatusInternalServerError {
		h.logger.Warn("request failed",
			zap.ByteString("path", ctx.Path()),
			zap.String("code", code),
			zap.Error(err),
		)
	}
	h.respondJSON(ctx, status, transport.NewError(code, domain.Message(err), nil))
}

func (h baseHandler) respondInvalid(ctx *fasthttp.RequestCtx, message string) {
	h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), message, nil))
}

func (h baseHandler) decode(ctx *fasthttp.RequestCtx, v interface{}) bool {
	if err := json.Unmarshal(ctx.PostBody(), v); err != nil {
		h.respondInvalid(ctx, domain.ErrInvalidPayload.Message)
		return false
	}
	return true
}

func (h baseHandler) idParam(ctx *fasthttp.RequestCtx) (int64, bool) {
	raw, _ := ctx.UserValue("id").(string)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		h.respondInvalid(ctx, "invalid id")
		return 0, false
	}
	return id, true
}

// listQuery reads search, the named filters and sort from the query string.
func listQuery(ctx *fasthttp.RequestCtx, defaultSort string, filters ...string) query.Query {
	args := ctx.QueryArgs()
	q := query.Query{Search: string(args.Peek("search"))}
	for _, name := range filters {
		if value := string(args.Peek(name)); value != "" {
			q = q.WithFilter(name, value)
		}
	}
	sort := string(args.Peek("sort"))
	if sort == "" {
		sort = defaultSort
	}
	if sort != "" {
		q = q.WithSort(sort)
	}
	return q
}

func parseInt(value []byte, fallback int) int {
	if v, err := strconv.Atoi(string(value)); err == nil && v > 0 {
		return v
	}
	return fallback
}

func mapError(err error) (int, string) {
	switch {
	case domain.IsDomainError(err, domain.ErrCodeUnauthorized):
		return http.StatusUnauthorized, string(domain.ErrCodeUnauthorized)
	case domain.IsDomainError(err, domain.ErrCodeForbidden):
		return http.StatusForbidden, string(domain.ErrCodeForbidden)
	case domain.IsDomainError(err, domain.ErrCodeInvalid):
		return http.StatusBadRequest, string(domain.ErrCodeInvalid)
	case domain.IsDomainError(err, domain.ErrCodeNotFound):
		return http.StatusNotFound, string(domain.ErrCodeNotFound)
	case domain.IsDomainError(err, domain.ErrCodeConflict):
		return http.StatusConflict, string(domain.ErrCodeConflict)
	case domain.IsDomainError(err, domain.ErrCodeUnavailable):
		return http.StatusServiceUnavailable, string(domain.ErrCodeUnavailable)
	case domain.IsDomainError(err, domain.ErrCodeUpstream):
		return http.StatusBadGateway, string(domain.ErrCodeUpstream)
	default:
		return http.StatusInternalServerError, string(domain.ErrCodeInternal)
	}
}
