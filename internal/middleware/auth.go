package middleware

import (
	"context"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/vastriantafyllou/goal-tracker/domain"
	"github.com/vastriantafyllou/goal-tracker/internal/gate"
	"github.com/vastriantafyllou/goal-tracker/internal/infrastructure/tokenstore"
	"github.com/vastriantafyllou/goal-tracker/session"
)

const sessionKey = "session"

// SessionOpener builds the session store of one request.
type SessionOpener func(ctx *fasthttp.RequestCtx) *session.Store

// CookieSessions opens a store over the access token cookie of each request.
func CookieSessions(auth session.Authenticator, opts ...session.Option) SessionOpener {
	return func(ctx *fasthttp.RequestCtx) *session.Store {
		return session.New(context.Background(), tokenstore.NewCookie(ctx), auth, opts...)
	}
}

// Session returns the store of the request, opening it on first use.
func Session(ctx *fasthttp.RequestCtx, open SessionOpener) *session.Store {
	if store, ok := ctx.UserValue(sessionKey).(*session.Store); ok {
		return store
	}
	store := open(ctx)
	ctx.SetUserValue(sessionKey, store)
	return store
}

// SessionFrom returns the store opened earlier in the request, or nil.
func SessionFrom(ctx *fasthttp.RequestCtx) *session.Store {
	store, _ := ctx.UserValue(sessionKey).(*session.Store)
	return store
}

// RequireSession redirects anonymous requests to the login page and requests
// below minRole to the goals page.
func RequireSession(open SessionOpener, minRole domain.Role, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			store := Session(ctx, open)
			decision := gate.Check(store, minRole, string(ctx.RequestURI()))
			if decision.Allowed() {
				next(ctx)
				return
			}

			logger.Debug("request gated",
				zap.ByteString("path", ctx.Path()),
				zap.Stringer("action", decision.Action),
				zap.String("role", string(store.Session().Role)),
			)
			ctx.Response.Header.Set(fasthttp.HeaderLocation, decision.Location)
			ctx.SetStatusCode(fasthttp.StatusFound)
		}
	}
}
