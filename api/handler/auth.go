package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/vastriantafyllou/goal-tracker/api/transport"
	"github.com/vastriantafyllou/goal-tracker/domain"
	"github.com/vastriantafyllou/goal-tracker/internal/gate"
	usersUC "github.com/vastriantafyllou/goal-tracker/usecase/users"
)

type AuthHandler struct {
	baseHandler
}

func NewAuthHandler(deps Deps) *AuthHandler {
	return &AuthHandler{baseHandler: newBaseHandler(deps)}
}

// @Summary Log in and set the access token cookie
// @Tags auth
// @Router /login [post]
func (h *AuthHandler) Login(ctx *fasthttp.RequestCtx) {
	var req transport.LoginRequest
	if !h.decode(ctx, &req) {
		return
	}
	if req.From == "" {
		req.From = string(ctx.QueryArgs().Peek("from"))
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	store := h.session(ctx)
	if err := store.Login(stdCtx, req.Credentials()); err != nil {
		h.respondError(ctx, err)
		return
	}
	if !store.IsAuthenticated() {
		// The API issued a token without the identity claims.
		h.log(stdCtx).Warn("login returned an unusable token", zap.String("username", req.Username))
		_ = store.Logout(stdCtx)
		h.respondError(ctx, domain.NewError(domain.ErrCodeUpstream, "Login failed"))
		return
	}

	view := transport.NewSessionView(store.Session())
	h.respondSuccess(ctx, http.StatusOK, transport.Navigation{
		Session:  &view,
		Redirect: gate.AfterLogin(req.From),
	})
}

// @Summary Log out and clear the access token cookie
// @Tags auth
// @Router /logout [post]
func (h *AuthHandler) Logout(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.session(ctx).Logout(stdCtx); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, transport.Navigation{Redirect: gate.LoginPath})
}

// @Summary Current session
// @Tags auth
// @Router /session [get]
func (h *AuthHandler) Session(ctx *fasthttp.RequestCtx) {
	h.respondSuccess(ctx, http.StatusOK, transport.NewSessionView(h.session(ctx).Session()))
}

// @Summary Register a new account
// @Tags auth
// @Router /register [post]
func (h *AuthHandler) Register(ctx *fasthttp.RequestCtx) {
	var signup domain.UserSignup
	if !h.decode(ctx, &signup) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := usersUC.New(h.api, h.log(stdCtx)).Register(stdCtx, signup)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusCreated, transport.NewSuccess(user, transport.Navigation{Redirect: gate.LoginPath}))
}
