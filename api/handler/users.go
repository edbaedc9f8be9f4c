package handler

import (
	"context"

	"github.com/valyala/fasthttp"

	"github.com/vastriantafyllou/goal-tracker/domain"
	"github.com/vastriantafyllou/goal-tracker/query"
	usersUC "github.com/vastriantafyllou/goal-tracker/usecase/users"
)

type UserHandler struct {
	baseHandler
}

func NewUserHandler(deps Deps) *UserHandler {
	return &UserHandler{baseHandler: newBaseHandler(deps)}
}

func (h *UserHandler) useCase(ctx *fasthttp.RequestCtx, stdCtx context.Context) *usersUC.UseCase {
	return usersUC.New(h.client(ctx), h.log(stdCtx))
}

func pageRequest(ctx *fasthttp.RequestCtx) usersUC.PageRequest {
	args := ctx.QueryArgs()
	return usersUC.PageRequest{
		PageNumber: parseInt(args.Peek("pageNumber"), 1),
		PageSize:   parseInt(args.Peek("pageSize"), 10),
		Username:   string(args.Peek("username")),
	}
}

func userQuery(ctx *fasthttp.RequestCtx) query.Query {
	return listQuery(ctx, "", query.FilterRole)
}

// @Summary User management page
// @Tags users
// @Router /users [get]
func (h *UserHandler) List(ctx *fasthttp.RequestCtx) {
	q := userQuery(ctx)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	view, err := h.useCase(ctx, stdCtx).Page(stdCtx, pageRequest(ctx), q)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondView(ctx, view, q)
}

// @Summary Update user
// @Tags users
// @Router /users/{id} [put]
func (h *UserHandler) Update(ctx *fasthttp.RequestCtx) {
	id, ok := h.idParam(ctx)
	if !ok {
		return
	}
	var update domain.UserUpdate
	if !h.decode(ctx, &update) {
		return
	}
	q := userQuery(ctx)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	view, err := h.useCase(ctx, stdCtx).Update(stdCtx, id, update, pageRequest(ctx), q)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondView(ctx, view, q)
}

// @Summary Delete user
// @Tags users
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(ctx *fasthttp.RequestCtx) {
	h.mutate(ctx, (*usersUC.UseCase).Delete)
}

// @Summary Promote user to Admin
// @Tags users
// @Router /users/{id}/promote [patch]
func (h *UserHandler) Promote(ctx *fasthttp.RequestCtx) {
	h.mutate(ctx, (*usersUC.UseCase).Promote)
}

// @Summary Demote user to User
// @Tags users
// @Router /users/{id}/demote [patch]
func (h *UserHandler) Demote(ctx *fasthttp.RequestCtx) {
	h.mutate(ctx, (*usersUC.UseCase).Demote)
}

type userMutation func(uc *usersUC.UseCase, ctx context.Context, id int64, req usersUC.PageRequest, q query.Query) (*usersUC.PageView, error)

func (h *UserHandler) mutate(ctx *fasthttp.RequestCtx, op userMutation) {
	id, ok := h.idParam(ctx)
	if !ok {
		return
	}
	q := userQuery(ctx)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	view, err := op(h.useCase(ctx, stdCtx), stdCtx, id, pageRequest(ctx), q)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondView(ctx, view, q)
}
