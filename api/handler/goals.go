package handler

import (
	"context"
	"net/http"

	"github.com/valyala/fasthttp"

	"github.com/vastriantafyllou/goal-tracker/api/transport"
	"github.com/vastriantafyllou/goal-tracker/query"
	goalsUC "github.com/vastriantafyllou/goal-tracker/usecase/goals"
)

type GoalHandler struct {
	baseHandler
}

func NewGoalHandler(deps Deps) *GoalHandler {
	return &GoalHandler{baseHandler: newBaseHandler(deps)}
}

func (h *GoalHandler) useCase(ctx *fasthttp.RequestCtx, stdCtx context.Context) *goalsUC.UseCase {
	return goalsUC.New(h.client(ctx), h.log(stdCtx))
}

func goalQuery(ctx *fasthttp.RequestCtx) query.Query {
	return listQuery(ctx, query.DefaultGoalSort, query.FilterStatus, query.FilterCategory, query.FilterDue)
}

// @Summary Goals page
// @Tags goals
// @Router /goals [get]
func (h *GoalHandler) List(ctx *fasthttp.RequestCtx) {
	q := goalQuery(ctx)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	view, err := h.useCase(ctx, stdCtx).View(stdCtx, q)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondView(ctx, view, q)
}

// @Summary Goal editor
// @Tags goals
// @Router /goals/{id} [get]
func (h *GoalHandler) Get(ctx *fasthttp.RequestCtx) {
	id, ok := h.idParam(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	editor, err := h.useCase(ctx, stdCtx).Editor(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, editor)
}

// @Summary Create goal
// @Tags goals
// @Router /goals [post]
func (h *GoalHandler) Create(ctx *fasthttp.RequestCtx) {
	var req transport.GoalRequest
	if !h.decode(ctx, &req) {
		return
	}
	q := goalQuery(ctx)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	view, err := h.useCase(ctx, stdCtx).Create(stdCtx, req.Input(), q)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusCreated, transport.NewSuccess(view, nil))
}

// @Summary Update goal
// @Tags goals
// @Router /goals/{id} [put]
func (h *GoalHandler) Update(ctx *fasthttp.RequestCtx) {
	id, ok := h.idParam(ctx)
	if !ok {
		return
	}
	var req transport.GoalRequest
	if !h.decode(ctx, &req) {
		return
	}
	q := goalQuery(ctx)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	view, err := h.useCase(ctx, stdCtx).Update(stdCtx, id, req.Input(), q)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondView(ctx, view, q)
}

// @Summary Delete goal
// @Tags goals
// @Router /goals/{id} [delete]
func (h *GoalHandler) Delete(ctx *fasthttp.RequestCtx) {
	id, ok := h.idParam(ctx)
	if !ok {
		return
	}
	q := goalQuery(ctx)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	view, err := h.useCase(ctx, stdCtx).Delete(stdCtx, id, q)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondView(ctx, view, q)
}
