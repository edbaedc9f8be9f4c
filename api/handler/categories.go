package handler

import (
	"context"
	"net/http"

	"github.com/valyala/fasthttp"

	"github.com/vastriantafyllou/goal-tracker/api/transport"
	"github.com/vastriantafyllou/goal-tracker/query"
	categoriesUC "github.com/vastriantafyllou/goal-tracker/usecase/categories"
)

type CategoryHandler struct {
	baseHandler
}

func NewCategoryHandler(deps Deps) *CategoryHandler {
	return &CategoryHandler{baseHandler: newBaseHandler(deps)}
}

func (h *CategoryHandler) useCase(ctx *fasthttp.RequestCtx, stdCtx context.Context) *categoriesUC.UseCase {
	return categoriesUC.New(h.client(ctx), h.log(stdCtx))
}

func categoryQuery(ctx *fasthttp.RequestCtx) query.Query {
	return listQuery(ctx, "", query.FilterGoalCount)
}

// @Summary Categories page
// @Tags categories
// @Router /categories [get]
func (h *CategoryHandler) List(ctx *fasthttp.RequestCtx) {
	q := categoryQuery(ctx)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	view, err := h.useCase(ctx, stdCtx).View(stdCtx, q)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondView(ctx, view, q)
}

// @Summary Create category
// @Tags categories
// @Router /categories [post]
func (h *CategoryHandler) Create(ctx *fasthttp.RequestCtx) {
	var req transport.CategoryRequest
	if !h.decode(ctx, &req) {
		return
	}
	q := categoryQuery(ctx)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	view, err := h.useCase(ctx, stdCtx).Create(stdCtx, req.Input(), q)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusCreated, transport.NewSuccess(view, nil))
}

// @Summary Rename category
// @Tags categories
// @Router /categories/{id} [put]
func (h *CategoryHandler) Update(ctx *fasthttp.RequestCtx) {
	id, ok := h.idParam(ctx)
	if !ok {
		return
	}
	var req transport.CategoryRequest
	if !h.decode(ctx, &req) {
		return
	}
	q := categoryQuery(ctx)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	view, err := h.useCase(ctx, stdCtx).Update(stdCtx, id, req.Input(), q)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondView(ctx, view, q)
}

// @Summary Delete category
// @Tags categories
// @Router /categories/{id} [delete]
func (h *CategoryHandler) Delete(ctx *fasthttp.RequestCtx) {
	id, ok := h.idParam(ctx)
	if !ok {
		return
	}
	q := categoryQuery(ctx)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	view, err := h.useCase(ctx, stdCtx).Delete(stdCtx, id, q)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondView(ctx, view, q)
}
