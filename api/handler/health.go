package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/vastriantafyllou/goal-tracker/api/transport"
	"github.com/vastriantafyllou/goal-tracker/internal/infrastructure/monitor"
)

// StatusSource reports the last upstream probe.
type StatusSource interface {
	GetStatus() monitor.Status
}

type HealthHandler struct {
	baseHandler
	monitor StatusSource
}

func NewHealthHandler(mon StatusSource, deps Deps) *HealthHandler {
	return &HealthHandler{
		baseHandler: newBaseHandler(deps),
		monitor:     mon,
	}
}

// @Summary Health check
// @Tags health
// @Router /health [get]
func (h *HealthHandler) Check(ctx *fasthttp.RequestCtx) {
	status := h.monitor.GetStatus()
	payload := map[string]interface{}{
		"timestamp": time.Now().UTC(),
		"services": map[string]interface{}{
			"api": status,
		},
	}

	if status.API {
		h.respondSuccess(ctx, http.StatusOK, payload)
		return
	}
	h.respondJSON(ctx, http.StatusServiceUnavailable, transport.NewError("DEGRADED", "api unreachable", payload))
}
