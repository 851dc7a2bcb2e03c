package handler

import (
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/jsend/api/transport"
	"github.com/fastygo/jsend/pkg/httpcontext"
)

type HealthHandler struct {
	baseHandler
	app         string
	environment string
	started     time.Time
	now         func() time.Time
}

func NewHealthHandler(app, environment string, adapter *httpcontext.Adapter, logger *zap.Logger, callbackParam string) *HealthHandler {
	return &HealthHandler{
		baseHandler: newBaseHandler(adapter, logger, callbackParam),
		app:         app,
		environment: environment,
		started:     time.Now(),
		now:         time.Now,
	}
}

// @Summary Health check
// @Tags health
// @Router /health [get]
func (h *HealthHandler) Check(ctx *fasthttp.RequestCtx) {
	now := h.now()
	payload := transport.HealthPayload{
		App:           h.app,
		Environment:   h.environment,
		Timestamp:     now.UTC().Format(time.RFC3339),
		UptimeSeconds: int64(now.Sub(h.started) / time.Second),
	}
	h.respondSuccess(ctx, payload.Map())
}
