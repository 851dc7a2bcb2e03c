package router

import (
	"net/http"

	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/fastygo/jsend/api/handler"
	"github.com/fastygo/jsend/domain"
	"github.com/fastygo/jsend/pkg/jsend"
	"github.com/fastygo/jsend/pkg/jsend/jsendhttp"
)

type Handlers struct {
	Health   *apiHandler.HealthHandler
	Envelope *apiHandler.EnvelopeHandler
}

// Middleware wraps a handler.
type Middleware func(fasthttp.RequestHandler) fasthttp.RequestHandler

// New registers routes. auth guards the API routes and may be nil.
func New(handlers Handlers, auth Middleware) *router.Router {
	if auth == nil {
		auth = func(next fasthttp.RequestHandler) fasthttp.RequestHandler { return next }
	}

	r := router.New()
	r.NotFound = func(ctx *fasthttp.RequestCtx) {
		jsendhttp.Write(ctx, apiHandler.ErrorEnvelope(domain.ErrRouteNotFound))
	}
	r.MethodNotAllowed = func(ctx *fasthttp.RequestCtx) {
		jsendhttp.Write(ctx, jsend.Fail("method not allowed").SetErrorCode(http.StatusMethodNotAllowed))
	}

	r.GET("/health", handlers.Health.Check)

	r.GET("/api/v1/envelope", auth(handlers.Envelope.Build))
	r.POST("/api/v1/envelope", auth(handlers.Envelope.Create))
	r.GET("/api/v1/envelope/validate", auth(handlers.Envelope.Validate))

	return r
}
