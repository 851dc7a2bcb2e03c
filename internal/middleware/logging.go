package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/jsend/pkg/httpcontext"
	"github.com/fastygo/jsend/pkg/jsend"
	"github.com/fastygo/jsend/pkg/jsend/jsendhttp"
)

// AccessLog logs one line per request once the handler has returned.
func AccessLog(logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			start := time.Now()
			reqID := httpcontext.RequestID(ctx)

			next(ctx)

			logger.Info("request handled",
				zap.String("request_id", reqID),
				zap.ByteString("method", ctx.Method()),
				zap.ByteString("path", ctx.Path()),
				zap.Int("status", ctx.Response.StatusCode()),
				zap.Duration("duration", time.Since(start)),
			)
		}
	}
}

// Recover turns a handler panic into an error envelope.
func Recover(logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("handler panicked",
						zap.String("request_id", httpcontext.RequestID(ctx)),
						zap.String("panic", fmt.Sprint(r)),
						zap.Stack("stack"),
					)
					reqID := httpcontext.RequestID(ctx)
					ctx.Response.Reset()
					ctx.Response.Header.Set(httpcontext.HeaderRequestID, reqID)
					jsendhttp.Write(ctx, jsend.Error("internal server error").SetErrorCode(http.StatusInternalServerError))
				}
			}()
			next(ctx)
		}
	}
}

// Chain applies middlewares so the first one listed runs outermost.
func Chain(h fasthttp.RequestHandler, mws ...func(fasthttp.RequestHandler) fasthttp.RequestHandler) fasthttp.RequestHandler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
