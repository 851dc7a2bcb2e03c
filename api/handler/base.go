package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/jsend/domain"
	"github.com/fastygo/jsend/pkg/httpcontext"
	"github.com/fastygo/jsend/pkg/jsend"
	"github.com/fastygo/jsend/pkg/jsend/jsendhttp"
	appLogger "github.com/fastygo/jsend/pkg/logger"
)

type baseHandler struct {
	adapter       *httpcontext.Adapter
	logger        *zap.Logger
	callbackParam string
}

func newBaseHandler(adapter *httpcontext.Adapter, logger *zap.Logger, callbackParam string) baseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return baseHandler{adapter: adapter, logger: logger, callbackParam: callbackParam}
}

func (h baseHandler) requestContext(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	if h.adapter != nil {
		return h.adapter.Attach(ctx)
	}
	return context.WithCancel(context.Background())
}

// respond writes b, wrapping it in the request's JSONP callback when one
// was asked for and JSONP is enabled.
func (h baseHandler) respond(ctx *fasthttp.RequestCtx, b *jsend.Builder) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if name, ok := jsendhttp.CallbackFromRequest(ctx, h.callbackParam); ok {
		b.SetJSONPCallback(name)
	}
	b.WithLogger(h.requestLogger(stdCtx))
	jsendhttp.Write(ctx, b)
}

// requestLogger tags the handler logger with the request metadata the
// adapter stored in stdCtx.
func (h baseHandler) requestLogger(stdCtx context.Context) *zap.Logger {
	logger := appLogger.WithRequestID(stdCtx, h.logger)
	if addr := httpcontext.RemoteAddr(stdCtx); addr != "" {
		logger = logger.With(zap.String("remote_addr", addr))
	}
	if ua := httpcontext.UserAgent(stdCtx); ua != "" {
		logger = logger.With(zap.String("user_agent", ua))
	}
	return logger
}

func (h baseHandler) respondSuccess(ctx *fasthttp.RequestCtx, data map[string]any) {
	h.respond(ctx, jsend.Success(data))
}

func (h baseHandler) respondError(ctx *fasthttp.RequestCtx, err error) {
	h.respond(ctx, ErrorEnvelope(err))
}

// ErrorEnvelope maps a domain error to a fail or error envelope. Client
// mistakes become fail envelopes; anything else is an error envelope whose
// message does not leak the cause.
func ErrorEnvelope(err error) *jsend.Builder {
	var dErr *domain.Error
	switch domain.CodeOf(err) {
	case domain.ErrCodeInvalid:
		errors.As(err, &dErr)
		b := jsend.Fail(dErr.Message).SetErrorCode(http.StatusBadRequest)
		if dErr.Err != nil {
			b.AddData("reason", dErr.Err.Error())
		}
		return b
	case domain.ErrCodeUnauthorized:
		errors.As(err, &dErr)
		return jsend.Fail(dErr.Message).SetErrorCode(http.StatusUnauthorized)
	case domain.ErrCodeNotFound:
		errors.As(err, &dErr)
		return jsend.Fail(dErr.Message).SetErrorCode(http.StatusNotFound)
	default:
		return jsend.Error(domain.ErrInternal.Message).SetErrorCode(http.StatusInternalServerError)
	}
}
