package handler

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/jsend/api/transport"
	"github.com/fastygo/jsend/domain"
	"github.com/fastygo/jsend/pkg/httpcontext"
	"github.com/fastygo/jsend/pkg/jsend"
)

const dataArgPrefix = "data."

// EnvelopeHandler renders caller-described envelopes, so clients can see
// exactly what the builder produces for a given state.
type EnvelopeHandler struct {
	baseHandler
}

func NewEnvelopeHandler(adapter *httpcontext.Adapter, logger *zap.Logger, callbackParam string) *EnvelopeHandler {
	return &EnvelopeHandler{baseHandler: newBaseHandler(adapter, logger, callbackParam)}
}

// @Summary Build an envelope from query parameters
// @Tags envelope
// @Router /api/v1/envelope [get]
func (h *EnvelopeHandler) Build(ctx *fasthttp.RequestCtx) {
	b, err := h.fromQuery(ctx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respond(ctx, b)
}

// @Summary Build an envelope from a JSON body
// @Tags envelope
// @Router /api/v1/envelope [post]
func (h *EnvelopeHandler) Create(ctx *fasthttp.RequestCtx) {
	var req transport.EnvelopeRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondError(ctx, domain.WrapError(domain.ErrCodeInvalid, domain.ErrInvalidPayload.Message, err))
		return
	}
	b, err := req.Builder()
	if err != nil {
		h.respondError(ctx, domain.WrapError(domain.ErrCodeInvalid, domain.ErrInvalidPayload.Message, err))
		return
	}
	h.respond(ctx, b)
}

// @Summary Report whether an envelope described by query parameters is complete
// @Tags envelope
// @Router /api/v1/envelope/validate [get]
func (h *EnvelopeHandler) Validate(ctx *fasthttp.RequestCtx) {
	b, err := h.fromQuery(ctx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	payload := transport.ValidationPayload{Valid: true}
	if vErr := b.Validate(); vErr != nil {
		payload.Valid = false
		var missing *jsend.MissingFieldError
		if errors.As(vErr, &missing) {
			payload.Missing = missing.Field.String()
		}
	}
	h.respondSuccess(ctx, payload.Map())
}

func (h *EnvelopeHandler) fromQuery(ctx *fasthttp.RequestCtx) (*jsend.Builder, error) {
	args := ctx.QueryArgs()
	b := jsend.New()

	if status, err := jsend.ParseStatus(string(args.Peek("status"))); err == nil {
		b.SetStatus(status)
	}
	if args.Has("message") {
		b.SetMessage(string(args.Peek("message")))
	}
	if args.Has("code") {
		code, err := strconv.Atoi(string(args.Peek("code")))
		if err != nil {
			return nil, domain.WrapError(domain.ErrCodeInvalid, domain.ErrInvalidPayload.Message, errors.New("code must be an integer"))
		}
		b.SetErrorCode(code)
	}

	args.VisitAll(func(key, value []byte) {
		if name, ok := strings.CutPrefix(string(key), dataArgPrefix); ok {
			b.AddData(name, string(value))
		}
	})
	return b, nil
}
