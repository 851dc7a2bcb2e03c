// Package jsendhttp writes jsend builders to fasthttp responses.
package jsendhttp

import (
	"net/http"
	"regexp"

	"github.com/valyala/fasthttp"

	"github.com/fastygo/jsend/pkg/jsend"
)

const (
	ContentTypeJSON  = "application/json; charset=utf-8"
	ContentTypeJSONP = "application/javascript; charset=utf-8"

	maxCallbackLen = 128
)

var callbackPattern = regexp.MustCompile(`^[A-Za-z_$][0-9A-Za-z_$]*(\.[A-Za-z_$][0-9A-Za-z_$]*)*$`)

// HTTPStatus maps an envelope to an HTTP status code. A fail envelope may
// carry a 4xx code and an error envelope a 5xx code to override the default.
// Envelopes that render as an internal error map to 500.
func HTTPStatus(b *jsend.Builder) int {
	if b == nil {
		return http.StatusInternalServerError
	}
	_, err := b.Render()
	return statusFor(b, err)
}

// statusFor maps b to a status given the error its rendering reported.
func statusFor(b *jsend.Builder, renderErr error) int {
	if renderErr != nil {
		return http.StatusInternalServerError
	}
	code, hasCode := b.ErrorCode()
	switch b.Status() {
	case jsend.StatusSuccess:
		return http.StatusOK
	case jsend.StatusFail:
		if hasCode && code >= 400 && code < 500 {
			return code
		}
		return http.StatusBadRequest
	default:
		if hasCode && code >= 500 && code < 600 {
			return code
		}
		return http.StatusInternalServerError
	}
}

// Write renders b into ctx, as JSONP when b has a callback set.
func Write(ctx *fasthttp.RequestCtx, b *jsend.Builder) {
	if b == nil {
		b = jsend.New()
	}
	body, err := b.RenderJSONP()
	ctx.SetStatusCode(statusFor(b, err))
	if _, ok := b.JSONPCallback(); ok {
		ctx.Response.Header.Set("X-Content-Type-Options", "nosniff")
		ctx.SetContentType(ContentTypeJSONP)
	} else {
		ctx.SetContentType(ContentTypeJSON)
	}
	ctx.SetBodyString(body)
}

// ValidCallback reports whether name is a dotted JavaScript identifier path.
func ValidCallback(name string) bool {
	return len(name) <= maxCallbackLen && callbackPattern.MatchString(name)
}

// CallbackFromRequest returns the JSONP callback named by the query
// parameter param. Names that are not identifier paths are rejected.
func CallbackFromRequest(ctx *fasthttp.RequestCtx, param string) (string, bool) {
	if param == "" {
		return "", false
	}
	name := string(ctx.QueryArgs().Peek(param))
	if name == "" || !ValidCallback(name) {
		return "", false
	}
	return name, true
}
