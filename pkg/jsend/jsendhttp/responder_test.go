package jsendhttp

import (
	"math"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valyala/fasthttp"

	"github.com/fastygo/jsend/pkg/jsend"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name    string
		builder *jsend.Builder
		want    int
	}{
		{"nil builder", nil, http.StatusInternalServerError},
		{"unset status", jsend.New(), http.StatusInternalServerError},
		{"success", jsend.Success(map[string]any{}), http.StatusOK},
		{"success missing data", jsend.New().SetStatus(jsend.StatusSuccess), http.StatusInternalServerError},
		{"fail", jsend.Fail("bad"), http.StatusBadRequest},
		{"fail with 4xx code", jsend.Fail("gone").SetErrorCode(404), http.StatusNotFound},
		{"fail with non 4xx code", jsend.Fail("odd").SetErrorCode(-401), http.StatusBadRequest},
		{"error", jsend.Error("boom"), http.StatusInternalServerError},
		{"error with 5xx code", jsend.Error("down").SetErrorCode(503), http.StatusServiceUnavailable},
		{"error with business code", jsend.Error("down").SetErrorCode(1001), http.StatusInternalServerError},
		{"success with unencodable data", jsend.Success(map[string]any{"ch": make(chan int)}), http.StatusInternalServerError},
		{"fail with unencodable data", jsend.Fail("bad").AddData("fn", func() {}).SetErrorCode(422), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.builder))
		})
	}
}

func TestWrite(t *testing.T) {
	var ctx fasthttp.RequestCtx
	Write(&ctx, jsend.Success(map[string]any{"id": 1}))

	assert.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, ContentTypeJSON, string(ctx.Response.Header.ContentType()))
	assert.Equal(t, `{"status":"success","data":{"id":1}}`, string(ctx.Response.Body()))
}

func TestWrite_JSONP(t *testing.T) {
	var ctx fasthttp.RequestCtx
	Write(&ctx, jsend.Fail("invalid input").SetJSONPCallback("cb"))

	assert.Equal(t, http.StatusBadRequest, ctx.Response.StatusCode())
	assert.Equal(t, ContentTypeJSONP, string(ctx.Response.Header.ContentType()))
	assert.Equal(t, "nosniff", string(ctx.Response.Header.Peek("X-Content-Type-Options")))
	assert.Equal(t, `cb({"status":"fail","message":"invalid input"})`, string(ctx.Response.Body()))
}

func TestWrite_UnencodableData(t *testing.T) {
	var ctx fasthttp.RequestCtx
	Write(&ctx, jsend.Success(map[string]any{"ratio": math.NaN()}).SetJSONPCallback("cb"))

	assert.Equal(t, http.StatusInternalServerError, ctx.Response.StatusCode())
	assert.Equal(t, ContentTypeJSONP, string(ctx.Response.Header.ContentType()))
	assert.Equal(t,
		`cb({"status":"error","message":"Data index could not be encoded in built response message"})`,
		string(ctx.Response.Body()),
	)
}

func TestWrite_NilBuilder(t *testing.T) {
	var ctx fasthttp.RequestCtx
	Write(&ctx, nil)

	assert.Equal(t, http.StatusInternalServerError, ctx.Response.StatusCode())
	assert.Equal(t,
		`{"status":"error","message":"Status index is missing from built response message"}`,
		string(ctx.Response.Body()),
	)
}

func TestCallbackFromRequest(t *testing.T) {
	tests := []struct {
		uri    string
		want   string
		wantOK bool
	}{
		{"/x?callback=cb", "cb", true},
		{"/x?callback=jQuery123_456", "jQuery123_456", true},
		{"/x?callback=window.app.$handle", "window.app.$handle", true},
		{"/x", "", false},
		{"/x?callback=", "", false},
		{"/x?callback=alert(1)", "", false},
		{"/x?callback=1abc", "", false},
		{"/x?callback=a..b", "", false},
		{"/x?callback=" + strings.Repeat("a", maxCallbackLen+1), "", false},
	}
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			var ctx fasthttp.RequestCtx
			ctx.Request.SetRequestURI(tt.uri)

			got, ok := CallbackFromRequest(&ctx, "callback")
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCallbackFromRequest_NoParam(t *testing.T) {
	var ctx fasthttp.RequestCtx
	ctx.Request.SetRequestURI("/x?callback=cb")
	_, ok := CallbackFromRequest(&ctx, "")
	assert.False(t, ok)
}
