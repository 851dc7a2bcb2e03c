package httpcontext

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	appLogger "github.com/fastygo/jsend/pkg/logger"
)

func TestAttach_PropagatesIncomingRequestID(t *testing.T) {
	var ctx fasthttp.RequestCtx
	ctx.Request.Header.Set(HeaderRequestID, "abc-123")
	ctx.Request.Header.SetUserAgent("jsend-test")

	stdCtx, cancel := NewAdapter(time.Second).Attach(&ctx)
	defer cancel()

	assert.Equal(t, "abc-123", appLogger.RequestID(stdCtx))
	assert.Equal(t, "jsend-test", UserAgent(stdCtx))
	assert.Equal(t, "0.0.0.0:0", RemoteAddr(stdCtx))
	assert.Equal(t, "abc-123", string(ctx.Response.Header.Peek(HeaderRequestID)))

	deadline, ok := stdCtx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Second), deadline, 100*time.Millisecond)
}

func TestRequestID_GeneratedOnceAndCached(t *testing.T) {
	var ctx fasthttp.RequestCtx

	first := RequestID(&ctx)
	_, err := uuid.Parse(first)
	require.NoError(t, err)
	assert.Equal(t, first, RequestID(&ctx))
	assert.Equal(t, first, string(ctx.Response.Header.Peek(HeaderRequestID)))
}

func TestNewAdapter_DefaultTimeout(t *testing.T) {
	var ctx fasthttp.RequestCtx
	stdCtx, cancel := NewAdapter(0).Attach(&ctx)
	defer cancel()

	deadline, ok := stdCtx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(5*time.Second), deadline, 100*time.Millisecond)
	assert.Empty(t, UserAgent(stdCtx))
}
