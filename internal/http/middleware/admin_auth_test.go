package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"portfolio/internal/auth"
	"portfolio/internal/config"
	httpctx "portfolio/internal/http/ctx"
)

func TestAdminAuthRejectsMissingCookie(t *testing.T) {
	cfg := &config.Config{SessionSecret: "test-secret"}
	called := false
	handler := AdminAuth(cfg)(func(ctx *fasthttp.RequestCtx) { called = true })

	ctx := &fasthttp.RequestCtx{}
	handler(ctx)

	require.False(t, called)
	require.Equal(t, fasthttp.StatusUnauthorized, ctx.Response.StatusCode())
	require.JSONEq(t, `{"error":"unauthorized"}`, string(ctx.Response.Body()))
}

func TestAdminAuthRejectsBadToken(t *testing.T) {
	cfg := &config.Config{SessionSecret: "test-secret"}
	called := false
	handler := AdminAuth(cfg)(func(ctx *fasthttp.RequestCtx) { called = true })

	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetCookie(CookieName, "garbage")
	handler(ctx)

	require.False(t, called)
	require.Equal(t, fasthttp.StatusUnauthorized, ctx.Response.StatusCode())
}

func TestAdminAuthPassesValidSession(t *testing.T) {
	cfg := &config.Config{SessionSecret: "test-secret"}
	token, err := auth.SignSession(cfg.SessionSecret, "admin@example.com", time.Now())
	require.NoError(t, err)

	var seen string
	handler := AdminAuth(cfg)(func(ctx *fasthttp.RequestCtx) {
		seen, _ = httpctx.AdminFromCtx(ctx)
	})

	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetCookie(CookieName, token)
	handler(ctx)

	require.Equal(t, "admin@example.com", seen)
}

func TestAdminAuthRejectsForeignSecret(t *testing.T) {
	token, err := auth.SignSession("other-secret", "admin@example.com", time.Now())
	require.NoError(t, err)

	cfg := &config.Config{SessionSecret: "test-secret"}
	handler := AdminAuth(cfg)(func(ctx *fasthttp.RequestCtx) {
		t.Fatal("handler must not run")
	})

	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetCookie(CookieName, token)
	handler(ctx)

	require.Equal(t, fasthttp.StatusUnauthorized, ctx.Response.StatusCode())
}
