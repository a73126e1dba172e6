package middleware

import (
	"github.com/valyala/fasthttp"

	"portfolio/internal/auth"
	"portfolio/internal/config"
	httpctx "portfolio/internal/http/ctx"
)

// CookieName is the admin session cookie set by POST /api/auth.
const CookieName = "admin_token"

// AdminAuth guards admin-only API routes. A missing, invalid or expired
// session cookie yields 401; on success the admin identity is set on the
// request context.
func AdminAuth(cfg *config.Config) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			cookie := ctx.Request.Header.Cookie(CookieName)
			if len(cookie) == 0 {
				unauthorized(ctx)
				return
			}

			email, err := auth.VerifySession(cfg.SessionSecret, string(cookie))
			if err != nil {
				unauthorized(ctx)
				return
			}

			httpctx.SetAdmin(ctx, email)
			next(ctx)
		}
	}
}

func unauthorized(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(fasthttp.StatusUnauthorized)
	ctx.SetContentType("application/json")
	ctx.SetBodyString(`{"error":"unauthorized"}`)
}
