package handlers

import (
	"crypto/subtle"
	"time"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
	"golang.org/x/crypto/bcrypt"

	"portfolio/internal/auth"
	"portfolio/internal/config"
	"portfolio/internal/http/middleware"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/auth: checks the submitted credentials against the
// configured admin email and password hash and sets the HTTP-only session
// cookie on success.
func Login(cfg *config.Config, log zerolog.Logger) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		var req loginRequest
		if !decodeBody(ctx, &req) {
			return
		}

		if cfg.AdminEmail == "" || cfg.AdminPasswordHash == "" {
			errResponse(ctx, fasthttp.StatusInternalServerError, "admin credentials not configured")
			return
		}

		emailOK := subtle.ConstantTimeCompare([]byte(req.Email), []byte(cfg.AdminEmail)) == 1
		passwordErr := bcrypt.CompareHashAndPassword([]byte(cfg.AdminPasswordHash), []byte(req.Password))
		if !emailOK || passwordErr != nil {
			errResponse(ctx, fasthttp.StatusUnauthorized, "invalid credentials")
			return
		}

		token, err := auth.SignSession(cfg.SessionSecret, cfg.AdminEmail, time.Now())
		if err != nil {
			log.Error().Err(err).Msg("failed to sign session token")
			errResponse(ctx, fasthttp.StatusInternalServerError, "authentication failed")
			return
		}

		var c fasthttp.Cookie
		c.SetKey(middleware.CookieName)
		c.SetValue(token)
		c.SetPath("/")
		c.SetHTTPOnly(true)
		c.SetSameSite(fasthttp.CookieSameSiteStrictMode)
		c.SetMaxAge(int(auth.SessionTTL.Seconds()))
		if cfg.Env == "production" {
			c.SetSecure(true)
		}
		ctx.Response.Header.SetCookie(&c)

		jsonResponse(ctx, fasthttp.StatusOK, map[string]any{
			"success": true,
			"message": "authentication successful",
		})
	}
}

// Logout handles DELETE /api/auth: clears the session cookie.
func Logout() fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		var c fasthttp.Cookie
		c.SetKey(middleware.CookieName)
		c.SetValue("")
		c.SetPath("/")
		c.SetHTTPOnly(true)
		c.SetMaxAge(-1)
		ctx.Response.Header.SetCookie(&c)

		jsonResponse(ctx, fasthttp.StatusOK, map[string]any{
			"success": true,
			"message": "logged out",
		})
	}
}
