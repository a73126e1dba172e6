package handlers

import (
	"encoding/json"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/valyala/fasthttp"
)

// validate checks content payloads against the struct tags in internal/db.
var validate = validator.New()

func jsonResponse(ctx *fasthttp.RequestCtx, code int, data any) {
	ctx.SetStatusCode(code)
	ctx.SetContentType("application/json")
	body, _ := json.Marshal(data)
	ctx.SetBody(body)
}

func errResponse(ctx *fasthttp.RequestCtx, code int, msg string) {
	jsonResponse(ctx, code, map[string]any{"error": msg})
}

// decodeBody unmarshals the request body into v, reporting 400 on malformed
// JSON. Returns false when the response has already been written.
func decodeBody(ctx *fasthttp.RequestCtx, v any) bool {
	if err := json.Unmarshal(ctx.PostBody(), v); err != nil {
		errResponse(ctx, fasthttp.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// idFromQuery reads the ?id= parameter used by the DELETE routes. Returns
// false (after writing a 400) when it is missing or not a positive integer.
func idFromQuery(ctx *fasthttp.RequestCtx) (uint, bool) {
	raw := string(ctx.QueryArgs().Peek("id"))
	if raw == "" {
		errResponse(ctx, fasthttp.StatusBadRequest, "id is required")
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		errResponse(ctx, fasthttp.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}
