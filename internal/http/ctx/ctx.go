package ctx

import (
	"github.com/valyala/fasthttp"
)

const AdminKey = "admin"

// SetAdmin records the authenticated admin email on the request.
func SetAdmin(ctx *fasthttp.RequestCtx, email string) {
	ctx.SetUserValue(AdminKey, email)
}

// AdminFromCtx returns the authenticated admin email, if any.
func AdminFromCtx(ctx *fasthttp.RequestCtx) (string, bool) {
	v := ctx.UserValue(AdminKey)
	if v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok && s != ""
}
