// Package tokenstore provides session.Storage implementations: the browser
// cookie of a fasthttp request, a local bbolt file and redis.
package tokenstore

import (
	"context"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/vastriantafyllou/goal-tracker/session"
)

// Cookie keeps the token in the cookie of a single request/response pair.
type Cookie struct {
	ctx *fasthttp.RequestCtx
	now func() time.Time
}

// NewCookie binds a cookie storage to ctx.
func NewCookie(ctx *fasthttp.RequestCtx) *Cookie {
	return &Cookie{ctx: ctx, now: time.Now}
}

func (c *Cookie) Load(_ context.Context, policy session.Cookie) (string, error) {
	return string(c.ctx.Request.Header.Cookie(policy.Name)), nil
}

func (c *Cookie) Save(_ context.Context, token string, policy session.Cookie) error {
	ck := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(ck)

	ck.SetKey(policy.Name)
	ck.SetValue(token)
	ck.SetPath(policy.Path)
	ck.SetSecure(policy.Secure)
	ck.SetSameSite(sameSite(policy.SameSite))
	if policy.MaxAge > 0 {
		ck.SetMaxAge(int(policy.MaxAge / time.Second))
		ck.SetExpire(c.now().Add(policy.MaxAge))
	}
	c.ctx.Response.Header.SetCookie(ck)

	// Later reads within the same request see the new token.
	c.ctx.Request.Header.SetCookie(policy.Name, token)
	return nil
}

func (c *Cookie) Delete(_ context.Context, policy session.Cookie) error {
	ck := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(ck)

	ck.SetKey(policy.Name)
	ck.SetPath(policy.Path)
	ck.SetSameSite(sameSite(policy.SameSite))
	ck.SetExpire(fasthttp.CookieExpireDelete)
	c.ctx.Response.Header.SetCookie(ck)

	c.ctx.Request.Header.DelCookie(policy.Name)
	return nil
}

func sameSite(mode string) fasthttp.CookieSameSite {
	switch mode {
	case session.SameSiteStrict:
		return fasthttp.CookieSameSiteStrictMode
	case session.SameSiteNone:
		return fasthttp.CookieSameSiteNoneMode
	case session.SameSiteLax:
		return fasthttp.CookieSameSiteLaxMode
	default:
		return fasthttp.CookieSameSiteDefaultMode
	}
}
