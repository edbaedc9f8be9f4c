package tokenstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/vastriantafyllou/goal-tracker/internal/config"
	"github.com/vastriantafyllou/goal-tracker/session"
)

func responseCookie(t *testing.T, ctx *fasthttp.RequestCtx, name string) *fasthttp.Cookie {
	t.Helper()
	ck := fasthttp.AcquireCookie()
	t.Cleanup(func() { fasthttp.ReleaseCookie(ck) })
	ck.SetKey(name)
	if !ctx.Response.Header.Cookie(ck) {
		t.Fatalf("response did not set cookie %q", name)
	}
	return ck
}

func TestCookieSaveWritesPolicy(t *testing.T) {
	var ctx fasthttp.RequestCtx
	store := NewCookie(&ctx)

	if err := store.Save(context.Background(), "tok-1", session.DefaultCookie); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	ck := responseCookie(t, &ctx, "access_token")
	if string(ck.Value()) != "tok-1" {
		t.Fatalf("value = %q", ck.Value())
	}
	if string(ck.Path()) != "/" {
		t.Fatalf("path = %q, want /", ck.Path())
	}
	if ck.MaxAge() != 86400 {
		t.Fatalf("max age = %d, want 86400", ck.MaxAge())
	}
	if ck.SameSite() != fasthttp.CookieSameSiteLaxMode {
		t.Fatalf("same site = %v, want Lax", ck.SameSite())
	}
	if ck.Secure() {
		t.Fatal("cookie marked secure")
	}

	got, err := store.Load(context.Background(), session.DefaultCookie)
	if err != nil || got != "tok-1" {
		t.Fatalf("Load() after Save = %q, %v", got, err)
	}
}

func TestCookieLoadReadsRequest(t *testing.T) {
	var ctx fasthttp.RequestCtx
	ctx.Request.Header.SetCookie("access_token", "from-browser")

	got, err := NewCookie(&ctx).Load(context.Background(), session.DefaultCookie)
	if err != nil || got != "from-browser" {
		t.Fatalf("Load() = %q, %v", got, err)
	}

	var empty fasthttp.RequestCtx
	if got, _ := NewCookie(&empty).Load(context.Background(), session.DefaultCookie); got != "" {
		t.Fatalf("Load() without cookie = %q", got)
	}
}

func TestCookieDeleteExpiresCookie(t *testing.T) {
	var ctx fasthttp.RequestCtx
	ctx.Request.Header.SetCookie("access_token", "old")
	store := NewCookie(&ctx)

	if err := store.Delete(context.Background(), session.DefaultCookie); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	ck := responseCookie(t, &ctx, "access_token")
	if len(ck.Value()) != 0 {
		t.Fatalf("value = %q, want empty", ck.Value())
	}
	if !ck.Expire().Equal(fasthttp.CookieExpireDelete) {
		t.Fatalf("expire = %v, want %v", ck.Expire(), fasthttp.CookieExpireDelete)
	}
	if got, _ := store.Load(context.Background(), session.DefaultCookie); got != "" {
		t.Fatalf("Load() after Delete = %q", got)
	}
}

func openBolt(t *testing.T) *Bolt {
	t.Helper()
	store, err := OpenBolt(filepath.Join(t.TempDir(), "nested", "session.db"))
	if err != nil {
		t.Fatalf("OpenBolt() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestBoltRoundTrip(t *testing.T) {
	store := openBolt(t)
	ctx := context.Background()

	if got, err := store.Load(ctx, session.DefaultCookie); err != nil || got != "" {
		t.Fatalf("Load() on empty store = %q, %v", got, err)
	}
	if err := store.Save(ctx, "tok-1", session.DefaultCookie); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if got, err := store.Load(ctx, session.DefaultCookie); err != nil || got != "tok-1" {
		t.Fatalf("Load() = %q, %v", got, err)
	}
	if err := store.Delete(ctx, session.DefaultCookie); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if got, _ := store.Load(ctx, session.DefaultCookie); got != "" {
		t.Fatalf("Load() after Delete = %q", got)
	}
}

func TestBoltDropsExpiredToken(t *testing.T) {
	store := openBolt(t)
	ctx := context.Background()
	start := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return start }

	if err := store.Save(ctx, "tok-1", session.DefaultCookie); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	store.now = func() time.Time { return start.Add(23 * time.Hour) }
	if got, _ := store.Load(ctx, session.DefaultCookie); got != "tok-1" {
		t.Fatalf("Load() before expiry = %q", got)
	}

	store.now = func() time.Time { return start.Add(24 * time.Hour) }
	if got, err := store.Load(ctx, session.DefaultCookie); err != nil || got != "" {
		t.Fatalf("Load() at expiry = %q, %v", got, err)
	}

	store.now = func() time.Time { return start }
	if got, _ := store.Load(ctx, session.DefaultCookie); got != "" {
		t.Fatalf("expired record was not removed, Load() = %q", got)
	}
}

func TestBoltFeedsSessionStore(t *testing.T) {
	store := openBolt(t)
	ctx := context.Background()
	if err := store.Save(ctx, "not-a-jwt", session.DefaultCookie); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	s := session.New(ctx, store, nil)
	if s.IsAuthenticated() {
		t.Fatal("undecodable persisted token produced an authenticated session")
	}
}

func TestDialRedisFailures(t *testing.T) {
	cases := map[string]string{
		"bad url":     "mysql://localhost:3306",
		"unreachable": "redis://127.0.0.1:1",
	}
	for name, url := range cases {
		t.Run(name, func(t *testing.T) {
			store, err := DialRedis(context.Background(), config.RedisConfig{URL: url}, "goalctl:", 200*time.Millisecond)
			if err == nil {
				store.Close()
				t.Fatal("DialRedis() error = nil")
			}
		})
	}
}

func TestRedisKeyUsesPrefix(t *testing.T) {
	r := NewRedis(nil, "goalctl:")
	if got := r.key(session.DefaultCookie.Name); got != "goalctl:access_token" {
		t.Fatalf("key = %q, want goalctl:access_token", got)
	}
}
