package gate

import (
	"testing"

	"github.com/vastriantafyllou/goal-tracker/domain"
	"github.com/vastriantafyllou/goal-tracker/session"
)

type fixedSession struct{ s domain.Session }

func (f fixedSession) Session() domain.Session { return f.s }
func (f fixedSession) IsAuthenticated() bool   { return f.s.Token != "" }
func (f fixedSession) Token() string           { return f.s.Token }

func loggedIn(role domain.Role) session.Reader {
	return fixedSession{domain.Session{Token: "t", UserID: "1", Username: "ann", Role: role}}
}

func TestCheck(t *testing.T) {
	cases := []struct {
		name      string
		reader    session.Reader
		minRole   domain.Role
		requested string
		want      Decision
	}{
		{"anonymous", session.Anonymous, "", "/goals", Decision{RedirectToLogin, "/login?from=%2Fgoals"}},
		{"nil reader", nil, domain.RoleAdmin, "/users?page=2", Decision{RedirectToLogin, "/login?from=%2Fusers%3Fpage%3D2"}},
		{"user on protected view", loggedIn(domain.RoleUser), "", "/goals", Decision{Action: Allow}},
		{"user on admin view", loggedIn(domain.RoleUser), domain.RoleAdmin, "/users", Decision{RedirectToHome, "/goals"}},
		{"admin on admin view", loggedIn(domain.RoleAdmin), domain.RoleAdmin, "/users", Decision{Action: Allow}},
		{"super admin on admin view", loggedIn(domain.RoleSuperAdmin), domain.RoleAdmin, "/users", Decision{Action: Allow}},
		{"unknown role on admin view", loggedIn("Guest"), domain.RoleAdmin, "/users", Decision{RedirectToHome, "/goals"}},
		{"external from dropped", session.Anonymous, "", "https://evil.example", Decision{RedirectToLogin, "/login"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Check(tc.reader, tc.minRole, tc.requested)
			if got != tc.want {
				t.Fatalf("Check() = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestAfterLogin(t *testing.T) {
	cases := map[string]string{
		"":                     "/goals",
		"/categories":          "/categories",
		"/goals?status=Done":   "/goals?status=Done",
		"/login":               "/goals",
		"/login?from=/users":   "/goals",
		"//evil.example/x":     "/goals",
		"/\\evil.example":      "/goals",
		"https://evil.example": "/goals",
		"users":                "/goals",
	}
	for from, want := range cases {
		if got := AfterLogin(from); got != want {
			t.Fatalf("AfterLogin(%q) = %q, want %q", from, got, want)
		}
	}
}
