// Package gate decides whether a view may be shown for the current session.
package gate

import (
	"net/url"
	"strings"

	"github.com/vastriantafyllou/goal-tracker/domain"
	"github.com/vastriantafyllou/goal-tracker/session"
)

const (
	LoginPath = "/login"
	HomePath  = "/goals"
)

// Action is the outcome of a gate check.
type Action int

const (
	Allow Action = iota
	RedirectToLogin
	RedirectToHome
)

func (a Action) String() string {
	switch a {
	case Allow:
		return "allow"
	case RedirectToLogin:
		return "login"
	case RedirectToHome:
		return "home"
	}
	return "unknown"
}

// Decision tells the caller whether to render and, if not, where to go.
type Decision struct {
	Action   Action
	Location string
}

// Allowed reports whether the view may be shown.
func (d Decision) Allowed() bool {
	return d.Action == Allow
}

// Check gates a view that requires a session and, when minRole is set, at least
// that role. requested is remembered so login can return to it.
func Check(reader session.Reader, minRole domain.Role, requested string) Decision {
	if reader == nil || !reader.IsAuthenticated() {
		return Decision{Action: RedirectToLogin, Location: LoginLocation(requested)}
	}
	if minRole != "" && !reader.Session().Role.AtLeast(minRole) {
		return Decision{Action: RedirectToHome, Location: HomePath}
	}
	return Decision{Action: Allow}
}

// LoginLocation returns the login path carrying from when it is a local path.
func LoginLocation(from string) string {
	if !isLocal(from) {
		return LoginPath
	}
	return LoginPath + "?from=" + url.QueryEscape(from)
}

// AfterLogin returns where to send a user once logged in: from when it is a
// local path other than the login page itself, otherwise the goals page.
func AfterLogin(from string) string {
	if !isLocal(from) {
		return HomePath
	}
	if path, _, _ := strings.Cut(from, "?"); path == LoginPath {
		return HomePath
	}
	return from
}

func isLocal(path string) bool {
	if !strings.HasPrefix(path, "/") || strings.HasPrefix(path, "//") || strings.HasPrefix(path, "/\\") {
		return false
	}
	u, err := url.Parse(path)
	return err == nil && u.Scheme == "" && u.Host == ""
}
