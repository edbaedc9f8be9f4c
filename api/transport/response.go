package transport

import (
	"encoding/json"
	"time"

	"github.com/vastriantafyllou/goal-tracker/domain"
)

// Envelope is the standard response wrapper used for both success and error payloads.
type Envelope struct {
	Status string      `json:"status"`
	Code   string      `json:"code,omitempty"`
	Data   interface{} `json:"data,omitempty"`
	Error  interface{} `json:"error,omitempty"`
	Meta   interface{} `json:"meta,omitempty"`
}

// NewSuccess returns a success envelope.
func NewSuccess(data interface{}, meta interface{}) Envelope {
	return Envelope{
		Status: "success",
		Data:   data,
		Meta:   meta,
	}
}

// NewError returns an error envelope with optional metadata.
func NewError(code string, err interface{}, meta interface{}) Envelope {
	return Envelope{
		Status: "error",
		Code:   code,
		Error:  err,
		Meta:   meta,
	}
}

// String returns the JSON representation (best-effort) for logging purposes.
func (e Envelope) String() string {
	out, err := json.Marshal(e)
	if err != nil {
		return "{}"
	}
	return string(out)
}

// SessionView is what the browser may know about the session. The token stays
// in the cookie.
type SessionView struct {
	Authenticated bool        `json:"authenticated"`
	UserID        string      `json:"user_id,omitempty"`
	Username      string      `json:"username,omitempty"`
	Role          domain.Role `json:"role,omitempty"`
	ExpiresAt     *time.Time  `json:"expires_at,omitempty"`
}

func NewSessionView(s domain.Session) SessionView {
	view := SessionView{
		Authenticated: s.IsAuthenticated(),
		UserID:        s.UserID,
		Username:      s.Username,
		Role:          s.Role,
	}
	if !s.ExpiresAt.IsZero() {
		exp := s.ExpiresAt
		view.ExpiresAt = &exp
	}
	return view
}

// Navigation tells the browser where to go after an action.
type Navigation struct {
	Session  *SessionView `json:"session,omitempty"`
	Redirect string       `json:"redirect"`
}

// QueryMeta echoes the list query a view was built for.
type QueryMeta struct {
	Search  string            `json:"search,omitempty"`
	Filters map[string]string `json:"filters,omitempty"`
	Sort    string            `json:"sort,omitempty"`
}
