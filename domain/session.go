package domain

import "time"

// Session is the client's belief about the current identity, derived from Token.
type Session struct {
	Token     string    `json:"-"`
	UserID    string    `json:"user_id,omitempty"`
	Username  string    `json:"username,omitempty"`
	Role      Role      `json:"role,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// IsAuthenticated reports whether the session holds a decoded token.
func (s Session) IsAuthenticated() bool {
	return s.Token != ""
}

// IsExpired reports whether the token expiry claim is before reference.
// Tokens without an expiry claim never expire client-side.
func (s Session) IsExpired(reference time.Time) bool {
	if s.ExpiresAt.IsZero() {
		return false
	}
	if reference.IsZero() {
		reference = time.Now()
	}
	return !s.ExpiresAt.After(reference)
}

// Credentials are the login form fields.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c Credentials) Validate() error {
	if c.Username == "" {
		return NewError(ErrCodeInvalid, "Username is invalid")
	}
	if c.Password == "" {
		return NewError(ErrCodeInvalid, "Password is invalid")
	}
	return nil
}

// LoginResult is the auth endpoint response.
type LoginResult struct {
	Token     string `json:"token"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	ExpiresAt string `json:"expiresAt"`
}
