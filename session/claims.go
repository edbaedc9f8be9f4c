package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/vastriantafyllou/goal-tracker/domain"
)

// Claim keys issued by the API. They must match the server's claim namespace.
const (
	ClaimUserID   = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/nameidentifier"
	ClaimUsername = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/name"
	ClaimRole     = "http://schemas.microsoft.com/ws/2008/06/identity/claims/role"
	ClaimExpiry   = "exp"
)

var (
	ErrNoToken        = errors.New("session: no token")
	ErrMalformedToken = errors.New("session: malformed token")
	ErrMissingClaim   = errors.New("session: missing claim")
)

// identityClaims maps each required claim key onto the session field it fills.
var identityClaims = []struct {
	key string
	set func(*domain.Session, string)
}{
	{ClaimUserID, func(s *domain.Session, v string) { s.UserID = v }},
	{ClaimUsername, func(s *domain.Session, v string) { s.Username = v }},
	{ClaimRole, func(s *domain.Session, v string) { s.Role = domain.Role(v) }},
}

var parser = jwt.NewParser(jwt.WithJSONNumber())

// DecodeToken reads the identity claims of token without verifying its signature;
// the API verifies every request. Any failure yields an empty session.
func DecodeToken(token string) (domain.Session, error) {
	if token == "" {
		return domain.Session{}, ErrNoToken
	}

	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return domain.Session{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	decoded := domain.Session{Token: token}
	for _, c := range identityClaims {
		value, ok := claimString(claims[c.key])
		if !ok {
			return domain.Session{}, fmt.Errorf("%w: %s", ErrMissingClaim, c.key)
		}
		c.set(&decoded, value)
	}

	if exp, ok := claimUnix(claims[ClaimExpiry]); ok {
		decoded.ExpiresAt = time.Unix(exp, 0)
	}

	return decoded, nil
}

func claimString(raw interface{}) (string, bool) {
	switch v := raw.(type) {
	case string:
		return v, v != ""
	case json.Number:
		return v.String(), true
	case []interface{}:
		// multi-valued claims carry the primary value first
		if len(v) > 0 {
			return claimString(v[0])
		}
	}
	return "", false
}

func claimUnix(raw interface{}) (int64, bool) {
	switch v := raw.(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, true
		}
		if f, err := v.Float64(); err == nil {
			return int64(f), true
		}
	case float64:
		return int64(v), true
	case string:
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}
