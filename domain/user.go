package domain

import (
	"net/mail"
	"unicode/utf8"
)

// Role is a user privilege level.
type Role string

const (
	RoleUser       Role = "User"
	RoleAdmin      Role = "Admin"
	RoleSuperAdmin Role = "SuperAdmin"
)

// Roles lists every role from least to most privileged.
var Roles = []Role{RoleUser, RoleAdmin, RoleSuperAdmin}

func (r Role) rank() int {
	switch r {
	case RoleUser:
		return 1
	case RoleAdmin:
		return 2
	case RoleSuperAdmin:
		return 3
	}
	return 0
}

func (r Role) Valid() bool {
	return r.rank() > 0
}

// AtLeast reports whether r is as privileged as min. Unknown roles satisfy nothing
// except an empty minimum.
func (r Role) AtLeast(min Role) bool {
	if min == "" {
		return true
	}
	return r.rank() >= min.rank() && r.rank() > 0
}

// User is the admin-facing view of an account.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Role      Role   `json:"userRole"`
}

// Page is a server-side paginated result.
type Page[T any] struct {
	Data         []T `json:"data"`
	TotalRecords int `json:"totalRecords"`
	PageNumber   int `json:"pageNumber"`
	PageSize     int `json:"pageSize"`
}

// TotalPages returns the number of pages for the current page size.
func (p Page[T]) TotalPages() int {
	if p.PageSize <= 0 {
		return 0
	}
	return (p.TotalRecords + p.PageSize - 1) / p.PageSize
}

// UserSignup is the registration form.
type UserSignup struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

func (s UserSignup) Validate() error {
	if err := checkLength(s.Username, 2, 50, "Username must be between 2 and 50 characters"); err != nil {
		return err
	}
	if err := checkEmail(s.Email); err != nil {
		return err
	}
	if !strongPassword(s.Password) {
		return NewError(ErrCodeInvalid, "Password must contain at least one uppercase, one lowercase, one digit, and one special character")
	}
	if err := checkLength(s.Firstname, 2, 50, "Firstname must be between 2 and 50 characters"); err != nil {
		return err
	}
	return checkLength(s.Lastname, 2, 50, "Lastname must be between 2 and 50 characters")
}

// UserUpdate carries optional admin edits; nil fields are left unchanged.
type UserUpdate struct {
	Username  *string `json:"username,omitempty"`
	Email     *string `json:"email,omitempty"`
	Firstname *string `json:"firstname,omitempty"`
	Lastname  *string `json:"lastname,omitempty"`
	Role      *Role   `json:"userRole,omitempty"`
}

func (u UserUpdate) Validate() error {
	if u.Username != nil {
		if err := checkLength(*u.Username, 2, 50, "Username must be between 2 and 50 characters"); err != nil {
			return err
		}
	}
	if u.Email != nil {
		if err := checkEmail(*u.Email); err != nil {
			return err
		}
	}
	if u.Firstname != nil {
		if err := checkLength(*u.Firstname, 2, 50, "Firstname must be between 2 and 50 characters"); err != nil {
			return err
		}
	}
	if u.Lastname != nil {
		if err := checkLength(*u.Lastname, 2, 50, "Lastname must be between 2 and 50 characters"); err != nil {
			return err
		}
	}
	if u.Role != nil && !u.Role.Valid() {
		return NewError(ErrCodeInvalid, "Role is invalid")
	}
	return nil
}

func checkLength(value string, min, max int, message string) error {
	n := utf8.RuneCountInString(value)
	if n < min || n > max {
		return NewError(ErrCodeInvalid, message)
	}
	return nil
}

func checkEmail(value string) error {
	if utf8.RuneCountInString(value) > 100 {
		return NewError(ErrCodeInvalid, "Invalid email address")
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return NewError(ErrCodeInvalid, "Invalid email address")
	}
	return nil
}

func strongPassword(value string) bool {
	if utf8.RuneCountInString(value) < 8 {
		return false
	}
	var upper, lower, digit, special bool
	for _, r := range value {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		case r != '_':
			special = true
		}
	}
	return upper && lower && digit && special
}
