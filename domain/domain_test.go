package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestRoleAtLeast(t *testing.T) {
	cases := []struct {
		role, min Role
		want      bool
	}{
		{RoleUser, RoleUser, true},
		{RoleUser, RoleAdmin, false},
		{RoleAdmin, RoleAdmin, true},
		{RoleSuperAdmin, RoleAdmin, true},
		{RoleAdmin, RoleSuperAdmin, false},
		{"Guest", RoleUser, false},
		{"Guest", "", true},
		{"", RoleUser, false},
	}
	for _, tc := range cases {
		if got := tc.role.AtLeast(tc.min); got != tc.want {
			t.Fatalf("%q.AtLeast(%q) = %v, want %v", tc.role, tc.min, got, tc.want)
		}
	}
}

func TestGoalInputValidation(t *testing.T) {
	cases := []struct {
		name   string
		input  GoalInput
		update bool
		want   string
	}{
		{"short title", GoalInput{Title: "ab"}, false, "Title must be at least 3 characters"},
		{"long title", GoalInput{Title: strings.Repeat("x", 101)}, false, "Title must not exceed 100 characters"},
		{"long description", GoalInput{Title: "Run", Description: strings.Repeat("x", 501)}, false, "Description cannot exceed 500 characters"},
		{"bad date", GoalInput{Title: "Run", DueDate: "next week"}, false, "Due date is invalid"},
		{"valid create", GoalInput{Title: "Run", DueDate: "2026-03-09"}, false, ""},
		{"update needs status", GoalInput{Title: "Run"}, true, "Status is invalid"},
		{"valid update", GoalInput{Title: "Run", Status: GoalCancelled}, true, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var err error
			if tc.update {
				err = tc.input.ValidateUpdate()
			} else {
				err = tc.input.ValidateCreate()
			}
			if tc.want == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !IsDomainError(err, ErrCodeInvalid) || Message(err) != tc.want {
				t.Fatalf("error = %v, want %q", err, tc.want)
			}
		})
	}
}

func TestCategoryInputValidation(t *testing.T) {
	if err := (CategoryInput{Name: "x"}).Validate(); Message(err) != "Name must be at least 2 characters" {
		t.Fatalf("short name error = %v", err)
	}
	if err := (CategoryInput{Name: strings.Repeat("é", 51)}).Validate(); Message(err) != "Name cannot exceed 50 characters" {
		t.Fatalf("long name error = %v", err)
	}
	if err := (CategoryInput{Name: strings.Repeat("é", 50)}).Validate(); err != nil {
		t.Fatalf("50 runes rejected: %v", err)
	}
}

func TestUserSignupValidation(t *testing.T) {
	valid := UserSignup{Username: "ann", Email: "ann@example.com", Password: "Secret1!", Firstname: "Ann", Lastname: "Lee"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid signup rejected: %v", err)
	}

	cases := map[string]func(s *UserSignup){
		"Invalid email address": func(s *UserSignup) { s.Email = "Ann <ann@example.com>" },
		"Password must contain at least one uppercase, one lowercase, one digit, and one special character": func(s *UserSignup) { s.Password = "secret11" },
		"Username must be between 2 and 50 characters":                                                      func(s *UserSignup) { s.Username = "a" },
		"Lastname must be between 2 and 50 characters":                                                      func(s *UserSignup) { s.Lastname = "" },
	}
	for want, mutate := range cases {
		s := valid
		mutate(&s)
		if got := Message(s.Validate()); got != want {
			t.Fatalf("message = %q, want %q", got, want)
		}
	}
}

func TestUserUpdateValidatesOnlyPresentFields(t *testing.T) {
	if err := (UserUpdate{}).Validate(); err != nil {
		t.Fatalf("empty update rejected: %v", err)
	}
	bad := Role("Owner")
	if err := (UserUpdate{Role: &bad}).Validate(); Message(err) != "Role is invalid" {
		t.Fatalf("role error = %v", err)
	}
}

func TestTimestampDecoding(t *testing.T) {
	var payload struct {
		Zoned    Timestamp  `json:"zoned"`
		Local    Timestamp  `json:"local"`
		DateOnly Timestamp  `json:"dateOnly"`
		Null     *Timestamp `json:"null"`
		Empty    Timestamp  `json:"empty"`
	}
	body := `{"zoned":"2026-03-09T10:00:00Z","local":"2026-03-09T10:00:00.1234567","dateOnly":"2026-03-09","null":null,"empty":""}`
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !payload.Zoned.Equal(time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("zoned = %v", payload.Zoned)
	}
	if payload.Local.Location() != time.Local || payload.Local.Hour() != 10 {
		t.Fatalf("local = %v", payload.Local)
	}
	if payload.DateOnly.Location() != time.Local || payload.DateOnly.Day() != 9 {
		t.Fatalf("date only = %v", payload.DateOnly)
	}
	if payload.Null != nil || !payload.Empty.IsZero() {
		t.Fatalf("null = %v, empty = %v", payload.Null, payload.Empty)
	}

	var bad Timestamp
	if err := json.Unmarshal([]byte(`"March 9"`), &bad); err == nil {
		t.Fatal("expected error for unrecognised timestamp")
	}
}

func TestGoalIsOverdue(t *testing.T) {
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	yesterday := NewTimestamp(now.Add(-24 * time.Hour))
	laterToday := NewTimestamp(now.Add(-time.Hour))

	cases := []struct {
		name string
		goal Goal
		want bool
	}{
		{"past due", Goal{Status: GoalInProgress, DueDate: yesterday}, true},
		{"completed", Goal{Status: GoalCompleted, DueDate: yesterday}, false},
		{"cancelled still overdue", Goal{Status: GoalCancelled, DueDate: yesterday}, true},
		{"due today", Goal{Status: GoalInProgress, DueDate: laterToday}, false},
		{"no due date", Goal{Status: GoalInProgress}, false},
	}
	for _, tc := range cases {
		if got := tc.goal.IsOverdue(now); got != tc.want {
			t.Fatalf("%s: IsOverdue = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestErrorWrapping(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := WrapError(ErrCodeUnavailable, "Failed to fetch goals", cause)
	if !errors.Is(err, cause) {
		t.Fatal("wrapped cause not reachable")
	}
	if Message(err) != "Failed to fetch goals" {
		t.Fatalf("message = %q", Message(err))
	}
	if Message(cause) != cause.Error() {
		t.Fatalf("plain message = %q", Message(cause))
	}
	if Message(nil) != "" {
		t.Fatalf("nil message = %q", Message(nil))
	}
}
