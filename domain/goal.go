package domain

import (
	"time"
	"unicode/utf8"
)

// GoalStatus mirrors the backend GoalStatus enum.
type GoalStatus string

const (
	GoalInProgress GoalStatus = "InProgress"
	GoalCompleted  GoalStatus = "Completed"
	GoalCancelled  GoalStatus = "Cancelled"
)

// GoalStatuses lists every status in display order.
var GoalStatuses = []GoalStatus{GoalInProgress, GoalCompleted, GoalCancelled}

func (s GoalStatus) Valid() bool {
	switch s {
	case GoalInProgress, GoalCompleted, GoalCancelled:
		return true
	}
	return false
}

// Goal represents a user-owned goal as returned by the API.
type Goal struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Description  *string    `json:"description,omitempty"`
	Status       GoalStatus `json:"status"`
	DueDate      *Timestamp `json:"dueDate,omitempty"`
	CreatedDate  Timestamp  `json:"createdDate"`
	CategoryID   *int64     `json:"goalCategoryId,omitempty"`
	CategoryName *string    `json:"categoryName,omitempty"`
}

// IsCompleted reports whether the goal is done.
func (g Goal) IsCompleted() bool {
	return g.Status == GoalCompleted
}

// HasCategory reports whether the goal is linked to a category.
func (g Goal) HasCategory() bool {
	return g.CategoryID != nil || (g.CategoryName != nil && *g.CategoryName != "")
}

// Due returns the due date, if any.
func (g Goal) Due() (time.Time, bool) {
	if g.DueDate == nil || g.DueDate.IsZero() {
		return time.Time{}, false
	}
	return g.DueDate.Time, true
}

// Category returns the denormalised category name, or "".
func (g Goal) Category() string {
	if g.CategoryName == nil {
		return ""
	}
	return *g.CategoryName
}

// IsOverdue reports whether the goal was due before today and is not completed.
// Days are compared at midnight in the location of now.
func (g Goal) IsOverdue(now time.Time) bool {
	due, ok := g.Due()
	if !ok || g.IsCompleted() {
		return false
	}
	loc := now.Location()
	return StartOfDay(due, loc).Before(StartOfDay(now, loc))
}

// GoalInput carries create and update fields. Status is required on update only.
type GoalInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueDate     string     `json:"dueDate,omitempty"`
	Status      GoalStatus `json:"status,omitempty"`
	CategoryID  *int64     `json:"goalCategoryId,omitempty"`
}

// ValidateCreate checks the create form constraints.
func (in GoalInput) ValidateCreate() error {
	n := utf8.RuneCountInString(in.Title)
	switch {
	case n < 3:
		return NewError(ErrCodeInvalid, "Title must be at least 3 characters")
	case n > 100:
		return NewError(ErrCodeInvalid, "Title must not exceed 100 characters")
	case utf8.RuneCountInString(in.Description) > 500:
		return NewError(ErrCodeInvalid, "Description cannot exceed 500 characters")
	}
	if in.DueDate != "" {
		if _, err := ParseTimestamp(in.DueDate); err != nil {
			return WrapError(ErrCodeInvalid, "Due date is invalid", err)
		}
	}
	return nil
}

// ValidateUpdate checks the update form constraints.
func (in GoalInput) ValidateUpdate() error {
	if err := in.ValidateCreate(); err != nil {
		return err
	}
	if !in.Status.Valid() {
		return NewError(ErrCodeInvalid, "Status is invalid")
	}
	return nil
}
