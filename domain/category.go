package domain

import "unicode/utf8"

// Category groups goals. GoalCount is computed by the server.
type Category struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	GoalCount *int   `json:"goalCount,omitempty"`
}

// Goals returns the advisory goal count, treating an absent count as zero.
func (c Category) Goals() int {
	if c.GoalCount == nil {
		return 0
	}
	return *c.GoalCount
}

// CategoryInput is used for both create and update.
type CategoryInput struct {
	Name string `json:"name"`
}

func (in CategoryInput) Validate() error {
	n := utf8.RuneCountInString(in.Name)
	switch {
	case n < 2:
		return NewError(ErrCodeInvalid, "Name must be at least 2 characters")
	case n > 50:
		return NewError(ErrCodeInvalid, "Name cannot exceed 50 characters")
	}
	return nil
}
