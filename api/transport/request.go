package transport

import "github.com/vastriantafyllou/goal-tracker/domain"

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	From     string `json:"from"`
}

func (r LoginRequest) Credentials() domain.Credentials {
	return domain.Credentials{Username: r.Username, Password: r.Password}
}

type GoalRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	DueDate     string            `json:"dueDate"`
	Status      domain.GoalStatus `json:"status"`
	CategoryID  *int64            `json:"goalCategoryId"`
}

func (r GoalRequest) Input() domain.GoalInput {
	return domain.GoalInput{
		Title:       r.Title,
		Description: r.Description,
		DueDate:     r.DueDate,
		Status:      r.Status,
		CategoryID:  r.CategoryID,
	}
}

type CategoryRequest struct {
	Name string `json:"name"`
}

func (r CategoryRequest) Input() domain.CategoryInput {
	return domain.CategoryInput{Name: r.Name}
}
