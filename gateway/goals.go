package gateway

import (
	"context"
	"fmt"

	"github.com/valyala/fasthttp"

	"github.com/vastriantafyllou/goal-tracker/domain"
)

const goalsUnauthorized = "Unauthorized - Please login again"

func goalFailure(fallback string, notFound bool, extract func([]byte) string) failure {
	f := failure{
		fallback: fallback,
		status:   map[int]string{fasthttp.StatusUnauthorized: goalsUnauthorized},
		extract:  extract,
	}
	if notFound {
		f.status[fasthttp.StatusNotFound] = "Goal not found"
	}
	return f
}

// ListGoals returns every goal of the current user.
func (c *Client) ListGoals(ctx context.Context) ([]domain.Goal, error) {
	var goals []domain.Goal
	_, err := c.do(ctx, call{
		method:  fasthttp.MethodGet,
		path:    "/api/Goals/GetMyGoals",
		auth:    true,
		failure: goalFailure("Failed to fetch goals", false, nil),
	}, &goals)
	return goals, err
}

// GetGoal returns one goal.
func (c *Client) GetGoal(ctx context.Context, id int64) (*domain.Goal, error) {
	var goal domain.Goal
	_, err := c.do(ctx, call{
		method:  fasthttp.MethodGet,
		path:    fmt.Sprintf("/api/Goals/GetGoal/%d", id),
		auth:    true,
		failure: goalFailure("Failed to fetch goal", true, nil),
	}, &goal)
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

// CreateGoal creates a goal and returns it when the server echoes it back.
func (c *Client) CreateGoal(ctx context.Context, input domain.GoalInput) (*domain.Goal, error) {
	var goal domain.Goal
	ok, err := c.do(ctx, call{
		method:  fasthttp.MethodPost,
		path:    "/api/Goals/CreateGoal",
		body:    input,
		auth:    true,
		failure: goalFailure("Failed to create goal", false, problemMessage),
	}, &goal)
	if err != nil || !ok {
		return nil, err
	}
	return &goal, nil
}

// UpdateGoal replaces a goal.
func (c *Client) UpdateGoal(ctx context.Context, id int64, input domain.GoalInput) error {
	_, err := c.do(ctx, call{
		method:  fasthttp.MethodPut,
		path:    fmt.Sprintf("/api/Goals/UpdateGoal/%d", id),
		body:    input,
		auth:    true,
		failure: goalFailure("Failed to update goal", true, jsonMessage("message", "detail")),
	}, nil)
	return err
}

// DeleteGoal removes a goal.
func (c *Client) DeleteGoal(ctx context.Context, id int64) error {
	_, err := c.do(ctx, call{
		method:  fasthttp.MethodDelete,
		path:    fmt.Sprintf("/api/Goals/DeleteGoal/%d", id),
		auth:    true,
		failure: goalFailure("Failed to delete goal", true, nil),
	}, nil)
	return err
}
