package gateway

import (
	"context"
	"fmt"

	"github.com/valyala/fasthttp"

	"github.com/vastriantafyllou/goal-tracker/domain"
)

var categoryNotFound = map[int]string{fasthttp.StatusNotFound: "Category not found"}

// ListCategories returns the categories of the current user.
func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	_, err := c.do(ctx, call{
		method:  fasthttp.MethodGet,
		path:    "/api/GoalCategory/GetMyCategories",
		auth:    true,
		failure: failure{fallback: "Failed to load categories"},
	}, &categories)
	return categories, err
}

// GetCategory returns one category.
func (c *Client) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	var category domain.Category
	_, err := c.do(ctx, call{
		method:  fasthttp.MethodGet,
		path:    fmt.Sprintf("/api/GoalCategory/GetCategory/%d", id),
		auth:    true,
		failure: failure{fallback: "Failed to load category", status: categoryNotFound},
	}, &category)
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// CreateCategory creates a category.
func (c *Client) CreateCategory(ctx context.Context, input domain.CategoryInput) (*domain.Category, error) {
	var category domain.Category
	ok, err := c.do(ctx, call{
		method:  fasthttp.MethodPost,
		path:    "/api/GoalCategory/CreateCategory",
		body:    input,
		auth:    true,
		failure: failure{fallback: "Failed to create category", extract: problemMessage},
	}, &category)
	if err != nil || !ok {
		return nil, err
	}
	return &category, nil
}

// UpdateCategory renames a category.
func (c *Client) UpdateCategory(ctx context.Context, id int64, input domain.CategoryInput) error {
	_, err := c.do(ctx, call{
		method:  fasthttp.MethodPut,
		path:    fmt.Sprintf("/api/GoalCategory/UpdateCategory/%d", id),
		body:    input,
		auth:    true,
		failure: failure{fallback: "Failed to update category", status: categoryNotFound},
	}, nil)
	return err
}

// DeleteCategory removes a category.
func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	_, err := c.do(ctx, call{
		method:  fasthttp.MethodDelete,
		path:    fmt.Sprintf("/api/GoalCategory/DeleteCategory/%d", id),
		auth:    true,
		failure: failure{fallback: "Failed to delete category"},
	}, nil)
	return err
}
