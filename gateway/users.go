package gateway

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/valyala/fasthttp"

	"github.com/vastriantafyllou/goal-tracker/domain"
)

const usersUnauthorized = "Unauthorized access"

// UserFilter selects a page of users. Zero page values default to 1 and 10.
type UserFilter struct {
	PageNumber int
	PageSize   int
	Username   string
	Email      string
	Role       domain.Role
}

func (f UserFilter) queryString() string {
	if f.PageNumber <= 0 {
		f.PageNumber = 1
	}
	if f.PageSize <= 0 {
		f.PageSize = 10
	}

	args := fasthttp.AcquireArgs()
	defer fasthttp.ReleaseArgs(args)
	args.Set("pageNumber", strconv.Itoa(f.PageNumber))
	args.Set("pageSize", strconv.Itoa(f.PageSize))
	if f.Username != "" {
		args.Set("username", f.Username)
	}
	if f.Email != "" {
		args.Set("email", f.Email)
	}
	if f.Role != "" {
		args.Set("userRole", string(f.Role))
	}
	return args.String()
}

func userFailure(fallback string, status map[int]string) failure {
	s := map[int]string{fasthttp.StatusUnauthorized: usersUnauthorized}
	for k, v := range status {
		s[k] = v
	}
	return failure{fallback: fallback, status: s}
}

var userNotFound = map[int]string{fasthttp.StatusNotFound: "User not found"}

// ListUsers returns one server-side page of users. Admin only.
func (c *Client) ListUsers(ctx context.Context, filter UserFilter) (*domain.Page[domain.User], error) {
	var page domain.Page[domain.User]
	_, err := c.do(ctx, call{
		method: fasthttp.MethodGet,
		path:   "/api/Users/GetAllUsers?" + filter.queryString(),
		auth:   true,
		failure: userFailure("Failed to load users", map[int]string{
			fasthttp.StatusForbidden: "You do not have access permission",
		}),
	}, &page)
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// GetUser returns a user by id.
func (c *Client) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	_, err := c.do(ctx, call{
		method:  fasthttp.MethodGet,
		path:    fmt.Sprintf("/api/Users/GetUserById/%d", id),
		auth:    true,
		failure: userFailure("Failed to load user", userNotFound),
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername returns a user by username.
func (c *Client) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	_, err := c.do(ctx, call{
		method:  fasthttp.MethodGet,
		path:    "/api/Users/by-username/" + url.PathEscape(username),
		auth:    true,
		failure: userFailure("Failed to load user", userNotFound),
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser edits a user. Error bodies are surfaced as plain text.
func (c *Client) UpdateUser(ctx context.Context, id int64, update domain.UserUpdate) (*domain.User, error) {
	var user domain.User
	ok, err := c.do(ctx, call{
		method:  fasthttp.MethodPut,
		path:    fmt.Sprintf("/api/Users/UpdateUser/%d", id),
		body:    update,
		auth:    true,
		failure: failure{fallback: "Failed to update user", extract: rawText},
	}, &user)
	if err != nil || !ok {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes a user.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	_, err := c.do(ctx, call{
		method:  fasthttp.MethodDelete,
		path:    fmt.Sprintf("/api/Users/DeleteUser/%d", id),
		auth:    true,
		failure: userFailure("Failed to delete user", userNotFound),
	}, nil)
	return err
}

// PromoteUser grants the Admin role. SuperAdmin only.
func (c *Client) PromoteUser(ctx context.Context, id int64) (*domain.User, error) {
	return c.changeRole(ctx, fmt.Sprintf("/api/Users/PromoteToAdmin/%d/promote", id), "promote")
}

// DemoteUser resets a user to the User role. SuperAdmin only.
func (c *Client) DemoteUser(ctx context.Context, id int64) (*domain.User, error) {
	return c.changeRole(ctx, fmt.Sprintf("/api/Users/DemoteToUser/%d/demote", id), "demote")
}

func (c *Client) changeRole(ctx context.Context, path, verb string) (*domain.User, error) {
	var user domain.User
	ok, err := c.do(ctx, call{
		method: fasthttp.MethodPatch,
		path:   path,
		auth:   true,
		failure: userFailure("Failed to "+verb+" user", map[int]string{
			fasthttp.StatusForbidden: "Only SuperAdmin can " + verb + " users",
		}),
	}, &user)
	if err != nil || !ok {
		return nil, err
	}
	return &user, nil
}
