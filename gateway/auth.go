package gateway

import (
	"context"

	"github.com/valyala/fasthttp"

	"github.com/vastriantafyllou/goal-tracker/domain"
)

type loginRequest struct {
	Username     string `json:"username"`
	Password     string `json:"password"`
	KeepLoggedIn bool   `json:"keepLoggedIn"`
}

// Login exchanges credentials for an access token. A rejected login carries the
// server's message verbatim.
func (c *Client) Login(ctx context.Context, credentials domain.Credentials) (*domain.LoginResult, error) {
	var result domain.LoginResult
	_, err := c.do(ctx, call{
		method: fasthttp.MethodPost,
		path:   "/api/auth/login/access-token",
		body: loginRequest{
			Username: credentials.Username,
			Password: credentials.Password,
		},
		failure: failure{fallback: "Login failed", extract: problemMessage},
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, signup domain.UserSignup) (*domain.User, error) {
	var user domain.User
	ok, err := c.do(ctx, call{
		method:  fasthttp.MethodPost,
		path:    "/api/Users/RegisterUser/register",
		body:    signup,
		failure: failure{fallback: "Registration failed", extract: validationMessage},
	}, &user)
	if err != nil || !ok {
		return nil, err
	}
	return &user, nil
}
