package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/vastriantafyllou/goal-tracker/api/handler"
	"github.com/vastriantafyllou/goal-tracker/internal/gate"
)

type Handlers struct {
	Auth       *apiHandler.AuthHandler
	Goals      *apiHandler.GoalHandler
	Categories *apiHandler.CategoryHandler
	Users      *apiHandler.UserHandler
	Health     *apiHandler.HealthHandler
}

type Middleware func(fasthttp.RequestHandler) fasthttp.RequestHandler

// Gates wrap protected and admin-only routes.
type Gates struct {
	Protected Middleware
	Admin     Middleware
}

func New(handlers Handlers, gates Gates) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/login", handlers.Auth.Login)
	r.POST("/logout", handlers.Auth.Logout)
	r.POST("/register", handlers.Auth.Register)
	r.GET("/session", handlers.Auth.Session)

	r.GET("/", redirect(gate.HomePath))
	r.GET("/dashboard", redirect(gate.HomePath))

	// Protected routes
	r.GET("/goals", gates.Protected(handlers.Goals.List))
	r.POST("/goals", gates.Protected(handlers.Goals.Create))
	r.GET("/goals/{id}", gates.Protected(handlers.Goals.Get))
	r.PUT("/goals/{id}", gates.Protected(handlers.Goals.Update))
	r.DELETE("/goals/{id}", gates.Protected(handlers.Goals.Delete))

	r.GET("/categories", gates.Protected(handlers.Categories.List))
	r.POST("/categories", gates.Protected(handlers.Categories.Create))
	r.PUT("/categories/{id}", gates.Protected(handlers.Categories.Update))
	r.DELETE("/categories/{id}", gates.Protected(handlers.Categories.Delete))

	// Admin routes
	r.GET("/users", gates.Admin(handlers.Users.List))
	r.PUT("/users/{id}", gates.Admin(handlers.Users.Update))
	r.DELETE("/users/{id}", gates.Admin(handlers.Users.Delete))
	r.PATCH("/users/{id}/promote", gates.Admin(handlers.Users.Promote))
	r.PATCH("/users/{id}/demote", gates.Admin(handlers.Users.Demote))

	return r
}

func redirect(location string) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		ctx.Response.Header.Set(fasthttp.HeaderLocation, location)
		ctx.SetStatusCode(fasthttp.StatusFound)
	}
}
