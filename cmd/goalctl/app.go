package main

import (
	"context"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/vastriantafyllou/goal-tracker/domain"
	"github.com/vastriantafyllou/goal-tracker/gateway"
	"github.com/vastriantafyllou/goal-tracker/internal/gate"
	"github.com/vastriantafyllou/goal-tracker/session"
	categoriesUC "github.com/vastriantafyllou/goal-tracker/usecase/categories"
	goalsUC "github.com/vastriantafyllou/goal-tracker/usecase/goals"
	usersUC "github.com/vastriantafyllou/goal-tracker/usecase/users"
)

// app holds the process-wide session and the API client bound to it.
type app struct {
	api     *gateway.Client
	session *session.Store
	logger  *zap.Logger
	out     io.Writer
	now     func() time.Time
	asJSON  bool
}

func newApp(ctx context.Context, api *gateway.Client, storage session.Storage, logger *zap.Logger, out io.Writer, opts ...session.Option) *app {
	if logger == nil {
		logger = zap.NewNop()
	}
	store := session.New(ctx, storage, api, opts...)
	return &app{
		api:     api.WithCredentials(store),
		session: store,
		logger:  logger,
		out:     out,
		now:     time.Now,
	}
}

// require applies the same role gate as the web routes.
func (a *app) require(minRole domain.Role) error {
	switch gate.Check(a.session, minRole, "").Action {
	case gate.RedirectToLogin:
		return domain.NewError(domain.ErrCodeUnauthorized, "Not logged in. Run goalctl login first.")
	case gate.RedirectToHome:
		return domain.NewError(domain.ErrCodeForbidden, "This command requires the "+string(minRole)+" role.")
	}
	return nil
}

func (a *app) login(ctx context.Context, credentials domain.Credentials) error {
	if err := a.session.Login(ctx, credentials); err != nil {
		return err
	}
	if !a.session.IsAuthenticated() {
		a.logger.Warn("login returned an unusable token", zap.String("username", credentials.Username))
		_ = a.session.Logout(ctx)
		return domain.NewError(domain.ErrCodeUpstream, "Login failed")
	}
	return nil
}

func (a *app) goals() *goalsUC.UseCase {
	return goalsUC.New(a.api, a.logger)
}

func (a *app) categories() *categoriesUC.UseCase {
	return categoriesUC.New(a.api, a.logger)
}

func (a *app) users() *usersUC.UseCase {
	return usersUC.New(a.api, a.logger)
}
