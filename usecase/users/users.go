package users

import (
	"context"

	"go.uber.org/zap"

	"github.com/vastriantafyllou/goal-tracker/domain"
	"github.com/vastriantafyllou/goal-tracker/gateway"
	"github.com/vastriantafyllou/goal-tracker/query"
)

// Gateway is the slice of the remote API the user management page uses.
type Gateway interface {
	ListUsers(ctx context.Context, filter gateway.UserFilter) (*domain.Page[domain.User], error)
	UpdateUser(ctx context.Context, id int64, update domain.UserUpdate) (*domain.User, error)
	DeleteUser(ctx context.Context, id int64) error
	PromoteUser(ctx context.Context, id int64) (*domain.User, error)
	DemoteUser(ctx context.Context, id int64) (*domain.User, error)
	Register(ctx context.Context, signup domain.UserSignup) (*domain.User, error)
}

// PageRequest selects the server-side page.
type PageRequest struct {
	PageNumber int
	PageSize   int
	Username   string
}

// PageView is one page of users after client-side filtering.
type PageView struct {
	Users        []domain.User `json:"users"`
	TotalRecords int           `json:"totalRecords"`
	PageNumber   int           `json:"pageNumber"`
	PageSize     int           `json:"pageSize"`
	TotalPages   int           `json:"totalPages"`
}

type UseCase struct {
	api    Gateway
	logger *zap.Logger
}

func New(api Gateway, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{api: api, logger: logger}
}

// Page fetches one server page and applies q (role filter, search) to it.
// Pagination counters describe the server page, not the filtered rows.
func (uc *UseCase) Page(ctx context.Context, req PageRequest, q query.Query) (*PageView, error) {
	page, err := uc.api.ListUsers(ctx, gateway.UserFilter{
		PageNumber: req.PageNumber,
		PageSize:   req.PageSize,
		Username:   req.Username,
	})
	if err != nil {
		return nil, err
	}
	return &PageView{
		Users:        query.Users(page.Data, q),
		TotalRecords: page.TotalRecords,
		PageNumber:   page.PageNumber,
		PageSize:     page.PageSize,
		TotalPages:   page.TotalPages(),
	}, nil
}

func (uc *UseCase) Update(ctx context.Context, id int64, update domain.UserUpdate, req PageRequest, q query.Query) (*PageView, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}
	if _, err := uc.api.UpdateUser(ctx, id, update); err != nil {
		return nil, err
	}
	uc.logger.Info("user updated", zap.Int64("user_id", id))
	return uc.Page(ctx, req, q)
}

func (uc *UseCase) Delete(ctx context.Context, id int64, req PageRequest, q query.Query) (*PageView, error) {
	if err := uc.api.DeleteUser(ctx, id); err != nil {
		return nil, err
	}
	uc.logger.Info("user deleted", zap.Int64("user_id", id))
	return uc.Page(ctx, req, q)
}

func (uc *UseCase) Promote(ctx context.Context, id int64, req PageRequest, q query.Query) (*PageView, error) {
	if _, err := uc.api.PromoteUser(ctx, id); err != nil {
		return nil, err
	}
	uc.logger.Info("user promoted", zap.Int64("user_id", id))
	return uc.Page(ctx, req, q)
}

func (uc *UseCase) Demote(ctx context.Context, id int64, req PageRequest, q query.Query) (*PageView, error) {
	if _, err := uc.api.DemoteUser(ctx, id); err != nil {
		return nil, err
	}
	uc.logger.Info("user demoted", zap.Int64("user_id", id))
	return uc.Page(ctx, req, q)
}

// Register validates the signup form before creating the account.
func (uc *UseCase) Register(ctx context.Context, signup domain.UserSignup) (*domain.User, error) {
	if err := signup.Validate(); err != nil {
		return nil, err
	}
	user, err := uc.api.Register(ctx, signup)
	if err != nil {
		return nil, err
	}
	uc.logger.Info("user registered", zap.String("username", signup.Username))
	return user, nil
}
