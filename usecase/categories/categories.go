package categories

import (
	"context"

	"go.uber.org/zap"

	"github.com/vastriantafyllou/goal-tracker/domain"
	"github.com/vastriantafyllou/goal-tracker/query"
)

// Gateway is the slice of the remote API the categories page uses.
type Gateway interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, input domain.CategoryInput) (*domain.Category, error)
	UpdateCategory(ctx context.Context, id int64, input domain.CategoryInput) error
	DeleteCategory(ctx context.Context, id int64) error
}

// View is the categories page.
type View struct {
	Categories []domain.Category `json:"categories"`
	Total      int               `json:"total"`
	TotalGoals int               `json:"totalGoals"`
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

func (uc *UseCase) View(ctx context.Context, q query.Query) (*View, error) {
	all, err := uc.api.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	view := &View{
		Categories: query.Categories(all, q),
		Total:      len(all),
	}
	for _, c := range all {
		view.TotalGoals += c.Goals()
	}
	return view, nil
}

func (uc *UseCase) Create(ctx context.Context, input domain.CategoryInput, q query.Query) (*View, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if _, err := uc.api.CreateCategory(ctx, input); err != nil {
		return nil, err
	}
	uc.logger.Info("category created", zap.String("name", input.Name))
	return uc.View(ctx, q)
}

func (uc *UseCase) Update(ctx context.Context, id int64, input domain.CategoryInput, q query.Query) (*View, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if err := uc.api.UpdateCategory(ctx, id, input); err != nil {
		return nil, err
	}
	uc.logger.Info("category renamed", zap.Int64("category_id", id))
	return uc.View(ctx, q)
}

func (uc *UseCase) Delete(ctx context.Context, id int64, q query.Query) (*View, error) {
	if err := uc.api.DeleteCategory(ctx, id); err != nil {
		return nil, err
	}
	uc.logger.Info("category deleted", zap.Int64("category_id", id))
	return uc.View(ctx, q)
}
