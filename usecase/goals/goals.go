package goals

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vastriantafyllou/goal-tracker/domain"
	"github.com/vastriantafyllou/goal-tracker/query"
)

// Gateway is the slice of the remote API the goals pages use.
type Gateway interface {
	ListGoals(ctx context.Context) ([]domain.Goal, error)
	GetGoal(ctx context.Context, id int64) (*domain.Goal, error)
	CreateGoal(ctx context.Context, input domain.GoalInput) (*domain.Goal, error)
	UpdateGoal(ctx context.Context, id int64, input domain.GoalInput) error
	DeleteGoal(ctx context.Context, id int64) error
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

// View is the goals page: the filtered list plus counters over all goals.
type View struct {
	Goals      []domain.Goal   `json:"goals"`
	Total      int             `json:"total"`
	Stats      query.GoalStats `json:"stats"`
	Categories []string        `json:"categories"`
}

// Editor holds what the goal form needs. Goal is nil for a new goal.
type Editor struct {
	Goal       *domain.Goal      `json:"goal,omitempty"`
	Categories []domain.Category `json:"categories"`
}

type UseCase struct {
	api    Gateway
	now    func() time.Time
	logger *zap.Logger
}

func New(api Gateway, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		api:    api,
		now:    time.Now,
		logger: logger,
	}
}

// View loads every goal and derives the page for q.
func (uc *UseCase) View(ctx context.Context, q query.Query) (*View, error) {
	all, err := uc.api.ListGoals(ctx)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	return &View{
		Goals:      query.Goals(all, q, now),
		Total:      len(all),
		Stats:      query.Stats(all, now),
		Categories: query.GoalCategoryNames(all),
	}, nil
}

func (uc *UseCase) Get(ctx context.Context, id int64) (*domain.Goal, error) {
	return uc.api.GetGoal(ctx, id)
}

// Editor loads the goal and the category options concurrently. id 0 loads the
// options only.
func (uc *UseCase) Editor(ctx context.Context, id int64) (*Editor, error) {
	var editor Editor
	g, gctx := errgroup.WithContext(ctx)
	if id != 0 {
		g.Go(func() error {
			goal, err := uc.api.GetGoal(gctx, id)
			editor.Goal = goal
			return err
		})
	}
	g.Go(func() error {
		categories, err := uc.api.ListCategories(gctx)
		editor.Categories = categories
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &editor, nil
}

// Create validates and creates a goal, then reloads the page.
func (uc *UseCase) Create(ctx context.Context, input domain.GoalInput, q query.Query) (*View, error) {
	if err := input.ValidateCreate(); err != nil {
		return nil, err
	}
	created, err := uc.api.CreateGoal(ctx, input)
	if err != nil {
		return nil, err
	}
	if created != nil {
		uc.logger.Info("goal created", zap.Int64("goal_id", created.ID))
	}
	return uc.View(ctx, q)
}

// Update validates and replaces a goal, then reloads the page.
func (uc *UseCase) Update(ctx context.Context, id int64, input domain.GoalInput, q query.Query) (*View, error) {
	if err := input.ValidateUpdate(); err != nil {
		return nil, err
	}
	if err := uc.api.UpdateGoal(ctx, id, input); err != nil {
		return nil, err
	}
	uc.logger.Info("goal updated", zap.Int64("goal_id", id), zap.String("status", string(input.Status)))
	return uc.View(ctx, q)
}

// Delete removes a goal, then reloads the page.
func (uc *UseCase) Delete(ctx context.Context, id int64, q query.Query) (*View, error) {
	if err := uc.api.DeleteGoal(ctx, id); err != nil {
		return nil, err
	}
	uc.logger.Info("goal deleted", zap.Int64("goal_id", id))
	return uc.View(ctx, q)
}
