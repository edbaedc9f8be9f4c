package goals

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vastriantafyllou/goal-tracker/domain"
	"github.com/vastriantafyllou/goal-tracker/query"
)

type fakeGateway struct {
	goals      []domain.Goal
	categories []domain.Category

	lists   atomic.Int32
	created []domain.GoalInput
	updated map[int64]domain.GoalInput
	deleted []int64

	listErr     error
	mutationErr error
	categoryErr error
}

func (f *fakeGateway) ListGoals(ctx context.Context) ([]domain.Goal, error) {
	f.lists.Add(1)
	return f.goals, f.listErr
}

func (f *fakeGateway) GetGoal(ctx context.Context, id int64) (*domain.Goal, error) {
	for _, g := range f.goals {
		if g.ID == id {
			return &g, nil
		}
	}
	return nil, domain.NewError(domain.ErrCodeNotFound, "Goal not found")
}

func (f *fakeGateway) CreateGoal(ctx context.Context, input domain.GoalInput) (*domain.Goal, error) {
	if f.mutationErr != nil {
		return nil, f.mutationErr
	}
	f.created = append(f.created, input)
	g := domain.Goal{ID: int64(len(f.goals) + 1), Title: input.Title, Status: domain.GoalInProgress}
	f.goals = append(f.goals, g)
	return &g, nil
}

func (f *fakeGateway) UpdateGoal(ctx context.Context, id int64, input domain.GoalInput) error {
	if f.mutationErr != nil {
		return f.mutationErr
	}
	if f.updated == nil {
		f.updated = map[int64]domain.GoalInput{}
	}
	f.updated[id] = input
	return nil
}

func (f *fakeGateway) DeleteGoal(ctx context.Context, id int64) error {
	if f.mutationErr != nil {
		return f.mutationErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeGateway) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return f.categories, f.categoryErr
}

var fixedNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newUseCase(api *fakeGateway) *UseCase {
	uc := New(api, nil)
	uc.now = func() time.Time { return fixedNow }
	return uc
}

func sample() *fakeGateway {
	health := "Health"
	return &fakeGateway{
		goals: []domain.Goal{
			{ID: 1, Title: "Run", Status: domain.GoalInProgress, DueDate: domain.NewTimestamp(fixedNow.AddDate(0, 0, -1)), CategoryName: &health},
			{ID: 2, Title: "Read", Status: domain.GoalCompleted},
			{ID: 3, Title: "Rest", Status: domain.GoalInProgress, DueDate: domain.NewTimestamp(fixedNow.AddDate(0, 0, 2))},
		},
		categories: []domain.Category{{ID: 1, Name: "Health"}},
	}
}

func TestViewFiltersButCountsEverything(t *testing.T) {
	uc := newUseCase(sample())

	view, err := uc.View(context.Background(), query.Query{Filters: map[string]string{query.FilterDue: query.DueOverdue}})
	if err != nil {
		t.Fatalf("View() error = %v", err)
	}
	if len(view.Goals) != 1 || view.Goals[0].ID != 1 {
		t.Fatalf("goals = %+v", view.Goals)
	}
	if view.Total != 3 || view.Stats.Total != 3 || view.Stats.Overdue != 1 || view.Stats.Count(domain.GoalInProgress) != 2 {
		t.Fatalf("counters = total %d, stats %+v", view.Total, view.Stats)
	}
	if len(view.Categories) != 1 || view.Categories[0] != "Health" {
		t.Fatalf("category options = %v", view.Categories)
	}
}

func TestViewPropagatesGatewayError(t *testing.T) {
	api := sample()
	api.listErr = domain.NewError(domain.ErrCodeUnauthorized, "Unauthorized - Please login again")

	_, err := newUseCase(api).View(context.Background(), query.Query{})
	if domain.Message(err) != "Unauthorized - Please login again" {
		t.Fatalf("error = %v", err)
	}
}

func TestMutationsReload(t *testing.T) {
	ctx := context.Background()
	api := sample()
	uc := newUseCase(api)

	view, err := uc.Create(ctx, domain.GoalInput{Title: "Swim"}, query.Query{})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if len(view.Goals) != 4 || api.lists.Load() != 1 {
		t.Fatalf("after create: %d goals, %d list calls", len(view.Goals), api.lists.Load())
	}

	if _, err := uc.Update(ctx, 1, domain.GoalInput{Title: "Run far", Status: domain.GoalCompleted}, query.Query{}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if api.updated[1].Status != domain.GoalCompleted || api.lists.Load() != 2 {
		t.Fatalf("update not sent or not reloaded: %+v, %d", api.updated, api.lists.Load())
	}

	if _, err := uc.Delete(ctx, 2, query.Query{}); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if len(api.deleted) != 1 || api.lists.Load() != 3 {
		t.Fatalf("delete not sent or not reloaded: %v, %d", api.deleted, api.lists.Load())
	}
}

func TestInvalidInputNeverReachesGateway(t *testing.T) {
	ctx := context.Background()
	api := sample()
	uc := newUseCase(api)

	if _, err := uc.Create(ctx, domain.GoalInput{Title: "ab"}, query.Query{}); !domain.IsDomainError(err, domain.ErrCodeInvalid) {
		t.Fatalf("Create() error = %v, want INVALID", err)
	}
	if _, err := uc.Update(ctx, 1, domain.GoalInput{Title: "Run", Status: "Paused"}, query.Query{}); !domain.IsDomainError(err, domain.ErrCodeInvalid) {
		t.Fatalf("Update() error = %v, want INVALID", err)
	}
	if len(api.created) != 0 || len(api.updated) != 0 || api.lists.Load() != 0 {
		t.Fatal("invalid input reached the gateway")
	}
}

func TestFailedMutationSkipsReload(t *testing.T) {
	api := sample()
	api.mutationErr = domain.NewError(domain.ErrCodeNotFound, "Goal not found")

	_, err := newUseCase(api).Delete(context.Background(), 9, query.Query{})
	if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Fatalf("Delete() error = %v", err)
	}
	if api.lists.Load() != 0 {
		t.Fatal("reloaded after a failed mutation")
	}
}

func TestEditorLoadsGoalAndCategories(t *testing.T) {
	uc := newUseCase(sample())

	editor, err := uc.Editor(context.Background(), 3)
	if err != nil {
		t.Fatalf("Editor() error = %v", err)
	}
	if editor.Goal == nil || editor.Goal.ID != 3 || len(editor.Categories) != 1 {
		t.Fatalf("editor = %+v", editor)
	}

	blank, err := uc.Editor(context.Background(), 0)
	if err != nil || blank.Goal != nil || len(blank.Categories) != 1 {
		t.Fatalf("Editor(0) = %+v, %v", blank, err)
	}
}

func TestEditorFailsWhenEitherLoadFails(t *testing.T) {
	api := sample()
	api.categoryErr = errors.New("boom")
	if _, err := newUseCase(api).Editor(context.Background(), 1); err == nil {
		t.Fatal("expected category failure")
	}

	if _, err := newUseCase(sample()).Editor(context.Background(), 42); !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Fatalf("Editor() error = %v, want NOT_FOUND", err)
	}
}
