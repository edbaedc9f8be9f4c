package categories

import (
	"context"
	"testing"

	"github.com/vastriantafyllou/goal-tracker/domain"
	"github.com/vastriantafyllou/goal-tracker/query"
)

type fakeGateway struct {
	categories []domain.Category
	lists      int
	renamed    map[int64]string
	deleteErr  error
}

func (f *fakeGateway) ListCategories(ctx context.Context) ([]domain.Category, error) {
	f.lists++
	return f.categories, nil
}

func (f *fakeGateway) CreateCategory(ctx context.Context, input domain.CategoryInput) (*domain.Category, error) {
	c := domain.Category{ID: int64(len(f.categories) + 1), Name: input.Name}
	f.categories = append(f.categories, c)
	return &c, nil
}

func (f *fakeGateway) UpdateCategory(ctx context.Context, id int64, input domain.CategoryInput) error {
	if f.renamed == nil {
		f.renamed = map[int64]string{}
	}
	f.renamed[id] = input.Name
	return nil
}

func (f *fakeGateway) DeleteCategory(ctx context.Context, id int64) error {
	return f.deleteErr
}

func count(n int) *int { return &n }

func TestViewCountsGoalsAcrossAllCategories(t *testing.T) {
	api := &fakeGateway{categories: []domain.Category{
		{ID: 1, Name: "Health", GoalCount: count(3)},
		{ID: 2, Name: "Empty", GoalCount: count(0)},
		{ID: 3, Name: "Legacy"},
	}}

	view, err := New(api, nil).View(context.Background(), query.Query{Filters: map[string]string{query.FilterGoalCount: query.WithGoals}})
	if err != nil {
		t.Fatalf("View() error = %v", err)
	}
	if len(view.Categories) != 1 || view.Categories[0].Name != "Health" {
		t.Fatalf("categories = %+v", view.Categories)
	}
	if view.Total != 3 || view.TotalGoals != 3 {
		t.Fatalf("total = %d, total goals = %d", view.Total, view.TotalGoals)
	}
}

func TestMutationsValidateAndReload(t *testing.T) {
	ctx := context.Background()
	api := &fakeGateway{}
	uc := New(api, nil)

	if _, err := uc.Create(ctx, domain.CategoryInput{Name: "x"}, query.Query{}); !domain.IsDomainError(err, domain.ErrCodeInvalid) {
		t.Fatalf("Create() error = %v, want INVALID", err)
	}
	if api.lists != 0 || len(api.categories) != 0 {
		t.Fatal("invalid category reached the gateway")
	}

	view, err := uc.Create(ctx, domain.CategoryInput{Name: "Work"}, query.Query{})
	if err != nil || len(view.Categories) != 1 || api.lists != 1 {
		t.Fatalf("Create() = %+v, %v after %d lists", view, err, api.lists)
	}

	if _, err := uc.Update(ctx, 1, domain.CategoryInput{Name: "Career"}, query.Query{}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if api.renamed[1] != "Career" || api.lists != 2 {
		t.Fatalf("renamed = %v, lists = %d", api.renamed, api.lists)
	}

	api.deleteErr = domain.NewError(domain.ErrCodeUpstream, "Failed to delete category")
	if _, err := uc.Delete(ctx, 1, query.Query{}); domain.Message(err) != "Failed to delete category" {
		t.Fatalf("Delete() error = %v", err)
	}
	if api.lists != 2 {
		t.Fatal("reloaded after a failed delete")
	}
}
