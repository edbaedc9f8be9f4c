package users

import (
	"context"
	"testing"

	"github.com/vastriantafyllou/goal-tracker/domain"
	"github.com/vastriantafyllou/goal-tracker/gateway"
	"github.com/vastriantafyllou/goal-tracker/query"
)

type fakeGateway struct {
	page       domain.Page[domain.User]
	filters    []gateway.UserFilter
	promoted   []int64
	demoted    []int64
	registered []domain.UserSignup
	promoteErr error
}

func (f *fakeGateway) ListUsers(ctx context.Context, filter gateway.UserFilter) (*domain.Page[domain.User], error) {
	f.filters = append(f.filters, filter)
	page := f.page
	return &page, nil
}

func (f *fakeGateway) UpdateUser(ctx context.Context, id int64, update domain.UserUpdate) (*domain.User, error) {
	return &domain.User{ID: id}, nil
}

func (f *fakeGateway) DeleteUser(ctx context.Context, id int64) error { return nil }

func (f *fakeGateway) PromoteUser(ctx context.Context, id int64) (*domain.User, error) {
	if f.promoteErr != nil {
		return nil, f.promoteErr
	}
	f.promoted = append(f.promoted, id)
	return &domain.User{ID: id, Role: domain.RoleAdmin}, nil
}

func (f *fakeGateway) DemoteUser(ctx context.Context, id int64) (*domain.User, error) {
	f.demoted = append(f.demoted, id)
	return &domain.User{ID: id, Role: domain.RoleUser}, nil
}

func (f *fakeGateway) Register(ctx context.Context, signup domain.UserSignup) (*domain.User, error) {
	f.registered = append(f.registered, signup)
	return &domain.User{Username: signup.Username}, nil
}

func samplePage() domain.Page[domain.User] {
	return domain.Page[domain.User]{
		Data: []domain.User{
			{ID: 1, Username: "root", Role: domain.RoleSuperAdmin},
			{ID: 2, Username: "alice", Role: domain.RoleAdmin},
			{ID: 3, Username: "bob", Role: domain.RoleUser},
		},
		TotalRecords: 23,
		PageNumber:   2,
		PageSize:     10,
	}
}

func TestPageFiltersServerPage(t *testing.T) {
	api := &fakeGateway{page: samplePage()}
	req := PageRequest{PageNumber: 2, PageSize: 10, Username: "a"}

	view, err := New(api, nil).Page(context.Background(), req, query.Query{Filters: map[string]string{query.FilterRole: "Admin"}})
	if err != nil {
		t.Fatalf("Page() error = %v", err)
	}
	if len(view.Users) != 1 || view.Users[0].ID != 2 {
		t.Fatalf("users = %+v", view.Users)
	}
	if view.TotalRecords != 23 || view.TotalPages != 3 || view.PageNumber != 2 {
		t.Fatalf("pagination = %+v", view)
	}
	want := gateway.UserFilter{PageNumber: 2, PageSize: 10, Username: "a"}
	if len(api.filters) != 1 || api.filters[0] != want {
		t.Fatalf("filters = %+v, want %+v", api.filters, want)
	}
}

func TestRoleChangesReload(t *testing.T) {
	ctx := context.Background()
	api := &fakeGateway{page: samplePage()}
	uc := New(api, nil)

	if _, err := uc.Promote(ctx, 3, PageRequest{}, query.Query{}); err != nil {
		t.Fatalf("Promote() error = %v", err)
	}
	if _, err := uc.Demote(ctx, 2, PageRequest{}, query.Query{}); err != nil {
		t.Fatalf("Demote() error = %v", err)
	}
	if len(api.promoted) != 1 || len(api.demoted) != 1 || len(api.filters) != 2 {
		t.Fatalf("promoted %v, demoted %v, reloads %d", api.promoted, api.demoted, len(api.filters))
	}

	api.promoteErr = domain.NewError(domain.ErrCodeForbidden, "Only SuperAdmin can promote users")
	if _, err := uc.Promote(ctx, 3, PageRequest{}, query.Query{}); domain.Message(err) != "Only SuperAdmin can promote users" {
		t.Fatalf("Promote() error = %v", err)
	}
	if len(api.filters) != 2 {
		t.Fatal("reloaded after a failed promotion")
	}
}

func TestUpdateAndRegisterValidateFirst(t *testing.T) {
	ctx := context.Background()
	api := &fakeGateway{page: samplePage()}
	uc := New(api, nil)

	bad := "x"
	if _, err := uc.Update(ctx, 1, domain.UserUpdate{Firstname: &bad}, PageRequest{}, query.Query{}); !domain.IsDomainError(err, domain.ErrCodeInvalid) {
		t.Fatalf("Update() error = %v, want INVALID", err)
	}
	if len(api.filters) != 0 {
		t.Fatal("invalid update reached the gateway")
	}

	if _, err := uc.Register(ctx, domain.UserSignup{Username: "ann"}); !domain.IsDomainError(err, domain.ErrCodeInvalid) {
		t.Fatalf("Register() error = %v, want INVALID", err)
	}
	signup := domain.UserSignup{Username: "ann", Email: "ann@example.com", Password: "Secret1!", Firstname: "Ann", Lastname: "Lee"}
	user, err := uc.Register(ctx, signup)
	if err != nil || user.Username != "ann" || len(api.registered) != 1 {
		t.Fatalf("Register() = %+v, %v", user, err)
	}
}
