package moderation

import (
	"context"
	"errors"
	"testing"

	"github.com/club1938/clubhouse/internal/model"
)

type mockStore struct {
	createFn func(ctx context.Context, item *model.Project) error
	updateFn func(ctx context.Context, id string, item *model.Project) error
	deleteFn func(ctx context.Context, id string) error
}

func (m *mockStore) Create(ctx context.Context, item *model.Project) error {
	if m.createFn != nil {
		return m.createFn(ctx, item)
	}
	return nil
}

func (m *mockStore) Update(ctx context.Context, id string, item *model.Project) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, item)
	}
	return nil
}

func (m *mockStore) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func staticFetch(rows []*model.Project) func(ctx context.Context) ([]*model.Project, error) {
	return func(ctx context.Context) ([]*model.Project, error) {
		return rows, nil
	}
}

func TestDelete_Declined_NeverReachesStore(t *testing.T) {
	// 確認が辞退された削除はデータ層へ一切到達しない。
	deleteCalled := false
	store := &mockStore{
		deleteFn: func(ctx context.Context, id string) error {
			deleteCalled = true
			return nil
		},
	}
	ctrl := NewController[*model.Project]("projects", store, staticFetch(nil))

	deleted, err := ctrl.Delete(context.Background(), "project-1", false)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if deleted {
		t.Error("declined delete should report deleted=false")
	}
	if deleteCalled {
		t.Error("store.Delete should not be called when confirmation is declined")
	}
}

func TestDelete_Confirmed_ReachesStore(t *testing.T) {
	var deletedID string
	store := &mockStore{
		deleteFn: func(ctx context.Context, id string) error {
			deletedID = id
			return nil
		},
	}
	ctrl := NewController[*model.Project]("projects", store, staticFetch(nil))

	deleted, err := ctrl.Delete(context.Background(), "project-1", true)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !deleted {
		t.Error("confirmed delete should report deleted=true")
	}
	if deletedID != "project-1" {
		t.Errorf("deleted ID = %q, want %q", deletedID, "project-1")
	}
}

func TestDelete_StoreError_Propagates(t *testing.T) {
	store := &mockStore{
		deleteFn: func(ctx context.Context, id string) error {
			return model.NewNotFoundError("projet")
		},
	}
	ctrl := NewController[*model.Project]("projects", store, staticFetch(nil))

	deleted, err := ctrl.Delete(context.Background(), "missing", true)
	if deleted {
		t.Error("failed delete should report deleted=false")
	}
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeNotFound {
		t.Errorf("expected NOT_FOUND error, got %v", err)
	}
}

func TestCreateAndUpdate_PassThrough(t *testing.T) {
	var created *model.Project
	var updatedID string
	store := &mockStore{
		createFn: func(ctx context.Context, item *model.Project) error {
			created = item
			return nil
		},
		updateFn: func(ctx context.Context, id string, item *model.Project) error {
			updatedID = id
			return nil
		},
	}
	ctrl := NewController[*model.Project]("projects", store, staticFetch(nil))

	project := &model.Project{ID: "project-1", Title: "Jardin partagé"}
	if err := ctrl.Create(context.Background(), project); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if created != project {
		t.Error("store.Create should receive the item unchanged")
	}

	if err := ctrl.Update(context.Background(), "project-1", project); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updatedID != "project-1" {
		t.Errorf("updated ID = %q, want %q", updatedID, "project-1")
	}
}

func TestRefresh_ReturnsCurrentRows(t *testing.T) {
	rows := []*model.Project{
		{ID: "project-1", Title: "Jardin partagé"},
		{ID: "project-2", Title: "Atelier numérique"},
	}
	ctrl := NewController[*model.Project]("projects", &mockStore{}, staticFetch(rows))

	got, stale, err := ctrl.Refresh(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if stale {
		t.Error("single refresh should not be stale")
	}
	if len(got) != 2 {
		t.Errorf("rows = %d, want 2", len(got))
	}
}
