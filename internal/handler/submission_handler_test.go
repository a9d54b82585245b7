package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/club1938/clubhouse/internal/middleware"
	"github.com/club1938/clubhouse/internal/model"
)

func newSubmissionHandler(projects ProjectCreator, opps OpportunityCreator, profiles ProfileFinder, urlGuard *allowAllURLGuard) *SubmissionHandler {
	if urlGuard == nil {
		urlGuard = &allowAllURLGuard{}
	}
	return NewSubmissionHandler(projects, opps, profiles, passthroughSanitizer{}, urlGuard)
}

func authedRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	ctx := middleware.ContextWithUserID(req.Context(), "user-1")
	return req.WithContext(ctx)
}

func TestSubmitProject_Unauthenticated(t *testing.T) {
	h := newSubmissionHandler(&mockProjectRepo{}, nil, &mockProfileRepo{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/projects", strings.NewReader(`{"title":"x","description":"y"}`))
	rec := httptest.NewRecorder()
	h.SubmitProject(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestSubmitProject_CreatedUnpublished(t *testing.T) {
	var created *model.Project
	projectRepo := &mockProjectRepo{
		createFn: func(ctx context.Context, project *model.Project) error {
			created = project
			return nil
		},
	}
	profileRepo := &mockProfileRepo{
		findByUserIDFn: func(ctx context.Context, userID string) (*model.Profile, error) {
			return &model.Profile{
				UserID:    userID,
				FirstName: strPtr("Jean"),
				LastName:  strPtr("Dupont"),
			}, nil
		},
	}
	h := newSubmissionHandler(projectRepo, nil, profileRepo, nil)

	body := `{"title":"Jardin partagé","description":"<p>Un potager collectif</p>","category":"Social"}`
	req := authedRequest(http.MethodPost, "/api/projects", body)
	rec := httptest.NewRecorder()
	h.SubmitProject(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d, body: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
	if created == nil {
		t.Fatal("repository create was not called")
	}
	if created.IsPublished {
		t.Error("submitted project should be created unpublished")
	}
	if created.Author == nil || *created.Author != "Jean Dupont" {
		t.Errorf("author = %v, want Jean Dupont", created.Author)
	}
	if created.AuthorID == nil || *created.AuthorID != "user-1" {
		t.Errorf("author id = %v, want user-1", created.AuthorID)
	}
}

func TestSubmitProject_AuthorFallsBackToEmailLocalPart(t *testing.T) {
	var created *model.Project
	projectRepo := &mockProjectRepo{
		createFn: func(ctx context.Context, project *model.Project) error {
			created = project
			return nil
		},
	}
	profileRepo := &mockProfileRepo{
		findByUserIDFn: func(ctx context.Context, userID string) (*model.Profile, error) {
			return &model.Profile{UserID: userID, Email: strPtr("jean.dupont@example.com")}, nil
		},
	}
	h := newSubmissionHandler(projectRepo, nil, profileRepo, nil)

	req := authedRequest(http.MethodPost, "/api/projects", `{"title":"Atelier","description":"desc"}`)
	rec := httptest.NewRecorder()
	h.SubmitProject(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if created.Author == nil || *created.Author != "jean.dupont" {
		t.Errorf("author = %v, want jean.dupont", created.Author)
	}
}

func TestSubmitProject_MissingDescription(t *testing.T) {
	createCalled := false
	projectRepo := &mockProjectRepo{
		createFn: func(ctx context.Context, project *model.Project) error {
			createCalled = true
			return nil
		},
	}
	h := newSubmissionHandler(projectRepo, nil, &mockProfileRepo{}, nil)

	req := authedRequest(http.MethodPost, "/api/projects", `{"title":"Atelier","description":"  "}`)
	rec := httptest.NewRecorder()
	h.SubmitProject(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if createCalled {
		t.Error("repository create should not be called for an invalid request")
	}
}

func TestSubmitProject_RejectedImageURL(t *testing.T) {
	createCalled := false
	projectRepo := &mockProjectRepo{
		createFn: func(ctx context.Context, project *model.Project) error {
			createCalled = true
			return nil
		},
	}
	urlGuard := &allowAllURLGuard{
		validateFn: func(rawURL string) error {
			return model.NewInvalidURLError("hôte non autorisé")
		},
	}
	h := newSubmissionHandler(projectRepo, nil, &mockProfileRepo{}, urlGuard)

	body := `{"title":"Atelier","description":"desc","image_url":"http://localhost/x.png"}`
	req := authedRequest(http.MethodPost, "/api/projects", body)
	rec := httptest.NewRecorder()
	h.SubmitProject(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if createCalled {
		t.Error("repository create should not be called for a rejected URL")
	}
}

func TestSubmitOpportunity_CreatedActive(t *testing.T) {
	var created *model.BusinessOpportunity
	oppRepo := &mockOpportunityRepo{
		createFn: func(ctx context.Context, opp *model.BusinessOpportunity) error {
			created = opp
			return nil
		},
	}
	h := newSubmissionHandler(nil, oppRepo, &mockProfileRepo{}, nil)

	body := `{"title":"Recherche associé","description":"Pour un projet de conseil","sector":"Tech","email":"contact@example.com"}`
	req := authedRequest(http.MethodPost, "/api/opportunities", body)
	rec := httptest.NewRecorder()
	h.SubmitOpportunity(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d, body: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
	if created == nil {
		t.Fatal("repository create was not called")
	}
	if !created.IsActive {
		t.Error("submitted opportunity should be active immediately")
	}
	if created.Sector == nil || *created.Sector != "Tech" {
		t.Errorf("sector = %v, want Tech", created.Sector)
	}

	var resp opportunityResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Title != "Recherche associé" {
		t.Errorf("title = %q, want %q", resp.Title, "Recherche associé")
	}
}

func TestSubmitOpportunity_MissingTitle(t *testing.T) {
	createCalled := false
	oppRepo := &mockOpportunityRepo{
		createFn: func(ctx context.Context, opp *model.BusinessOpportunity) error {
			createCalled = true
			return nil
		},
	}
	h := newSubmissionHandler(nil, oppRepo, &mockProfileRepo{}, nil)

	req := authedRequest(http.MethodPost, "/api/opportunities", `{"description":"desc"}`)
	rec := httptest.NewRecorder()
	h.SubmitOpportunity(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if createCalled {
		t.Error("repository create should not be called for an invalid request")
	}
}
