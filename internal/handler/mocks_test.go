package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/club1938/clubhouse/internal/model"
)

// --- メトリクスモック ---

type nopCollector struct{}

func (nopCollector) RecordHTTPStatus(statusCode int)                  {}
func (nopCollector) RecordSignUp()                                    {}
func (nopCollector) RecordSignIn()                                    {}
func (nopCollector) RecordAuthFailure(reason string)                  {}
func (nopCollector) RecordListingQuery(collection string)             {}
func (nopCollector) RecordModeration(resource string, op string)      {}
func (nopCollector) RecordSessionsCleaned(count int)                  {}
func (nopCollector) RecordLinkProbe(outcome string)                   {}
func (nopCollector) RecordQueryLatency(duration time.Duration)        {}

// --- コンテンツ検証モック ---

type passthroughSanitizer struct{}

func (passthroughSanitizer) Sanitize(rawHTML string) string { return rawHTML }

type allowAllURLGuard struct {
	validateFn func(rawURL string) error
}

func (g *allowAllURLGuard) ValidateURL(rawURL string) error {
	if g.validateFn != nil {
		return g.validateFn(rawURL)
	}
	return nil
}

func (g *allowAllURLGuard) NewSafeClient(timeout time.Duration) *http.Client {
	return http.DefaultClient
}

// --- リポジトリモック ---

type mockMemberRepo struct {
	listFn     func(ctx context.Context, activeOnly bool) ([]*model.Member, error)
	findByIDFn func(ctx context.Context, id string) (*model.Member, error)
	createFn   func(ctx context.Context, member *model.Member) error
	updateFn   func(ctx context.Context, member *model.Member) error
	deleteFn   func(ctx context.Context, id string) error
}

func (m *mockMemberRepo) List(ctx context.Context, activeOnly bool) ([]*model.Member, error) {
	if m.listFn != nil {
		return m.listFn(ctx, activeOnly)
	}
	return nil, nil
}

func (m *mockMemberRepo) FindByID(ctx context.Context, id string) (*model.Member, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockMemberRepo) Create(ctx context.Context, member *model.Member) error {
	if m.createFn != nil {
		return m.createFn(ctx, member)
	}
	return nil
}

func (m *mockMemberRepo) Update(ctx context.Context, member *model.Member) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, member)
	}
	return nil
}

func (m *mockMemberRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockProjectRepo struct {
	listFn     func(ctx context.Context, publishedOnly bool) ([]*model.Project, error)
	findByIDFn func(ctx context.Context, id string) (*model.Project, error)
	createFn   func(ctx context.Context, project *model.Project) error
	updateFn   func(ctx context.Context, project *model.Project) error
	deleteFn   func(ctx context.Context, id string) error
}

func (m *mockProjectRepo) List(ctx context.Context, publishedOnly bool) ([]*model.Project, error) {
	if m.listFn != nil {
		return m.listFn(ctx, publishedOnly)
	}
	return nil, nil
}

func (m *mockProjectRepo) FindByID(ctx context.Context, id string) (*model.Project, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockProjectRepo) Create(ctx context.Context, project *model.Project) error {
	if m.createFn != nil {
		return m.createFn(ctx, project)
	}
	return nil
}

func (m *mockProjectRepo) Update(ctx context.Context, project *model.Project) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, project)
	}
	return nil
}

func (m *mockProjectRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockNewsRepo struct {
	listFn     func(ctx context.Context, publishedOnly bool) ([]*model.NewsItem, error)
	findByIDFn func(ctx context.Context, id string) (*model.NewsItem, error)
	createFn   func(ctx context.Context, item *model.NewsItem) error
	updateFn   func(ctx context.Context, item *model.NewsItem) error
	deleteFn   func(ctx context.Context, id string) error
}

func (m *mockNewsRepo) List(ctx context.Context, publishedOnly bool) ([]*model.NewsItem, error) {
	if m.listFn != nil {
		return m.listFn(ctx, publishedOnly)
	}
	return nil, nil
}

func (m *mockNewsRepo) FindByID(ctx context.Context, id string) (*model.NewsItem, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockNewsRepo) Create(ctx context.Context, item *model.NewsItem) error {
	if m.createFn != nil {
		return m.createFn(ctx, item)
	}
	return nil
}

func (m *mockNewsRepo) Update(ctx context.Context, item *model.NewsItem) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, item)
	}
	return nil
}

func (m *mockNewsRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockOpportunityRepo struct {
	listFn   func(ctx context.Context, activeOnly bool) ([]*model.BusinessOpportunity, error)
	createFn func(ctx context.Context, opp *model.BusinessOpportunity) error
}

func (m *mockOpportunityRepo) List(ctx context.Context, activeOnly bool) ([]*model.BusinessOpportunity, error) {
	if m.listFn != nil {
		return m.listFn(ctx, activeOnly)
	}
	return nil, nil
}

func (m *mockOpportunityRepo) Create(ctx context.Context, opp *model.BusinessOpportunity) error {
	if m.createFn != nil {
		return m.createFn(ctx, opp)
	}
	return nil
}

type mockProfileRepo struct {
	findByUserIDFn func(ctx context.Context, userID string) (*model.Profile, error)
	updateFn       func(ctx context.Context, profile *model.Profile) error
}

func (m *mockProfileRepo) FindByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	if m.findByUserIDFn != nil {
		return m.findByUserIDFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockProfileRepo) Update(ctx context.Context, profile *model.Profile) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, profile)
	}
	return nil
}

// --- 認証サービスモック ---

type mockAuthService struct {
	signUpFn         func(ctx context.Context, email, password, firstName, lastName string) (*model.Session, error)
	signInFn         func(ctx context.Context, email, password string) (*model.Session, error)
	signOutFn        func(ctx context.Context, sessionID string) error
	getCurrentUserFn func(ctx context.Context, sessionID string) (*model.User, error)
}

func (m *mockAuthService) SignUp(ctx context.Context, email, password, firstName, lastName string) (*model.Session, error) {
	if m.signUpFn != nil {
		return m.signUpFn(ctx, email, password, firstName, lastName)
	}
	return &model.Session{ID: "session-1", UserID: "user-1"}, nil
}

func (m *mockAuthService) SignIn(ctx context.Context, email, password string) (*model.Session, error) {
	if m.signInFn != nil {
		return m.signInFn(ctx, email, password)
	}
	return &model.Session{ID: "session-1", UserID: "user-1"}, nil
}

func (m *mockAuthService) SignOut(ctx context.Context, sessionID string) error {
	if m.signOutFn != nil {
		return m.signOutFn(ctx, sessionID)
	}
	return nil
}

func (m *mockAuthService) GetCurrentUser(ctx context.Context, sessionID string) (*model.User, error) {
	if m.getCurrentUserFn != nil {
		return m.getCurrentUserFn(ctx, sessionID)
	}
	return &model.User{ID: "user-1", Email: "jean@example.com"}, nil
}

func strPtr(s string) *string { return &s }
