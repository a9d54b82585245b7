package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/club1938/clubhouse/internal/middleware"
	"github.com/club1938/clubhouse/internal/model"
	"github.com/club1938/clubhouse/internal/security"
)

// ProjectCreator はプロジェクト提案の保存インターフェース。
type ProjectCreator interface {
	Create(ctx context.Context, project *model.Project) error
}

// OpportunityCreator はビジネス機会の保存インターフェース。
type OpportunityCreator interface {
	Create(ctx context.Context, opp *model.BusinessOpportunity) error
}

// ProfileFinder は投稿者名の解決に使うプロフィール参照インターフェース。
type ProfileFinder interface {
	FindByUserID(ctx context.Context, userID string) (*model.Profile, error)
}

// SubmissionHandler は会員からの投稿（プロジェクト提案・ビジネス機会）の
// HTTPハンドラー。提案されたプロジェクトは未公開状態で作成され、
// 管理者の公開操作を経て一覧に表示される。
type SubmissionHandler struct {
	projects      ProjectCreator
	opportunities OpportunityCreator
	profiles      ProfileFinder
	sanitizer     security.ContentSanitizerService
	urlGuard      security.URLGuardService
}

// NewSubmissionHandler はSubmissionHandlerを生成する。
func NewSubmissionHandler(
	projects ProjectCreator,
	opportunities OpportunityCreator,
	profiles ProfileFinder,
	sanitizer security.ContentSanitizerService,
	urlGuard security.URLGuardService,
) *SubmissionHandler {
	return &SubmissionHandler{
		projects:      projects,
		opportunities: opportunities,
		profiles:      profiles,
		sanitizer:     sanitizer,
		urlGuard:      urlGuard,
	}
}

// submitProjectRequest はプロジェクト提案リクエストのボディ。
type submitProjectRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	ImageURL    string `json:"image_url"`
}

// SubmitProject はプロジェクト提案を受け付ける。
// POST /api/projects
func (h *SubmissionHandler) SubmitProject(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	var req submitProjectRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" || strings.TrimSpace(req.Description) == "" {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewMissingFieldsError())
		return
	}

	if req.ImageURL != "" {
		if err := h.urlGuard.ValidateURL(req.ImageURL); err != nil {
			handleServiceError(w, err)
			return
		}
	}

	author, err := h.resolveAuthor(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	now := time.Now()
	description := h.sanitizer.Sanitize(req.Description)
	project := &model.Project{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Description: &description,
		Author:      &author,
		AuthorID:    &userID,
		IsPublished: false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if c := strings.TrimSpace(req.Category); c != "" {
		project.Category = &c
	}
	if req.ImageURL != "" {
		project.ImageURL = &req.ImageURL
	}

	if err := h.projects.Create(r.Context(), project); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toProjectResponse(project))
}

// submitOpportunityRequest はビジネス機会投稿リクエストのボディ。
type submitOpportunityRequest struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Sector      string `json:"sector"`
	LookingFor  string `json:"looking_for"`
	Email       string `json:"email"`
}

// SubmitOpportunity はビジネス機会の投稿を受け付ける。
// POST /api/opportunities
// 投稿は即座に掲示板に表示される。
func (h *SubmissionHandler) SubmitOpportunity(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	var req submitOpportunityRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" || strings.TrimSpace(req.Description) == "" {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewMissingFieldsError())
		return
	}

	now := time.Now()
	description := h.sanitizer.Sanitize(req.Description)
	opp := &model.BusinessOpportunity{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Description: &description,
		AuthorID:    &userID,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, field := range []struct {
		value  string
		target **string
	}{
		{req.Company, &opp.Company},
		{req.Location, &opp.Location},
		{req.Sector, &opp.Sector},
		{req.LookingFor, &opp.LookingFor},
		{req.Email, &opp.Email},
	} {
		if v := strings.TrimSpace(field.value); v != "" {
			*field.target = &v
		}
	}

	if err := h.opportunities.Create(r.Context(), opp); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, opportunityResponse{
		ID:          opp.ID,
		Title:       opp.Title,
		Company:     opp.Company,
		Description: opp.Description,
		Location:    opp.Location,
		Sector:      opp.Sector,
		LookingFor:  opp.LookingFor,
		Email:       opp.Email,
	})
}

// resolveAuthor は投稿者の表示名を解決する。
// プロフィールの姓名が揃っていればそれを、なければメールアドレスの
// ローカルパートを使う。
func (h *SubmissionHandler) resolveAuthor(ctx context.Context, userID string) (string, error) {
	profile, err := h.profiles.FindByUserID(ctx, userID)
	if err != nil {
		return "", err
	}
	if profile == nil {
		return "", model.NewNotFoundError("profil")
	}

	first := ""
	last := ""
	if profile.FirstName != nil {
		first = strings.TrimSpace(*profile.FirstName)
	}
	if profile.LastName != nil {
		last = strings.TrimSpace(*profile.LastName)
	}
	if first != "" || last != "" {
		return strings.TrimSpace(first + " " + last), nil
	}

	if profile.Email != nil {
		if at := strings.Index(*profile.Email, "@"); at > 0 {
			return (*profile.Email)[:at], nil
		}
	}
	return "membre", nil
}
