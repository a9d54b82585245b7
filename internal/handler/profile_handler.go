package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/club1938/clubhouse/internal/middleware"
	"github.com/club1938/clubhouse/internal/model"
	"github.com/club1938/clubhouse/internal/security"
)

// ProfileStore はプロフィールの参照・更新インターフェース。
type ProfileStore interface {
	FindByUserID(ctx context.Context, userID string) (*model.Profile, error)
	Update(ctx context.Context, profile *model.Profile) error
}

// ProfileHandler は会員本人のプロフィール管理のHTTPハンドラー。
type ProfileHandler struct {
	profiles  ProfileStore
	sanitizer security.ContentSanitizerService
	urlGuard  security.URLGuardService
}

// NewProfileHandler はProfileHandlerを生成する。
func NewProfileHandler(profiles ProfileStore, sanitizer security.ContentSanitizerService, urlGuard security.URLGuardService) *ProfileHandler {
	return &ProfileHandler{
		profiles:  profiles,
		sanitizer: sanitizer,
		urlGuard:  urlGuard,
	}
}

// profileResponse はプロフィールのAPIレスポンス。
type profileResponse struct {
	ID            string  `json:"id"`
	FirstName     *string `json:"first_name"`
	LastName      *string `json:"last_name"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	Company       *string `json:"company"`
	Role          *string `json:"role"`
	Sector        *string `json:"sector"`
	Bio           *string `json:"bio"`
	LinkedIn      *string `json:"linkedin"`
	AvatarURL     *string `json:"avatar_url"`
	ProjectsCount int     `json:"projects_count"`
}

func toProfileResponse(p *model.Profile) profileResponse {
	return profileResponse{
		ID:            p.ID,
		FirstName:     p.FirstName,
		LastName:      p.LastName,
		Email:         p.Email,
		Phone:         p.Phone,
		Company:       p.Company,
		Role:          p.Role,
		Sector:        p.Sector,
		Bio:           p.Bio,
		LinkedIn:      p.LinkedIn,
		AvatarURL:     p.AvatarURL,
		ProjectsCount: p.ProjectsCount,
	}
}

// GetProfile は自分のプロフィールを返す。
// GET /api/me/profile
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	profile, err := h.profiles.FindByUserID(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if profile == nil {
		writeAPIErrorResponse(w, http.StatusNotFound, model.NewNotFoundError("profil"))
		return
	}

	writeJSON(w, http.StatusOK, toProfileResponse(profile))
}

// updateProfileRequest はプロフィール更新リクエストのボディ。
type updateProfileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Company   string `json:"company"`
	Role      string `json:"role"`
	Sector    string `json:"sector"`
	Bio       string `json:"bio"`
	LinkedIn  string `json:"linkedin"`
	AvatarURL string `json:"avatar_url"`
}

// UpdateProfile は自分のプロフィールを更新する。
// PUT /api/me/profile
// アバターとLinkedInのURLは保存前に検証し、自己紹介文はサニタイズする。
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	var req updateProfileRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	for _, rawURL := range []string{req.AvatarURL, req.LinkedIn} {
		if rawURL == "" {
			continue
		}
		if err := h.urlGuard.ValidateURL(rawURL); err != nil {
			handleServiceError(w, err)
			return
		}
	}

	profile, err := h.profiles.FindByUserID(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if profile == nil {
		writeAPIErrorResponse(w, http.StatusNotFound, model.NewNotFoundError("profil"))
		return
	}

	assign := func(target **string, value string) {
		v := strings.TrimSpace(value)
		if v == "" {
			*target = nil
			return
		}
		*target = &v
	}
	assign(&profile.FirstName, req.FirstName)
	assign(&profile.LastName, req.LastName)
	assign(&profile.Phone, req.Phone)
	assign(&profile.Company, req.Company)
	assign(&profile.Role, req.Role)
	assign(&profile.Sector, req.Sector)
	assign(&profile.Bio, h.sanitizer.Sanitize(req.Bio))
	assign(&profile.LinkedIn, req.LinkedIn)
	assign(&profile.AvatarURL, req.AvatarURL)
	profile.UpdatedAt = time.Now()

	if err := h.profiles.Update(r.Context(), profile); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toProfileResponse(profile))
}
