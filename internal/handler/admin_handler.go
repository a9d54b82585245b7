package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/club1938/clubhouse/internal/listing"
	"github.com/club1938/clubhouse/internal/metrics"
	"github.com/club1938/clubhouse/internal/model"
	"github.com/club1938/clubhouse/internal/moderation"
	"github.com/club1938/clubhouse/internal/repository"
	"github.com/club1938/clubhouse/internal/security"
)

// memberStore はMemberRepositoryをモデレーション書き込み層に適合させる。
type memberStore struct {
	repo repository.MemberRepository
}

func (s *memberStore) Create(ctx context.Context, item *model.Member) error {
	return s.repo.Create(ctx, item)
}

func (s *memberStore) Update(ctx context.Context, id string, item *model.Member) error {
	item.ID = id
	return s.repo.Update(ctx, item)
}

func (s *memberStore) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// projectStore はProjectRepositoryをモデレーション書き込み層に適合させる。
type projectStore struct {
	repo repository.ProjectRepository
}

func (s *projectStore) Create(ctx context.Context, item *model.Project) error {
	return s.repo.Create(ctx, item)
}

func (s *projectStore) Update(ctx context.Context, id string, item *model.Project) error {
	item.ID = id
	return s.repo.Update(ctx, item)
}

func (s *projectStore) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// newsStore はNewsRepositoryをモデレーション書き込み層に適合させる。
type newsStore struct {
	repo repository.NewsRepository
}

func (s *newsStore) Create(ctx context.Context, item *model.NewsItem) error {
	return s.repo.Create(ctx, item)
}

func (s *newsStore) Update(ctx context.Context, id string, item *model.NewsItem) error {
	item.ID = id
	return s.repo.Update(ctx, item)
}

func (s *newsStore) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// AdminHandler は管理コンソールのHTTPハンドラー。
// 会員名簿・プロジェクト・ニュース記事のCRUDを提供する。
// 削除はconfirmパラメータによる確認済みの意思決定を要求し、
// 確認なしの削除リクエストはデータ層に到達しない。
// 変更操作のレスポンスには取り直した一覧を含める。並行する操作によって
// 取り直しが古くなった場合、一覧は省略され、クライアントは自分が発行した
// 最新のリクエストの結果を使う。
type AdminHandler struct {
	memberRepo  repository.MemberRepository
	projectRepo repository.ProjectRepository
	newsRepo    repository.NewsRepository

	members  *moderation.Controller[*model.Member]
	projects *moderation.Controller[*model.Project]
	news     *moderation.Controller[*model.NewsItem]

	sanitizer security.ContentSanitizerService
	urlGuard  security.URLGuardService
	collector metrics.MetricsCollector
}

// NewAdminHandler はAdminHandlerを生成する。
func NewAdminHandler(
	memberRepo repository.MemberRepository,
	projectRepo repository.ProjectRepository,
	newsRepo repository.NewsRepository,
	sanitizer security.ContentSanitizerService,
	urlGuard security.URLGuardService,
	collector metrics.MetricsCollector,
) *AdminHandler {
	return &AdminHandler{
		memberRepo:  memberRepo,
		projectRepo: projectRepo,
		newsRepo:    newsRepo,
		members: moderation.NewController[*model.Member]("members", &memberStore{repo: memberRepo},
			func(ctx context.Context) ([]*model.Member, error) { return memberRepo.List(ctx, false) }),
		projects: moderation.NewController[*model.Project]("projects", &projectStore{repo: projectRepo},
			func(ctx context.Context) ([]*model.Project, error) { return projectRepo.List(ctx, false) }),
		news: moderation.NewController[*model.NewsItem]("news", &newsStore{repo: newsRepo},
			func(ctx context.Context) ([]*model.NewsItem, error) { return newsRepo.List(ctx, false) }),
		sanitizer: sanitizer,
		urlGuard:  urlGuard,
		collector: collector,
	}
}

// confirmParam は削除確認パラメータを読み取る。
func confirmParam(r *http.Request) bool {
	return r.URL.Query().Get("confirm") == "true"
}

// refreshedMembers は変更後の会員一覧を取り直す。
// 並行する操作の取り直しに追い越された場合はnilを返し、一覧は省略される。
func (h *AdminHandler) refreshedMembers(ctx context.Context) []memberResponse {
	rows, stale, err := h.members.Refresh(ctx)
	if err != nil || stale {
		return nil
	}
	out := make([]memberResponse, 0, len(rows))
	for _, m := range rows {
		out = append(out, toAdminMemberResponse(m))
	}
	return out
}

func (h *AdminHandler) refreshedProjects(ctx context.Context) []projectResponse {
	rows, stale, err := h.projects.Refresh(ctx)
	if err != nil || stale {
		return nil
	}
	out := make([]projectResponse, 0, len(rows))
	for _, p := range rows {
		out = append(out, toProjectResponse(p))
	}
	return out
}

func (h *AdminHandler) refreshedNews(ctx context.Context) []newsResponse {
	rows, stale, err := h.news.Refresh(ctx)
	if err != nil || stale {
		return nil
	}
	out := make([]newsResponse, 0, len(rows))
	for _, n := range rows {
		out = append(out, toAdminNewsResponse(n))
	}
	return out
}

// --- 会員名簿 ---

// adminMemberRequest は会員の作成・更新リクエストのボディ。
type adminMemberRequest struct {
	Name      string   `json:"name"`
	Role      string   `json:"role"`
	Company   string   `json:"company"`
	Sector    string   `json:"sector"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone"`
	LinkedIn  string   `json:"linkedin"`
	Bio       string   `json:"bio"`
	AvatarURL string   `json:"avatar_url"`
	Projects  []string `json:"projects"`
	IsActive  bool     `json:"is_active"`
}

// toMember はリクエストボディから会員モデルを構築する。
func (h *AdminHandler) toMember(req *adminMemberRequest, now time.Time) *model.Member {
	m := &model.Member{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(req.Name),
		Projects:  req.Projects,
		IsActive:  req.IsActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	assign := func(target **string, value string) {
		if v := strings.TrimSpace(value); v != "" {
			*target = &v
		}
	}
	assign(&m.Role, req.Role)
	assign(&m.Company, req.Company)
	assign(&m.Sector, req.Sector)
	assign(&m.Email, req.Email)
	assign(&m.Phone, req.Phone)
	assign(&m.LinkedIn, req.LinkedIn)
	assign(&m.Bio, h.sanitizer.Sanitize(req.Bio))
	assign(&m.AvatarURL, req.AvatarURL)
	return m
}

// validateMemberRequest は会員リクエストの必須フィールドとURLを検証する。
func (h *AdminHandler) validateMemberRequest(w http.ResponseWriter, req *adminMemberRequest) bool {
	if strings.TrimSpace(req.Name) == "" {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewMissingFieldsError())
		return false
	}
	for _, rawURL := range []string{req.AvatarURL, req.LinkedIn} {
		if rawURL == "" {
			continue
		}
		if err := h.urlGuard.ValidateURL(rawURL); err != nil {
			handleServiceError(w, err)
			return false
		}
	}
	return true
}

func toAdminMemberResponse(m *model.Member) memberResponse {
	return memberResponse{
		ID:        m.ID,
		Name:      m.Name,
		Role:      m.Role,
		Company:   m.Company,
		Sector:    m.Sector,
		Email:     m.Email,
		Phone:     m.Phone,
		LinkedIn:  m.LinkedIn,
		Bio:       m.Bio,
		AvatarURL: m.AvatarURL,
		Projects:  m.Projects,
		IsActive:  m.IsActive,
	}
}

// ListMembers は非公開の会員も含む全会員を返す。
// GET /api/admin/members?q=xxx
func (h *AdminHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.memberRepo.List(r.Context(), false)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	filtered := listing.Filter(members, r.URL.Query().Get("q"), listing.FacetAll)

	out := make([]memberResponse, 0, len(filtered))
	for _, m := range filtered {
		out = append(out, toAdminMemberResponse(m))
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateMember は会員を作成する。
// POST /api/admin/members
func (h *AdminHandler) CreateMember(w http.ResponseWriter, r *http.Request) {
	var req adminMemberRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if !h.validateMemberRequest(w, &req) {
		return
	}

	member := h.toMember(&req, time.Now())
	if err := h.members.Create(r.Context(), member); err != nil {
		handleServiceError(w, err)
		return
	}

	h.collector.RecordModeration("members", "create")
	writeJSON(w, http.StatusCreated, map[string]any{
		"member":  toAdminMemberResponse(member),
		"members": h.refreshedMembers(r.Context()),
	})
}

// UpdateMember は会員情報を更新する。
// PUT /api/admin/members/{id}
func (h *AdminHandler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req adminMemberRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if !h.validateMemberRequest(w, &req) {
		return
	}

	member := h.toMember(&req, time.Now())
	if err := h.members.Update(r.Context(), id, member); err != nil {
		handleServiceError(w, err)
		return
	}

	h.collector.RecordModeration("members", "update")
	writeJSON(w, http.StatusOK, map[string]any{
		"member":  toAdminMemberResponse(member),
		"members": h.refreshedMembers(r.Context()),
	})
}

// DeleteMember は会員を削除する。
// DELETE /api/admin/members/{id}?confirm=true
// confirm=trueがない場合は何も削除せずdeleted:falseを返す。
func (h *AdminHandler) DeleteMember(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	deleted, err := h.members.Delete(r.Context(), id, confirmParam(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if !deleted {
		// 確認が辞退された場合、一覧の状態は変化していない
		writeJSON(w, http.StatusOK, map[string]any{"deleted": false})
		return
	}
	h.collector.RecordModeration("members", "delete")
	writeJSON(w, http.StatusOK, map[string]any{
		"deleted": true,
		"members": h.refreshedMembers(r.Context()),
	})
}

// --- プロジェクト ---

// adminProjectRequest はプロジェクトの作成・更新リクエストのボディ。
type adminProjectRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Author       string `json:"author"`
	Category     string `json:"category"`
	Date         string `json:"date"`
	ImageURL     string `json:"image_url"`
	Participants int    `json:"participants"`
	Status       string `json:"status"`
	IsPublished  bool   `json:"is_published"`
}

func (h *AdminHandler) toProject(req *adminProjectRequest, now time.Time) *model.Project {
	p := &model.Project{
		ID:           uuid.New().String(),
		Title:        strings.TrimSpace(req.Title),
		Participants: req.Participants,
		IsPublished:  req.IsPublished,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	assign := func(target **string, value string) {
		if v := strings.TrimSpace(value); v != "" {
			*target = &v
		}
	}
	assign(&p.Description, h.sanitizer.Sanitize(req.Description))
	assign(&p.Author, req.Author)
	assign(&p.Category, req.Category)
	assign(&p.Date, req.Date)
	assign(&p.ImageURL, req.ImageURL)
	return p
}

func (h *AdminHandler) validateProjectRequest(w http.ResponseWriter, req *adminProjectRequest) bool {
	if strings.TrimSpace(req.Title) == "" {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewMissingFieldsError())
		return false
	}
	if req.ImageURL != "" {
		if err := h.urlGuard.ValidateURL(req.ImageURL); err != nil {
			handleServiceError(w, err)
			return false
		}
	}
	return true
}

// ListProjects は未公開分も含む全プロジェクトを返す。
// GET /api/admin/projects?q=xxx
// qはタイトル・提案者・カテゴリに対する部分一致。
func (h *AdminHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projectRepo.List(r.Context(), false)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	filtered := listing.FilterFields(projects, r.URL.Query().Get("q"), listing.FacetAll,
		func(p *model.Project) []string { return p.AdminSearchText() }, nil)

	out := make([]projectResponse, 0, len(filtered))
	for _, p := range filtered {
		out = append(out, toProjectResponse(p))
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateProject はプロジェクトを作成する。
// POST /api/admin/projects
func (h *AdminHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req adminProjectRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if !h.validateProjectRequest(w, &req) {
		return
	}

	project := h.toProject(&req, time.Now())
	if err := h.projects.Create(r.Context(), project); err != nil {
		handleServiceError(w, err)
		return
	}

	h.collector.RecordModeration("projects", "create")
	writeJSON(w, http.StatusCreated, map[string]any{
		"project":  toProjectResponse(project),
		"projects": h.refreshedProjects(r.Context()),
	})
}

// UpdateProject はプロジェクトを更新する。公開状態の切り替えもここで行う。
// PUT /api/admin/projects/{id}
func (h *AdminHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req adminProjectRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if !h.validateProjectRequest(w, &req) {
		return
	}

	project := h.toProject(&req, time.Now())
	if err := h.projects.Update(r.Context(), id, project); err != nil {
		handleServiceError(w, err)
		return
	}

	h.collector.RecordModeration("projects", "update")
	writeJSON(w, http.StatusOK, map[string]any{
		"project":  toProjectResponse(project),
		"projects": h.refreshedProjects(r.Context()),
	})
}

// DeleteProject はプロジェクトを削除する。
// DELETE /api/admin/projects/{id}?confirm=true
func (h *AdminHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	deleted, err := h.projects.Delete(r.Context(), id, confirmParam(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if !deleted {
		writeJSON(w, http.StatusOK, map[string]any{"deleted": false})
		return
	}
	h.collector.RecordModeration("projects", "delete")
	writeJSON(w, http.StatusOK, map[string]any{
		"deleted":  true,
		"projects": h.refreshedProjects(r.Context()),
	})
}

// --- ニュース記事 ---

// adminNewsRequest はニュース記事の作成・更新リクエストのボディ。
type adminNewsRequest struct {
	Title       string `json:"title"`
	Excerpt     string `json:"excerpt"`
	Content     string `json:"content"`
	Category    string `json:"category"`
	ImageURL    string `json:"image_url"`
	Featured    bool   `json:"featured"`
	IsPublished bool   `json:"is_published"`
}

func (h *AdminHandler) toNewsItem(req *adminNewsRequest, now time.Time) *model.NewsItem {
	n := &model.NewsItem{
		ID:          uuid.New().String(),
		Title:       strings.TrimSpace(req.Title),
		Featured:    req.Featured,
		IsPublished: req.IsPublished,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.IsPublished {
		n.PublishedAt = &now
	}
	assign := func(target **string, value string) {
		if v := strings.TrimSpace(value); v != "" {
			*target = &v
		}
	}
	assign(&n.Excerpt, req.Excerpt)
	assign(&n.Content, h.sanitizer.Sanitize(req.Content))
	assign(&n.Category, req.Category)
	assign(&n.ImageURL, req.ImageURL)
	return n
}

func (h *AdminHandler) validateNewsRequest(w http.ResponseWriter, req *adminNewsRequest) bool {
	if strings.TrimSpace(req.Title) == "" {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewMissingFieldsError())
		return false
	}
	if req.ImageURL != "" {
		if err := h.urlGuard.ValidateURL(req.ImageURL); err != nil {
			handleServiceError(w, err)
			return false
		}
	}
	return true
}

func toAdminNewsResponse(n *model.NewsItem) newsResponse {
	return newsResponse{
		ID:          n.ID,
		Title:       n.Title,
		Excerpt:     n.Excerpt,
		Content:     n.Content,
		Category:    n.Category,
		ImageURL:    n.ImageURL,
		Featured:    n.Featured,
		IsPublished: n.IsPublished,
		PublishedAt: n.PublishedAt,
	}
}

// ListNews は未公開分も含む全記事を返す。
// GET /api/admin/news?q=xxx
func (h *AdminHandler) ListNews(w http.ResponseWriter, r *http.Request) {
	items, err := h.newsRepo.List(r.Context(), false)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	filtered := listing.Filter(items, r.URL.Query().Get("q"), listing.FacetAll)

	out := make([]newsResponse, 0, len(filtered))
	for _, n := range filtered {
		out = append(out, toAdminNewsResponse(n))
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateNews は記事を作成する。
// POST /api/admin/news
func (h *AdminHandler) CreateNews(w http.ResponseWriter, r *http.Request) {
	var req adminNewsRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if !h.validateNewsRequest(w, &req) {
		return
	}

	item := h.toNewsItem(&req, time.Now())
	if err := h.news.Create(r.Context(), item); err != nil {
		handleServiceError(w, err)
		return
	}

	h.collector.RecordModeration("news", "create")
	writeJSON(w, http.StatusCreated, map[string]any{
		"item": toAdminNewsResponse(item),
		"news": h.refreshedNews(r.Context()),
	})
}

// UpdateNews は記事を更新する。
// PUT /api/admin/news/{id}
func (h *AdminHandler) UpdateNews(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req adminNewsRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if !h.validateNewsRequest(w, &req) {
		return
	}

	item := h.toNewsItem(&req, time.Now())

	// 公開日時は未公開→公開の遷移時のみ新規設定する。
	// 既公開記事の編集で公開日時を付け直すと公開フィードの並びが変わってしまう。
	existing, err := h.newsRepo.FindByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if existing != nil && existing.PublishedAt != nil {
		item.PublishedAt = existing.PublishedAt
	}

	if err := h.news.Update(r.Context(), id, item); err != nil {
		handleServiceError(w, err)
		return
	}

	h.collector.RecordModeration("news", "update")
	writeJSON(w, http.StatusOK, map[string]any{
		"item": toAdminNewsResponse(item),
		"news": h.refreshedNews(r.Context()),
	})
}

// DeleteNews は記事を削除する。
// DELETE /api/admin/news/{id}?confirm=true
func (h *AdminHandler) DeleteNews(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	deleted, err := h.news.Delete(r.Context(), id, confirmParam(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if !deleted {
		writeJSON(w, http.StatusOK, map[string]any{"deleted": false})
		return
	}
	h.collector.RecordModeration("news", "delete")
	writeJSON(w, http.StatusOK, map[string]any{
		"deleted": true,
		"news":    h.refreshedNews(r.Context()),
	})
}
