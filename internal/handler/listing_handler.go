package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/club1938/clubhouse/internal/listing"
	"github.com/club1938/clubhouse/internal/metrics"
	"github.com/club1938/clubhouse/internal/model"
)

// MemberLister は公開名簿の取得インターフェース。
type MemberLister interface {
	List(ctx context.Context, activeOnly bool) ([]*model.Member, error)
}

// ProjectLister は公開プロジェクト一覧の取得インターフェース。
type ProjectLister interface {
	List(ctx context.Context, publishedOnly bool) ([]*model.Project, error)
}

// NewsLister は公開記事一覧の取得インターフェース。
type NewsLister interface {
	List(ctx context.Context, publishedOnly bool) ([]*model.NewsItem, error)
}

// OpportunityLister は公開ビジネス機会一覧の取得インターフェース。
type OpportunityLister interface {
	List(ctx context.Context, activeOnly bool) ([]*model.BusinessOpportunity, error)
}

// ListingHandler は公開一覧のHTTPハンドラー。
// 全行を取得したうえで検索語・ファセットの絞り込みをメモリ内で適用する。
// 絞り込みは大文字小文字を区別しない部分一致で、想定データ規模
// （会員数百件・記事数百件）では全件取得のコストは無視できる。
type ListingHandler struct {
	members       MemberLister
	projects      ProjectLister
	news          NewsLister
	opportunities OpportunityLister
	collector     metrics.MetricsCollector
}

// NewListingHandler はListingHandlerを生成する。
func NewListingHandler(
	members MemberLister,
	projects ProjectLister,
	news NewsLister,
	opportunities OpportunityLister,
	collector metrics.MetricsCollector,
) *ListingHandler {
	return &ListingHandler{
		members:       members,
		projects:      projects,
		news:          news,
		opportunities: opportunities,
		collector:     collector,
	}
}

// facetParam はファセットクエリパラメータを読み取る。
// 未指定はセンチネル値（全件一致）として扱う。
func facetParam(r *http.Request, name string) string {
	v := r.URL.Query().Get(name)
	if v == "" {
		return listing.FacetAll
	}
	return v
}

// memberResponse は会員名簿エントリのAPIレスポンス。
type memberResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Role      *string  `json:"role"`
	Company   *string  `json:"company"`
	Sector    *string  `json:"sector"`
	Email     *string  `json:"email"`
	Phone     *string  `json:"phone"`
	LinkedIn  *string  `json:"linkedin"`
	Bio       *string  `json:"bio"`
	AvatarURL *string  `json:"avatar_url"`
	Projects  []string `json:"projects"`
	IsActive  bool     `json:"is_active"`
}

// ListMembers は会員名簿を返す。
// GET /api/members?q=xxx&sector=yyy
// qは名前・会社・セクターに対する部分一致、sectorは完全一致。
func (h *ListingHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	members, err := h.members.List(r.Context(), true)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	h.collector.RecordQueryLatency(time.Since(start))
	h.collector.RecordListingQuery("members")

	filtered := listing.Filter(members, r.URL.Query().Get("q"), facetParam(r, "sector"))

	out := make([]memberResponse, 0, len(filtered))
	for _, m := range filtered {
		out = append(out, memberResponse{
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
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// projectResponse はプロジェクトのAPIレスポンス。
type projectResponse struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Description  *string `json:"description"`
	Author       *string `json:"author"`
	Category     *string `json:"category"`
	Date         *string `json:"date"`
	ImageURL     *string `json:"image_url"`
	Participants int     `json:"participants"`
	Status       *string `json:"status"`
	IsPublished  bool    `json:"is_published"`
}

func toProjectResponse(p *model.Project) projectResponse {
	return projectResponse{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		Author:       p.Author,
		Category:     p.Category,
		Date:         p.Date,
		ImageURL:     p.ImageURL,
		Participants: p.Participants,
		Status:       p.Status,
		IsPublished:  p.IsPublished,
	}
}

// ListProjects は公開プロジェクト一覧を返す。
// GET /api/projects?q=xxx&category=yyy
// qはタイトル・説明・提案者に対する部分一致、categoryは完全一致。
func (h *ListingHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	projects, err := h.projects.List(r.Context(), true)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	h.collector.RecordQueryLatency(time.Since(start))
	h.collector.RecordListingQuery("projects")

	filtered := listing.Filter(projects, r.URL.Query().Get("q"), facetParam(r, "category"))

	out := make([]projectResponse, 0, len(filtered))
	for _, p := range filtered {
		out = append(out, toProjectResponse(p))
	}
	writeJSON(w, http.StatusOK, out)
}

// newsResponse はニュース記事のAPIレスポンス。
type newsResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Excerpt     *string    `json:"excerpt"`
	Content     *string    `json:"content"`
	Category    *string    `json:"category"`
	ImageURL    *string    `json:"image_url"`
	Featured    bool       `json:"featured"`
	IsPublished bool       `json:"is_published"`
	PublishedAt *time.Time `json:"published_at"`
}

// ListNews は公開記事一覧を返す。
// GET /api/news?q=xxx
// qはタイトル・カテゴリに対する部分一致。
func (h *ListingHandler) ListNews(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	items, err := h.news.List(r.Context(), true)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	h.collector.RecordQueryLatency(time.Since(start))
	h.collector.RecordListingQuery("news")

	filtered := listing.Filter(items, r.URL.Query().Get("q"), facetParam(r, "category"))

	out := make([]newsResponse, 0, len(filtered))
	for _, n := range filtered {
		out = append(out, newsResponse{
			ID:          n.ID,
			Title:       n.Title,
			Excerpt:     n.Excerpt,
			Content:     n.Content,
			Category:    n.Category,
			ImageURL:    n.ImageURL,
			Featured:    n.Featured,
			IsPublished: n.IsPublished,
			PublishedAt: n.PublishedAt,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// opportunityResponse はビジネス機会のAPIレスポンス。
type opportunityResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Company     *string `json:"company"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	Sector      *string `json:"sector"`
	LookingFor  *string `json:"looking_for"`
	Email       *string `json:"email"`
}

// ListOpportunities はビジネス機会一覧を返す。
// GET /api/opportunities?q=xxx&sector=yyy
// qはタイトル・会社・説明・募集内容に対する部分一致、sectorは完全一致。
func (h *ListingHandler) ListOpportunities(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	opps, err := h.opportunities.List(r.Context(), true)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	h.collector.RecordQueryLatency(time.Since(start))
	h.collector.RecordListingQuery("opportunities")

	filtered := listing.Filter(opps, r.URL.Query().Get("q"), facetParam(r, "sector"))

	out := make([]opportunityResponse, 0, len(filtered))
	for _, o := range filtered {
		out = append(out, opportunityResponse{
			ID:          o.ID,
			Title:       o.Title,
			Company:     o.Company,
			Description: o.Description,
			Location:    o.Location,
			Sector:      o.Sector,
			LookingFor:  o.LookingFor,
			Email:       o.Email,
		})
	}
	writeJSON(w, http.StatusOK, out)
}
