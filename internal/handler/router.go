package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/club1938/clubhouse/internal/metrics"
	"github.com/club1938/clubhouse/internal/middleware"
	"github.com/club1938/clubhouse/internal/repository"
	"github.com/club1938/clubhouse/internal/security"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	Logger *slog.Logger

	// ミドルウェア依存
	SessionFinder     middleware.SessionFinder
	RoleChecker       middleware.RoleChecker
	CORSAllowedOrigin string
	CSRFConfig        middleware.CSRFConfig
	RateLimiter       *middleware.RateLimiter

	// 公開一覧レスポンスキャッシュ（nilの場合は無効）
	CacheClient *redis.Client
	CacheTTL    time.Duration

	// 認証
	AuthService AuthServiceInterface
	AuthConfig  AuthHandlerConfig

	// データ層
	MemberRepo      repository.MemberRepository
	ProjectRepo     repository.ProjectRepository
	NewsRepo        repository.NewsRepository
	OpportunityRepo repository.OpportunityRepository
	ProfileRepo     repository.ProfileRepository

	// コンテンツ検証
	Sanitizer security.ContentSanitizerService
	URLGuard  security.URLGuardService

	// 観測
	Collector metrics.MetricsCollector
	DB        Pinger
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → SecurityHeaders → CORS → Logging → CSRF
//	→ (認証ルート) Session → RateLimit(General)
//	→ (管理ルート) さらに Admin(ロール判定)
//
// 公開一覧（会員名簿・プロジェクト・ニュース・ビジネス機会）は認証不要で、
// Redisが設定されている場合はレスポンスキャッシュを通す。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	r.Use(middleware.NewCSRFMiddleware(deps.CSRFConfig))

	authHandler := NewAuthHandler(deps.AuthService, deps.AuthConfig, deps.Collector)
	listingHandler := NewListingHandler(deps.MemberRepo, deps.ProjectRepo, deps.NewsRepo, deps.OpportunityRepo, deps.Collector)
	submissionHandler := NewSubmissionHandler(deps.ProjectRepo, deps.OpportunityRepo, deps.ProfileRepo, deps.Sanitizer, deps.URLGuard)
	profileHandler := NewProfileHandler(deps.ProfileRepo, deps.Sanitizer, deps.URLGuard)
	adminHandler := NewAdminHandler(deps.MemberRepo, deps.ProjectRepo, deps.NewsRepo, deps.Sanitizer, deps.URLGuard, deps.Collector)
	healthHandler := NewHealthHandler(deps.DB)

	// --- 認証不要のルート ---

	r.Get("/healthz", healthHandler.Health)
	r.Method(http.MethodGet, "/api/csrf-token", middleware.NewCSRFTokenHandler(deps.CSRFConfig))

	// 認証ルート
	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", authHandler.SignUp)
		r.Post("/signin", authHandler.SignIn)
		r.Post("/logout", authHandler.Logout)
		r.Get("/me", authHandler.Me)
	})

	// 公開一覧ルート
	r.Group(func(r chi.Router) {
		if deps.CacheClient != nil {
			r.Use(middleware.NewResponseCacheMiddleware(deps.CacheClient, deps.CacheTTL))
		}

		r.Get("/api/members", listingHandler.ListMembers)
		r.Get("/api/projects", listingHandler.ListProjects)
		r.Get("/api/news", listingHandler.ListNews)
		r.Get("/api/opportunities", listingHandler.ListOpportunities)
	})

	// --- サインインが必要なルート ---
	// ミドルウェアスタック: Session → RateLimit(General)
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewSessionMiddleware(deps.SessionFinder))
		r.Use(deps.RateLimiter.GeneralMiddleware())

		// 会員からの投稿（投稿専用レート制限を追加）
		r.With(deps.RateLimiter.MutationMiddleware()).Post("/api/projects", submissionHandler.SubmitProject)
		r.With(deps.RateLimiter.MutationMiddleware()).Post("/api/opportunities", submissionHandler.SubmitOpportunity)

		// 本人プロフィール
		r.Route("/api/me/profile", func(r chi.Router) {
			r.Get("/", profileHandler.GetProfile)
			r.With(deps.RateLimiter.MutationMiddleware()).Put("/", profileHandler.UpdateProfile)
		})

		// --- 管理者ロールが必要なルート ---
		r.Route("/api/admin", func(r chi.Router) {
			r.Use(middleware.NewAdminMiddleware(deps.RoleChecker))

			r.Route("/members", func(r chi.Router) {
				r.Get("/", adminHandler.ListMembers)
				r.Post("/", adminHandler.CreateMember)
				r.Route("/{id}", func(r chi.Router) {
					r.Put("/", adminHandler.UpdateMember)
					r.Delete("/", adminHandler.DeleteMember)
				})
			})

			r.Route("/projects", func(r chi.Router) {
				r.Get("/", adminHandler.ListProjects)
				r.Post("/", adminHandler.CreateProject)
				r.Route("/{id}", func(r chi.Router) {
					r.Put("/", adminHandler.UpdateProject)
					r.Delete("/", adminHandler.DeleteProject)
				})
			})

			r.Route("/news", func(r chi.Router) {
				r.Get("/", adminHandler.ListNews)
				r.Post("/", adminHandler.CreateNews)
				r.Route("/{id}", func(r chi.Router) {
					r.Put("/", adminHandler.UpdateNews)
					r.Delete("/", adminHandler.DeleteNews)
				})
			})
		})
	})

	return r
}
