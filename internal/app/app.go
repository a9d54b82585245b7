package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/club1938/clubhouse/internal/auth"
	"github.com/club1938/clubhouse/internal/config"
	"github.com/club1938/clubhouse/internal/database"
	"github.com/club1938/clubhouse/internal/handler"
	"github.com/club1938/clubhouse/internal/logger"
	"github.com/club1938/clubhouse/internal/metrics"
	"github.com/club1938/clubhouse/internal/middleware"
	"github.com/club1938/clubhouse/internal/repository"
	"github.com/club1938/clubhouse/internal/security"
	"github.com/club1938/clubhouse/internal/worker/cleanup"
	"github.com/club1938/clubhouse/internal/worker/linkaudit"
)

// Init はアプリケーションの初期化を行う。
// 環境変数からConfigを読み込み、JSON構造化ログをセットアップする。
// writerが指定された場合はログ出力先としてそのwriterを使用する。
func Init(w io.Writer) (*config.Config, error) {
	// 1. ログの初期化（設定読み込み前にログを使えるようにする）
	logger.SetupDefault(w)

	// 2. 環境変数から設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}

// Run はアプリケーションのメインエントリーポイント。
// コマンドライン引数からサブコマンドを解析し、対応するモードで起動する。
// argsにはos.Args[1:]を渡す。
func Run(w io.Writer, args []string) error {
	cmd := ParseCommand(args)

	// healthcheck は軽量サブコマンドのため、フル初期化をスキップする
	if cmd == CommandHealthcheck {
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = "8080"
		}
		return runHealthcheck(port)
	}

	cfg, err := Init(w)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	slog.Info("starting application",
		slog.String("command", string(cmd)),
		slog.String("port", cfg.ServerPort),
		slog.String("base_url", cfg.BaseURL),
	)

	switch cmd {
	case CommandServe:
		return runServe(cfg)
	case CommandWorker:
		return runWorker(cfg)
	case CommandMigrate:
		return runMigrate(cfg)
	default:
		return runServe(cfg)
	}
}

// rateLimiterConfig はconfigのreq/min単位の設定をrate.Limitに変換する。
func rateLimiterConfig(cfg *config.Config) middleware.RateLimiterConfig {
	limiterCfg := middleware.DefaultRateLimiterConfig()
	if cfg.RateLimitGeneral > 0 {
		limiterCfg.GeneralRate = rate.Limit(float64(cfg.RateLimitGeneral) / 60.0)
		limiterCfg.GeneralBurst = cfg.RateLimitGeneral
	}
	if cfg.RateLimitMutation > 0 {
		limiterCfg.MutationRate = rate.Limit(float64(cfg.RateLimitMutation) / 60.0)
		limiterCfg.MutationBurst = cfg.RateLimitMutation
	}
	return limiterCfg
}

// runServe はAPIサーバーモードで起動する。
// DB接続を開き、全依存関係をワイヤリングし、HTTPサーバーを起動する。
// SIGINTまたはSIGTERMシグナルを受信するとグレースフルシャットダウンを行う。
func runServe(cfg *config.Config) error {
	// 1. DB接続
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	slog.Info("database connection established")

	// 2. リポジトリの初期化
	userRepo := repository.NewPostgresUserRepo(db)
	sessionRepo := repository.NewPostgresSessionRepo(db)
	roleRepo := repository.NewPostgresRoleRepo(db)
	memberRepo := repository.NewPostgresMemberRepo(db)
	projectRepo := repository.NewPostgresProjectRepo(db)
	newsRepo := repository.NewPostgresNewsRepo(db)
	oppRepo := repository.NewPostgresOpportunityRepo(db)
	profileRepo := repository.NewPostgresProfileRepo(db)

	// 3. セキュリティサービスの初期化
	urlGuard := security.NewURLGuard()
	sanitizer := security.NewContentSanitizer()

	// 4. メトリクスの初期化
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// 5. 認証サービスの初期化
	authService := auth.NewService(userRepo, sessionRepo,
		auth.ServiceConfig{SessionMaxAge: cfg.SessionMaxAge})

	// 6. レスポンスキャッシュの初期化（REDIS_ADDR未設定なら無効）
	var cacheClient *redis.Client
	if cfg.RedisAddr != "" {
		cacheClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		defer cacheClient.Close()
		slog.Info("response cache enabled", slog.String("redis_addr", cfg.RedisAddr))
	}

	// 7. ルーターの構築
	deps := &handler.RouterDeps{
		Logger:            slog.Default(),
		SessionFinder:     sessionRepo,
		RoleChecker:       roleRepo,
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		CSRFConfig: middleware.CSRFConfig{
			CookieSecure: cfg.CookieSecure,
			CookieDomain: cfg.CookieDomain,
		},
		RateLimiter: middleware.NewRateLimiter(rateLimiterConfig(cfg)),

		CacheClient: cacheClient,
		CacheTTL:    cfg.CacheTTL,

		AuthService: authService,
		AuthConfig: handler.AuthHandlerConfig{
			CookieDomain:  cfg.CookieDomain,
			CookieSecure:  cfg.CookieSecure,
			SessionMaxAge: cfg.SessionMaxAge,
		},

		MemberRepo:      memberRepo,
		ProjectRepo:     projectRepo,
		NewsRepo:        newsRepo,
		OpportunityRepo: oppRepo,
		ProfileRepo:     profileRepo,

		Sanitizer: sanitizer,
		URLGuard:  urlGuard,

		Collector: collector,
		DB:        db,
	}

	router := handler.NewRouter(deps)

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.SetupMetricsRoute(registry))
	mux.Handle("/", router)

	// 8. HTTPサーバーの起動
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// グレースフルシャットダウンのためのシグナルハンドリング
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("API server starting",
			slog.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server listen error", slog.String("error", err.Error()))
		}
	}()

	<-stop
	slog.Info("shutting down API server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("API server stopped gracefully")
	return nil
}

// runWorker はワーカーモードで起動する。
// 期限切れセッションの定期削除と外部リンクの監査を実行する。
// SIGINTまたはSIGTERMシグナルを受信するとシャットダウンする。
func runWorker(cfg *config.Config) error {
	// 1. DB接続
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	slog.Info("database connection established (worker)")

	// 2. リポジトリの初期化
	memberRepo := repository.NewPostgresMemberRepo(db)
	projectRepo := repository.NewPostgresProjectRepo(db)
	newsRepo := repository.NewPostgresNewsRepo(db)

	// 3. メトリクスとセキュリティサービスの初期化
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)
	urlGuard := security.NewURLGuard()

	// 4. セッションクリーンアップジョブの初期化
	cleanupJob := cleanup.NewCleanupJob(db, slog.Default(), collector)

	// 5. リンク監査スケジューラの初期化
	prober := linkaudit.NewProber(urlGuard, slog.Default(), cfg.LinkAuditTimeout)
	scheduler := linkaudit.NewScheduler(
		memberRepo, projectRepo, newsRepo,
		prober, collector, slog.Default(), 10,
	)

	// グレースフルシャットダウンのためのシグナルハンドリング
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-stop
		slog.Info("shutting down worker...")
		cancel()
	}()

	slog.Info("worker starting",
		slog.Duration("session_cleanup_interval", cfg.SessionCleanupInterval),
		slog.Duration("link_audit_interval", cfg.LinkAuditInterval),
	)

	// セッションクリーンアップをバックグラウンドで定期実行
	go func() {
		// 起動直後に1回実行
		if err := cleanupJob.Run(ctx); err != nil {
			slog.Error("session cleanup failed", slog.String("error", err.Error()))
		}
		cleanupJob.RunPeriodically(ctx, cfg.SessionCleanupInterval)
	}()

	// リンク監査スケジューラをメインgoroutineで実行（ブロッキング）
	scheduler.Start(ctx, cfg.LinkAuditInterval)

	slog.Info("worker stopped gracefully")
	return nil
}

// runMigrate はデータベースマイグレーションを実行する。
// すべての未適用マイグレーションを順番に適用する。
func runMigrate(cfg *config.Config) error {
	slog.Info("running database migrations",
		slog.String("database_url", maskDatabaseURL(cfg.DatabaseURL)),
	)

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	slog.Info("database migrations completed successfully")
	return nil
}

// runHealthcheck はヘルスチェックを実行する。
// distroless環境でのDockerヘルスチェック用サブコマンド。
// /healthz エンドポイントにHTTPリクエストを送り、結果を返す。
func runHealthcheck(port string) error {
	url := fmt.Sprintf("http://localhost:%s/healthz", port)
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}

// maskDatabaseURL はデータベースURLの認証情報をマスクする。
func maskDatabaseURL(url string) string {
	if len(url) > 20 {
		return url[:12] + "***@..."
	}
	return "***"
}
