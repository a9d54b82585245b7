// Package linkaudit は会員・コンテンツに登録された外部リンクの
// バックグラウンド検査を提供する。スケジューラ、プローバー、
// ステータス分類を含む。リンク切れは警告ログとメトリクスで報告し、
// データの自動書き換えは行わない。
package linkaudit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/club1938/clubhouse/internal/metrics"
	"github.com/club1938/clubhouse/internal/repository"
)

// LinkProber はリンク検査の実行インターフェース。
type LinkProber interface {
	// Probe は指定リンクを検査し、結果を分類して返す。
	Probe(ctx context.Context, target Target) Outcome
}

// Scheduler はリンク検査のスケジューリングと並列制御を行う。
// 定期ティッカーで検査対象リンクを収集し、semaphoreパターンで
// 最大並列数を制御しながら検査を実行する。
type Scheduler struct {
	memberRepo  repository.MemberRepository
	projectRepo repository.ProjectRepository
	newsRepo    repository.NewsRepository
	prober      LinkProber
	collector   metrics.MetricsCollector
	logger      *slog.Logger

	maxConcurrency int
}

// NewScheduler はSchedulerの新しいインスタンスを生成する。
// maxConcurrencyが0以下の場合はデフォルト値10を使用する。
func NewScheduler(
	memberRepo repository.MemberRepository,
	projectRepo repository.ProjectRepository,
	newsRepo repository.NewsRepository,
	prober LinkProber,
	collector metrics.MetricsCollector,
	logger *slog.Logger,
	maxConcurrency int,
) *Scheduler {
	if maxConcurrency <= 0 {
		maxConcurrency = 10
	}
	return &Scheduler{
		memberRepo:     memberRepo,
		projectRepo:    projectRepo,
		newsRepo:       newsRepo,
		prober:         prober,
		collector:      collector,
		logger:         logger,
		maxConcurrency: maxConcurrency,
	}
}

// Start は指定間隔のティッカーでスケジューラを起動する。
// コンテキストがキャンセルされるまで実行を継続する。
func (s *Scheduler) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info("リンク監査スケジューラを開始しました",
		slog.Duration("interval", interval),
		slog.Int("max_concurrency", s.maxConcurrency),
	)

	// 起動直後に1回実行
	if err := s.RunOnce(ctx); err != nil {
		s.logger.Error("リンク監査サイクルの実行に失敗しました",
			slog.String("error", err.Error()),
		)
	}

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("リンク監査スケジューラを停止しました")
			return
		case <-ticker.C:
			if err := s.RunOnce(ctx); err != nil {
				s.logger.Error("リンク監査サイクルの実行に失敗しました",
					slog.String("error", err.Error()),
				)
			}
		}
	}
}

// RunOnce は検査対象リンクを1回収集し、並列で検査を実行する。
// semaphoreパターンで最大並列数を制御する。
func (s *Scheduler) RunOnce(ctx context.Context) error {
	start := time.Now()

	targets, err := s.collectTargets(ctx)
	if err != nil {
		return err
	}

	if len(targets) == 0 {
		s.logger.Info("検査対象のリンクはありません")
		return nil
	}

	s.logger.Info("リンク監査サイクルを開始します",
		slog.Int("target_count", len(targets)),
	)

	// semaphoreパターンで並列数を制御
	sem := make(chan struct{}, s.maxConcurrency)
	var wg sync.WaitGroup

	for _, target := range targets {
		wg.Add(1)
		sem <- struct{}{}

		go func(tgt Target) {
			defer wg.Done()
			defer func() { <-sem }()

			outcome := s.prober.Probe(ctx, tgt)
			s.collector.RecordLinkProbe(string(outcome))
		}(target)
	}

	wg.Wait()

	duration := time.Since(start)
	s.logger.Info("リンク監査サイクルが完了しました",
		slog.Int("target_count", len(targets)),
		slog.Float64("duration_ms", float64(duration.Milliseconds())),
	)

	return nil
}

// collectTargets は会員・プロジェクト・ニュースから検査対象リンクを収集する。
// 非公開・非アクティブのデータも監査対象に含める。
func (s *Scheduler) collectTargets(ctx context.Context) ([]Target, error) {
	var targets []Target

	members, err := s.memberRepo.List(ctx, false)
	if err != nil {
		return nil, err
	}
	for _, m := range members {
		targets = appendTarget(targets, "members", m.ID, "linkedin", m.LinkedIn)
		targets = appendTarget(targets, "members", m.ID, "avatar_url", m.AvatarURL)
	}

	projects, err := s.projectRepo.List(ctx, false)
	if err != nil {
		return nil, err
	}
	for _, p := range projects {
		targets = appendTarget(targets, "projects", p.ID, "image_url", p.ImageURL)
	}

	news, err := s.newsRepo.List(ctx, false)
	if err != nil {
		return nil, err
	}
	for _, n := range news {
		targets = appendTarget(targets, "news", n.ID, "image_url", n.ImageURL)
	}

	return targets, nil
}

func appendTarget(targets []Target, resource, id, field string, url *string) []Target {
	if url == nil || *url == "" {
		return targets
	}
	return append(targets, Target{Resource: resource, ID: id, Field: field, URL: *url})
}

var _ LinkProber = (*Prober)(nil)
