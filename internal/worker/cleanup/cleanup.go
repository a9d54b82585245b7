// Package cleanup は期限切れセッションの自動削除ジョブを提供する。
// セッションの有効期限はDB側のexpires_atが単一の真実であり、
// 失効した行を定期バッチで物理削除する。
package cleanup

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/club1938/clubhouse/internal/metrics"
)

// Executor はSQLのExecContextを抽象化するインターフェース。
// *sql.DB や *sql.Tx を受け付けることができる。
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// CleanupJob は期限切れセッションの自動削除ジョブ。
// 定期実行のバッチジョブとして設計されており、冪等な削除処理を保証する。
type CleanupJob struct {
	db        Executor
	logger    *slog.Logger
	collector metrics.MetricsCollector
}

// NewCleanupJob は新しいCleanupJobを生成する。
func NewCleanupJob(db Executor, logger *slog.Logger, collector metrics.MetricsCollector) *CleanupJob {
	return &CleanupJob{
		db:        db,
		logger:    logger,
		collector: collector,
	}
}

// Run は有効期限を過ぎたセッションを削除する。
// 冪等: 削除対象がない場合でもエラーにならない。
func (j *CleanupJob) Run(ctx context.Context) error {
	start := time.Now()

	query := `DELETE FROM sessions WHERE expires_at < now()`
	result, err := j.db.ExecContext(ctx, query)
	if err != nil {
		j.logger.Error("セッションクリーンアップジョブの実行に失敗しました",
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("セッションクリーンアップの実行に失敗: %w", err)
	}

	deletedCount, err := result.RowsAffected()
	if err != nil {
		j.logger.Error("削除件数の取得に失敗しました",
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("削除件数の取得に失敗: %w", err)
	}

	j.collector.RecordSessionsCleaned(int(deletedCount))

	duration := time.Since(start)
	j.logger.Info("セッションクリーンアップジョブが完了しました",
		slog.Int64("deleted_count", deletedCount),
		slog.Float64("duration_ms", float64(duration.Milliseconds())),
	)

	return nil
}

// RunPeriodically はintervalごとにRunを実行し続ける。
// コンテキストのキャンセルで停止する。実行時エラーはログに記録して継続する。
func (j *CleanupJob) RunPeriodically(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			j.logger.Info("セッションクリーンアップワーカーを停止します")
			return
		case <-ticker.C:
			if err := j.Run(ctx); err != nil {
				j.logger.Error("定期クリーンアップに失敗しました",
					slog.String("error", err.Error()),
				)
			}
		}
	}
}
