// Package moderation は管理画面のCRUD操作を調停する。
// 削除は確認済みの意思決定を受け取った場合のみデータ層へ到達する。
package moderation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/club1938/clubhouse/internal/listing"
)

// Store はモデレーション対象コレクションへの書き込み層を表す。
type Store[T any] interface {
	Create(ctx context.Context, item T) error
	Update(ctx context.Context, id string, item T) error
	Delete(ctx context.Context, id string) error
}

// Controller は1つのコレクションに対する管理操作を提供する。
// 各変更操作の成功後はRefreshで一覧を取り直す。
type Controller[T any] struct {
	resource string
	store    Store[T]
	fetcher  *listing.Fetcher[T]
}

// NewController はControllerを生成する。
// resourceはログ用のコレクション名。
func NewController[T any](resource string, store Store[T], fetch listing.FetchFunc[T]) *Controller[T] {
	return &Controller[T]{
		resource: resource,
		store:    store,
		fetcher:  listing.NewFetcher(fetch),
	}
}

// Create は新規レコードを作成する。
func (c *Controller[T]) Create(ctx context.Context, item T) error {
	if err := c.store.Create(ctx, item); err != nil {
		return fmt.Errorf("failed to create %s: %w", c.resource, err)
	}
	slog.Info("moderation create", slog.String("resource", c.resource))
	return nil
}

// Update は既存レコードを更新する。
func (c *Controller[T]) Update(ctx context.Context, id string, item T) error {
	if err := c.store.Update(ctx, id, item); err != nil {
		return fmt.Errorf("failed to update %s: %w", c.resource, err)
	}
	slog.Info("moderation update",
		slog.String("resource", c.resource),
		slog.String("id", id),
	)
	return nil
}

// Delete は確認済みの場合のみレコードを削除する。
// confirmedがfalseの場合は何も実行せず(false, nil)を返す。
// 確認の辞退はエラーではなく、一覧の状態も変化しない。
func (c *Controller[T]) Delete(ctx context.Context, id string, confirmed bool) (bool, error) {
	if !confirmed {
		slog.Info("moderation delete declined",
			slog.String("resource", c.resource),
			slog.String("id", id),
		)
		return false, nil
	}

	if err := c.store.Delete(ctx, id); err != nil {
		return false, fmt.Errorf("failed to delete %s: %w", c.resource, err)
	}
	slog.Info("moderation delete",
		slog.String("resource", c.resource),
		slog.String("id", id),
	)
	return true, nil
}

// Refresh は変更後の一覧を取得する。
// 自分より新しい取得が発行されていた場合はstale=trueを返し、
// 呼び出し側はその結果を表示に使ってはならない。
func (c *Controller[T]) Refresh(ctx context.Context) ([]T, bool, error) {
	return c.fetcher.Fetch(ctx)
}
