package listing

import (
	"context"
	"sync"
)

// FetchFunc はデータ層への1回のラウンドトリップを表す。
type FetchFunc[T any] func(ctx context.Context) ([]T, error)

// Fetcher は取得リクエストに単調増加のシーケンス番号を付与し、
// 最後に発行されたリクエスト以外の応答を破棄する。
// 検索の連打などで古い応答が新しい応答の後に到着しても、
// 表示される結果は常に最後に発行した取得の結果となる。
type Fetcher[T any] struct {
	fetch FetchFunc[T]

	mu     sync.Mutex
	latest uint64
}

// NewFetcher はFetcherを生成する。
func NewFetcher[T any](fetch FetchFunc[T]) *Fetcher[T] {
	return &Fetcher[T]{fetch: fetch}
}

// Fetch は取得を実行する。自分より新しい取得が発行されていた場合、
// 結果は破棄されstale=trueを返す。stale応答はエラーではない。
func (f *Fetcher[T]) Fetch(ctx context.Context) (rows []T, stale bool, err error) {
	f.mu.Lock()
	f.latest++
	seq := f.latest
	f.mu.Unlock()

	rows, err = f.fetch(ctx)

	f.mu.Lock()
	defer f.mu.Unlock()
	if seq != f.latest {
		return nil, true, nil
	}
	if err != nil {
		return nil, false, err
	}
	return rows, false, nil
}
