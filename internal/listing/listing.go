// Package listing は一覧取得とクライアント側絞り込みの共通ロジックを提供する。
//
// 取得はリポジトリへの1回のラウンドトリップで全件を返し（ページネーションなし、
// 数百件規模までを想定）、絞り込みは純粋関数としてメモリ上で行う。
// フリーテキスト検索は大文字小文字を区別しない部分一致、ファセットは完全一致で、
// 両者のANDが最終述語となる。結果の順序は取得時の順序を常に保持する。
package listing

import "strings"

// FacetAll は全ファセットに一致するセンチネル値。
const FacetAll = "all"

// Searchable は絞り込み対象エンティティのインターフェース。
// SearchTextはNULLフィールドを含めずに返すこと。存在しないフィールドは
// 空でないクエリに決して一致しない。
type Searchable interface {
	// SearchText はフリーテキスト検索の対象フィールドを返す。
	SearchText() []string
	// SearchFacet はファセット絞り込みの対象属性を返す。未設定なら空文字列。
	SearchFacet() string
}

// Filter はエンティティ列をクエリとファセットで絞り込む。
// 空のクエリは全件に一致し、ファセットがFacetAllの場合はファセット条件を課さない。
// 入力順序を保持し、入力スライスは変更しない。
func Filter[T Searchable](items []T, query, facet string) []T {
	return FilterFields(items, query, facet, T.SearchText, T.SearchFacet)
}

// FilterFields は検索対象フィールドを関数で指定して絞り込む。
// 管理コンソールのように同一エンティティで検索フィールドが異なる画面で使用する。
// facetOfがnilの場合、ファセット条件はFacetAllのみ一致する。
func FilterFields[T any](items []T, query, facet string, textOf func(T) []string, facetOf func(T) string) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if !matchesQuery(textOf(item), query) {
			continue
		}
		if facet != FacetAll {
			if facetOf == nil || facetOf(item) != facet {
				continue
			}
		}
		out = append(out, item)
	}
	return out
}

// matchesQuery はいずれかのフィールドがクエリを部分一致で含むかを判定する。
// 大文字小文字を区別せず、空のクエリは常に一致する。
func matchesQuery(fields []string, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
