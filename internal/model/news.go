package model

import "time"

// NewsItem はクラブの活動報告・お知らせ記事を表す。
// is_publishedがtrueのもののみ公開一覧に表示され、
// featuredがtrueの記事はトップに大きく表示される。
type NewsItem struct {
	ID          string
	Title       string
	Excerpt     *string
	Content     *string
	Category    *string
	ImageURL    *string
	AuthorID    *string
	Featured    bool
	IsPublished bool
	PublishedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SearchText はフリーテキスト検索の対象フィールド（タイトル・カテゴリ）を返す。
func (n *NewsItem) SearchText() []string {
	fields := []string{n.Title}
	if n.Category != nil {
		fields = append(fields, *n.Category)
	}
	return fields
}

// SearchFacet はファセット絞り込みの対象属性（カテゴリ）を返す。
func (n *NewsItem) SearchFacet() string {
	if n.Category == nil {
		return ""
	}
	return *n.Category
}
