package model

import "time"

// Project はメンバーが提案する横断プロジェクトを表す。
// is_publishedがtrueのもののみ公開一覧に表示される。
type Project struct {
	ID           string
	Title        string
	Description  *string
	Author       *string
	AuthorID     *string
	Category     *string
	Date         *string
	ImageURL     *string
	Participants int
	Status       *string
	IsPublished  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SearchText はフリーテキスト検索の対象フィールド（タイトル・説明・提案者）を返す。
func (p *Project) SearchText() []string {
	fields := []string{p.Title}
	if p.Description != nil {
		fields = append(fields, *p.Description)
	}
	if p.Author != nil {
		fields = append(fields, *p.Author)
	}
	return fields
}

// SearchFacet はファセット絞り込みの対象属性（カテゴリ）を返す。
func (p *Project) SearchFacet() string {
	if p.Category == nil {
		return ""
	}
	return *p.Category
}

// AdminSearchText は管理コンソールでの検索対象フィールド（タイトル・提案者・カテゴリ）を返す。
func (p *Project) AdminSearchText() []string {
	fields := []string{p.Title}
	if p.Author != nil {
		fields = append(fields, *p.Author)
	}
	if p.Category != nil {
		fields = append(fields, *p.Category)
	}
	return fields
}
