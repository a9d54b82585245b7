package model

import "time"

// BusinessOpportunity はビジネス機会の掲示を表す。
// 掲載者が会員ネットワーク内で協業相手を募集するために投稿する。
type BusinessOpportunity struct {
	ID          string
	Title       string
	Company     *string
	Description *string
	Location    *string
	Sector      *string
	LookingFor  *string
	Email       *string
	AuthorID    *string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SearchText はフリーテキスト検索の対象フィールド
// （タイトル・会社・説明・募集内容）を返す。
func (o *BusinessOpportunity) SearchText() []string {
	fields := []string{o.Title}
	if o.Company != nil {
		fields = append(fields, *o.Company)
	}
	if o.Description != nil {
		fields = append(fields, *o.Description)
	}
	if o.LookingFor != nil {
		fields = append(fields, *o.LookingFor)
	}
	return fields
}

// SearchFacet はファセット絞り込みの対象属性（セクター）を返す。
func (o *BusinessOpportunity) SearchFacet() string {
	if o.Sector == nil {
		return ""
	}
	return *o.Sector
}
