package model

import "time"

// Member は会員名簿に掲載されるメンバーを表す。
// NULL許容カラムはポインタで表現し、未設定のフィールドは検索対象から除外する。
type Member struct {
	ID        string
	UserID    *string
	Name      string
	Role      *string
	Company   *string
	Sector    *string
	Email     *string
	Phone     *string
	LinkedIn  *string
	Bio       *string
	AvatarURL *string
	Projects  []string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SearchText はフリーテキスト検索の対象フィールドを返す。
// 名前・会社・セクターが対象。NULLのフィールドは含めない。
func (m *Member) SearchText() []string {
	fields := []string{m.Name}
	if m.Company != nil {
		fields = append(fields, *m.Company)
	}
	if m.Sector != nil {
		fields = append(fields, *m.Sector)
	}
	return fields
}

// SearchFacet はファセット絞り込みの対象属性（セクター）を返す。
// 未設定の場合は空文字列を返し、センチネル以外のファセットには一致しない。
func (m *Member) SearchFacet() string {
	if m.Sector == nil {
		return ""
	}
	return *m.Sector
}
