package model

import "time"

// Profile は会員本人が管理する個人プロフィールを表す。
// サインアップ時にユーザーと同一トランザクションで作成される。
type Profile struct {
	ID            string
	UserID        string
	FirstName     *string
	LastName      *string
	Email         *string
	Phone         *string
	Company       *string
	Role          *string
	Sector        *string
	Bio           *string
	LinkedIn      *string
	AvatarURL     *string
	ProjectsCount int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
