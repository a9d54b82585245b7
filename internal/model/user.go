// Package model はドメインモデルを定義する。
package model

import "time"

// User は認証済みアイデンティティを表す。
// パスワードはbcryptハッシュとしてのみ保持し、平文は保存しない。
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session はユーザーのログインセッションを表す。
type Session struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Role はユーザーの権限ロールを表す。
type Role string

const (
	// RoleAdmin は管理者ロール。管理コンソールへのアクセスを許可する。
	RoleAdmin Role = "admin"
	// RoleMember は標準メンバーロール。ロール割り当てが存在しない場合のデフォルト。
	RoleMember Role = "member"
)

// RoleAssignment はユーザーへのロール割り当てを表す。
// 1ユーザーにつき0または1件。行が存在しない場合はRoleMemberとして扱う。
type RoleAssignment struct {
	ID     string
	UserID string
	Role   Role
}
