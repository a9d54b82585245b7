// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/club1938/clubhouse/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByEmail はメールアドレスでユーザーを検索する。見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// CreateWithProfile はユーザーとプロフィールを同一トランザクションで作成する。
	CreateWithProfile(ctx context.Context, user *model.User, profile *model.Profile) error
}

// SessionRepository はセッションデータの永続化インターフェース。
type SessionRepository interface {
	// Create はセッションを作成する。
	Create(ctx context.Context, session *model.Session) error
	// FindByID は指定IDのセッションを取得する。期限切れの場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Session, error)
	// DeleteByID は指定IDのセッションを削除する。
	DeleteByID(ctx context.Context, id string) error
	// DeleteByUserID は指定ユーザーの全セッションを削除する。
	DeleteByUserID(ctx context.Context, userID string) error
}

// RoleRepository はロール割り当ての参照インターフェース。
type RoleRepository interface {
	// HasRole は指定ユーザーが指定ロールを保持しているかを1クエリで判定する。
	// ロールとユーザーIDの両方でパラメータ化し、ロール表全体を取得しない。
	// 割り当て行が存在しない場合はfalseを返す（デフォルト拒否）。
	HasRole(ctx context.Context, userID string, role model.Role) (bool, error)
}

// MemberRepository は会員名簿データの永続化インターフェース。
type MemberRepository interface {
	// List は会員一覧を名前昇順で返す。activeOnlyの場合はis_active=trueのみ。
	List(ctx context.Context, activeOnly bool) ([]*model.Member, error)
	// FindByID は指定IDの会員を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Member, error)
	// Create は会員を作成する。
	Create(ctx context.Context, member *model.Member) error
	// Update は会員情報を上書き更新する。
	Update(ctx context.Context, member *model.Member) error
	// Delete は指定IDの会員を削除する。
	Delete(ctx context.Context, id string) error
}

// ProjectRepository はプロジェクトデータの永続化インターフェース。
type ProjectRepository interface {
	// List はプロジェクト一覧を作成日時降順で返す。publishedOnlyの場合はis_published=trueのみ。
	List(ctx context.Context, publishedOnly bool) ([]*model.Project, error)
	// FindByID は指定IDのプロジェクトを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Project, error)
	// Create はプロジェクトを作成する。
	Create(ctx context.Context, project *model.Project) error
	// Update はプロジェクト情報を上書き更新する。
	Update(ctx context.Context, project *model.Project) error
	// Delete は指定IDのプロジェクトを削除する。
	Delete(ctx context.Context, id string) error
}

// NewsRepository はニュース記事データの永続化インターフェース。
type NewsRepository interface {
	// List は記事一覧を公開日時降順で返す。publishedOnlyの場合はis_published=trueのみ。
	List(ctx context.Context, publishedOnly bool) ([]*model.NewsItem, error)
	// FindByID は指定IDの記事を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.NewsItem, error)
	// Create は記事を作成する。
	Create(ctx context.Context, item *model.NewsItem) error
	// Update は記事を上書き更新する。
	Update(ctx context.Context, item *model.NewsItem) error
	// Delete は指定IDの記事を削除する。
	Delete(ctx context.Context, id string) error
}

// OpportunityRepository はビジネス機会データの永続化インターフェース。
// 機会は会員の投稿と公開一覧のみで、管理コンソールに編集パネルはない。
type OpportunityRepository interface {
	// List は機会一覧を作成日時降順で返す。activeOnlyの場合はis_active=trueのみ。
	List(ctx context.Context, activeOnly bool) ([]*model.BusinessOpportunity, error)
	// Create は機会を作成する。
	Create(ctx context.Context, opp *model.BusinessOpportunity) error
}

// ProfileRepository は会員プロフィールの永続化インターフェース。
type ProfileRepository interface {
	// FindByUserID は指定ユーザーのプロフィールを取得する。見つからない場合はnilを返す。
	FindByUserID(ctx context.Context, userID string) (*model.Profile, error)
	// Update はプロフィールを上書き更新する。
	Update(ctx context.Context, profile *model.Profile) error
}
