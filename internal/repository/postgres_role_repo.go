package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/club1938/clubhouse/internal/model"
)

// PostgresRoleRepo はPostgreSQLを使用したロール割り当てリポジトリ。
type PostgresRoleRepo struct {
	db *sql.DB
}

// NewPostgresRoleRepo はPostgresRoleRepoを生成する。
func NewPostgresRoleRepo(db *sql.DB) *PostgresRoleRepo {
	return &PostgresRoleRepo{db: db}
}

// HasRole は指定ユーザーが指定ロールを保持しているかを判定する。
// ユーザーIDとロールの両方でパラメータ化したEXISTSクエリ1回で判定し、
// ロール表の全件取得は行わない。行が存在しない場合はfalse（デフォルト拒否）。
func (r *PostgresRoleRepo) HasRole(ctx context.Context, userID string, role model.Role) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (
		   SELECT 1 FROM user_roles WHERE user_id = $1 AND role = $2
		 )`,
		userID, string(role),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check role: %w", err)
	}
	return exists, nil
}

// compile-time interface check
var _ RoleRepository = (*PostgresRoleRepo)(nil)
