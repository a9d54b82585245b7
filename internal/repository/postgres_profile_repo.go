package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/club1938/clubhouse/internal/model"
)

// PostgresProfileRepo はPostgreSQLを使用したプロフィールリポジトリ。
type PostgresProfileRepo struct {
	db *sql.DB
}

// NewPostgresProfileRepo はPostgresProfileRepoを生成する。
func NewPostgresProfileRepo(db *sql.DB) *PostgresProfileRepo {
	return &PostgresProfileRepo{db: db}
}

// FindByUserID は指定ユーザーのプロフィールを取得する。見つからない場合はnilを返す。
func (r *PostgresProfileRepo) FindByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	p := &model.Profile{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, first_name, last_name, email, phone, company, role,
		        sector, bio, linkedin, avatar_url, projects_count, created_at, updated_at
		 FROM profiles WHERE user_id = $1`,
		userID,
	).Scan(
		&p.ID, &p.UserID, &p.FirstName, &p.LastName, &p.Email, &p.Phone,
		&p.Company, &p.Role, &p.Sector, &p.Bio, &p.LinkedIn, &p.AvatarURL,
		&p.ProjectsCount, &p.CreatedAt, &p.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}

	return p, nil
}

// Update はプロフィールを上書き更新する。
func (r *PostgresProfileRepo) Update(ctx context.Context, profile *model.Profile) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE profiles
		 SET first_name = $2, last_name = $3, phone = $4, company = $5, role = $6,
		     sector = $7, bio = $8, linkedin = $9, avatar_url = $10, updated_at = now()
		 WHERE user_id = $1`,
		profile.UserID, profile.FirstName, profile.LastName, profile.Phone,
		profile.Company, profile.Role, profile.Sector, profile.Bio,
		profile.LinkedIn, profile.AvatarURL,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return requireRowAffected(result, "profile")
}

// compile-time interface check
var _ ProfileRepository = (*PostgresProfileRepo)(nil)
