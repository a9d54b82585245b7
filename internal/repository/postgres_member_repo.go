package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/club1938/clubhouse/internal/model"
	"github.com/lib/pq"
)

// PostgresMemberRepo はPostgreSQLを使用した会員名簿リポジトリ。
type PostgresMemberRepo struct {
	db *sql.DB
}

// NewPostgresMemberRepo はPostgresMemberRepoを生成する。
func NewPostgresMemberRepo(db *sql.DB) *PostgresMemberRepo {
	return &PostgresMemberRepo{db: db}
}

const memberColumns = `id, user_id, name, role, company, sector, email, phone,
	linkedin, bio, avatar_url, projects, is_active, created_at, updated_at`

// scanMember は1行を読み取りMemberを構築する。
func scanMember(scan func(dest ...any) error) (*model.Member, error) {
	m := &model.Member{}
	var projects pq.StringArray
	err := scan(
		&m.ID, &m.UserID, &m.Name, &m.Role, &m.Company, &m.Sector,
		&m.Email, &m.Phone, &m.LinkedIn, &m.Bio, &m.AvatarURL,
		&projects, &m.IsActive, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.Projects = []string(projects)
	return m, nil
}

// List は会員一覧を名前昇順で返す。activeOnlyの場合はis_active=trueのみ。
// 一覧の順序は絞り込み後もそのまま保持されるため、ここでの並び順が表示順となる。
func (r *PostgresMemberRepo) List(ctx context.Context, activeOnly bool) ([]*model.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members`
	if activeOnly {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []*model.Member
	for rows.Next() {
		m, err := scanMember(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}

	return members, nil
}

// FindByID は指定IDの会員を取得する。見つからない場合はnilを返す。
func (r *PostgresMemberRepo) FindByID(ctx context.Context, id string) (*model.Member, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+memberColumns+` FROM members WHERE id = $1`, id)

	m, err := scanMember(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find member: %w", err)
	}
	return m, nil
}

// Create は会員を作成する。
func (r *PostgresMemberRepo) Create(ctx context.Context, member *model.Member) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO members (id, user_id, name, role, company, sector, email, phone,
		   linkedin, bio, avatar_url, projects, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		member.ID, member.UserID, member.Name, member.Role, member.Company,
		member.Sector, member.Email, member.Phone, member.LinkedIn, member.Bio,
		member.AvatarURL, pq.Array(member.Projects), member.IsActive,
		member.CreatedAt, member.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert member: %w", err)
	}
	return nil
}

// Update は会員情報を上書き更新する。
func (r *PostgresMemberRepo) Update(ctx context.Context, member *model.Member) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE members
		 SET name = $2, role = $3, company = $4, sector = $5, email = $6, phone = $7,
		     linkedin = $8, bio = $9, avatar_url = $10, projects = $11, is_active = $12,
		     updated_at = now()
		 WHERE id = $1`,
		member.ID, member.Name, member.Role, member.Company, member.Sector,
		member.Email, member.Phone, member.LinkedIn, member.Bio, member.AvatarURL,
		pq.Array(member.Projects), member.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to update member: %w", err)
	}
	return requireRowAffected(result, "member")
}

// Delete は指定IDの会員を削除する。
func (r *PostgresMemberRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM members WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}
	return requireRowAffected(result, "member")
}

// requireRowAffected は更新・削除が1行以上に作用したことを検証する。
// 0行の場合は対象未検出としてAPIErrorを返す。
func requireRowAffected(result sql.Result, resource string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return model.NewNotFoundError(resource)
	}
	return nil
}

// compile-time interface check
var _ MemberRepository = (*PostgresMemberRepo)(nil)
