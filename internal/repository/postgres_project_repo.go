package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/club1938/clubhouse/internal/model"
)

// PostgresProjectRepo はPostgreSQLを使用したプロジェクトリポジトリ。
type PostgresProjectRepo struct {
	db *sql.DB
}

// NewPostgresProjectRepo はPostgresProjectRepoを生成する。
func NewPostgresProjectRepo(db *sql.DB) *PostgresProjectRepo {
	return &PostgresProjectRepo{db: db}
}

const projectColumns = `id, title, description, author, author_id, category, date,
	image_url, participants, status, is_published, created_at, updated_at`

// scanProject は1行を読み取りProjectを構築する。
func scanProject(scan func(dest ...any) error) (*model.Project, error) {
	p := &model.Project{}
	err := scan(
		&p.ID, &p.Title, &p.Description, &p.Author, &p.AuthorID, &p.Category,
		&p.Date, &p.ImageURL, &p.Participants, &p.Status, &p.IsPublished,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// List はプロジェクト一覧を作成日時降順で返す。publishedOnlyの場合はis_published=trueのみ。
func (r *PostgresProjectRepo) List(ctx context.Context, publishedOnly bool) ([]*model.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects`
	if publishedOnly {
		query += ` WHERE is_published = true`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []*model.Project
	for rows.Next() {
		p, err := scanProject(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate projects: %w", err)
	}

	return projects, nil
}

// FindByID は指定IDのプロジェクトを取得する。見つからない場合はnilを返す。
func (r *PostgresProjectRepo) FindByID(ctx context.Context, id string) (*model.Project, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)

	p, err := scanProject(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return p, nil
}

// Create はプロジェクトを作成する。
func (r *PostgresProjectRepo) Create(ctx context.Context, project *model.Project) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO projects (id, title, description, author, author_id, category, date,
		   image_url, participants, status, is_published, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		project.ID, project.Title, project.Description, project.Author,
		project.AuthorID, project.Category, project.Date, project.ImageURL,
		project.Participants, project.Status, project.IsPublished,
		project.CreatedAt, project.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert project: %w", err)
	}
	return nil
}

// Update はプロジェクト情報を上書き更新する。
func (r *PostgresProjectRepo) Update(ctx context.Context, project *model.Project) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE projects
		 SET title = $2, description = $3, author = $4, category = $5, date = $6,
		     image_url = $7, participants = $8, status = $9, is_published = $10,
		     updated_at = now()
		 WHERE id = $1`,
		project.ID, project.Title, project.Description, project.Author,
		project.Category, project.Date, project.ImageURL, project.Participants,
		project.Status, project.IsPublished,
	)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	return requireRowAffected(result, "project")
}

// Delete は指定IDのプロジェクトを削除する。
func (r *PostgresProjectRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return requireRowAffected(result, "project")
}

// compile-time interface check
var _ ProjectRepository = (*PostgresProjectRepo)(nil)
