package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/club1938/clubhouse/internal/model"
)

// PostgresNewsRepo はPostgreSQLを使用したニュース記事リポジトリ。
type PostgresNewsRepo struct {
	db *sql.DB
}

// NewPostgresNewsRepo はPostgresNewsRepoを生成する。
func NewPostgresNewsRepo(db *sql.DB) *PostgresNewsRepo {
	return &PostgresNewsRepo{db: db}
}

const newsColumns = `id, title, excerpt, content, category, image_url, author_id,
	featured, is_published, published_at, created_at, updated_at`

// scanNewsItem は1行を読み取りNewsItemを構築する。
func scanNewsItem(scan func(dest ...any) error) (*model.NewsItem, error) {
	n := &model.NewsItem{}
	err := scan(
		&n.ID, &n.Title, &n.Excerpt, &n.Content, &n.Category, &n.ImageURL,
		&n.AuthorID, &n.Featured, &n.IsPublished, &n.PublishedAt,
		&n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// List は記事一覧を公開日時降順で返す。publishedOnlyの場合はis_published=trueのみ。
// published_atがNULLの記事は作成日時で順序付けする。
func (r *PostgresNewsRepo) List(ctx context.Context, publishedOnly bool) ([]*model.NewsItem, error) {
	query := `SELECT ` + newsColumns + ` FROM news`
	if publishedOnly {
		query += ` WHERE is_published = true`
	}
	query += ` ORDER BY COALESCE(published_at, created_at) DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list news: %w", err)
	}
	defer rows.Close()

	var items []*model.NewsItem
	for rows.Next() {
		n, err := scanNewsItem(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan news item: %w", err)
		}
		items = append(items, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate news: %w", err)
	}

	return items, nil
}

// FindByID は指定IDの記事を取得する。見つからない場合はnilを返す。
func (r *PostgresNewsRepo) FindByID(ctx context.Context, id string) (*model.NewsItem, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+newsColumns+` FROM news WHERE id = $1`, id)

	n, err := scanNewsItem(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find news item: %w", err)
	}
	return n, nil
}

// Create は記事を作成する。
func (r *PostgresNewsRepo) Create(ctx context.Context, item *model.NewsItem) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO news (id, title, excerpt, content, category, image_url, author_id,
		   featured, is_published, published_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		item.ID, item.Title, item.Excerpt, item.Content, item.Category,
		item.ImageURL, item.AuthorID, item.Featured, item.IsPublished,
		item.PublishedAt, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert news item: %w", err)
	}
	return nil
}

// Update は記事を上書き更新する。
func (r *PostgresNewsRepo) Update(ctx context.Context, item *model.NewsItem) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE news
		 SET title = $2, excerpt = $3, content = $4, category = $5, image_url = $6,
		     featured = $7, is_published = $8, published_at = $9, updated_at = now()
		 WHERE id = $1`,
		item.ID, item.Title, item.Excerpt, item.Content, item.Category,
		item.ImageURL, item.Featured, item.IsPublished, item.PublishedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update news item: %w", err)
	}
	return requireRowAffected(result, "news")
}

// Delete は指定IDの記事を削除する。
func (r *PostgresNewsRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM news WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete news item: %w", err)
	}
	return requireRowAffected(result, "news")
}

// compile-time interface check
var _ NewsRepository = (*PostgresNewsRepo)(nil)
