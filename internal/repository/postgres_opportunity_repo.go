package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/club1938/clubhouse/internal/model"
)

// PostgresOpportunityRepo はPostgreSQLを使用したビジネス機会リポジトリ。
type PostgresOpportunityRepo struct {
	db *sql.DB
}

// NewPostgresOpportunityRepo はPostgresOpportunityRepoを生成する。
func NewPostgresOpportunityRepo(db *sql.DB) *PostgresOpportunityRepo {
	return &PostgresOpportunityRepo{db: db}
}

const opportunityColumns = `id, title, company, description, location, sector,
	looking_for, email, author_id, is_active, created_at, updated_at`

// scanOpportunity は1行を読み取りBusinessOpportunityを構築する。
func scanOpportunity(scan func(dest ...any) error) (*model.BusinessOpportunity, error) {
	o := &model.BusinessOpportunity{}
	err := scan(
		&o.ID, &o.Title, &o.Company, &o.Description, &o.Location, &o.Sector,
		&o.LookingFor, &o.Email, &o.AuthorID, &o.IsActive,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return o, nil
}

// List は機会一覧を作成日時降順で返す。activeOnlyの場合はis_active=trueのみ。
func (r *PostgresOpportunityRepo) List(ctx context.Context, activeOnly bool) ([]*model.BusinessOpportunity, error) {
	query := `SELECT ` + opportunityColumns + ` FROM business_opportunities`
	if activeOnly {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list opportunities: %w", err)
	}
	defer rows.Close()

	var opportunities []*model.BusinessOpportunity
	for rows.Next() {
		o, err := scanOpportunity(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan opportunity: %w", err)
		}
		opportunities = append(opportunities, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate opportunities: %w", err)
	}

	return opportunities, nil
}

// Create は機会を作成する。
func (r *PostgresOpportunityRepo) Create(ctx context.Context, opp *model.BusinessOpportunity) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO business_opportunities (id, title, company, description, location,
		   sector, looking_for, email, author_id, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		opp.ID, opp.Title, opp.Company, opp.Description, opp.Location, opp.Sector,
		opp.LookingFor, opp.Email, opp.AuthorID, opp.IsActive,
		opp.CreatedAt, opp.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert opportunity: %w", err)
	}
	return nil
}

// compile-time interface check
var _ OpportunityRepository = (*PostgresOpportunityRepo)(nil)
