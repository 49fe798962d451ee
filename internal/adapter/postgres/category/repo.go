// Package category implements the ServiceCategory repository using PostgreSQL.
package category

import (
	"context"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/gramseva/gramseva-backend/internal/adapter/postgres"
	"github.com/gramseva/gramseva-backend/internal/domain"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var columns = []string{
	"id", "name_en", "name_hi", "name_mr", "description", "icon", "fee",
	"processing_days", "required_docs", "is_active",
}

// Repo provides service catalog persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new category repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a catalog entry. Used by the seed command.
func (r *Repo) Create(ctx context.Context, c *domain.ServiceCategory) (*domain.ServiceCategory, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Insert("service_categories").
		Columns("name_en", "name_hi", "name_mr", "description", "icon", "fee",
			"processing_days", "required_docs", "is_active").
		Values(c.NameEn, c.NameHi, c.NameMr, c.Description, c.Icon, c.Fee,
			c.ProcessingDays, c.RequiredDocs, c.IsActive).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "service_category", c.NameEn)
	}

	row, err := scanCategory(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "service_category", c.NameEn)
	}
	return row, nil
}

// GetByID returns a catalog entry by id.
func (r *Repo) GetByID(ctx context.Context, id int32) (*domain.ServiceCategory, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Select(columns...).From("service_categories").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "service_category", id)
	}

	row, err := scanCategory(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "service_category", id)
	}
	return row, nil
}

// ListActive returns all active catalog entries ordered by id.
func (r *Repo) ListActive(ctx context.Context) ([]domain.ServiceCategory, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Select(columns...).From("service_categories").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "service_category", "active")
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "service_category", "active")
	}
	defer rows.Close()

	var out []domain.ServiceCategory
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, postgres.MapError(err, "service_category", "active")
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// Count returns the number of catalog entries, active or not.
func (r *Repo) Count(ctx context.Context) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var n int64
	if err := q.QueryRow(ctx, "SELECT count(*) FROM service_categories").Scan(&n); err != nil {
		return 0, postgres.MapError(err, "service_category", "count")
	}
	return n, nil
}

func scanCategory(row pgx.Row) (*domain.ServiceCategory, error) {
	var c domain.ServiceCategory
	err := row.Scan(
		&c.ID, &c.NameEn, &c.NameHi, &c.NameMr, &c.Description, &c.Icon,
		&c.Fee, &c.ProcessingDays, &c.RequiredDocs, &c.IsActive,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
