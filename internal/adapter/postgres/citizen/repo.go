// Package citizen implements the Citizen repository using PostgreSQL.
package citizen

import (
	"context"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/gramseva/gramseva-backend/internal/adapter/postgres"
	"github.com/gramseva/gramseva-backend/internal/domain"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var columns = []string{
	"id", "full_name", "mobile", "email", "aadhaar_number", "address",
	"village_ward", "district", "state", "language_preference", "is_active",
	"created_at", "updated_at",
}

// Repo provides citizen persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new citizen repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a new citizen and returns the stored row.
func (r *Repo) Create(ctx context.Context, c *domain.Citizen) (*domain.Citizen, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Insert("citizens").
		Columns("full_name", "mobile", "email", "language_preference").
		Values(c.FullName, c.Mobile, c.Email, c.LanguagePreference).
		Suffix("RETURNING " + joinColumns()).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "citizen", c.Mobile)
	}

	row, err := scanCitizen(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "citizen", c.Mobile)
	}
	return row, nil
}

// GetByID returns a citizen by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Citizen, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Select(columns...).From("citizens").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "citizen", id)
	}

	row, err := scanCitizen(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "citizen", id)
	}
	return row, nil
}

// GetByMobile returns a citizen by mobile number.
func (r *Repo) GetByMobile(ctx context.Context, mobile string) (*domain.Citizen, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Select(columns...).From("citizens").
		Where(squirrel.Eq{"mobile": mobile}).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "citizen", mobile)
	}

	row, err := scanCitizen(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "citizen", mobile)
	}
	return row, nil
}

// UpdateProfile overwrites the citizen's self-service fields.
func (r *Repo) UpdateProfile(ctx context.Context, c *domain.Citizen) (*domain.Citizen, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Update("citizens").
		Set("full_name", c.FullName).
		Set("email", c.Email).
		Set("aadhaar_number", c.AadhaarNumber).
		Set("address", c.Address).
		Set("village_ward", c.VillageWard).
		Set("district", c.District).
		Set("language_preference", c.LanguagePreference).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": c.ID}).
		Suffix("RETURNING " + joinColumns()).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "citizen", c.ID)
	}

	row, err := scanCitizen(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "citizen", c.ID)
	}
	return row, nil
}

// List returns a page of citizens, newest first, optionally filtered by a
// case-insensitive substring match on name or mobile.
func (r *Repo) List(ctx context.Context, search string, limit, offset int) ([]domain.Citizen, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	builder := psql.Select(columns...).From("citizens").
		OrderBy("created_at DESC").
		Limit(uint64(limit)).Offset(uint64(offset))
	if search != "" {
		pattern := "%" + search + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"full_name": pattern},
			squirrel.Like{"mobile": pattern},
		})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "citizen", search)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "citizen", search)
	}
	defer rows.Close()

	var out []domain.Citizen
	for rows.Next() {
		c, err := scanCitizen(rows)
		if err != nil {
			return nil, postgres.MapError(err, "citizen", search)
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// Count returns the total number of citizens matching the search filter.
func (r *Repo) Count(ctx context.Context, search string) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	builder := psql.Select("count(*)").From("citizens")
	if search != "" {
		pattern := "%" + search + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"full_name": pattern},
			squirrel.Like{"mobile": pattern},
		})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return 0, postgres.MapError(err, "citizen", search)
	}

	var n int64
	if err := q.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, postgres.MapError(err, "citizen", search)
	}
	return n, nil
}

// CountCreatedSince returns the number of citizens registered at or after t.
func (r *Repo) CountCreatedSince(ctx context.Context, t time.Time) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Select("count(*)").From("citizens").
		Where(squirrel.GtOrEq{"created_at": t}).
		ToSql()
	if err != nil {
		return 0, postgres.MapError(err, "citizen", t)
	}

	var n int64
	if err := q.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, postgres.MapError(err, "citizen", t)
	}
	return n, nil
}

func joinColumns() string {
	return strings.Join(columns, ", ")
}

func scanCitizen(row pgx.Row) (*domain.Citizen, error) {
	var c domain.Citizen
	err := row.Scan(
		&c.ID, &c.FullName, &c.Mobile, &c.Email, &c.AadhaarNumber, &c.Address,
		&c.VillageWard, &c.District, &c.State, &c.LanguagePreference,
		&c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
