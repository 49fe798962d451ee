// Package otpcode implements the one-time login code repository using PostgreSQL.
package otpcode

import (
	"context"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/gramseva/gramseva-backend/internal/adapter/postgres"
	"github.com/gramseva/gramseva-backend/internal/domain"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var columns = []string{
	"id", "mobile", "code", "purpose", "is_used", "expires_at", "created_at",
}

// Repo provides login code persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new login code repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a new login code and returns the stored row.
func (r *Repo) Create(ctx context.Context, c *domain.LoginCode) (*domain.LoginCode, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Insert("login_codes").
		Columns("mobile", "code", "purpose", "expires_at").
		Values(c.Mobile, c.Code, c.Purpose.String(), c.ExpiresAt).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "login_code", c.Mobile)
	}

	row, err := scanCode(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "login_code", c.Mobile)
	}
	return row, nil
}

// InvalidateUnused marks every unused code for the mobile as used.
// Returns the number of codes invalidated.
func (r *Repo) InvalidateUnused(ctx context.Context, mobile string) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Update("login_codes").
		Set("is_used", true).
		Where(squirrel.Eq{"mobile": mobile, "is_used": false}).
		ToSql()
	if err != nil {
		return 0, postgres.MapError(err, "login_code", mobile)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, postgres.MapError(err, "login_code", mobile)
	}
	return int(tag.RowsAffected()), nil
}

// GetUnused returns the most recent unused code matching mobile and code.
// Expired codes are still returned; expiry is a service-level decision.
func (r *Repo) GetUnused(ctx context.Context, mobile, code string) (*domain.LoginCode, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Select(columns...).From("login_codes").
		Where(squirrel.Eq{"mobile": mobile, "code": code, "is_used": false}).
		OrderBy("created_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "login_code", mobile)
	}

	row, err := scanCode(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "login_code", mobile)
	}
	return row, nil
}

// MarkUsed consumes a specific code. The update only matches codes that
// are still unused, so a code can be consumed at most once; a miss
// returns ErrNotFound.
func (r *Repo) MarkUsed(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Update("login_codes").
		Set("is_used", true).
		Where(squirrel.Eq{"id": id, "is_used": false}).
		ToSql()
	if err != nil {
		return postgres.MapError(err, "login_code", id)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "login_code", id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "login_code", id)
	}
	return nil
}

// DeleteStale removes used codes and codes past their expiry.
// Returns the count of deleted rows. Used by the cleanup command.
func (r *Repo) DeleteStale(ctx context.Context) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Delete("login_codes").
		Where(squirrel.Or{
			squirrel.Eq{"is_used": true},
			squirrel.Expr("expires_at < now()"),
		}).
		ToSql()
	if err != nil {
		return 0, postgres.MapError(err, "login_code", "stale")
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, postgres.MapError(err, "login_code", "stale")
	}
	return int(tag.RowsAffected()), nil
}

func scanCode(row pgx.Row) (*domain.LoginCode, error) {
	var c domain.LoginCode
	var purpose string
	err := row.Scan(&c.ID, &c.Mobile, &c.Code, &purpose, &c.IsUsed, &c.ExpiresAt, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	c.Purpose = domain.CodePurpose(purpose)
	return &c, nil
}
