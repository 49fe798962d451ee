// Package admin implements the Admin repository using PostgreSQL.
package admin

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
	"id", "username", "email", "password_hash", "full_name", "role",
	"department", "is_active", "created_at",
}

// Repo provides admin account persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new admin repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a new admin account and returns the stored row.
func (r *Repo) Create(ctx context.Context, a *domain.Admin) (*domain.Admin, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Insert("admins").
		Columns("username", "email", "password_hash", "full_name", "role", "department").
		Values(a.Username, a.Email, a.PasswordHash, a.FullName, a.Role.String(), a.Department).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "admin", a.Username)
	}

	row, err := scanAdmin(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "admin", a.Username)
	}
	return row, nil
}

// GetByUsername returns an active admin by username.
// Inactive accounts behave as missing.
func (r *Repo) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Select(columns...).From("admins").
		Where(squirrel.Eq{"username": username, "is_active": true}).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "admin", username)
	}

	row, err := scanAdmin(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "admin", username)
	}
	return row, nil
}

// GetByID returns an admin by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Admin, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Select(columns...).From("admins").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "admin", id)
	}

	row, err := scanAdmin(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "admin", id)
	}
	return row, nil
}

func scanAdmin(row pgx.Row) (*domain.Admin, error) {
	var a domain.Admin
	var role string
	err := row.Scan(
		&a.ID, &a.Username, &a.Email, &a.PasswordHash, &a.FullName, &role,
		&a.Department, &a.IsActive, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.Role = domain.Role(role)
	return &a, nil
}
