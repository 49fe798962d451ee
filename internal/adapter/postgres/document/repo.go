// Package document implements the uploaded document repository using PostgreSQL.
package document

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
	"id", "request_id", "citizen_id", "file_name", "file_path", "file_type",
	"file_size", "uploaded_at",
}

// Repo provides document persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new document repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a document row and returns the stored row.
func (r *Repo) Create(ctx context.Context, d *domain.Document) (*domain.Document, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Insert("documents").
		Columns("request_id", "citizen_id", "file_name", "file_path", "file_type", "file_size").
		Values(d.RequestID, d.CitizenID, d.FileName, d.FilePath, d.FileType, d.FileSize).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "document", d.FileName)
	}

	row, err := scanDocument(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "document", d.FileName)
	}
	return row, nil
}

// ListByRequest returns the documents attached to a request, oldest first.
func (r *Repo) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]domain.Document, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Select(columns...).From("documents").
		Where(squirrel.Eq{"request_id": requestID}).
		OrderBy("uploaded_at").
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "document", requestID)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "document", requestID)
	}
	defer rows.Close()

	var out []domain.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, postgres.MapError(err, "document", requestID)
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

func scanDocument(row pgx.Row) (*domain.Document, error) {
	var d domain.Document
	err := row.Scan(
		&d.ID, &d.RequestID, &d.CitizenID, &d.FileName, &d.FilePath,
		&d.FileType, &d.FileSize, &d.UploadedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
