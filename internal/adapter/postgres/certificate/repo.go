// Package certificate implements the Certificate repository using PostgreSQL.
package certificate

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
	"id", "request_id", "citizen_id", "certificate_type", "certificate_number",
	"qr_payload", "file_path", "issued_by", "valid_until", "issued_at",
}

// Repo provides certificate persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new certificate repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts an issued certificate and returns the stored row.
func (r *Repo) Create(ctx context.Context, c *domain.Certificate) (*domain.Certificate, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Insert("certificates").
		Columns("request_id", "citizen_id", "certificate_type", "certificate_number",
			"qr_payload", "file_path", "issued_by", "valid_until").
		Values(c.RequestID, c.CitizenID, c.CertificateType, c.CertificateNumber,
			c.QRPayload, c.FilePath, c.IssuedBy, c.ValidUntil).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "certificate", c.CertificateNumber)
	}

	row, err := scanCertificate(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "certificate", c.CertificateNumber)
	}
	return row, nil
}

// GetByID returns a certificate by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Certificate, error) {
	return r.getBy(ctx, squirrel.Eq{"id": id}, id)
}

// GetByNumber returns a certificate by its public number.
func (r *Repo) GetByNumber(ctx context.Context, number string) (*domain.Certificate, error) {
	return r.getBy(ctx, squirrel.Eq{"certificate_number": number}, number)
}

// GetByRequestID returns the certificate issued for a request, if any.
func (r *Repo) GetByRequestID(ctx context.Context, requestID uuid.UUID) (*domain.Certificate, error) {
	return r.getBy(ctx, squirrel.Eq{"request_id": requestID}, requestID)
}

func (r *Repo) getBy(ctx context.Context, pred squirrel.Eq, key any) (*domain.Certificate, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Select(columns...).From("certificates").
		Where(pred).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "certificate", key)
	}

	row, err := scanCertificate(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "certificate", key)
	}
	return row, nil
}

// ListByCitizen returns the citizen's certificates, newest first.
func (r *Repo) ListByCitizen(ctx context.Context, citizenID uuid.UUID) ([]domain.Certificate, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Select(columns...).From("certificates").
		Where(squirrel.Eq{"citizen_id": citizenID}).
		OrderBy("issued_at DESC").
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "certificate", citizenID)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "certificate", citizenID)
	}
	defer rows.Close()

	var out []domain.Certificate
	for rows.Next() {
		c, err := scanCertificate(rows)
		if err != nil {
			return nil, postgres.MapError(err, "certificate", citizenID)
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func scanCertificate(row pgx.Row) (*domain.Certificate, error) {
	var c domain.Certificate
	err := row.Scan(
		&c.ID, &c.RequestID, &c.CitizenID, &c.CertificateType,
		&c.CertificateNumber, &c.QRPayload, &c.FilePath, &c.IssuedBy,
		&c.ValidUntil, &c.IssuedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
