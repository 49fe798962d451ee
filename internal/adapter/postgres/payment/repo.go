// Package payment implements the Payment repository using PostgreSQL.
package payment

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
	"id", "citizen_id", "request_id", "amount", "purpose", "transaction_id",
	"status", "payment_method", "mock_reference", "paid_at", "created_at",
}

// Repo provides payment persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new payment repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a pending payment and returns the stored row.
func (r *Repo) Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Insert("payments").
		Columns("citizen_id", "request_id", "amount", "purpose",
			"transaction_id", "status", "payment_method", "mock_reference").
		Values(p.CitizenID, p.RequestID, p.Amount, p.Purpose,
			p.TransactionID, p.Status.String(), p.PaymentMethod, p.MockReference).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "payment", p.TransactionID)
	}

	row, err := scanPayment(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "payment", p.TransactionID)
	}
	return row, nil
}

// GetByID returns a payment by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Select(columns...).From("payments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "payment", id)
	}

	row, err := scanPayment(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "payment", id)
	}
	return row, nil
}

// MarkOutcome settles a pending payment and returns the stored row.
// The WHERE clause guards the pending state so concurrent verifies cannot
// settle the same payment twice.
func (r *Repo) MarkOutcome(ctx context.Context, id uuid.UUID, status domain.PaymentStatus, paidAt *time.Time) (*domain.Payment, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Update("payments").
		Set("status", status.String()).
		Set("paid_at", paidAt).
		Where(squirrel.Eq{"id": id, "status": domain.PaymentStatusPending.String()}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "payment", id)
	}

	row, err := scanPayment(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "payment", id)
	}
	return row, nil
}

// ListByCitizen returns a page of the citizen's payments, newest first.
func (r *Repo) ListByCitizen(ctx context.Context, citizenID uuid.UUID, limit, offset int) ([]domain.Payment, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Select(columns...).From("payments").
		Where(squirrel.Eq{"citizen_id": citizenID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "payment", citizenID)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "payment", citizenID)
	}
	defer rows.Close()

	var out []domain.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, postgres.MapError(err, "payment", citizenID)
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// RevenueByPurpose returns count and sum of successful payments grouped by
// purpose, largest total first.
func (r *Repo) RevenueByPurpose(ctx context.Context) ([]domain.RevenueLine, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, `
		SELECT purpose, count(*), coalesce(sum(amount), 0)
		FROM payments
		WHERE status = 'success'
		GROUP BY purpose
		ORDER BY sum(amount) DESC`)
	if err != nil {
		return nil, postgres.MapError(err, "payment", "revenue")
	}
	defer rows.Close()

	var out []domain.RevenueLine
	for rows.Next() {
		var line domain.RevenueLine
		if err := rows.Scan(&line.Purpose, &line.Count, &line.Total); err != nil {
			return nil, postgres.MapError(err, "payment", "revenue")
		}
		out = append(out, line)
	}
	return out, rows.Err()
}

// TotalRevenue returns the sum of all successful payments.
func (r *Repo) TotalRevenue(ctx context.Context) (float64, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var total float64
	err := q.QueryRow(ctx,
		"SELECT coalesce(sum(amount), 0) FROM payments WHERE status = 'success'",
	).Scan(&total)
	if err != nil {
		return 0, postgres.MapError(err, "payment", "revenue")
	}
	return total, nil
}

func scanPayment(row pgx.Row) (*domain.Payment, error) {
	var p domain.Payment
	var status string
	err := row.Scan(
		&p.ID, &p.CitizenID, &p.RequestID, &p.Amount, &p.Purpose,
		&p.TransactionID, &status, &p.PaymentMethod, &p.MockReference,
		&p.PaidAt, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Status = domain.PaymentStatus(status)
	return &p, nil
}
