// Package request implements the ServiceRequest repository using PostgreSQL.
package request

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
	"id", "citizen_id", "category_id", "request_number", "status", "priority",
	"description", "remarks", "assigned_to", "submitted_at", "updated_at",
	"resolved_at",
}

// AdminRow is a request joined with applicant and category details for
// back-office listings.
type AdminRow struct {
	domain.ServiceRequest
	CitizenName   string
	CitizenMobile string
	CategoryName  string
}

// Repo provides service request persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new service request repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a new request and returns the stored row.
func (r *Repo) Create(ctx context.Context, req *domain.ServiceRequest) (*domain.ServiceRequest, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Insert("service_requests").
		Columns("citizen_id", "category_id", "request_number", "status", "priority", "description").
		Values(req.CitizenID, req.CategoryID, req.RequestNumber,
			req.Status.String(), req.Priority.String(), req.Description).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "service_request", req.RequestNumber)
	}

	row, err := scanRequest(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "service_request", req.RequestNumber)
	}
	return row, nil
}

// GetByID returns a request by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ServiceRequest, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Select(columns...).From("service_requests").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "service_request", id)
	}

	row, err := scanRequest(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "service_request", id)
	}
	return row, nil
}

// GetByNumber returns a request by its public reference number.
func (r *Repo) GetByNumber(ctx context.Context, number string) (*domain.ServiceRequest, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Select(columns...).From("service_requests").
		Where(squirrel.Eq{"request_number": number}).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "service_request", number)
	}

	row, err := scanRequest(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "service_request", number)
	}
	return row, nil
}

// ListByCitizen returns a page of the citizen's requests, newest first,
// optionally filtered by status.
func (r *Repo) ListByCitizen(ctx context.Context, citizenID uuid.UUID, status string, limit, offset int) ([]domain.ServiceRequest, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	builder := psql.Select(columns...).From("service_requests").
		Where(squirrel.Eq{"citizen_id": citizenID}).
		OrderBy("submitted_at DESC").
		Limit(uint64(limit)).Offset(uint64(offset))
	if status != "" {
		builder = builder.Where(squirrel.Eq{"status": status})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "service_request", citizenID)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "service_request", citizenID)
	}
	defer rows.Close()

	var out []domain.ServiceRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, postgres.MapError(err, "service_request", citizenID)
		}
		out = append(out, *req)
	}
	return out, rows.Err()
}

// UpdateStatus flips a request's status and bookkeeping fields and returns
// the stored row. The update only matches rows still in the from status,
// so concurrent transitions cannot clobber each other; a miss returns
// ErrNotFound. Transition legality is a service-level decision.
func (r *Repo) UpdateStatus(ctx context.Context, id uuid.UUID, from, status domain.RequestStatus, remarks *string, assignedTo *uuid.UUID, resolvedAt *time.Time) (*domain.ServiceRequest, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	builder := psql.Update("service_requests").
		Set("status", status.String()).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "status": from.String()})
	if remarks != nil {
		builder = builder.Set("remarks", *remarks)
	}
	if assignedTo != nil {
		builder = builder.Set("assigned_to", *assignedTo)
	}
	if resolvedAt != nil {
		builder = builder.Set("resolved_at", *resolvedAt)
	}

	sql, args, err := builder.Suffix("RETURNING " + strings.Join(columns, ", ")).ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "service_request", id)
	}

	row, err := scanRequest(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "service_request", id)
	}
	return row, nil
}

// ListAll returns a page of requests joined with applicant and category
// details, newest first, optionally filtered by status.
func (r *Repo) ListAll(ctx context.Context, status string, limit, offset int) ([]AdminRow, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	cols := make([]string, 0, len(columns)+3)
	for _, c := range columns {
		cols = append(cols, "r."+c)
	}
	cols = append(cols, "c.full_name", "c.mobile", "sc.name_en")

	builder := psql.Select(cols...).
		From("service_requests r").
		Join("citizens c ON c.id = r.citizen_id").
		Join("service_categories sc ON sc.id = r.category_id").
		OrderBy("r.submitted_at DESC").
		Limit(uint64(limit)).Offset(uint64(offset))
	if status != "" {
		builder = builder.Where(squirrel.Eq{"r.status": status})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "service_request", status)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "service_request", status)
	}
	defer rows.Close()

	var out []AdminRow
	for rows.Next() {
		var row AdminRow
		var reqStatus, priority string
		err := rows.Scan(
			&row.ID, &row.CitizenID, &row.CategoryID, &row.RequestNumber,
			&reqStatus, &priority, &row.Description, &row.Remarks,
			&row.AssignedTo, &row.SubmittedAt, &row.UpdatedAt, &row.ResolvedAt,
			&row.CitizenName, &row.CitizenMobile, &row.CategoryName,
		)
		if err != nil {
			return nil, postgres.MapError(err, "service_request", status)
		}
		row.Status = domain.RequestStatus(reqStatus)
		row.Priority = domain.Priority(priority)
		out = append(out, row)
	}
	return out, rows.Err()
}

// CountByStatus returns request counts grouped by status.
func (r *Repo) CountByStatus(ctx context.Context) (map[domain.RequestStatus]int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, "SELECT status, count(*) FROM service_requests GROUP BY status")
	if err != nil {
		return nil, postgres.MapError(err, "service_request", "counts")
	}
	defer rows.Close()

	out := make(map[domain.RequestStatus]int64)
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, postgres.MapError(err, "service_request", "counts")
		}
		out[domain.RequestStatus(status)] = n
	}
	return out, rows.Err()
}

// CategoryUsage returns per-category request counts with English names,
// most used first.
func (r *Repo) CategoryUsage(ctx context.Context) (map[string]int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, `
		SELECT sc.name_en, count(*)
		FROM service_requests r
		JOIN service_categories sc ON sc.id = r.category_id
		GROUP BY sc.name_en
		ORDER BY count(*) DESC`)
	if err != nil {
		return nil, postgres.MapError(err, "service_request", "category_usage")
	}
	defer rows.Close()

	out := make(map[string]int64)
	for rows.Next() {
		var name string
		var n int64
		if err := rows.Scan(&name, &n); err != nil {
			return nil, postgres.MapError(err, "service_request", "category_usage")
		}
		out[name] = n
	}
	return out, rows.Err()
}

func scanRequest(row pgx.Row) (*domain.ServiceRequest, error) {
	var req domain.ServiceRequest
	var status, priority string
	err := row.Scan(
		&req.ID, &req.CitizenID, &req.CategoryID, &req.RequestNumber,
		&status, &priority, &req.Description, &req.Remarks, &req.AssignedTo,
		&req.SubmittedAt, &req.UpdatedAt, &req.ResolvedAt,
	)
	if err != nil {
		return nil, err
	}
	req.Status = domain.RequestStatus(status)
	req.Priority = domain.Priority(priority)
	return &req, nil
}
