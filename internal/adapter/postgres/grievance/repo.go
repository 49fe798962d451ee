// Package grievance implements the Grievance repository using PostgreSQL.
package grievance

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
	"id", "citizen_id", "grievance_number", "category", "subject",
	"description", "ai_category", "ai_priority", "status", "assigned_to",
	"escalation_level", "created_at", "updated_at", "resolved_at",
}

// AdminRow is a grievance joined with complainant details for back-office
// listings.
type AdminRow struct {
	domain.Grievance
	CitizenName   string
	CitizenMobile string
}

// StatusChange carries the mutation applied by an administrative update.
type StatusChange struct {
	Status     domain.GrievanceStatus
	AssignedTo *uuid.UUID
	Escalate   bool
	ResolvedAt *time.Time
}

// Repo provides grievance persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new grievance repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a new grievance and returns the stored row.
func (r *Repo) Create(ctx context.Context, g *domain.Grievance) (*domain.Grievance, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Insert("grievances").
		Columns("citizen_id", "grievance_number", "category", "subject",
			"description", "ai_category", "ai_priority", "status").
		Values(g.CitizenID, g.GrievanceNumber, g.Category, g.Subject,
			g.Description, g.AICategory, g.AIPriority.String(), g.Status.String()).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "grievance", g.GrievanceNumber)
	}

	row, err := scanGrievance(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "grievance", g.GrievanceNumber)
	}
	return row, nil
}

// GetByID returns a grievance by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Grievance, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Select(columns...).From("grievances").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "grievance", id)
	}

	row, err := scanGrievance(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "grievance", id)
	}
	return row, nil
}

// GetByNumber returns a grievance by its public reference number.
func (r *Repo) GetByNumber(ctx context.Context, number string) (*domain.Grievance, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Select(columns...).From("grievances").
		Where(squirrel.Eq{"grievance_number": number}).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "grievance", number)
	}

	row, err := scanGrievance(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "grievance", number)
	}
	return row, nil
}

// ListByCitizen returns a page of the citizen's grievances, newest first.
func (r *Repo) ListByCitizen(ctx context.Context, citizenID uuid.UUID, limit, offset int) ([]domain.Grievance, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Select(columns...).From("grievances").
		Where(squirrel.Eq{"citizen_id": citizenID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "grievance", citizenID)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "grievance", citizenID)
	}
	defer rows.Close()

	var out []domain.Grievance
	for rows.Next() {
		g, err := scanGrievance(rows)
		if err != nil {
			return nil, postgres.MapError(err, "grievance", citizenID)
		}
		out = append(out, *g)
	}
	return out, rows.Err()
}

// ApplyChange mutates a grievance per an administrative update and returns
// the stored row. Escalation increments escalation_level by exactly one.
func (r *Repo) ApplyChange(ctx context.Context, id uuid.UUID, ch StatusChange) (*domain.Grievance, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	builder := psql.Update("grievances").
		Set("status", ch.Status.String()).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id})
	if ch.AssignedTo != nil {
		builder = builder.Set("assigned_to", *ch.AssignedTo)
	}
	if ch.Escalate {
		builder = builder.Set("escalation_level", squirrel.Expr("escalation_level + 1"))
	}
	if ch.ResolvedAt != nil {
		builder = builder.Set("resolved_at", *ch.ResolvedAt)
	}

	sql, args, err := builder.Suffix("RETURNING " + strings.Join(columns, ", ")).ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "grievance", id)
	}

	row, err := scanGrievance(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "grievance", id)
	}
	return row, nil
}

// AppendUpdate records one immutable entry in the grievance update trail.
func (r *Repo) AppendUpdate(ctx context.Context, u *domain.GrievanceUpdate) (*domain.GrievanceUpdate, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Insert("grievance_updates").
		Columns("grievance_id", "updated_by", "update_text", "status").
		Values(u.GrievanceID, u.UpdatedBy, u.UpdateText, u.Status.String()).
		Suffix("RETURNING id, grievance_id, updated_by, update_text, status, created_at").
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "grievance_update", u.GrievanceID)
	}

	var out domain.GrievanceUpdate
	var status string
	err = q.QueryRow(ctx, sql, args...).Scan(
		&out.ID, &out.GrievanceID, &out.UpdatedBy, &out.UpdateText, &status, &out.CreatedAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, "grievance_update", u.GrievanceID)
	}
	out.Status = domain.GrievanceStatus(status)
	return &out, nil
}

// ListUpdates returns a grievance's update trail, newest first.
func (r *Repo) ListUpdates(ctx context.Context, grievanceID uuid.UUID) ([]domain.GrievanceUpdate, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Select("id", "grievance_id", "updated_by", "update_text", "status", "created_at").
		From("grievance_updates").
		Where(squirrel.Eq{"grievance_id": grievanceID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "grievance_update", grievanceID)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "grievance_update", grievanceID)
	}
	defer rows.Close()

	var out []domain.GrievanceUpdate
	for rows.Next() {
		var u domain.GrievanceUpdate
		var status string
		if err := rows.Scan(&u.ID, &u.GrievanceID, &u.UpdatedBy, &u.UpdateText, &status, &u.CreatedAt); err != nil {
			return nil, postgres.MapError(err, "grievance_update", grievanceID)
		}
		u.Status = domain.GrievanceStatus(status)
		out = append(out, u)
	}
	return out, rows.Err()
}

// ListAll returns a page of grievances joined with complainant details,
// newest first, optionally filtered by status and category.
func (r *Repo) ListAll(ctx context.Context, status, category string, limit, offset int) ([]AdminRow, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	cols := make([]string, 0, len(columns)+2)
	for _, c := range columns {
		cols = append(cols, "g."+c)
	}
	cols = append(cols, "c.full_name", "c.mobile")

	builder := psql.Select(cols...).
		From("grievances g").
		Join("citizens c ON c.id = g.citizen_id").
		OrderBy("g.created_at DESC").
		Limit(uint64(limit)).Offset(uint64(offset))
	if status != "" {
		builder = builder.Where(squirrel.Eq{"g.status": status})
	}
	if category != "" {
		builder = builder.Where(squirrel.Eq{"g.category": category})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "grievance", status)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "grievance", status)
	}
	defer rows.Close()

	var out []AdminRow
	for rows.Next() {
		var row AdminRow
		var grStatus, priority string
		err := rows.Scan(
			&row.ID, &row.CitizenID, &row.GrievanceNumber, &row.Category,
			&row.Subject, &row.Description, &row.AICategory, &priority,
			&grStatus, &row.AssignedTo, &row.EscalationLevel,
			&row.CreatedAt, &row.UpdatedAt, &row.ResolvedAt,
			&row.CitizenName, &row.CitizenMobile,
		)
		if err != nil {
			return nil, postgres.MapError(err, "grievance", status)
		}
		row.Status = domain.GrievanceStatus(grStatus)
		row.AIPriority = domain.Priority(priority)
		out = append(out, row)
	}
	return out, rows.Err()
}

// CountByStatus returns grievance counts grouped by status.
func (r *Repo) CountByStatus(ctx context.Context) (map[domain.GrievanceStatus]int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, "SELECT status, count(*) FROM grievances GROUP BY status")
	if err != nil {
		return nil, postgres.MapError(err, "grievance", "counts")
	}
	defer rows.Close()

	out := make(map[domain.GrievanceStatus]int64)
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, postgres.MapError(err, "grievance", "counts")
		}
		out[domain.GrievanceStatus(status)] = n
	}
	return out, rows.Err()
}

// CountByCategory returns grievance counts grouped by current category.
func (r *Repo) CountByCategory(ctx context.Context) (map[string]int64, error) {
	return r.countBy(ctx, "category")
}

// CountByPriority returns grievance counts grouped by triage priority.
func (r *Repo) CountByPriority(ctx context.Context) (map[string]int64, error) {
	return r.countBy(ctx, "ai_priority")
}

func (r *Repo) countBy(ctx context.Context, column string) (map[string]int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, "SELECT "+column+", count(*) FROM grievances GROUP BY "+column)
	if err != nil {
		return nil, postgres.MapError(err, "grievance", column)
	}
	defer rows.Close()

	out := make(map[string]int64)
	for rows.Next() {
		var key string
		var n int64
		if err := rows.Scan(&key, &n); err != nil {
			return nil, postgres.MapError(err, "grievance", column)
		}
		out[key] = n
	}
	return out, rows.Err()
}

func scanGrievance(row pgx.Row) (*domain.Grievance, error) {
	var g domain.Grievance
	var status, priority string
	err := row.Scan(
		&g.ID, &g.CitizenID, &g.GrievanceNumber, &g.Category, &g.Subject,
		&g.Description, &g.AICategory, &priority, &status, &g.AssignedTo,
		&g.EscalationLevel, &g.CreatedAt, &g.UpdatedAt, &g.ResolvedAt,
	)
	if err != nil {
		return nil, err
	}
	g.Status = domain.GrievanceStatus(status)
	g.AIPriority = domain.Priority(priority)
	return &g, nil
}
