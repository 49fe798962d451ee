// Package analytics implements the append-only event and chat log
// repositories using PostgreSQL.
package analytics

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/gramseva/gramseva-backend/internal/adapter/postgres"
	"github.com/gramseva/gramseva-backend/internal/domain"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repo provides analytics event and chat log persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new analytics repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// InsertEvent appends one usage event.
func (r *Repo) InsertEvent(ctx context.Context, e *domain.AnalyticsEvent) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	payload := e.Payload
	if payload == nil {
		payload = map[string]any{}
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event payload: %w", err)
	}

	sql, args, err := psql.Insert("analytics_events").
		Columns("event_type", "citizen_id", "payload").
		Values(e.EventType, e.CitizenID, raw).
		ToSql()
	if err != nil {
		return postgres.MapError(err, "analytics_event", e.EventType)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "analytics_event", e.EventType)
	}
	return nil
}

// CountByType returns event counts grouped by type.
func (r *Repo) CountByType(ctx context.Context) (map[string]int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, "SELECT event_type, count(*) FROM analytics_events GROUP BY event_type")
	if err != nil {
		return nil, postgres.MapError(err, "analytics_event", "counts")
	}
	defer rows.Close()

	out := make(map[string]int64)
	for rows.Next() {
		var eventType string
		var n int64
		if err := rows.Scan(&eventType, &n); err != nil {
			return nil, postgres.MapError(err, "analytics_event", "counts")
		}
		out[eventType] = n
	}
	return out, rows.Err()
}

// InsertChatLog appends one chatbot exchange.
func (r *Repo) InsertChatLog(ctx context.Context, l *domain.ChatLog) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Insert("chat_logs").
		Columns("citizen_id", "session_id", "user_message", "bot_response", "language").
		Values(l.CitizenID, l.SessionID, l.UserMessage, l.BotResponse, l.Language).
		ToSql()
	if err != nil {
		return postgres.MapError(err, "chat_log", l.SessionID)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "chat_log", l.SessionID)
	}
	return nil
}

// ListChatLogs returns up to limit of the citizen's chat logs, oldest first.
func (r *Repo) ListChatLogs(ctx context.Context, citizenID uuid.UUID, limit int) ([]domain.ChatLog, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Select("id", "citizen_id", "session_id", "user_message",
		"bot_response", "language", "created_at").
		From("chat_logs").
		Where(squirrel.Eq{"citizen_id": citizenID}).
		OrderBy("created_at").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "chat_log", citizenID)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "chat_log", citizenID)
	}
	defer rows.Close()

	var out []domain.ChatLog
	for rows.Next() {
		var l domain.ChatLog
		if err := rows.Scan(&l.ID, &l.CitizenID, &l.SessionID, &l.UserMessage,
			&l.BotResponse, &l.Language, &l.CreatedAt); err != nil {
			return nil, postgres.MapError(err, "chat_log", citizenID)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
