package grievance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	pggrievance "github.com/gramseva/gramseva-backend/internal/adapter/postgres/grievance"
	"github.com/gramseva/gramseva-backend/internal/domain"
)

// AdminUpdateInput holds an administrative grievance mutation. Any
// combination of a status change, an update note, and an escalation may
// be applied in one call.
type AdminUpdateInput struct {
	GrievanceID uuid.UUID
	Status      string
	UpdateText  string
	Escalate    bool
}

// AdminUpdate mutates a grievance and appends exactly one immutable
// trail entry, in one transaction. Escalation wins over any requested
// status and bumps the escalation level.
func (s *Service) AdminUpdate(ctx context.Context, adminID uuid.UUID, input AdminUpdateInput) (*domain.Grievance, error) {
	current, err := s.grievances.GetByID(ctx, input.GrievanceID)
	if err != nil {
		return nil, fmt.Errorf("grievance.AdminUpdate get grievance: %w", err)
	}

	target := current.Status
	if input.Status != "" {
		target = domain.GrievanceStatus(input.Status)
		if !target.IsValid() {
			return nil, &domain.ValidationError{Errors: []domain.FieldError{
				{Field: "status", Message: "unknown status"},
			}}
		}
	}
	if input.Escalate {
		target = domain.GrievanceStatusEscalated
	}

	var resolvedAt *time.Time
	if target == domain.GrievanceStatusResolved && current.ResolvedAt == nil {
		now := time.Now()
		resolvedAt = &now
	}

	var updated *domain.Grievance
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		updated, err = s.grievances.ApplyChange(ctx, current.ID, pggrievance.StatusChange{
			Status:     target,
			AssignedTo: &adminID,
			Escalate:   input.Escalate,
			ResolvedAt: resolvedAt,
		})
		if err != nil {
			return fmt.Errorf("apply change: %w", err)
		}

		text := input.UpdateText
		if text == "" {
			text = "Status changed to " + target.String()
		}
		_, err = s.grievances.AppendUpdate(ctx, &domain.GrievanceUpdate{
			GrievanceID: current.ID,
			UpdatedBy:   adminID,
			UpdateText:  text,
			Status:      target,
		})
		if err != nil {
			return fmt.Errorf("append update: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("grievance.AdminUpdate: %w", err)
	}

	s.log.InfoContext(ctx, "grievance updated",
		slog.String("grievance_number", current.GrievanceNumber),
		slog.String("status", target.String()),
		slog.Bool("escalated", input.Escalate),
		slog.String("admin_id", adminID.String()))

	return updated, nil
}
