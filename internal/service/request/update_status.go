package request

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/gramseva/gramseva-backend/internal/domain"
)

// UpdateStatusInput holds an administrative status change.
type UpdateStatusInput struct {
	RequestID uuid.UUID
	Status    string
	Remarks   string
}

// UpdateStatus moves a request through its state machine. The completed
// state is reserved for certificate issuance and cannot be set here.
func (s *Service) UpdateStatus(ctx context.Context, adminID uuid.UUID, input UpdateStatusInput) (*domain.ServiceRequest, error) {
	target := domain.RequestStatus(input.Status)
	if !target.IsValid() {
		return nil, &domain.ValidationError{Errors: []domain.FieldError{
			{Field: "status", Message: "unknown status"},
		}}
	}
	if target == domain.RequestStatusCompleted {
		return nil, domain.ErrInvalidTransition
	}

	req, err := s.requests.GetByID(ctx, input.RequestID)
	if err != nil {
		return nil, fmt.Errorf("request.UpdateStatus get request: %w", err)
	}
	if !req.Status.CanTransitionTo(target) {
		return nil, domain.ErrInvalidTransition
	}

	var remarks *string
	if input.Remarks != "" {
		remarks = &input.Remarks
	}
	var resolvedAt *time.Time
	if target == domain.RequestStatusApproved || target == domain.RequestStatusRejected {
		now := time.Now()
		resolvedAt = &now
	}

	updated, err := s.requests.UpdateStatus(ctx, req.ID, req.Status, target, remarks, &adminID, resolvedAt)
	if err != nil {
		// The row existed a moment ago, so a miss means another admin
		// moved the request first.
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidTransition
		}
		return nil, fmt.Errorf("request.UpdateStatus: %w", err)
	}

	s.log.InfoContext(ctx, "request status updated",
		slog.String("request_number", req.RequestNumber),
		slog.String("from", req.Status.String()),
		slog.String("to", target.String()),
		slog.String("admin_id", adminID.String()))

	return updated, nil
}
