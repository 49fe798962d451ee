package grievance

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	postgres "github.com/gramseva/gramseva-backend/internal/adapter/postgres"
	"github.com/gramseva/gramseva-backend/internal/domain"
	"github.com/gramseva/gramseva-backend/internal/triage"
)

// SubmitInput holds a new grievance.
type SubmitInput struct {
	Subject     string
	Description string
}

// Validate validates the submit input.
func (i SubmitInput) Validate() error {
	var errs []domain.FieldError

	if i.Subject == "" {
		errs = append(errs, domain.FieldError{Field: "subject", Message: "required"})
	} else if len(i.Subject) > 255 {
		errs = append(errs, domain.FieldError{Field: "subject", Message: "too long"})
	}
	if i.Description == "" {
		errs = append(errs, domain.FieldError{Field: "description", Message: "required"})
	} else if len(i.Description) > 5000 {
		errs = append(errs, domain.FieldError{Field: "description", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// Submit files a grievance. Triage runs synchronously; its verdict is
// stored immutably in ai_category/ai_priority and seeds the mutable
// working category.
func (s *Service) Submit(ctx context.Context, citizenID uuid.UUID, input SubmitInput) (*domain.Grievance, error) {
	input.Subject = strings.TrimSpace(input.Subject)
	input.Description = strings.TrimSpace(input.Description)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	verdict := triage.Classify(input.Subject, input.Description)

	var created *domain.Grievance
	for attempt := 0; ; attempt++ {
		var err error
		created, err = s.grievances.Create(ctx, &domain.Grievance{
			CitizenID:       citizenID,
			GrievanceNumber: domain.NewGrievanceNumber(time.Now()),
			Category:        verdict.Category,
			Subject:         input.Subject,
			Description:     input.Description,
			AICategory:      verdict.Category,
			AIPriority:      verdict.Priority,
			Status:          domain.GrievanceStatusOpen,
		})
		if err == nil {
			break
		}
		if postgres.IsUniqueViolation(err) && attempt < maxNumberRetries {
			continue
		}
		return nil, fmt.Errorf("grievance.Submit: %w", err)
	}

	s.events.Record(domain.EventGrievanceSubmitted, &citizenID, map[string]any{
		"grievance_number": created.GrievanceNumber,
		"category":         created.AICategory,
		"priority":         created.AIPriority.String(),
	})

	s.log.InfoContext(ctx, "grievance submitted",
		slog.String("grievance_number", created.GrievanceNumber),
		slog.String("category", created.AICategory),
		slog.String("priority", created.AIPriority.String()))

	return created, nil
}
