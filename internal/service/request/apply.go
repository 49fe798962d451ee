package request

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	postgres "github.com/gramseva/gramseva-backend/internal/adapter/postgres"
	"github.com/gramseva/gramseva-backend/internal/domain"
)

// ApplyInput holds the parameters of a new service application.
type ApplyInput struct {
	CategoryID  int32
	Description string
}

// Validate validates the apply input.
func (i ApplyInput) Validate() error {
	var errs []domain.FieldError

	if i.CategoryID <= 0 {
		errs = append(errs, domain.FieldError{Field: "category_id", Message: "required"})
	}
	if len(i.Description) > 2000 {
		errs = append(errs, domain.FieldError{Field: "description", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// Apply files a new service request for the calling citizen.
func (s *Service) Apply(ctx context.Context, citizenID uuid.UUID, input ApplyInput) (*domain.ServiceRequest, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	category, err := s.categories.GetByID(ctx, input.CategoryID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &domain.ValidationError{Errors: []domain.FieldError{
				{Field: "category_id", Message: "unknown category"},
			}}
		}
		return nil, fmt.Errorf("request.Apply get category: %w", err)
	}
	if !category.IsActive {
		return nil, &domain.ValidationError{Errors: []domain.FieldError{
			{Field: "category_id", Message: "category is not available"},
		}}
	}

	var description *string
	if input.Description != "" {
		description = &input.Description
	}

	var created *domain.ServiceRequest
	for attempt := 0; ; attempt++ {
		created, err = s.requests.Create(ctx, &domain.ServiceRequest{
			CitizenID:     citizenID,
			CategoryID:    category.ID,
			RequestNumber: domain.NewRequestNumber(time.Now()),
			Status:        domain.RequestStatusPending,
			Priority:      domain.PriorityNormal,
			Description:   description,
		})
		if err == nil {
			break
		}
		if postgres.IsUniqueViolation(err) && attempt < maxNumberRetries {
			continue
		}
		return nil, fmt.Errorf("request.Apply: %w", err)
	}

	s.events.Record(domain.EventServiceApplied, &citizenID, map[string]any{
		"request_number": created.RequestNumber,
		"category":       category.NameEn,
	})

	s.log.InfoContext(ctx, "service request filed",
		slog.String("request_number", created.RequestNumber),
		slog.String("citizen_id", citizenID.String()))

	return created, nil
}
