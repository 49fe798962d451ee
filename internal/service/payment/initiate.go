package payment

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

// InitiateInput holds the parameters of a new payment.
type InitiateInput struct {
	RequestID *uuid.UUID
	Amount    float64
	Purpose   string
}

// Validate validates the initiate input.
func (i InitiateInput) Validate() error {
	var errs []domain.FieldError

	if i.Amount <= 0 {
		errs = append(errs, domain.FieldError{Field: "amount", Message: "must be positive"})
	}
	if i.Purpose == "" {
		errs = append(errs, domain.FieldError{Field: "purpose", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// Initiate creates a pending payment for the calling citizen. When the
// payment is tied to a service request, the request must be theirs.
func (s *Service) Initiate(ctx context.Context, citizenID uuid.UUID, input InitiateInput) (*domain.Payment, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	if input.RequestID != nil {
		req, err := s.requests.GetByID(ctx, *input.RequestID)
		if err != nil {
			return nil, fmt.Errorf("payment.Initiate get request: %w", err)
		}
		if req.CitizenID != citizenID {
			// Do not reveal that the request exists.
			return nil, domain.ErrNotFound
		}
	}

	// The mock gateway hands out its reference up front; a real gateway
	// would return one asynchronously.
	var mockRef *string
	method := "gateway"
	if s.cfg.Mock {
		ref := domain.NewMockReference()
		mockRef = &ref
		method = "mock"
	}

	var created *domain.Payment
	for attempt := 0; ; attempt++ {
		var err error
		created, err = s.payments.Create(ctx, &domain.Payment{
			CitizenID:     citizenID,
			RequestID:     input.RequestID,
			Amount:        input.Amount,
			Purpose:       input.Purpose,
			TransactionID: domain.NewTransactionID(time.Now()),
			Status:        domain.PaymentStatusPending,
			PaymentMethod: method,
			MockReference: mockRef,
		})
		if err == nil {
			break
		}
		if postgres.IsUniqueViolation(err) && attempt < maxNumberRetries {
			continue
		}
		return nil, fmt.Errorf("payment.Initiate: %w", err)
	}

	s.log.InfoContext(ctx, "payment initiated",
		slog.String("transaction_id", created.TransactionID),
		slog.Float64("amount", created.Amount))

	return created, nil
}

// Verify settles a pending payment. A non-empty gateway reference marks
// it successful; an empty one marks it failed. Either way the payment is
// terminal afterwards.
func (s *Service) Verify(ctx context.Context, citizenID, paymentID uuid.UUID, mockReference string) (*domain.Payment, error) {
	p, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("payment.Verify get payment: %w", err)
	}
	if p.CitizenID != citizenID {
		return nil, domain.ErrNotFound
	}
	if p.Status != domain.PaymentStatusPending {
		return nil, domain.ErrAlreadyProcessed
	}

	status := domain.PaymentStatusFailed
	var paidAt *time.Time
	if mockReference != "" {
		status = domain.PaymentStatusSuccess
		now := time.Now()
		paidAt = &now
	}

	settled, err := s.payments.MarkOutcome(ctx, p.ID, status, paidAt)
	if err != nil {
		// Lost the race against a concurrent settlement.
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrAlreadyProcessed
		}
		return nil, fmt.Errorf("payment.Verify: %w", err)
	}

	if settled.Status == domain.PaymentStatusSuccess {
		s.events.Record(domain.EventPaymentSuccess, &citizenID, map[string]any{
			"transaction_id": settled.TransactionID,
			"amount":         settled.Amount,
			"purpose":        settled.Purpose,
		})
	}

	s.log.InfoContext(ctx, "payment settled",
		slog.String("transaction_id", settled.TransactionID),
		slog.String("status", settled.Status.String()))

	return settled, nil
}
