// Package payment implements fee payments against the mock gateway.
package payment

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/gramseva/gramseva-backend/internal/config"
	"github.com/gramseva/gramseva-backend/internal/domain"
)

const maxNumberRetries = 3

// paymentRepo defines the payment repository interface needed here.
type paymentRepo interface {
	Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error)
	MarkOutcome(ctx context.Context, id uuid.UUID, status domain.PaymentStatus, paidAt *time.Time) (*domain.Payment, error)
	ListByCitizen(ctx context.Context, citizenID uuid.UUID, limit, offset int) ([]domain.Payment, error)
}

// requestRepo checks that an optional linked request belongs to the payer.
type requestRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ServiceRequest, error)
}

type recorder interface {
	Record(eventType string, citizenID *uuid.UUID, payload map[string]any)
}

// Service implements payment operations.
type Service struct {
	log      *slog.Logger
	payments paymentRepo
	requests requestRepo
	events   recorder
	cfg      config.PaymentConfig
}

// NewService creates a new payment service instance. Settlement relies
// on the repository's guarded single-row update rather than an explicit
// transaction.
func NewService(
	logger *slog.Logger,
	payments paymentRepo,
	requests requestRepo,
	events recorder,
	cfg config.PaymentConfig,
) *Service {
	return &Service{
		log:      logger.With("service", "payment"),
		payments: payments,
		requests: requests,
		events:   events,
		cfg:      cfg,
	}
}
