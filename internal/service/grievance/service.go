// Package grievance implements citizen complaints: submission with
// automatic triage, tracking, and the administrative update trail.
package grievance

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	pggrievance "github.com/gramseva/gramseva-backend/internal/adapter/postgres/grievance"
	"github.com/gramseva/gramseva-backend/internal/domain"
)

const maxNumberRetries = 3

// grievanceRepo defines the grievance repository interface needed here.
type grievanceRepo interface {
	Create(ctx context.Context, g *domain.Grievance) (*domain.Grievance, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Grievance, error)
	GetByNumber(ctx context.Context, number string) (*domain.Grievance, error)
	ListByCitizen(ctx context.Context, citizenID uuid.UUID, limit, offset int) ([]domain.Grievance, error)
	ApplyChange(ctx context.Context, id uuid.UUID, ch pggrievance.StatusChange) (*domain.Grievance, error)
	AppendUpdate(ctx context.Context, u *domain.GrievanceUpdate) (*domain.GrievanceUpdate, error)
	ListUpdates(ctx context.Context, grievanceID uuid.UUID) ([]domain.GrievanceUpdate, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type recorder interface {
	Record(eventType string, citizenID *uuid.UUID, payload map[string]any)
}

// Service implements grievance operations.
type Service struct {
	log        *slog.Logger
	grievances grievanceRepo
	tx         txManager
	events     recorder
}

// NewService creates a new grievance service instance.
func NewService(logger *slog.Logger, grievances grievanceRepo, tx txManager, events recorder) *Service {
	return &Service{
		log:        logger.With("service", "grievance"),
		grievances: grievances,
		tx:         tx,
		events:     events,
	}
}
