// Package certificate implements certificate issuance, public
// verification and artifact download.
package certificate

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/gramseva/gramseva-backend/internal/config"
	"github.com/gramseva/gramseva-backend/internal/domain"
	"github.com/gramseva/gramseva-backend/internal/renderer"
)

const maxNumberRetries = 3

// certificateRepo defines the certificate repository interface needed here.
type certificateRepo interface {
	Create(ctx context.Context, c *domain.Certificate) (*domain.Certificate, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Certificate, error)
	GetByNumber(ctx context.Context, number string) (*domain.Certificate, error)
	ListByCitizen(ctx context.Context, citizenID uuid.UUID) ([]domain.Certificate, error)
}

// requestRepo flips the underlying request to completed on issuance.
type requestRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ServiceRequest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, status domain.RequestStatus, remarks *string, assignedTo *uuid.UUID, resolvedAt *time.Time) (*domain.ServiceRequest, error)
}

type categoryRepo interface {
	GetByID(ctx context.Context, id int32) (*domain.ServiceCategory, error)
}

type citizenRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Citizen, error)
}

// fileStore persists and serves rendered artifacts.
type fileStore interface {
	SaveBytes(rel string, data []byte) (string, error)
	Open(rel string) (io.ReadCloser, error)
	Remove(rel string) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type recorder interface {
	Record(eventType string, citizenID *uuid.UUID, payload map[string]any)
}

// Service implements certificate operations.
type Service struct {
	log          *slog.Logger
	certificates certificateRepo
	requests     requestRepo
	categories   categoryRepo
	citizens     citizenRepo
	renderer     renderer.Renderer
	files        fileStore
	tx           txManager
	events       recorder
	cfg          config.CertificateConfig
}

// NewService creates a new certificate service instance.
func NewService(
	logger *slog.Logger,
	certificates certificateRepo,
	requests requestRepo,
	categories categoryRepo,
	citizens citizenRepo,
	rend renderer.Renderer,
	files fileStore,
	tx txManager,
	events recorder,
	cfg config.CertificateConfig,
) *Service {
	return &Service{
		log:          logger.With("service", "certificate"),
		certificates: certificates,
		requests:     requests,
		categories:   categories,
		citizens:     citizens,
		renderer:     rend,
		files:        files,
		tx:           tx,
		events:       events,
		cfg:          cfg,
	}
}
