// Package request implements the service request lifecycle: catalog
// listing, applications, document upload, tracking and administrative
// status updates.
package request

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/gramseva/gramseva-backend/internal/config"
	"github.com/gramseva/gramseva-backend/internal/domain"
)

// Number generation retries this many times on a unique violation
// before giving up.
const maxNumberRetries = 3

// requestRepo defines the service request repository interface needed here.
type requestRepo interface {
	Create(ctx context.Context, req *domain.ServiceRequest) (*domain.ServiceRequest, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ServiceRequest, error)
	GetByNumber(ctx context.Context, number string) (*domain.ServiceRequest, error)
	ListByCitizen(ctx context.Context, citizenID uuid.UUID, status string, limit, offset int) ([]domain.ServiceRequest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, status domain.RequestStatus, remarks *string, assignedTo *uuid.UUID, resolvedAt *time.Time) (*domain.ServiceRequest, error)
}

// categoryRepo defines the service catalog interface needed here.
type categoryRepo interface {
	GetByID(ctx context.Context, id int32) (*domain.ServiceCategory, error)
	ListActive(ctx context.Context) ([]domain.ServiceCategory, error)
}

// documentRepo defines the attached document interface needed here.
type documentRepo interface {
	Create(ctx context.Context, d *domain.Document) (*domain.Document, error)
	ListByRequest(ctx context.Context, requestID uuid.UUID) ([]domain.Document, error)
}

// fileStore persists uploaded document bytes.
type fileStore interface {
	Save(subdir, originalName string, r io.Reader) (string, error)
}

// txManager defines the transaction manager interface needed here.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type recorder interface {
	Record(eventType string, citizenID *uuid.UUID, payload map[string]any)
}

// Service implements service request operations.
type Service struct {
	log        *slog.Logger
	requests   requestRepo
	categories categoryRepo
	documents  documentRepo
	files      fileStore
	tx         txManager
	events     recorder
	uploadCfg  config.UploadConfig
}

// NewService creates a new request service instance.
func NewService(
	logger *slog.Logger,
	requests requestRepo,
	categories categoryRepo,
	documents documentRepo,
	files fileStore,
	tx txManager,
	events recorder,
	uploadCfg config.UploadConfig,
) *Service {
	return &Service{
		log:        logger.With("service", "request"),
		requests:   requests,
		categories: categories,
		documents:  documents,
		files:      files,
		tx:         tx,
		events:     events,
		uploadCfg:  uploadCfg,
	}
}

// Categories returns the active service catalog.
func (s *Service) Categories(ctx context.Context) ([]domain.ServiceCategory, error) {
	return s.categories.ListActive(ctx)
}
