package request

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gramseva/gramseva-backend/internal/domain"
)

// StatusResult is a request with its attached documents.
type StatusResult struct {
	Request   *domain.ServiceRequest
	Documents []domain.Document
}

// TrackResult is the public projection of a request, safe to show
// without authentication.
type TrackResult struct {
	RequestNumber string
	Status        domain.RequestStatus
	CategoryName  string
	SubmittedAt   time.Time
	UpdatedAt     time.Time
}

// MyRequests returns the caller's requests, optionally filtered by
// status.
func (s *Service) MyRequests(ctx context.Context, citizenID uuid.UUID, status string, limit, offset int) ([]domain.ServiceRequest, error) {
	if status != "" && !domain.RequestStatus(status).IsValid() {
		return nil, &domain.ValidationError{Errors: []domain.FieldError{
			{Field: "status", Message: "unknown status"},
		}}
	}
	list, err := s.requests.ListByCitizen(ctx, citizenID, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("request.MyRequests: %w", err)
	}
	return list, nil
}

// Status returns the caller's own request with its documents.
func (s *Service) Status(ctx context.Context, citizenID, requestID uuid.UUID) (*StatusResult, error) {
	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("request.Status: %w", err)
	}
	if req.CitizenID != citizenID {
		return nil, domain.ErrForbidden
	}

	docs, err := s.documents.ListByRequest(ctx, req.ID)
	if err != nil {
		return nil, fmt.Errorf("request.Status list documents: %w", err)
	}
	return &StatusResult{Request: req, Documents: docs}, nil
}

// Track looks a request up by its public number. Only fields a kiosk
// display may show are returned.
func (s *Service) Track(ctx context.Context, requestNumber string) (*TrackResult, error) {
	req, err := s.requests.GetByNumber(ctx, requestNumber)
	if err != nil {
		return nil, fmt.Errorf("request.Track: %w", err)
	}

	category, err := s.categories.GetByID(ctx, req.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("request.Track get category: %w", err)
	}

	return &TrackResult{
		RequestNumber: req.RequestNumber,
		Status:        req.Status,
		CategoryName:  category.NameEn,
		SubmittedAt:   req.SubmittedAt,
		UpdatedAt:     req.UpdatedAt,
	}, nil
}
