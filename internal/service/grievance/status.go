package grievance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gramseva/gramseva-backend/internal/domain"
)

// StatusResult is a grievance with its update trail, newest first.
type StatusResult struct {
	Grievance *domain.Grievance
	Updates   []domain.GrievanceUpdate
}

// TrackResult is the public projection of a grievance.
type TrackResult struct {
	GrievanceNumber string
	Status          domain.GrievanceStatus
	Category        string
	SubmittedAt     time.Time
	UpdatedAt       time.Time
}

// MyGrievances returns the caller's grievances, newest first.
func (s *Service) MyGrievances(ctx context.Context, citizenID uuid.UUID, limit, offset int) ([]domain.Grievance, error) {
	list, err := s.grievances.ListByCitizen(ctx, citizenID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("grievance.MyGrievances: %w", err)
	}
	return list, nil
}

// Status returns the caller's own grievance with its update trail.
func (s *Service) Status(ctx context.Context, citizenID, grievanceID uuid.UUID) (*StatusResult, error) {
	g, err := s.grievances.GetByID(ctx, grievanceID)
	if err != nil {
		return nil, fmt.Errorf("grievance.Status: %w", err)
	}
	if g.CitizenID != citizenID {
		return nil, domain.ErrForbidden
	}

	updates, err := s.grievances.ListUpdates(ctx, g.ID)
	if err != nil {
		return nil, fmt.Errorf("grievance.Status list updates: %w", err)
	}
	return &StatusResult{Grievance: g, Updates: updates}, nil
}

// Track looks a grievance up by its public number.
func (s *Service) Track(ctx context.Context, grievanceNumber string) (*TrackResult, error) {
	g, err := s.grievances.GetByNumber(ctx, grievanceNumber)
	if err != nil {
		return nil, fmt.Errorf("grievance.Track: %w", err)
	}
	return &TrackResult{
		GrievanceNumber: g.GrievanceNumber,
		Status:          g.Status,
		Category:        g.Category,
		SubmittedAt:     g.CreatedAt,
		UpdatedAt:       g.UpdatedAt,
	}, nil
}
