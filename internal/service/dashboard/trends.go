package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/gramseva/gramseva-backend/internal/domain"
)

// Overview summarizes recent portal activity.
type Overview struct {
	EventsByType     map[string]int64
	NewCitizens30d   int64
	RequestsByStatus map[domain.RequestStatus]int64
}

// GetOverview returns the analytics overview block.
func (s *Service) GetOverview(ctx context.Context) (*Overview, error) {
	events, err := s.analytics.CountByType(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard.GetOverview events: %w", err)
	}
	newCitizens, err := s.citizens.CountCreatedSince(ctx, time.Now().AddDate(0, 0, -30))
	if err != nil {
		return nil, fmt.Errorf("dashboard.GetOverview citizens: %w", err)
	}
	requests, err := s.requests.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard.GetOverview requests: %w", err)
	}

	return &Overview{
		EventsByType:     events,
		NewCitizens30d:   newCitizens,
		RequestsByStatus: requests,
	}, nil
}

// ServiceTrends reports how the catalog is being used.
type ServiceTrends struct {
	ByStatus   map[domain.RequestStatus]int64
	ByCategory map[string]int64
}

// GetServiceTrends returns request usage aggregates.
func (s *Service) GetServiceTrends(ctx context.Context) (*ServiceTrends, error) {
	byStatus, err := s.requests.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard.GetServiceTrends status: %w", err)
	}
	byCategory, err := s.requests.CategoryUsage(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard.GetServiceTrends categories: %w", err)
	}
	return &ServiceTrends{ByStatus: byStatus, ByCategory: byCategory}, nil
}

// GrievanceTrends reports the complaint landscape.
type GrievanceTrends struct {
	ByStatus   map[domain.GrievanceStatus]int64
	ByCategory map[string]int64
	ByPriority map[string]int64
}

// GetGrievanceTrends returns grievance aggregates.
func (s *Service) GetGrievanceTrends(ctx context.Context) (*GrievanceTrends, error) {
	byStatus, err := s.grievances.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard.GetGrievanceTrends status: %w", err)
	}
	byCategory, err := s.grievances.CountByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard.GetGrievanceTrends categories: %w", err)
	}
	byPriority, err := s.grievances.CountByPriority(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard.GetGrievanceTrends priorities: %w", err)
	}
	return &GrievanceTrends{ByStatus: byStatus, ByCategory: byCategory, ByPriority: byPriority}, nil
}
