// Package dashboard aggregates portal activity for the back office.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	pggrievance "github.com/gramseva/gramseva-backend/internal/adapter/postgres/grievance"
	pgrequest "github.com/gramseva/gramseva-backend/internal/adapter/postgres/request"
	"github.com/gramseva/gramseva-backend/internal/domain"
)

// requestStats defines the request aggregates needed by the dashboard.
type requestStats interface {
	ListAll(ctx context.Context, status string, limit, offset int) ([]pgrequest.AdminRow, error)
	CountByStatus(ctx context.Context) (map[domain.RequestStatus]int64, error)
	CategoryUsage(ctx context.Context) (map[string]int64, error)
}

// grievanceStats defines the grievance aggregates needed by the dashboard.
type grievanceStats interface {
	ListAll(ctx context.Context, status, category string, limit, offset int) ([]pggrievance.AdminRow, error)
	CountByStatus(ctx context.Context) (map[domain.GrievanceStatus]int64, error)
	CountByCategory(ctx context.Context) (map[string]int64, error)
	CountByPriority(ctx context.Context) (map[string]int64, error)
}

// citizenStats defines the citizen lookups needed by the dashboard.
type citizenStats interface {
	List(ctx context.Context, search string, limit, offset int) ([]domain.Citizen, error)
	Count(ctx context.Context, search string) (int64, error)
	CountCreatedSince(ctx context.Context, t time.Time) (int64, error)
}

// revenueStats defines the payment aggregates needed by the dashboard.
type revenueStats interface {
	RevenueByPurpose(ctx context.Context) ([]domain.RevenueLine, error)
	TotalRevenue(ctx context.Context) (float64, error)
}

// eventStats defines the analytics aggregates needed by the dashboard.
type eventStats interface {
	CountByType(ctx context.Context) (map[string]int64, error)
}

// Service implements dashboard operations.
type Service struct {
	log        *slog.Logger
	requests   requestStats
	grievances grievanceStats
	citizens   citizenStats
	revenue    revenueStats
	analytics  eventStats
}

// NewService creates a new dashboard service instance.
func NewService(
	logger *slog.Logger,
	requests requestStats,
	grievances grievanceStats,
	citizens citizenStats,
	revenue revenueStats,
	analytics eventStats,
) *Service {
	return &Service{
		log:        logger.With("service", "dashboard"),
		requests:   requests,
		grievances: grievances,
		citizens:   citizens,
		revenue:    revenue,
		analytics:  analytics,
	}
}

// Stats is the headline dashboard block.
type Stats struct {
	RequestsByStatus   map[domain.RequestStatus]int64
	GrievancesByStatus map[domain.GrievanceStatus]int64
	TotalCitizens      int64
	TotalRevenue       float64
}

// GetStats returns the headline counters.
func (s *Service) GetStats(ctx context.Context) (*Stats, error) {
	requests, err := s.requests.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard.GetStats requests: %w", err)
	}
	grievances, err := s.grievances.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard.GetStats grievances: %w", err)
	}
	citizens, err := s.citizens.Count(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("dashboard.GetStats citizens: %w", err)
	}
	revenue, err := s.revenue.TotalRevenue(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard.GetStats revenue: %w", err)
	}

	return &Stats{
		RequestsByStatus:   requests,
		GrievancesByStatus: grievances,
		TotalCitizens:      citizens,
		TotalRevenue:       revenue,
	}, nil
}

// ListRequests returns all requests with applicant details, optionally
// filtered by status.
func (s *Service) ListRequests(ctx context.Context, status string, limit, offset int) ([]pgrequest.AdminRow, error) {
	if status != "" && !domain.RequestStatus(status).IsValid() {
		return nil, &domain.ValidationError{Errors: []domain.FieldError{
			{Field: "status", Message: "unknown status"},
		}}
	}
	rows, err := s.requests.ListAll(ctx, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("dashboard.ListRequests: %w", err)
	}
	return rows, nil
}

// ListGrievances returns all grievances with complainant details.
func (s *Service) ListGrievances(ctx context.Context, status, category string, limit, offset int) ([]pggrievance.AdminRow, error) {
	if status != "" && !domain.GrievanceStatus(status).IsValid() {
		return nil, &domain.ValidationError{Errors: []domain.FieldError{
			{Field: "status", Message: "unknown status"},
		}}
	}
	rows, err := s.grievances.ListAll(ctx, status, category, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("dashboard.ListGrievances: %w", err)
	}
	return rows, nil
}

// ListCitizens returns registered citizens with an optional name or
// mobile substring search.
func (s *Service) ListCitizens(ctx context.Context, search string, limit, offset int) ([]domain.Citizen, int64, error) {
	list, err := s.citizens.List(ctx, search, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("dashboard.ListCitizens: %w", err)
	}
	total, err := s.citizens.Count(ctx, search)
	if err != nil {
		return nil, 0, fmt.Errorf("dashboard.ListCitizens count: %w", err)
	}
	return list, total, nil
}
