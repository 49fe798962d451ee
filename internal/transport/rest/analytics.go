package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gramseva/gramseva-backend/internal/service/dashboard"
)

// analyticsService defines the minimal interface needed by
// AnalyticsHandler.
type analyticsService interface {
	GetOverview(ctx context.Context) (*dashboard.Overview, error)
	GetServiceTrends(ctx context.Context) (*dashboard.ServiceTrends, error)
	GetGrievanceTrends(ctx context.Context) (*dashboard.GrievanceTrends, error)
}

// AnalyticsHandler serves aggregate usage endpoints for the admin
// frontend.
type AnalyticsHandler struct {
	svc analyticsService
	log *slog.Logger
}

// NewAnalyticsHandler creates an AnalyticsHandler.
func NewAnalyticsHandler(svc analyticsService, logger *slog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc, log: logger.With("handler", "analytics")}
}

// Overview returns recent portal activity.
// GET /api/analytics/overview
func (h *AnalyticsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	o, err := h.svc.GetOverview(r.Context())
	if err != nil {
		writeDomainError(r.Context(), h.log, w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"events_by_type":     o.EventsByType,
		"new_citizens_30d":   o.NewCitizens30d,
		"requests_by_status": o.RequestsByStatus,
	})
}

// ServiceTrends returns request usage aggregates.
// GET /api/analytics/service-trends
func (h *AnalyticsHandler) ServiceTrends(w http.ResponseWriter, r *http.Request) {
	t, err := h.svc.GetServiceTrends(r.Context())
	if err != nil {
		writeDomainError(r.Context(), h.log, w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"by_status":   t.ByStatus,
		"by_category": t.ByCategory,
	})
}

// GrievanceTrends returns grievance aggregates.
// GET /api/analytics/grievance-trends
func (h *AnalyticsHandler) GrievanceTrends(w http.ResponseWriter, r *http.Request) {
	t, err := h.svc.GetGrievanceTrends(r.Context())
	if err != nil {
		writeDomainError(r.Context(), h.log, w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"by_status":   t.ByStatus,
		"by_category": t.ByCategory,
		"by_priority": t.ByPriority,
	})
}
