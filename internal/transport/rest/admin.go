package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	pggrievance "github.com/gramseva/gramseva-backend/internal/adapter/postgres/grievance"
	pgrequest "github.com/gramseva/gramseva-backend/internal/adapter/postgres/request"
	"github.com/gramseva/gramseva-backend/internal/domain"
	"github.com/gramseva/gramseva-backend/internal/service/dashboard"
	"github.com/gramseva/gramseva-backend/internal/service/grievance"
	"github.com/gramseva/gramseva-backend/internal/service/request"
	"github.com/gramseva/gramseva-backend/pkg/ctxutil"
)

// dashboardService defines the read side of the admin surface.
type dashboardService interface {
	GetStats(ctx context.Context) (*dashboard.Stats, error)
	ListRequests(ctx context.Context, status string, limit, offset int) ([]pgrequest.AdminRow, error)
	ListGrievances(ctx context.Context, status, category string, limit, offset int) ([]pggrievance.AdminRow, error)
	ListCitizens(ctx context.Context, search string, limit, offset int) ([]domain.Citizen, int64, error)
	Revenue(ctx context.Context) (*dashboard.RevenueReport, error)
	RevenueXLSX(ctx context.Context) ([]byte, error)
}

// requestUpdateService is the admin mutation on service requests.
type requestUpdateService interface {
	UpdateStatus(ctx context.Context, adminID uuid.UUID, input request.UpdateStatusInput) (*domain.ServiceRequest, error)
}

// grievanceUpdateService is the admin mutation on grievances.
type grievanceUpdateService interface {
	AdminUpdate(ctx context.Context, adminID uuid.UUID, input grievance.AdminUpdateInput) (*domain.Grievance, error)
}

// AdminHandler serves back-office endpoints. All routes behind it are
// guarded by the admin middleware.
type AdminHandler struct {
	dash       dashboardService
	requests   requestUpdateService
	grievances grievanceUpdateService
	log        *slog.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(dash dashboardService, requests requestUpdateService, grievances grievanceUpdateService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		dash:       dash,
		requests:   requests,
		grievances: grievances,
		log:        logger.With("handler", "admin"),
	}
}

// Dashboard returns the headline counters.
// GET /api/admin/dashboard
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dash.GetStats(r.Context())
	if err != nil {
		writeDomainError(r.Context(), h.log, w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"requests_by_status":   stats.RequestsByStatus,
		"grievances_by_status": stats.GrievancesByStatus,
		"total_citizens":       stats.TotalCitizens,
		"total_revenue":        stats.TotalRevenue,
	})
}

// Requests lists all service requests with applicant details.
// GET /api/admin/requests?status=&limit=&offset=
func (h *AdminHandler) Requests(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)

	rows, err := h.dash.ListRequests(r.Context(), r.URL.Query().Get("status"), limit, offset)
	if err != nil {
		writeDomainError(r.Context(), h.log, w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"requests": toAdminRequestDTOs(rows)})
}

type updateRequestStatusRequest struct {
	Status  string `json:"status"`
	Remarks string `json:"remarks"`
}

// UpdateRequest moves a service request through its state machine.
// PUT /api/admin/requests/{requestID}/update
func (h *AdminHandler) UpdateRequest(w http.ResponseWriter, r *http.Request) {
	adminID, _ := ctxutil.UserIDFromCtx(r.Context())

	requestID, err := uuid.Parse(chi.URLParam(r, "requestID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request id")
		return
	}

	var req updateRequestStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sr, err := h.requests.UpdateStatus(r.Context(), adminID, request.UpdateStatusInput{
		RequestID: requestID,
		Status:    req.Status,
		Remarks:   req.Remarks,
	})
	if err != nil {
		writeDomainError(r.Context(), h.log, w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"message": "status updated",
		"request": toRequestDTO(sr),
	})
}

// Grievances lists all grievances with complainant details.
// GET /api/admin/grievances?status=&category=&limit=&offset=
func (h *AdminHandler) Grievances(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	q := r.URL.Query()

	rows, err := h.dash.ListGrievances(r.Context(), q.Get("status"), q.Get("category"), limit, offset)
	if err != nil {
		writeDomainError(r.Context(), h.log, w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"grievances": toAdminGrievanceDTOs(rows)})
}

type updateGrievanceRequest struct {
	Status     string `json:"status"`
	UpdateText string `json:"update_text"`
	Escalate   bool   `json:"escalate"`
}

// UpdateGrievance applies an administrative change to a grievance.
// PUT /api/admin/grievances/{grievanceID}/update
func (h *AdminHandler) UpdateGrievance(w http.ResponseWriter, r *http.Request) {
	adminID, _ := ctxutil.UserIDFromCtx(r.Context())

	grievanceID, err := uuid.Parse(chi.URLParam(r, "grievanceID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid grievance id")
		return
	}

	var req updateGrievanceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	g, err := h.grievances.AdminUpdate(r.Context(), adminID, grievance.AdminUpdateInput{
		GrievanceID: grievanceID,
		Status:      req.Status,
		UpdateText:  req.UpdateText,
		Escalate:    req.Escalate,
	})
	if err != nil {
		writeDomainError(r.Context(), h.log, w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"message":   "grievance updated",
		"grievance": toGrievanceDTO(g),
	})
}

// Users lists registered citizens with an optional ?search filter.
// GET /api/admin/users
func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)

	citizens, total, err := h.dash.ListCitizens(r.Context(), r.URL.Query().Get("search"), limit, offset)
	if err != nil {
		writeDomainError(r.Context(), h.log, w, err)
		return
	}

	out := make([]citizenDTO, 0, len(citizens))
	for i := range citizens {
		out = append(out, toCitizenDTO(&citizens[i]))
	}
	writeSuccess(w, http.StatusOK, map[string]any{"users": out, "total": total})
}

// Revenue returns the successful-payment breakdown by purpose.
// GET /api/admin/revenue
func (h *AdminHandler) Revenue(w http.ResponseWriter, r *http.Request) {
	report, err := h.dash.Revenue(r.Context())
	if err != nil {
		writeDomainError(r.Context(), h.log, w, err)
		return
	}

	lines := make([]map[string]any, 0, len(report.Lines))
	for _, l := range report.Lines {
		lines = append(lines, map[string]any{
			"purpose": l.Purpose,
			"count":   l.Count,
			"total":   l.Total,
		})
	}
	writeSuccess(w, http.StatusOK, map[string]any{
		"lines": lines,
		"total": report.Total,
	})
}

// RevenueExport downloads the revenue report as a spreadsheet.
// GET /api/admin/revenue/export
func (h *AdminHandler) RevenueExport(w http.ResponseWriter, r *http.Request) {
	data, err := h.dash.RevenueXLSX(r.Context())
	if err != nil {
		writeDomainError(r.Context(), h.log, w, err)
		return
	}

	filename := "revenue-" + time.Now().Format("20060102") + ".xlsx"
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Write(data) //nolint:errcheck
}
