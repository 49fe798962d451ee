package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gramseva/gramseva-backend/internal/domain"
	"github.com/gramseva/gramseva-backend/internal/service/grievance"
	"github.com/gramseva/gramseva-backend/pkg/ctxutil"
)

// grievanceService defines the minimal interface needed by
// GrievanceHandler.
type grievanceService interface {
	Submit(ctx context.Context, citizenID uuid.UUID, input grievance.SubmitInput) (*domain.Grievance, error)
	MyGrievances(ctx context.Context, citizenID uuid.UUID, limit, offset int) ([]domain.Grievance, error)
	Status(ctx context.Context, citizenID, grievanceID uuid.UUID) (*grievance.StatusResult, error)
	Track(ctx context.Context, grievanceNumber string) (*grievance.TrackResult, error)
}

// GrievanceHandler serves citizen grievance endpoints.
type GrievanceHandler struct {
	svc grievanceService
	log *slog.Logger
}

// NewGrievanceHandler creates a GrievanceHandler.
func NewGrievanceHandler(svc grievanceService, logger *slog.Logger) *GrievanceHandler {
	return &GrievanceHandler{svc: svc, log: logger.With("handler", "grievances")}
}

type submitGrievanceRequest struct {
	Subject     string `json:"subject"`
	Description string `json:"description"`
}

// Submit files a new grievance. Category and priority are assigned by
// keyword triage.
// POST /api/grievances/submit
func (h *GrievanceHandler) Submit(w http.ResponseWriter, r *http.Request) {
	citizenID, _ := ctxutil.UserIDFromCtx(r.Context())

	var req submitGrievanceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	g, err := h.svc.Submit(r.Context(), citizenID, grievance.SubmitInput{
		Subject:     req.Subject,
		Description: req.Description,
	})
	if err != nil {
		writeDomainError(r.Context(), h.log, w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, map[string]any{
		"message":   "grievance submitted",
		"grievance": toGrievanceDTO(g),
	})
}

// MyGrievances lists the caller's grievances, newest first.
// GET /api/grievances/my-grievances
func (h *GrievanceHandler) MyGrievances(w http.ResponseWriter, r *http.Request) {
	citizenID, _ := ctxutil.UserIDFromCtx(r.Context())
	limit, offset := pagination(r)

	list, err := h.svc.MyGrievances(r.Context(), citizenID, limit, offset)
	if err != nil {
		writeDomainError(r.Context(), h.log, w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"grievances": toGrievanceDTOs(list)})
}

// Status returns the caller's own grievance with its update trail.
// GET /api/grievances/{grievanceID}/status
func (h *GrievanceHandler) Status(w http.ResponseWriter, r *http.Request) {
	citizenID, _ := ctxutil.UserIDFromCtx(r.Context())

	grievanceID, err := uuid.Parse(chi.URLParam(r, "grievanceID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid grievance id")
		return
	}

	result, err := h.svc.Status(r.Context(), citizenID, grievanceID)
	if err != nil {
		writeDomainError(r.Context(), h.log, w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"grievance": toGrievanceDTO(result.Grievance),
		"updates":   toGrievanceUpdateDTOs(result.Updates),
	})
}

// Track returns the public projection of a grievance by its number.
// GET /api/grievances/track/{grievanceNumber}
func (h *GrievanceHandler) Track(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.Track(r.Context(), chi.URLParam(r, "grievanceNumber"))
	if err != nil {
		writeDomainError(r.Context(), h.log, w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"grievance_number": result.GrievanceNumber,
		"status":           result.Status.String(),
		"category":         result.Category,
		"submitted_at":     result.SubmittedAt,
		"updated_at":       result.UpdatedAt,
	})
}
