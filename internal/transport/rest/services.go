package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gramseva/gramseva-backend/internal/domain"
	"github.com/gramseva/gramseva-backend/internal/service/request"
	"github.com/gramseva/gramseva-backend/pkg/ctxutil"
)

// requestService defines the minimal interface needed by ServiceHandler.
type requestService interface {
	Categories(ctx context.Context) ([]domain.ServiceCategory, error)
	Apply(ctx context.Context, citizenID uuid.UUID, input request.ApplyInput) (*domain.ServiceRequest, error)
	UploadDocument(ctx context.Context, citizenID uuid.UUID, input request.UploadDocumentInput) (*domain.Document, error)
	MyRequests(ctx context.Context, citizenID uuid.UUID, status string, limit, offset int) ([]domain.ServiceRequest, error)
	Status(ctx context.Context, citizenID, requestID uuid.UUID) (*request.StatusResult, error)
	Track(ctx context.Context, requestNumber string) (*request.TrackResult, error)
}

// ServiceHandler serves the service catalog and request lifecycle
// endpoints.
type ServiceHandler struct {
	svc           requestService
	maxUploadSize int64
	log           *slog.Logger
}

// NewServiceHandler creates a ServiceHandler. maxUploadSize caps the
// multipart body in bytes.
func NewServiceHandler(svc requestService, maxUploadSize int64, logger *slog.Logger) *ServiceHandler {
	return &ServiceHandler{
		svc:           svc,
		maxUploadSize: maxUploadSize,
		log:           logger.With("handler", "services"),
	}
}

// Categories returns the active service catalog localized to ?lang.
// GET /api/services/categories?lang=en|hi|mr
func (h *ServiceHandler) Categories(w http.ResponseWriter, r *http.Request) {
	lang := r.URL.Query().Get("lang")

	categories, err := h.svc.Categories(r.Context())
	if err != nil {
		writeDomainError(r.Context(), h.log, w, err)
		return
	}

	out := make([]categoryDTO, 0, len(categories))
	for i := range categories {
		out = append(out, toCategoryDTO(&categories[i], lang))
	}
	writeSuccess(w, http.StatusOK, map[string]any{"categories": out})
}

type applyRequest struct {
	CategoryID  int32  `json:"category_id"`
	Description string `json:"description"`
}

// Apply creates a new service request for the caller.
// POST /api/services/apply
func (h *ServiceHandler) Apply(w http.ResponseWriter, r *http.Request) {
	citizenID, _ := ctxutil.UserIDFromCtx(r.Context())

	var req applyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sr, err := h.svc.Apply(r.Context(), citizenID, request.ApplyInput{
		CategoryID:  req.CategoryID,
		Description: req.Description,
	})
	if err != nil {
		writeDomainError(r.Context(), h.log, w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, map[string]any{
		"message": "application submitted",
		"request": toRequestDTO(sr),
	})
}

// Upload attaches a supporting document to the caller's request.
// POST /api/services/{requestID}/upload (multipart, field "file")
func (h *ServiceHandler) Upload(w http.ResponseWriter, r *http.Request) {
	citizenID, _ := ctxutil.UserIDFromCtx(r.Context())

	requestID, err := uuid.Parse(chi.URLParam(r, "requestID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request id")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	doc, err := h.svc.UploadDocument(r.Context(), citizenID, request.UploadDocumentInput{
		RequestID: requestID,
		FileName:  header.Filename,
		Size:      header.Size,
		Body:      file,
	})
	if err != nil {
		writeDomainError(r.Context(), h.log, w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, map[string]any{
		"message":  "document uploaded",
		"document": toDocumentDTO(doc),
	})
}

// MyRequests lists the caller's requests, optionally filtered by
// ?status, paginated by ?limit and ?offset.
// GET /api/services/my-requests
func (h *ServiceHandler) MyRequests(w http.ResponseWriter, r *http.Request) {
	citizenID, _ := ctxutil.UserIDFromCtx(r.Context())
	limit, offset := pagination(r)

	list, err := h.svc.MyRequests(r.Context(), citizenID, r.URL.Query().Get("status"), limit, offset)
	if err != nil {
		writeDomainError(r.Context(), h.log, w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"requests": toRequestDTOs(list)})
}

// Status returns the caller's own request with attached documents.
// GET /api/services/{requestID}/status
func (h *ServiceHandler) Status(w http.ResponseWriter, r *http.Request) {
	citizenID, _ := ctxutil.UserIDFromCtx(r.Context())

	requestID, err := uuid.Parse(chi.URLParam(r, "requestID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request id")
		return
	}

	result, err := h.svc.Status(r.Context(), citizenID, requestID)
	if err != nil {
		writeDomainError(r.Context(), h.log, w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"request":   toRequestDTO(result.Request),
		"documents": toDocumentDTOs(result.Documents),
	})
}

// Track returns the public projection of a request by its number. No
// authentication required.
// GET /api/services/track/{requestNumber}
func (h *ServiceHandler) Track(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.Track(r.Context(), chi.URLParam(r, "requestNumber"))
	if err != nil {
		writeDomainError(r.Context(), h.log, w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"request_number": result.RequestNumber,
		"status":         result.Status.String(),
		"category":       result.CategoryName,
		"submitted_at":   result.SubmittedAt,
		"updated_at":     result.UpdatedAt,
	})
}

// pagination reads ?limit and ?offset with sane defaults.
func pagination(r *http.Request) (limit, offset int) {
	limit = 50
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v <= 200 {
		limit = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}
