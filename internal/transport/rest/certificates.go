package rest

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gramseva/gramseva-backend/internal/domain"
	"github.com/gramseva/gramseva-backend/internal/service/certificate"
	"github.com/gramseva/gramseva-backend/pkg/ctxutil"
)

// certificateService defines the minimal interface needed by
// CertificateHandler.
type certificateService interface {
	Issue(ctx context.Context, adminID uuid.UUID, requestID uuid.UUID) (*domain.Certificate, error)
	Verify(ctx context.Context, certificateNumber string) (*certificate.VerifyResult, error)
	Download(ctx context.Context, callerID uuid.UUID, callerRole string, certificateID uuid.UUID) (*certificate.DownloadResult, error)
	MyCertificates(ctx context.Context, citizenID uuid.UUID) ([]domain.Certificate, error)
}

// CertificateHandler serves certificate issuance, download and public
// verification endpoints.
type CertificateHandler struct {
	svc certificateService
	log *slog.Logger
}

// NewCertificateHandler creates a CertificateHandler.
func NewCertificateHandler(svc certificateService, logger *slog.Logger) *CertificateHandler {
	return &CertificateHandler{svc: svc, log: logger.With("handler", "certificates")}
}

// Issue issues a certificate for an approved request and completes the
// request. Admin only.
// POST /api/certificates/request/{requestID}
func (h *CertificateHandler) Issue(w http.ResponseWriter, r *http.Request) {
	adminID, _ := ctxutil.UserIDFromCtx(r.Context())

	requestID, err := uuid.Parse(chi.URLParam(r, "requestID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request id")
		return
	}

	cert, err := h.svc.Issue(r.Context(), adminID, requestID)
	if err != nil {
		writeDomainError(r.Context(), h.log, w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, map[string]any{
		"message":     "certificate issued",
		"certificate": toCertificateDTO(cert),
	})
}

// Download streams the certificate artifact to its owner or an admin.
// GET /api/certificates/download/{certificateID}
func (h *CertificateHandler) Download(w http.ResponseWriter, r *http.Request) {
	callerID, _ := ctxutil.UserIDFromCtx(r.Context())
	callerRole, _ := ctxutil.RoleFromCtx(r.Context())

	certificateID, err := uuid.Parse(chi.URLParam(r, "certificateID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid certificate id")
		return
	}

	result, err := h.svc.Download(r.Context(), callerID, callerRole, certificateID)
	if err != nil {
		writeDomainError(r.Context(), h.log, w, err)
		return
	}
	defer result.Body.Close()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition",
		`attachment; filename="`+result.Certificate.CertificateNumber+`.txt"`)
	if _, err := io.Copy(w, result.Body); err != nil {
		h.log.ErrorContext(r.Context(), "stream certificate",
			slog.String("error", err.Error()))
	}
}

// Verify checks a certificate by its public number. No authentication
// required; this backs the QR code on the printed artifact.
// GET /api/certificates/verify/{certificateNumber}
func (h *CertificateHandler) Verify(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.Verify(r.Context(), chi.URLParam(r, "certificateNumber"))
	if err != nil {
		writeDomainError(r.Context(), h.log, w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"certificate_number": result.CertificateNumber,
		"certificate_type":   result.CertificateType,
		"holder_name":        result.HolderName,
		"issued_at":          result.IssuedAt,
		"valid_until":        result.ValidUntil,
		"valid":              result.Valid,
	})
}

// MyCertificates lists the caller's certificates.
// GET /api/certificates/my-certificates
func (h *CertificateHandler) MyCertificates(w http.ResponseWriter, r *http.Request) {
	citizenID, _ := ctxutil.UserIDFromCtx(r.Context())

	list, err := h.svc.MyCertificates(r.Context(), citizenID)
	if err != nil {
		writeDomainError(r.Context(), h.log, w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"certificates": toCertificateDTOs(list)})
}
