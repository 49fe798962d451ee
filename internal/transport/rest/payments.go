package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gramseva/gramseva-backend/internal/domain"
	"github.com/gramseva/gramseva-backend/internal/service/payment"
	"github.com/gramseva/gramseva-backend/pkg/ctxutil"
)

// paymentService defines the minimal interface needed by PaymentHandler.
type paymentService interface {
	Initiate(ctx context.Context, citizenID uuid.UUID, input payment.InitiateInput) (*domain.Payment, error)
	Verify(ctx context.Context, citizenID, paymentID uuid.UUID, mockReference string) (*domain.Payment, error)
	GetReceipt(ctx context.Context, citizenID, paymentID uuid.UUID) (*payment.Receipt, error)
	History(ctx context.Context, citizenID uuid.UUID, limit, offset int) ([]domain.Payment, error)
}

// PaymentHandler serves fee payment endpoints.
type PaymentHandler struct {
	svc paymentService
	log *slog.Logger
}

// NewPaymentHandler creates a PaymentHandler.
func NewPaymentHandler(svc paymentService, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{svc: svc, log: logger.With("handler", "payments")}
}

type initiatePaymentRequest struct {
	Amount    float64    `json:"amount"`
	Purpose   string     `json:"purpose"`
	RequestID *uuid.UUID `json:"request_id"`
}

// Initiate creates a pending payment.
// POST /api/payments/initiate
func (h *PaymentHandler) Initiate(w http.ResponseWriter, r *http.Request) {
	citizenID, _ := ctxutil.UserIDFromCtx(r.Context())

	var req initiatePaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.svc.Initiate(r.Context(), citizenID, payment.InitiateInput{
		Amount:    req.Amount,
		Purpose:   req.Purpose,
		RequestID: req.RequestID,
	})
	if err != nil {
		writeDomainError(r.Context(), h.log, w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, map[string]any{
		"message": "payment initiated",
		"payment": toPaymentDTO(p),
	})
}

type verifyPaymentRequest struct {
	PaymentID     uuid.UUID `json:"payment_id"`
	MockReference string    `json:"mock_reference"`
}

// Verify settles a pending payment. An empty mock reference marks the
// payment failed.
// POST /api/payments/verify
func (h *PaymentHandler) Verify(w http.ResponseWriter, r *http.Request) {
	citizenID, _ := ctxutil.UserIDFromCtx(r.Context())

	var req verifyPaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.svc.Verify(r.Context(), citizenID, req.PaymentID, req.MockReference)
	if err != nil {
		writeDomainError(r.Context(), h.log, w, err)
		return
	}

	if p.Status != domain.PaymentStatusSuccess {
		writeError(w, http.StatusBadRequest, "payment failed")
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"message":        "payment successful",
		"payment":        toPaymentDTO(p),
		"receipt_number": p.ReceiptNumber(),
	})
}

// History lists the caller's payments, newest first.
// GET /api/payments/history
func (h *PaymentHandler) History(w http.ResponseWriter, r *http.Request) {
	citizenID, _ := ctxutil.UserIDFromCtx(r.Context())
	limit, offset := pagination(r)

	list, err := h.svc.History(r.Context(), citizenID, limit, offset)
	if err != nil {
		writeDomainError(r.Context(), h.log, w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"payments": toPaymentDTOs(list)})
}

// Receipt returns the receipt for a successful payment.
// GET /api/payments/receipt/{paymentID}
func (h *PaymentHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	citizenID, _ := ctxutil.UserIDFromCtx(r.Context())

	paymentID, err := uuid.Parse(chi.URLParam(r, "paymentID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid payment id")
		return
	}

	receipt, err := h.svc.GetReceipt(r.Context(), citizenID, paymentID)
	if err != nil {
		writeDomainError(r.Context(), h.log, w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"receipt_number": receipt.ReceiptNumber,
		"payment":        toPaymentDTO(receipt.Payment),
	})
}
