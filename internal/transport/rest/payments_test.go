package rest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gramseva/gramseva-backend/internal/domain"
	"github.com/gramseva/gramseva-backend/internal/service/payment"
	"github.com/gramseva/gramseva-backend/pkg/ctxutil"
)

type paymentServiceMock struct {
	InitiateFunc   func(ctx context.Context, citizenID uuid.UUID, input payment.InitiateInput) (*domain.Payment, error)
	VerifyFunc     func(ctx context.Context, citizenID, paymentID uuid.UUID, mockReference string) (*domain.Payment, error)
	GetReceiptFunc func(ctx context.Context, citizenID, paymentID uuid.UUID) (*payment.Receipt, error)
	HistoryFunc    func(ctx context.Context, citizenID uuid.UUID, limit, offset int) ([]domain.Payment, error)
}

func (m *paymentServiceMock) Initiate(ctx context.Context, citizenID uuid.UUID, input payment.InitiateInput) (*domain.Payment, error) {
	return m.InitiateFunc(ctx, citizenID, input)
}

func (m *paymentServiceMock) Verify(ctx context.Context, citizenID, paymentID uuid.UUID, mockReference string) (*domain.Payment, error) {
	return m.VerifyFunc(ctx, citizenID, paymentID, mockReference)
}

func (m *paymentServiceMock) GetReceipt(ctx context.Context, citizenID, paymentID uuid.UUID) (*payment.Receipt, error) {
	return m.GetReceiptFunc(ctx, citizenID, paymentID)
}

func (m *paymentServiceMock) History(ctx context.Context, citizenID uuid.UUID, limit, offset int) ([]domain.Payment, error) {
	return m.HistoryFunc(ctx, citizenID, limit, offset)
}

func TestPaymentHandler_Verify_PassesPaymentID(t *testing.T) {
	t.Parallel()

	citizenID := uuid.New()
	wantID := uuid.New()
	paidAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	svc := &paymentServiceMock{
		VerifyFunc: func(ctx context.Context, gotCitizen, gotPayment uuid.UUID, ref string) (*domain.Payment, error) {
			if gotCitizen != citizenID {
				t.Errorf("citizen id = %s, want %s", gotCitizen, citizenID)
			}
			if gotPayment != wantID {
				t.Errorf("payment id = %s, want %s", gotPayment, wantID)
			}
			if ref != "MOCK123456" {
				t.Errorf("mock reference = %q", ref)
			}
			return &domain.Payment{
				ID:        wantID,
				CitizenID: citizenID,
				Status:    domain.PaymentStatusSuccess,
				PaidAt:    &paidAt,
			}, nil
		},
	}
	h := NewPaymentHandler(svc, slog.New(slog.DiscardHandler))

	body := fmt.Sprintf(`{"payment_id":%q,"mock_reference":"MOCK123456"}`, wantID)
	req := httptest.NewRequest(http.MethodPost, "/api/payments/verify", strings.NewReader(body))
	req = req.WithContext(ctxutil.WithUserID(req.Context(), citizenID))
	rec := httptest.NewRecorder()

	h.Verify(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	resp := decodeBody(t, rec)
	if resp["success"] != true {
		t.Error("expected success=true")
	}
	if resp["receipt_number"] == "" || resp["receipt_number"] == nil {
		t.Errorf("expected receipt_number, got %v", resp["receipt_number"])
	}
}

func TestPaymentHandler_Verify_FailedPayment(t *testing.T) {
	t.Parallel()

	citizenID := uuid.New()
	svc := &paymentServiceMock{
		VerifyFunc: func(ctx context.Context, _, paymentID uuid.UUID, ref string) (*domain.Payment, error) {
			return &domain.Payment{
				ID:        paymentID,
				CitizenID: citizenID,
				Status:    domain.PaymentStatusFailed,
			}, nil
		},
	}
	h := NewPaymentHandler(svc, slog.New(slog.DiscardHandler))

	body := fmt.Sprintf(`{"payment_id":%q,"mock_reference":""}`, uuid.New())
	req := httptest.NewRequest(http.MethodPost, "/api/payments/verify", strings.NewReader(body))
	req = req.WithContext(ctxutil.WithUserID(req.Context(), citizenID))
	rec := httptest.NewRecorder()

	h.Verify(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	resp := decodeBody(t, rec)
	if resp["success"] != false {
		t.Error("expected success=false for a failed payment")
	}
}

func TestPaymentHandler_Receipt_InvalidID(t *testing.T) {
	t.Parallel()

	h := NewPaymentHandler(&paymentServiceMock{}, slog.New(slog.DiscardHandler))

	req := httptest.NewRequest(http.MethodGet, "/api/payments/receipt/not-a-uuid", nil)
	req = req.WithContext(ctxutil.WithUserID(req.Context(), uuid.New()))

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("paymentID", "not-a-uuid")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	rec := httptest.NewRecorder()

	h.Receipt(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
