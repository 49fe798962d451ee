package payment

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/gramseva/gramseva-backend/internal/config"
	"github.com/gramseva/gramseva-backend/internal/domain"
)

type paymentRepoMock struct {
	CreateFunc        func(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
	GetByIDFunc       func(ctx context.Context, id uuid.UUID) (*domain.Payment, error)
	MarkOutcomeFunc   func(ctx context.Context, id uuid.UUID, status domain.PaymentStatus, paidAt *time.Time) (*domain.Payment, error)
	ListByCitizenFunc func(ctx context.Context, citizenID uuid.UUID, limit, offset int) ([]domain.Payment, error)
}

func (m *paymentRepoMock) Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	return m.CreateFunc(ctx, p)
}

func (m *paymentRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *paymentRepoMock) MarkOutcome(ctx context.Context, id uuid.UUID, status domain.PaymentStatus, paidAt *time.Time) (*domain.Payment, error) {
	return m.MarkOutcomeFunc(ctx, id, status, paidAt)
}

func (m *paymentRepoMock) ListByCitizen(ctx context.Context, citizenID uuid.UUID, limit, offset int) ([]domain.Payment, error) {
	return m.ListByCitizenFunc(ctx, citizenID, limit, offset)
}

type requestRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.ServiceRequest, error)
}

func (m *requestRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.ServiceRequest, error) {
	return m.GetByIDFunc(ctx, id)
}

type recorderMock struct {
	events []string
}

func (m *recorderMock) Record(eventType string, citizenID *uuid.UUID, payload map[string]any) {
	m.events = append(m.events, eventType)
}

func newService(payments *paymentRepoMock, requests *requestRepoMock) (*Service, *recorderMock) {
	events := &recorderMock{}
	svc := NewService(
		slog.New(slog.DiscardHandler),
		payments, requests, events,
		config.PaymentConfig{Mock: true},
	)
	return svc, events
}

func TestService_Initiate(t *testing.T) {
	t.Parallel()

	citizenID := uuid.New()
	var stored *domain.Payment
	payments := &paymentRepoMock{
		CreateFunc: func(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
			out := *p
			out.ID = uuid.New()
			stored = &out
			return &out, nil
		},
	}
	svc, _ := newService(payments, nil)

	got, err := svc.Initiate(context.Background(), citizenID, InitiateInput{
		Amount:  50,
		Purpose: "Birth Certificate",
	})
	if err != nil {
		t.Fatalf("Initiate: %v", err)
	}
	if got.Status != domain.PaymentStatusPending {
		t.Errorf("status = %s, want pending", got.Status)
	}
	if !strings.HasPrefix(stored.TransactionID, "TXN-") {
		t.Errorf("transaction id = %q", stored.TransactionID)
	}
	if stored.MockReference == nil || !strings.HasPrefix(*stored.MockReference, "MOCK") {
		t.Errorf("mock reference = %v", stored.MockReference)
	}
}

func TestService_Initiate_Validation(t *testing.T) {
	t.Parallel()

	svc, _ := newService(&paymentRepoMock{}, nil)

	for _, input := range []InitiateInput{
		{Amount: 0, Purpose: "x"},
		{Amount: -5, Purpose: "x"},
		{Amount: 50, Purpose: ""},
	} {
		if _, err := svc.Initiate(context.Background(), uuid.New(), input); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("Initiate(%+v) error = %v, want ErrValidation", input, err)
		}
	}
}

func TestService_Initiate_ForeignRequest(t *testing.T) {
	t.Parallel()

	requests := &requestRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.ServiceRequest, error) {
			return &domain.ServiceRequest{ID: id, CitizenID: uuid.New()}, nil
		},
	}
	svc, _ := newService(&paymentRepoMock{}, requests)

	reqID := uuid.New()
	_, err := svc.Initiate(context.Background(), uuid.New(), InitiateInput{
		RequestID: &reqID,
		Amount:    50,
		Purpose:   "Birth Certificate",
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound for someone else's request", err)
	}
}

func TestService_Verify_Success(t *testing.T) {
	t.Parallel()

	citizenID := uuid.New()
	pending := &domain.Payment{
		ID:            uuid.New(),
		CitizenID:     citizenID,
		Amount:        50,
		Purpose:       "Birth Certificate",
		TransactionID: "TXN-20250314092653-ABCD1234",
		Status:        domain.PaymentStatusPending,
	}
	payments := &paymentRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
			p := *pending
			return &p, nil
		},
		MarkOutcomeFunc: func(ctx context.Context, id uuid.UUID, status domain.PaymentStatus, paidAt *time.Time) (*domain.Payment, error) {
			if status == domain.PaymentStatusSuccess && paidAt == nil {
				t.Error("success must stamp paid_at")
			}
			p := *pending
			p.Status = status
			p.PaidAt = paidAt
			return &p, nil
		},
	}
	svc, events := newService(payments, nil)

	settled, err := svc.Verify(context.Background(), citizenID, pending.ID, "MOCK123456")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if settled.Status != domain.PaymentStatusSuccess {
		t.Errorf("status = %s, want success", settled.Status)
	}
	if len(events.events) != 1 || events.events[0] != domain.EventPaymentSuccess {
		t.Errorf("events = %v", events.events)
	}
}

func TestService_Verify_EmptyReferenceFails(t *testing.T) {
	t.Parallel()

	citizenID := uuid.New()
	pending := &domain.Payment{
		ID:        uuid.New(),
		CitizenID: citizenID,
		Status:    domain.PaymentStatusPending,
	}
	payments := &paymentRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
			p := *pending
			return &p, nil
		},
		MarkOutcomeFunc: func(ctx context.Context, id uuid.UUID, status domain.PaymentStatus, paidAt *time.Time) (*domain.Payment, error) {
			if status != domain.PaymentStatusFailed {
				t.Errorf("status = %s, want failed", status)
			}
			if paidAt != nil {
				t.Error("failed payment must not get paid_at")
			}
			p := *pending
			p.Status = status
			return &p, nil
		},
	}
	svc, events := newService(payments, nil)

	settled, err := svc.Verify(context.Background(), citizenID, pending.ID, "")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if settled.Status != domain.PaymentStatusFailed {
		t.Errorf("status = %s, want failed", settled.Status)
	}
	if len(events.events) != 0 {
		t.Errorf("no events for a failed payment, got %v", events.events)
	}
}

func TestService_Verify_NotPending(t *testing.T) {
	t.Parallel()

	citizenID := uuid.New()
	payments := &paymentRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
			return &domain.Payment{
				ID:        id,
				CitizenID: citizenID,
				Status:    domain.PaymentStatusSuccess,
			}, nil
		},
	}
	svc, _ := newService(payments, nil)

	_, err := svc.Verify(context.Background(), citizenID, uuid.New(), "MOCK123456")
	if !errors.Is(err, domain.ErrAlreadyProcessed) {
		t.Fatalf("error = %v, want ErrAlreadyProcessed", err)
	}
}

func TestService_GetReceipt(t *testing.T) {
	t.Parallel()

	citizenID := uuid.New()
	paidAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	stored := &domain.Payment{
		ID:            uuid.MustParse("a1b2c3d4-0000-4000-8000-000000000000"),
		CitizenID:     citizenID,
		Status:        domain.PaymentStatusSuccess,
		TransactionID: "TXN-x",
		PaidAt:        &paidAt,
	}
	payments := &paymentRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
			p := *stored
			return &p, nil
		},
	}
	svc, _ := newService(payments, nil)

	receipt, err := svc.GetReceipt(context.Background(), citizenID, stored.ID)
	if err != nil {
		t.Fatalf("GetReceipt: %v", err)
	}
	if receipt.ReceiptNumber != "RCP-20250601-A1B2C3D4" {
		t.Errorf("receipt number = %q", receipt.ReceiptNumber)
	}

	// Another read derives the same number.
	again, err := svc.GetReceipt(context.Background(), citizenID, stored.ID)
	if err != nil {
		t.Fatalf("GetReceipt: %v", err)
	}
	if again.ReceiptNumber != receipt.ReceiptNumber {
		t.Error("receipt number must be stable across reads")
	}
}

func TestService_GetReceipt_NotSuccessful(t *testing.T) {
	t.Parallel()

	citizenID := uuid.New()
	payments := &paymentRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
			return &domain.Payment{ID: id, CitizenID: citizenID, Status: domain.PaymentStatusFailed}, nil
		},
	}
	svc, _ := newService(payments, nil)

	if _, err := svc.GetReceipt(context.Background(), citizenID, uuid.New()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}
