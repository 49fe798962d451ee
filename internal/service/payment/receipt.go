package payment

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/gramseva/gramseva-backend/internal/domain"
)

// Receipt is the printable record of a successful payment.
type Receipt struct {
	ReceiptNumber string
	Payment       *domain.Payment
}

// GetReceipt returns the receipt for the caller's successful payment.
// The receipt number is derived, not stored, so it is identical on
// every read.
func (s *Service) GetReceipt(ctx context.Context, citizenID, paymentID uuid.UUID) (*Receipt, error) {
	p, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("payment.GetReceipt: %w", err)
	}
	if p.CitizenID != citizenID {
		return nil, domain.ErrNotFound
	}
	if p.Status != domain.PaymentStatusSuccess {
		return nil, domain.ErrNotFound
	}

	return &Receipt{ReceiptNumber: p.ReceiptNumber(), Payment: p}, nil
}

// History returns the caller's payments, newest first.
func (s *Service) History(ctx context.Context, citizenID uuid.UUID, limit, offset int) ([]domain.Payment, error) {
	list, err := s.payments.ListByCitizen(ctx, citizenID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("payment.History: %w", err)
	}
	return list, nil
}
