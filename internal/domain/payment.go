package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Payment represents a fee payment, optionally tied to a service request.
type Payment struct {
	ID            uuid.UUID
	CitizenID     uuid.UUID
	RequestID     *uuid.UUID
	Amount        float64
	Purpose       string
	TransactionID string
	Status        PaymentStatus
	PaymentMethod string
	MockReference *string
	PaidAt        *time.Time
	CreatedAt     time.Time
}

// ReceiptNumber derives the receipt identifier for a successful payment.
// It is a pure function of the payment and is never stored.
func (p *Payment) ReceiptNumber() string {
	paidAt := p.CreatedAt
	if p.PaidAt != nil {
		paidAt = *p.PaidAt
	}
	id := strings.ReplaceAll(p.ID.String(), "-", "")
	return fmt.Sprintf("RCP-%s-%s", paidAt.Format("20060102"), strings.ToUpper(id[:8]))
}

// RevenueLine is a per-purpose aggregate of successful payments.
type RevenueLine struct {
	Purpose string
	Count   int64
	Total   float64
}
