package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestPayment_ReceiptNumber(t *testing.T) {
	t.Parallel()

	paidAt := time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC)
	p := &Payment{
		ID:        uuid.MustParse("a1b2c3d4-0000-4000-8000-000000000000"),
		CreatedAt: paidAt.Add(-time.Hour),
		PaidAt:    &paidAt,
	}

	got := p.ReceiptNumber()
	if got != "RCP-20250601-A1B2C3D4" {
		t.Fatalf("ReceiptNumber() = %q, want RCP-20250601-A1B2C3D4", got)
	}

	// Derivation is stable across reads.
	if again := p.ReceiptNumber(); again != got {
		t.Fatalf("ReceiptNumber() not deterministic: %q then %q", got, again)
	}
}

func TestPayment_ReceiptNumber_FallsBackToCreatedAt(t *testing.T) {
	t.Parallel()

	p := &Payment{
		ID:        uuid.New(),
		CreatedAt: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
	}
	if got := p.ReceiptNumber(); !strings.HasPrefix(got, "RCP-20250102-") {
		t.Fatalf("ReceiptNumber() = %q, want RCP-20250102- prefix", got)
	}
}
