package domain

import (
	"crypto/rand"
	"fmt"
	mrand "math/rand/v2"
	"strings"
	"time"
)

// Reference number generators. Uniqueness is enforced by database unique
// constraints; callers retry on collision.

const refAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewRequestNumber returns a service request number, REQ-<date>-<6 digits>.
func NewRequestNumber(now time.Time) string {
	return fmt.Sprintf("REQ-%s-%06d", now.Format("20060102"), mrand.IntN(1_000_000))
}

// NewGrievanceNumber returns a grievance number, GRV-<date>-<5 digits>.
func NewGrievanceNumber(now time.Time) string {
	return fmt.Sprintf("GRV-%s-%05d", now.Format("20060102"), mrand.IntN(100_000))
}

// NewTransactionID returns a payment transaction id,
// TXN-<timestamp>-<8 alphanumerics>.
func NewTransactionID(now time.Time) string {
	var b strings.Builder
	for range 8 {
		b.WriteByte(refAlphabet[mrand.IntN(len(refAlphabet))])
	}
	return fmt.Sprintf("TXN-%s-%s", now.Format("20060102150405"), b.String())
}

// NewCertificateNumber returns a certificate number, CERT-<year>-<8 digits>.
func NewCertificateNumber(now time.Time) string {
	return fmt.Sprintf("CERT-%d-%08d", now.Year(), mrand.IntN(100_000_000))
}

// NewMockReference returns an opaque gateway reference, MOCK<6 digits>.
func NewMockReference() string {
	return fmt.Sprintf("MOCK%06d", mrand.IntN(1_000_000))
}

// NewLoginCode returns a cryptographically random numeric code of the
// given length.
func NewLoginCode(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate login code: %w", err)
	}
	digits := make([]byte, length)
	for i, b := range buf {
		digits[i] = '0' + b%10
	}
	return string(digits), nil
}
