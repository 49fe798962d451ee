package domain

import (
	"time"

	"github.com/google/uuid"
)

// Certificate is an issued document tied to a completed service request.
type Certificate struct {
	ID                uuid.UUID
	RequestID         uuid.UUID
	CitizenID         uuid.UUID
	CertificateType   string
	CertificateNumber string
	QRPayload         string
	FilePath          *string
	IssuedBy          uuid.UUID
	ValidUntil        *time.Time
	IssuedAt          time.Time
}

// IsValidOn reports whether the certificate is valid on the given date.
// A certificate without an expiry date never expires.
func (c *Certificate) IsValidOn(date time.Time) bool {
	if c.ValidUntil == nil {
		return true
	}
	y, m, d := date.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	vy, vm, vd := c.ValidUntil.Date()
	until := time.Date(vy, vm, vd, 0, 0, 0, 0, time.UTC)
	return !until.Before(day)
}
