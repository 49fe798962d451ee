package domain

import (
	"time"

	"github.com/google/uuid"
)

// Citizen represents a portal user identified by mobile number.
type Citizen struct {
	ID                 uuid.UUID
	FullName           string
	Mobile             string
	Email              *string
	AadhaarNumber      *string
	Address            *string
	VillageWard        *string
	District           *string
	State              string
	LanguagePreference string
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Admin represents a back-office account authenticated by password.
type Admin struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	FullName     string
	Role         Role
	Department   *string
	IsActive     bool
	CreatedAt    time.Time
}

// LoginCode is a one-time code issued for mobile-based login.
type LoginCode struct {
	ID        uuid.UUID
	Mobile    string
	Code      string
	Purpose   CodePurpose
	IsUsed    bool
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsExpired returns true if the code has expired relative to now.
func (c *LoginCode) IsExpired(now time.Time) bool {
	return c.ExpiresAt.Before(now)
}
