package domain

import (
	"time"

	"github.com/google/uuid"
)

// ServiceCategory describes an offered service from the catalog.
type ServiceCategory struct {
	ID             int32
	NameEn         string
	NameHi         string
	NameMr         string
	Description    *string
	Icon           *string
	Fee            float64
	ProcessingDays int32
	RequiredDocs   *string
	IsActive       bool
}

// LocalizedName returns the category name for the given language code,
// falling back to English when the localized name is empty.
func (c *ServiceCategory) LocalizedName(lang string) string {
	switch lang {
	case "hi":
		if c.NameHi != "" {
			return c.NameHi
		}
	case "mr":
		if c.NameMr != "" {
			return c.NameMr
		}
	}
	return c.NameEn
}

// ServiceRequest represents a citizen's application for a service.
type ServiceRequest struct {
	ID            uuid.UUID
	CitizenID     uuid.UUID
	CategoryID    int32
	RequestNumber string
	Status        RequestStatus
	Priority      Priority
	Description   *string
	Remarks       *string
	AssignedTo    *uuid.UUID
	SubmittedAt   time.Time
	UpdatedAt     time.Time
	ResolvedAt    *time.Time
}

// Document is a file attached to a service request.
type Document struct {
	ID         uuid.UUID
	RequestID  uuid.UUID
	CitizenID  uuid.UUID
	FileName   string
	FilePath   string
	FileType   string
	FileSize   int64
	UploadedAt time.Time
}
