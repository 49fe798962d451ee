package domain

import (
	"time"

	"github.com/google/uuid"
)

// Grievance represents a citizen complaint.
type Grievance struct {
	ID              uuid.UUID
	CitizenID       uuid.UUID
	GrievanceNumber string
	Category        string
	Subject         string
	Description     string
	AICategory      string
	AIPriority      Priority
	Status          GrievanceStatus
	AssignedTo      *uuid.UUID
	EscalationLevel int32
	CreatedAt       time.Time
	UpdatedAt       time.Time
	ResolvedAt      *time.Time
}

// GrievanceUpdate is one immutable entry in a grievance's update trail.
type GrievanceUpdate struct {
	ID          uuid.UUID
	GrievanceID uuid.UUID
	UpdatedBy   uuid.UUID
	UpdateText  string
	Status      GrievanceStatus
	CreatedAt   time.Time
}
