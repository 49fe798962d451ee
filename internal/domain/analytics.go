package domain

import (
	"time"

	"github.com/google/uuid"
)

// Analytics event types emitted by the services.
const (
	EventCitizenLogin       = "citizen_login"
	EventServiceApplied     = "service_applied"
	EventGrievanceSubmitted = "grievance_submitted"
	EventPaymentSuccess     = "payment_success"
	EventCertificateIssued  = "certificate_issued"
)

// AnalyticsEvent is one append-only usage event.
type AnalyticsEvent struct {
	ID        uuid.UUID
	EventType string
	CitizenID *uuid.UUID
	Payload   map[string]any
	CreatedAt time.Time
}

// ChatLog is one recorded chatbot exchange.
type ChatLog struct {
	ID          uuid.UUID
	CitizenID   *uuid.UUID
	SessionID   string
	UserMessage string
	BotResponse string
	Language    string
	CreatedAt   time.Time
}
