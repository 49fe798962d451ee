package rest

import (
	"time"

	"github.com/google/uuid"
	"github.com/gramseva/gramseva-backend/internal/adapter/postgres/grievance"
	"github.com/gramseva/gramseva-backend/internal/adapter/postgres/request"
	"github.com/gramseva/gramseva-backend/internal/domain"
)

// JSON projections of domain entities. Contact fields the caller must
// not see are simply absent from the relevant DTO.

type citizenDTO struct {
	ID                 uuid.UUID `json:"id"`
	FullName           string    `json:"full_name"`
	Mobile             string    `json:"mobile"`
	Email              *string   `json:"email,omitempty"`
	AadhaarNumber      *string   `json:"aadhaar_number,omitempty"`
	Address            *string   `json:"address,omitempty"`
	VillageWard        *string   `json:"village_ward,omitempty"`
	District           *string   `json:"district,omitempty"`
	State              string    `json:"state"`
	LanguagePreference string    `json:"language_preference"`
	CreatedAt          time.Time `json:"created_at"`
}

func toCitizenDTO(c *domain.Citizen) citizenDTO {
	return citizenDTO{
		ID:                 c.ID,
		FullName:           c.FullName,
		Mobile:             c.Mobile,
		Email:              c.Email,
		AadhaarNumber:      c.AadhaarNumber,
		Address:            c.Address,
		VillageWard:        c.VillageWard,
		District:           c.District,
		State:              c.State,
		LanguagePreference: c.LanguagePreference,
		CreatedAt:          c.CreatedAt,
	}
}

type adminDTO struct {
	ID         uuid.UUID `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FullName   string    `json:"full_name"`
	Role       string    `json:"role"`
	Department *string   `json:"department,omitempty"`
}

func toAdminDTO(a *domain.Admin) adminDTO {
	return adminDTO{
		ID:         a.ID,
		Username:   a.Username,
		Email:      a.Email,
		FullName:   a.FullName,
		Role:       a.Role.String(),
		Department: a.Department,
	}
}

type categoryDTO struct {
	ID             int32   `json:"id"`
	Name           string  `json:"name"`
	Description    *string `json:"description,omitempty"`
	Icon           *string `json:"icon,omitempty"`
	Fee            float64 `json:"fee"`
	ProcessingDays int32   `json:"processing_days"`
	RequiredDocs   *string `json:"required_docs,omitempty"`
}

func toCategoryDTO(c *domain.ServiceCategory, lang string) categoryDTO {
	return categoryDTO{
		ID:             c.ID,
		Name:           c.LocalizedName(lang),
		Description:    c.Description,
		Icon:           c.Icon,
		Fee:            c.Fee,
		ProcessingDays: c.ProcessingDays,
		RequiredDocs:   c.RequiredDocs,
	}
}

type requestDTO struct {
	ID            uuid.UUID  `json:"id"`
	RequestNumber string     `json:"request_number"`
	CategoryID    int32      `json:"category_id"`
	Status        string     `json:"status"`
	Priority      string     `json:"priority"`
	Description   *string    `json:"description,omitempty"`
	Remarks       *string    `json:"remarks,omitempty"`
	SubmittedAt   time.Time  `json:"submitted_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	ResolvedAt    *time.Time `json:"resolved_at,omitempty"`
}

func toRequestDTO(sr *domain.ServiceRequest) requestDTO {
	return requestDTO{
		ID:            sr.ID,
		RequestNumber: sr.RequestNumber,
		CategoryID:    sr.CategoryID,
		Status:        sr.Status.String(),
		Priority:      string(sr.Priority),
		Description:   sr.Description,
		Remarks:       sr.Remarks,
		SubmittedAt:   sr.SubmittedAt,
		UpdatedAt:     sr.UpdatedAt,
		ResolvedAt:    sr.ResolvedAt,
	}
}

func toRequestDTOs(list []domain.ServiceRequest) []requestDTO {
	out := make([]requestDTO, 0, len(list))
	for i := range list {
		out = append(out, toRequestDTO(&list[i]))
	}
	return out
}

type adminRequestDTO struct {
	requestDTO
	CitizenName   string `json:"citizen_name"`
	CitizenMobile string `json:"citizen_mobile"`
	CategoryName  string `json:"category_name"`
}

func toAdminRequestDTOs(rows []request.AdminRow) []adminRequestDTO {
	out := make([]adminRequestDTO, 0, len(rows))
	for i := range rows {
		out = append(out, adminRequestDTO{
			requestDTO:    toRequestDTO(&rows[i].ServiceRequest),
			CitizenName:   rows[i].CitizenName,
			CitizenMobile: rows[i].CitizenMobile,
			CategoryName:  rows[i].CategoryName,
		})
	}
	return out
}

type documentDTO struct {
	ID         uuid.UUID `json:"id"`
	RequestID  uuid.UUID `json:"request_id"`
	FileName   string    `json:"file_name"`
	FileType   string    `json:"file_type"`
	FileSize   int64     `json:"file_size"`
	UploadedAt time.Time `json:"uploaded_at"`
}

func toDocumentDTO(d *domain.Document) documentDTO {
	return documentDTO{
		ID:         d.ID,
		RequestID:  d.RequestID,
		FileName:   d.FileName,
		FileType:   d.FileType,
		FileSize:   d.FileSize,
		UploadedAt: d.UploadedAt,
	}
}

func toDocumentDTOs(list []domain.Document) []documentDTO {
	out := make([]documentDTO, 0, len(list))
	for i := range list {
		out = append(out, toDocumentDTO(&list[i]))
	}
	return out
}

type grievanceDTO struct {
	ID              uuid.UUID  `json:"id"`
	GrievanceNumber string     `json:"grievance_number"`
	Category        string     `json:"category"`
	Subject         string     `json:"subject"`
	Description     string     `json:"description"`
	AICategory      string     `json:"ai_category"`
	AIPriority      string     `json:"ai_priority"`
	Status          string     `json:"status"`
	EscalationLevel int32      `json:"escalation_level"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	ResolvedAt      *time.Time `json:"resolved_at,omitempty"`
}

func toGrievanceDTO(g *domain.Grievance) grievanceDTO {
	return grievanceDTO{
		ID:              g.ID,
		GrievanceNumber: g.GrievanceNumber,
		Category:        g.Category,
		Subject:         g.Subject,
		Description:     g.Description,
		AICategory:      g.AICategory,
		AIPriority:      string(g.AIPriority),
		Status:          g.Status.String(),
		EscalationLevel: g.EscalationLevel,
		CreatedAt:       g.CreatedAt,
		UpdatedAt:       g.UpdatedAt,
		ResolvedAt:      g.ResolvedAt,
	}
}

func toGrievanceDTOs(list []domain.Grievance) []grievanceDTO {
	out := make([]grievanceDTO, 0, len(list))
	for i := range list {
		out = append(out, toGrievanceDTO(&list[i]))
	}
	return out
}

type adminGrievanceDTO struct {
	grievanceDTO
	CitizenName   string `json:"citizen_name"`
	CitizenMobile string `json:"citizen_mobile"`
}

func toAdminGrievanceDTOs(rows []grievance.AdminRow) []adminGrievanceDTO {
	out := make([]adminGrievanceDTO, 0, len(rows))
	for i := range rows {
		out = append(out, adminGrievanceDTO{
			grievanceDTO:  toGrievanceDTO(&rows[i].Grievance),
			CitizenName:   rows[i].CitizenName,
			CitizenMobile: rows[i].CitizenMobile,
		})
	}
	return out
}

type grievanceUpdateDTO struct {
	UpdateText string    `json:"update_text"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

func toGrievanceUpdateDTOs(list []domain.GrievanceUpdate) []grievanceUpdateDTO {
	out := make([]grievanceUpdateDTO, 0, len(list))
	for _, u := range list {
		out = append(out, grievanceUpdateDTO{
			UpdateText: u.UpdateText,
			Status:     u.Status.String(),
			CreatedAt:  u.CreatedAt,
		})
	}
	return out
}

type paymentDTO struct {
	ID            uuid.UUID  `json:"id"`
	RequestID     *uuid.UUID `json:"request_id,omitempty"`
	Amount        float64    `json:"amount"`
	Purpose       string     `json:"purpose"`
	TransactionID string     `json:"transaction_id"`
	Status        string     `json:"status"`
	PaymentMethod string     `json:"payment_method"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func toPaymentDTO(p *domain.Payment) paymentDTO {
	return paymentDTO{
		ID:            p.ID,
		RequestID:     p.RequestID,
		Amount:        p.Amount,
		Purpose:       p.Purpose,
		TransactionID: p.TransactionID,
		Status:        string(p.Status),
		PaymentMethod: p.PaymentMethod,
		PaidAt:        p.PaidAt,
		CreatedAt:     p.CreatedAt,
	}
}

func toPaymentDTOs(list []domain.Payment) []paymentDTO {
	out := make([]paymentDTO, 0, len(list))
	for i := range list {
		out = append(out, toPaymentDTO(&list[i]))
	}
	return out
}

type certificateDTO struct {
	ID                uuid.UUID  `json:"id"`
	RequestID         uuid.UUID  `json:"request_id"`
	CertificateType   string     `json:"certificate_type"`
	CertificateNumber string     `json:"certificate_number"`
	QRPayload         string     `json:"qr_payload"`
	ValidUntil        *time.Time `json:"valid_until,omitempty"`
	IssuedAt          time.Time  `json:"issued_at"`
}

func toCertificateDTO(c *domain.Certificate) certificateDTO {
	return certificateDTO{
		ID:                c.ID,
		RequestID:         c.RequestID,
		CertificateType:   c.CertificateType,
		CertificateNumber: c.CertificateNumber,
		QRPayload:         c.QRPayload,
		ValidUntil:        c.ValidUntil,
		IssuedAt:          c.IssuedAt,
	}
}

func toCertificateDTOs(list []domain.Certificate) []certificateDTO {
	out := make([]certificateDTO, 0, len(list))
	for i := range list {
		out = append(out, toCertificateDTO(&list[i]))
	}
	return out
}

type chatLogDTO struct {
	SessionID   string    `json:"session_id"`
	UserMessage string    `json:"user_message"`
	BotResponse string    `json:"bot_response"`
	Language    string    `json:"language"`
	CreatedAt   time.Time `json:"created_at"`
}

func toChatLogDTOs(list []domain.ChatLog) []chatLogDTO {
	out := make([]chatLogDTO, 0, len(list))
	for _, l := range list {
		out = append(out, chatLogDTO{
			SessionID:   l.SessionID,
			UserMessage: l.UserMessage,
			BotResponse: l.BotResponse,
			Language:    l.Language,
			CreatedAt:   l.CreatedAt,
		})
	}
	return out
}
