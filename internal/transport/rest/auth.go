package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gramseva/gramseva-backend/internal/domain"
	"github.com/gramseva/gramseva-backend/internal/service/authn"
	"github.com/gramseva/gramseva-backend/pkg/ctxutil"
)

// authService defines the minimal interface needed by AuthHandler.
type authService interface {
	SendCode(ctx context.Context, input authn.SendCodeInput) (*authn.SendCodeResult, error)
	VerifyCode(ctx context.Context, input authn.VerifyCodeInput) (*authn.SessionResult, error)
	AdminLogin(ctx context.Context, input authn.AdminLoginInput) (*authn.AdminSessionResult, error)
	Profile(ctx context.Context, citizenID uuid.UUID) (*domain.Citizen, error)
	UpdateProfile(ctx context.Context, citizenID uuid.UUID, input authn.UpdateProfileInput) (*domain.Citizen, error)
}

// AuthHandler serves citizen and admin authentication endpoints.
type AuthHandler struct {
	svc authService
	log *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(svc authService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: logger.With("handler", "auth")}
}

type sendOTPRequest struct {
	Mobile string `json:"mobile"`
}

// SendOTP issues a one-time login code.
// POST /api/auth/send-otp
func (h *AuthHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req sendOTPRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.SendCode(r.Context(), authn.SendCodeInput{Mobile: req.Mobile})
	if err != nil {
		writeDomainError(r.Context(), h.log, w, err)
		return
	}

	payload := map[string]any{"message": "OTP sent successfully"}
	if result.DevCode != "" {
		payload["dev_otp"] = result.DevCode
	}
	writeSuccess(w, http.StatusOK, payload)
}

type verifyOTPRequest struct {
	Mobile   string `json:"mobile"`
	OTP      string `json:"otp"`
	FullName string `json:"full_name"`
}

// VerifyOTP exchanges a code for a session token, registering the
// citizen on first login.
// POST /api/auth/verify-otp
func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyOTPRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.VerifyCode(r.Context(), authn.VerifyCodeInput{
		Mobile:   req.Mobile,
		Code:     req.OTP,
		FullName: req.FullName,
	})
	if err != nil {
		writeDomainError(r.Context(), h.log, w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"token":       result.Token,
		"user":        toCitizenDTO(result.Citizen),
		"is_new_user": result.IsNewUser,
	})
}

type adminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AdminLogin authenticates a back-office account by password.
// POST /api/auth/admin/login
func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.AdminLogin(r.Context(), authn.AdminLoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		writeDomainError(r.Context(), h.log, w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"token": result.Token,
		"admin": toAdminDTO(result.Admin),
	})
}

// Profile returns the caller's own profile.
// GET /api/auth/profile
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	citizenID, _ := ctxutil.UserIDFromCtx(r.Context())

	citizen, err := h.svc.Profile(r.Context(), citizenID)
	if err != nil {
		writeDomainError(r.Context(), h.log, w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"user": toCitizenDTO(citizen)})
}

type updateProfileRequest struct {
	FullName           *string `json:"full_name"`
	Email              *string `json:"email"`
	AadhaarNumber      *string `json:"aadhaar_number"`
	Address            *string `json:"address"`
	VillageWard        *string `json:"village_ward"`
	District           *string `json:"district"`
	LanguagePreference *string `json:"language_preference"`
}

// UpdateProfile updates the caller's editable profile fields. Absent
// fields are left unchanged.
// PUT /api/auth/profile
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	citizenID, _ := ctxutil.UserIDFromCtx(r.Context())

	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	citizen, err := h.svc.UpdateProfile(r.Context(), citizenID, authn.UpdateProfileInput{
		FullName:           req.FullName,
		Email:              req.Email,
		AadhaarNumber:      req.AadhaarNumber,
		Address:            req.Address,
		VillageWard:        req.VillageWard,
		District:           req.District,
		LanguagePreference: req.LanguagePreference,
	})
	if err != nil {
		writeDomainError(r.Context(), h.log, w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"user": toCitizenDTO(citizen)})
}
