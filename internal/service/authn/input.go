package authn

import (
	"github.com/gramseva/gramseva-backend/internal/domain"
)

// SendCodeInput holds parameters for issuing a login code.
type SendCodeInput struct {
	Mobile string
}

// Validate validates the send-code input. Mobile must already be
// normalized.
func (i SendCodeInput) Validate() error {
	var errs []domain.FieldError

	if i.Mobile == "" {
		errs = append(errs, domain.FieldError{Field: "mobile", Message: "required"})
	} else if !domain.IsValidMobile(i.Mobile) {
		errs = append(errs, domain.FieldError{Field: "mobile", Message: "must be 10 digits"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// VerifyCodeInput holds parameters for exchanging a code for a session.
type VerifyCodeInput struct {
	Mobile   string
	Code     string
	FullName string
}

// Validate validates the verify-code input.
func (i VerifyCodeInput) Validate() error {
	var errs []domain.FieldError

	if i.Mobile == "" {
		errs = append(errs, domain.FieldError{Field: "mobile", Message: "required"})
	} else if !domain.IsValidMobile(i.Mobile) {
		errs = append(errs, domain.FieldError{Field: "mobile", Message: "must be 10 digits"})
	}

	if i.Code == "" {
		errs = append(errs, domain.FieldError{Field: "otp", Message: "required"})
	} else if len(i.Code) > 10 {
		errs = append(errs, domain.FieldError{Field: "otp", Message: "too long"})
	}

	if len(i.FullName) > 255 {
		errs = append(errs, domain.FieldError{Field: "full_name", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// AdminLoginInput holds parameters for administrator password login.
type AdminLoginInput struct {
	Username string
	Password string
}

// Validate validates the admin login input.
func (i AdminLoginInput) Validate() error {
	var errs []domain.FieldError

	if i.Username == "" {
		errs = append(errs, domain.FieldError{Field: "username", Message: "required"})
	}
	if i.Password == "" {
		errs = append(errs, domain.FieldError{Field: "password", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateProfileInput holds the citizen-editable profile fields. Nil
// pointers leave the stored value unchanged.
type UpdateProfileInput struct {
	FullName           *string
	Email              *string
	AadhaarNumber      *string
	Address            *string
	VillageWard        *string
	District           *string
	LanguagePreference *string
}

// Validate validates the profile update input.
func (i UpdateProfileInput) Validate() error {
	var errs []domain.FieldError

	if i.FullName != nil && *i.FullName == "" {
		errs = append(errs, domain.FieldError{Field: "full_name", Message: "cannot be empty"})
	}
	if i.AadhaarNumber != nil && *i.AadhaarNumber != "" && len(*i.AadhaarNumber) != 12 {
		errs = append(errs, domain.FieldError{Field: "aadhaar_number", Message: "must be 12 digits"})
	}
	if i.LanguagePreference != nil {
		switch *i.LanguagePreference {
		case "en", "hi", "mr":
		default:
			errs = append(errs, domain.FieldError{Field: "language_preference", Message: "must be en, hi or mr"})
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
