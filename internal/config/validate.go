package config

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.PasswordCost < bcrypt.MinCost || c.Auth.PasswordCost > bcrypt.MaxCost {
		return fmt.Errorf("auth.password_cost must be between %d and %d (got %d)",
			bcrypt.MinCost, bcrypt.MaxCost, c.Auth.PasswordCost)
	}

	if c.OTP.Length < 4 || c.OTP.Length > 10 {
		return fmt.Errorf("otp.length must be between 4 and 10 (got %d)", c.OTP.Length)
	}
	if c.OTP.Expiry <= 0 {
		return fmt.Errorf("otp.expiry must be positive (got %v)", c.OTP.Expiry)
	}
	if c.OTP.Mock && len(c.OTP.MockCode) != c.OTP.Length {
		return fmt.Errorf("otp.mock_code must be %d characters (got %d)", c.OTP.Length, len(c.OTP.MockCode))
	}

	if c.Upload.MaxSizeBytes <= 0 {
		return fmt.Errorf("upload.max_size_bytes must be positive (got %d)", c.Upload.MaxSizeBytes)
	}
	if len(c.Upload.Extensions()) == 0 {
		return fmt.Errorf("upload.allowed_extensions must not be empty")
	}

	if c.Certificate.ValidityDays <= 0 {
		return fmt.Errorf("certificate.validity_days must be positive (got %d)", c.Certificate.ValidityDays)
	}
	if c.Certificate.VerifyBaseURL == "" {
		return fmt.Errorf("certificate.verify_base_url must not be empty")
	}

	if c.RateLimit.Rate <= 0 || c.RateLimit.Burst <= 0 {
		return fmt.Errorf("rate_limit.rate and rate_limit.burst must be positive")
	}

	return nil
}

// Extensions returns the allowed upload extensions, lowercased, without
// dots or surrounding whitespace.
func (u UploadConfig) Extensions() []string {
	parts := strings.Split(u.AllowedExtensions, ",")
	exts := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(p), ".")))
		if p != "" {
			exts = append(exts, p)
		}
	}
	return exts
}
