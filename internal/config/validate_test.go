package config

import (
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Auth: AuthConfig{
			JWTSecret:       "this-is-a-very-long-jwt-secret-for-testing-32+",
			CitizenTokenTTL: 24 * time.Hour,
			AdminTokenTTL:   8 * time.Hour,
			PasswordCost:    10,
		},
		OTP: OTPConfig{
			Length:   6,
			Expiry:   10 * time.Minute,
			Mock:     true,
			MockCode: "123456",
		},
		Upload: UploadConfig{
			MaxSizeBytes:      1024,
			AllowedExtensions: "pdf,jpg",
		},
		Certificate: CertificateConfig{
			ValidityDays:  365,
			VerifyBaseURL: "https://portal.test/verify",
		},
		RateLimit: RateLimitConfig{Rate: 0.1, Burst: 3, Window: 10 * time.Minute},
	}
}

func TestValidate_Valid(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_JWTSecretTooShort(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.JWTSecret = "short"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for short JWT secret")
	}
}

func TestValidate_BadPasswordCost(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.PasswordCost = 99

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for out-of-range password cost")
	}
}

func TestValidate_BadOTPLength(t *testing.T) {
	cfg := validConfig()
	cfg.OTP.Length = 2
	cfg.OTP.MockCode = "12"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for OTP length out of range")
	}
}

func TestValidate_MockCodeLengthMismatch(t *testing.T) {
	cfg := validConfig()
	cfg.OTP.MockCode = "1234"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for mock code length mismatch")
	}
}

func TestValidate_NonPositiveExpiry(t *testing.T) {
	cfg := validConfig()
	cfg.OTP.Expiry = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for non-positive OTP expiry")
	}
}

func TestValidate_EmptyExtensions(t *testing.T) {
	cfg := validConfig()
	cfg.Upload.AllowedExtensions = " , "

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty extension list")
	}
}

func TestValidate_NonPositiveValidityDays(t *testing.T) {
	cfg := validConfig()
	cfg.Certificate.ValidityDays = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for non-positive validity days")
	}
}

func TestUploadConfig_Extensions(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"pdf,jpg,jpeg,png", []string{"pdf", "jpg", "jpeg", "png"}},
		{".pdf, .JPG", []string{"pdf", "jpg"}},
		{"", nil},
		{" , ,", nil},
	}
	for _, tt := range tests {
		got := UploadConfig{AllowedExtensions: tt.raw}.Extensions()
		if len(got) != len(tt.want) {
			t.Errorf("Extensions(%q) = %v, want %v", tt.raw, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("Extensions(%q)[%d] = %q, want %q", tt.raw, i, got[i], tt.want[i])
			}
		}
	}
}
