package domain

import (
	"regexp"
	"testing"
	"time"
)

var refnumDate = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

func TestNewRequestNumber_Format(t *testing.T) {
	t.Parallel()

	re := regexp.MustCompile(`^REQ-20250314-\d{6}$`)
	for range 100 {
		n := NewRequestNumber(refnumDate)
		if !re.MatchString(n) {
			t.Fatalf("request number %q does not match %v", n, re)
		}
	}
}

func TestNewGrievanceNumber_Format(t *testing.T) {
	t.Parallel()

	re := regexp.MustCompile(`^GRV-20250314-\d{5}$`)
	for range 100 {
		n := NewGrievanceNumber(refnumDate)
		if !re.MatchString(n) {
			t.Fatalf("grievance number %q does not match %v", n, re)
		}
	}
}

func TestNewTransactionID_Format(t *testing.T) {
	t.Parallel()

	re := regexp.MustCompile(`^TXN-20250314092653-[A-Z0-9]{8}$`)
	for range 100 {
		n := NewTransactionID(refnumDate)
		if !re.MatchString(n) {
			t.Fatalf("transaction id %q does not match %v", n, re)
		}
	}
}

func TestNewCertificateNumber_Format(t *testing.T) {
	t.Parallel()

	re := regexp.MustCompile(`^CERT-2025-\d{8}$`)
	for range 100 {
		n := NewCertificateNumber(refnumDate)
		if !re.MatchString(n) {
			t.Fatalf("certificate number %q does not match %v", n, re)
		}
	}
}

func TestNewMockReference_Format(t *testing.T) {
	t.Parallel()

	re := regexp.MustCompile(`^MOCK\d{6}$`)
	for range 100 {
		if n := NewMockReference(); !re.MatchString(n) {
			t.Fatalf("mock reference %q does not match %v", n, re)
		}
	}
}

func TestNewLoginCode(t *testing.T) {
	t.Parallel()

	re := regexp.MustCompile(`^\d{6}$`)
	for range 100 {
		code, err := NewLoginCode(6)
		if err != nil {
			t.Fatalf("NewLoginCode: %v", err)
		}
		if !re.MatchString(code) {
			t.Fatalf("login code %q is not 6 digits", code)
		}
	}

	code, err := NewLoginCode(4)
	if err != nil {
		t.Fatalf("NewLoginCode: %v", err)
	}
	if len(code) != 4 {
		t.Fatalf("expected 4-digit code, got %q", code)
	}
}
