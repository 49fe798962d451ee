package domain

import (
	"strings"
)

// NormalizeMobile prepares a mobile number for storage and lookup:
//   - strips spaces, hyphens, and parentheses
//   - drops a leading "+91", "91" (on 12-digit input), or "0" prefix
//
// The result is compared against the 10-digit rule by callers; this
// function never rejects input.
func NormalizeMobile(mobile string) string {
	var b strings.Builder
	b.Grow(len(mobile))
	for _, r := range mobile {
		switch r {
		case ' ', '-', '(', ')':
			continue
		}
		b.WriteRune(r)
	}
	s := b.String()
	switch {
	case strings.HasPrefix(s, "+91"):
		s = s[3:]
	case len(s) == 12 && strings.HasPrefix(s, "91"):
		s = s[2:]
	case len(s) == 11 && strings.HasPrefix(s, "0"):
		s = s[1:]
	}
	return s
}

// IsValidMobile reports whether s is exactly ten ASCII digits.
func IsValidMobile(s string) bool {
	if len(s) != 10 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
