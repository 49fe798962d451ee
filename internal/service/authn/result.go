package authn

import "github.com/gramseva/gramseva-backend/internal/domain"

// SendCodeResult is returned after a code is issued. DevCode carries the
// issued code only in mock mode so frontends can display it during
// demos; it is empty when a real SMS gateway delivers the code.
type SendCodeResult struct {
	Mobile  string
	DevCode string
}

// SessionResult is returned after a successful citizen login.
type SessionResult struct {
	Token     string
	Citizen   *domain.Citizen
	IsNewUser bool
}

// AdminSessionResult is returned after a successful administrator login.
type AdminSessionResult struct {
	Token string
	Admin *domain.Admin
}
