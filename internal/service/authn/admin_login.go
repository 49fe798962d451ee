package authn

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/gramseva/gramseva-backend/internal/domain"
)

// AdminLogin authenticates a back-office account with username and
// password. An unknown username and a wrong password both return
// ErrUnauthorized so the two cases cannot be told apart.
func (s *Service) AdminLogin(ctx context.Context, input AdminLoginInput) (*AdminSessionResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	admin, err := s.admins.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("authn.AdminLogin get admin: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(input.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	token, err := s.jwt.GenerateAccessToken(admin.ID, admin.Role.String(), s.authCfg.AdminTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("authn.AdminLogin issue token: %w", err)
	}

	s.log.InfoContext(ctx, "admin logged in",
		slog.String("admin_id", admin.ID.String()),
		slog.String("role", admin.Role.String()))

	return &AdminSessionResult{Token: token, Admin: admin}, nil
}
