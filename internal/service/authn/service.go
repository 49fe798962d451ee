// Package authn implements citizen one-time-code login and
// administrator password login.
package authn

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/gramseva/gramseva-backend/internal/config"
	"github.com/gramseva/gramseva-backend/internal/domain"
)

// citizenRepo defines the citizen repository interface needed by authn service.
type citizenRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Citizen, error)
	GetByMobile(ctx context.Context, mobile string) (*domain.Citizen, error)
	Create(ctx context.Context, c *domain.Citizen) (*domain.Citizen, error)
	UpdateProfile(ctx context.Context, c *domain.Citizen) (*domain.Citizen, error)
}

// adminRepo defines the admin repository interface needed by authn service.
type adminRepo interface {
	GetByUsername(ctx context.Context, username string) (*domain.Admin, error)
}

// codeRepo defines the login code repository interface needed by authn service.
type codeRepo interface {
	Create(ctx context.Context, c *domain.LoginCode) (*domain.LoginCode, error)
	InvalidateUnused(ctx context.Context, mobile string) (int, error)
	GetUnused(ctx context.Context, mobile, code string) (*domain.LoginCode, error)
	MarkUsed(ctx context.Context, id uuid.UUID) error
}

// txManager defines the transaction manager interface needed by authn service.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// jwtManager defines the token issuing interface needed by authn service.
type jwtManager interface {
	GenerateAccessToken(userID uuid.UUID, role string, ttl time.Duration) (string, error)
}

// recorder receives analytics events after successful operations.
type recorder interface {
	Record(eventType string, citizenID *uuid.UUID, payload map[string]any)
}

// Service implements authentication operations.
type Service struct {
	log      *slog.Logger
	citizens citizenRepo
	admins   adminRepo
	codes    codeRepo
	tx       txManager
	jwt      jwtManager
	events   recorder
	authCfg  config.AuthConfig
	otpCfg   config.OTPConfig
}

// NewService creates a new authn service instance.
func NewService(
	logger *slog.Logger,
	citizens citizenRepo,
	admins adminRepo,
	codes codeRepo,
	tx txManager,
	jwt jwtManager,
	events recorder,
	authCfg config.AuthConfig,
	otpCfg config.OTPConfig,
) *Service {
	return &Service{
		log:      logger.With("service", "authn"),
		citizens: citizens,
		admins:   admins,
		codes:    codes,
		tx:       tx,
		jwt:      jwt,
		events:   events,
		authCfg:  authCfg,
		otpCfg:   otpCfg,
	}
}
