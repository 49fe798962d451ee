package authn

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/gramseva/gramseva-backend/internal/domain"
)

type citizenRepoMock struct {
	GetByIDFunc       func(ctx context.Context, id uuid.UUID) (*domain.Citizen, error)
	GetByMobileFunc   func(ctx context.Context, mobile string) (*domain.Citizen, error)
	CreateFunc        func(ctx context.Context, c *domain.Citizen) (*domain.Citizen, error)
	UpdateProfileFunc func(ctx context.Context, c *domain.Citizen) (*domain.Citizen, error)
}

func (m *citizenRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Citizen, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *citizenRepoMock) GetByMobile(ctx context.Context, mobile string) (*domain.Citizen, error) {
	return m.GetByMobileFunc(ctx, mobile)
}

func (m *citizenRepoMock) Create(ctx context.Context, c *domain.Citizen) (*domain.Citizen, error) {
	return m.CreateFunc(ctx, c)
}

func (m *citizenRepoMock) UpdateProfile(ctx context.Context, c *domain.Citizen) (*domain.Citizen, error) {
	return m.UpdateProfileFunc(ctx, c)
}

type adminRepoMock struct {
	GetByUsernameFunc func(ctx context.Context, username string) (*domain.Admin, error)
}

func (m *adminRepoMock) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	return m.GetByUsernameFunc(ctx, username)
}

type codeRepoMock struct {
	CreateFunc           func(ctx context.Context, c *domain.LoginCode) (*domain.LoginCode, error)
	InvalidateUnusedFunc func(ctx context.Context, mobile string) (int, error)
	GetUnusedFunc        func(ctx context.Context, mobile, code string) (*domain.LoginCode, error)
	MarkUsedFunc         func(ctx context.Context, id uuid.UUID) error
}

func (m *codeRepoMock) Create(ctx context.Context, c *domain.LoginCode) (*domain.LoginCode, error) {
	return m.CreateFunc(ctx, c)
}

func (m *codeRepoMock) InvalidateUnused(ctx context.Context, mobile string) (int, error) {
	return m.InvalidateUnusedFunc(ctx, mobile)
}

func (m *codeRepoMock) GetUnused(ctx context.Context, mobile, code string) (*domain.LoginCode, error) {
	return m.GetUnusedFunc(ctx, mobile, code)
}

func (m *codeRepoMock) MarkUsed(ctx context.Context, id uuid.UUID) error {
	return m.MarkUsedFunc(ctx, id)
}

// txManagerMock runs the function directly, as if in a transaction.
type txManagerMock struct{}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type jwtManagerMock struct {
	GenerateAccessTokenFunc func(userID uuid.UUID, role string, ttl time.Duration) (string, error)
}

func (m *jwtManagerMock) GenerateAccessToken(userID uuid.UUID, role string, ttl time.Duration) (string, error) {
	return m.GenerateAccessTokenFunc(userID, role, ttl)
}

// recorderMock captures recorded events synchronously.
type recorderMock struct {
	events []string
}

func (m *recorderMock) Record(eventType string, citizenID *uuid.UUID, payload map[string]any) {
	m.events = append(m.events, eventType)
}
