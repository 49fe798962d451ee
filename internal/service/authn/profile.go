package authn

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/gramseva/gramseva-backend/internal/domain"
)

// Profile returns the citizen's own profile.
func (s *Service) Profile(ctx context.Context, citizenID uuid.UUID) (*domain.Citizen, error) {
	citizen, err := s.citizens.GetByID(ctx, citizenID)
	if err != nil {
		return nil, fmt.Errorf("authn.Profile: %w", err)
	}
	return citizen, nil
}

// UpdateProfile applies the provided profile fields. The mobile number
// is the login identity and cannot be changed here.
func (s *Service) UpdateProfile(ctx context.Context, citizenID uuid.UUID, input UpdateProfileInput) (*domain.Citizen, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	citizen, err := s.citizens.GetByID(ctx, citizenID)
	if err != nil {
		return nil, fmt.Errorf("authn.UpdateProfile get citizen: %w", err)
	}

	if input.FullName != nil {
		citizen.FullName = *input.FullName
	}
	if input.Email != nil {
		citizen.Email = nilIfEmpty(input.Email)
	}
	if input.AadhaarNumber != nil {
		citizen.AadhaarNumber = nilIfEmpty(input.AadhaarNumber)
	}
	if input.Address != nil {
		citizen.Address = nilIfEmpty(input.Address)
	}
	if input.VillageWard != nil {
		citizen.VillageWard = nilIfEmpty(input.VillageWard)
	}
	if input.District != nil {
		citizen.District = nilIfEmpty(input.District)
	}
	if input.LanguagePreference != nil {
		citizen.LanguagePreference = *input.LanguagePreference
	}

	updated, err := s.citizens.UpdateProfile(ctx, citizen)
	if err != nil {
		return nil, fmt.Errorf("authn.UpdateProfile: %w", err)
	}
	return updated, nil
}

func nilIfEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
