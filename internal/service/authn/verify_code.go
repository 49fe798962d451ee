package authn

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gramseva/gramseva-backend/internal/domain"
)

// VerifyCode exchanges a one-time code for a citizen session. An
// unknown citizen is registered on first login; the code is consumed
// even when registration is rejected, so a retry needs a fresh code.
// An expired code is rejected without being consumed so the citizen
// can request a new one.
func (s *Service) VerifyCode(ctx context.Context, input VerifyCodeInput) (*SessionResult, error) {
	input.Mobile = domain.NormalizeMobile(input.Mobile)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	code, err := s.codes.GetUnused(ctx, input.Mobile, input.Code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCode
		}
		return nil, fmt.Errorf("authn.VerifyCode get code: %w", err)
	}
	if code.IsExpired(time.Now()) {
		return nil, domain.ErrCodeExpired
	}

	// The code is consumed first and stays consumed even if the rest of
	// the login fails; a concurrent consumer losing the race sees an
	// invalid code.
	if err := s.codes.MarkUsed(ctx, code.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCode
		}
		return nil, fmt.Errorf("authn.VerifyCode consume code: %w", err)
	}

	var isNew bool
	citizen, err := s.citizens.GetByMobile(ctx, input.Mobile)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotFound):
		// First login registers the citizen; a name is required then.
		if input.FullName == "" {
			return nil, &domain.ValidationError{Errors: []domain.FieldError{
				{Field: "full_name", Message: "required for registration"},
			}}
		}
		citizen, err = s.citizens.Create(ctx, &domain.Citizen{
			FullName: input.FullName,
			Mobile:   input.Mobile,
		})
		if err != nil {
			return nil, fmt.Errorf("authn.VerifyCode register citizen: %w", err)
		}
		isNew = true
	default:
		return nil, fmt.Errorf("authn.VerifyCode get citizen: %w", err)
	}

	token, err := s.jwt.GenerateAccessToken(citizen.ID, domain.RoleCitizen.String(), s.authCfg.CitizenTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("authn.VerifyCode issue token: %w", err)
	}

	s.events.Record(domain.EventCitizenLogin, &citizen.ID, map[string]any{"is_new": isNew})

	s.log.InfoContext(ctx, "citizen logged in",
		slog.String("citizen_id", citizen.ID.String()),
		slog.Bool("is_new", isNew))

	return &SessionResult{Token: token, Citizen: citizen, IsNewUser: isNew}, nil
}
