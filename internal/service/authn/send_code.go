package authn

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gramseva/gramseva-backend/internal/domain"
)

// SendCode issues a fresh one-time login code for a mobile number,
// invalidating all previously issued unused codes in the same
// transaction. Per-IP throttling of this operation lives at the
// transport layer.
func (s *Service) SendCode(ctx context.Context, input SendCodeInput) (*SendCodeResult, error) {
	input.Mobile = domain.NormalizeMobile(input.Mobile)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	var code string
	if s.otpCfg.Mock {
		code = s.otpCfg.MockCode
	} else {
		var err error
		code, err = domain.NewLoginCode(s.otpCfg.Length)
		if err != nil {
			return nil, fmt.Errorf("authn.SendCode generate code: %w", err)
		}
	}

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.codes.InvalidateUnused(ctx, input.Mobile); err != nil {
			return fmt.Errorf("invalidate prior codes: %w", err)
		}
		_, err := s.codes.Create(ctx, &domain.LoginCode{
			Mobile:    input.Mobile,
			Code:      code,
			Purpose:   domain.CodePurposeLogin,
			ExpiresAt: time.Now().Add(s.otpCfg.Expiry),
		})
		if err != nil {
			return fmt.Errorf("store code: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("authn.SendCode: %w", err)
	}

	s.log.InfoContext(ctx, "login code issued",
		slog.String("mobile", maskMobile(input.Mobile)),
		slog.Bool("mock", s.otpCfg.Mock))

	result := &SendCodeResult{Mobile: input.Mobile}
	if s.otpCfg.Mock {
		result.DevCode = code
	}
	return result, nil
}

// maskMobile keeps only the last four digits for logs.
func maskMobile(mobile string) string {
	if len(mobile) <= 4 {
		return mobile
	}
	return "******" + mobile[len(mobile)-4:]
}
