package certificate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	postgres "github.com/gramseva/gramseva-backend/internal/adapter/postgres"
	"github.com/gramseva/gramseva-backend/internal/domain"
	"github.com/gramseva/gramseva-backend/internal/renderer"
)

// Issue creates a certificate for an approved service request and
// completes the request, both in one transaction. The rendered artifact
// is stored outside the transaction; only its reference goes on the row,
// and the artifact is removed again when the transaction fails.
func (s *Service) Issue(ctx context.Context, adminID uuid.UUID, requestID uuid.UUID) (*domain.Certificate, error) {
	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("certificate.Issue get request: %w", err)
	}
	if req.Status != domain.RequestStatusApproved {
		return nil, domain.ErrNotApproved
	}

	category, err := s.categories.GetByID(ctx, req.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("certificate.Issue get category: %w", err)
	}
	holder, err := s.citizens.GetByID(ctx, req.CitizenID)
	if err != nil {
		return nil, fmt.Errorf("certificate.Issue get citizen: %w", err)
	}

	now := time.Now()
	validUntil := now.AddDate(0, 0, s.cfg.ValidityDays)

	var issued *domain.Certificate
	for attempt := 0; ; attempt++ {
		number := domain.NewCertificateNumber(now)
		qr := s.cfg.VerifyBaseURL + "/" + number

		artifact, err := s.renderer.Render(renderer.CertificateData{
			CertificateNumber: number,
			CertificateType:   category.NameEn,
			HolderName:        holder.FullName,
			RequestNumber:     req.RequestNumber,
			IssuedAt:          now,
			ValidUntil:        &validUntil,
			QRPayload:         qr,
		})
		if err != nil {
			return nil, fmt.Errorf("certificate.Issue render: %w", err)
		}
		path, err := s.files.SaveBytes("certificates/"+number+".txt", artifact)
		if err != nil {
			return nil, fmt.Errorf("certificate.Issue store artifact: %w", err)
		}

		err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
			issued, err = s.certificates.Create(ctx, &domain.Certificate{
				RequestID:         req.ID,
				CitizenID:         req.CitizenID,
				CertificateType:   category.NameEn,
				CertificateNumber: number,
				QRPayload:         qr,
				FilePath:          &path,
				IssuedBy:          adminID,
				ValidUntil:        &validUntil,
			})
			if err != nil {
				return err
			}
			resolvedAt := now
			// Guarded on the approved status so two admins issuing the
			// same request settle on exactly one certificate.
			_, err = s.requests.UpdateStatus(ctx, req.ID, domain.RequestStatusApproved, domain.RequestStatusCompleted, nil, &adminID, &resolvedAt)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return domain.ErrNotApproved
				}
				return fmt.Errorf("complete request: %w", err)
			}
			return nil
		})
		if err == nil {
			break
		}

		// The transaction rolled back; the stored artifact must not
		// outlive it.
		if rmErr := s.files.Remove(path); rmErr != nil {
			s.log.WarnContext(ctx, "orphaned certificate artifact",
				slog.String("path", path), slog.String("error", rmErr.Error()))
		}
		if postgres.IsUniqueViolation(err) && attempt < maxNumberRetries {
			continue
		}
		return nil, fmt.Errorf("certificate.Issue: %w", err)
	}

	s.events.Record(domain.EventCertificateIssued, &req.CitizenID, map[string]any{
		"certificate_number": issued.CertificateNumber,
		"certificate_type":   issued.CertificateType,
	})

	s.log.InfoContext(ctx, "certificate issued",
		slog.String("certificate_number", issued.CertificateNumber),
		slog.String("request_number", req.RequestNumber),
		slog.String("admin_id", adminID.String()))

	return issued, nil
}
