package certificate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/gramseva/gramseva-backend/internal/domain"
)

// VerifyResult is the public authenticity check for a certificate. It
// exposes the holder's name and the validity window only; contact
// details and internal ids stay hidden.
type VerifyResult struct {
	CertificateNumber string
	CertificateType   string
	HolderName        string
	IssuedAt          time.Time
	ValidUntil        *time.Time
	Valid             bool
}

// Verify checks a certificate by its public number. No authentication
// is required; anyone holding the QR payload may call it.
func (s *Service) Verify(ctx context.Context, certificateNumber string) (*VerifyResult, error) {
	cert, err := s.certificates.GetByNumber(ctx, certificateNumber)
	if err != nil {
		return nil, fmt.Errorf("certificate.Verify: %w", err)
	}

	holder, err := s.citizens.GetByID(ctx, cert.CitizenID)
	if err != nil {
		return nil, fmt.Errorf("certificate.Verify get citizen: %w", err)
	}

	return &VerifyResult{
		CertificateNumber: cert.CertificateNumber,
		CertificateType:   cert.CertificateType,
		HolderName:        holder.FullName,
		IssuedAt:          cert.IssuedAt,
		ValidUntil:        cert.ValidUntil,
		Valid:             cert.IsValidOn(time.Now()),
	}, nil
}

// DownloadResult carries an open artifact stream. The caller must close
// Body.
type DownloadResult struct {
	Certificate *domain.Certificate
	Body        io.ReadCloser
}

// Download streams the certificate artifact to its owner or to an
// administrative caller.
func (s *Service) Download(ctx context.Context, callerID uuid.UUID, callerRole string, certificateID uuid.UUID) (*DownloadResult, error) {
	cert, err := s.certificates.GetByID(ctx, certificateID)
	if err != nil {
		return nil, fmt.Errorf("certificate.Download: %w", err)
	}

	if cert.CitizenID != callerID && !domain.Role(callerRole).IsAdministrative() {
		return nil, domain.ErrForbidden
	}

	if cert.FilePath == nil {
		return nil, domain.ErrArtifactMissing
	}
	body, err := s.files.Open(*cert.FilePath)
	if err != nil {
		return nil, errors.Join(domain.ErrArtifactMissing, err)
	}

	return &DownloadResult{Certificate: cert, Body: body}, nil
}

// MyCertificates returns the caller's certificates, newest first.
func (s *Service) MyCertificates(ctx context.Context, citizenID uuid.UUID) ([]domain.Certificate, error) {
	list, err := s.certificates.ListByCitizen(ctx, citizenID)
	if err != nil {
		return nil, fmt.Errorf("certificate.MyCertificates: %w", err)
	}
	return list, nil
}
