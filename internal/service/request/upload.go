package request

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/gramseva/gramseva-backend/internal/domain"
)

// UploadDocumentInput holds an uploaded file for a service request. The
// transport layer has already capped Size via http.MaxBytesReader.
type UploadDocumentInput struct {
	RequestID uuid.UUID
	FileName  string
	Size      int64
	Body      io.Reader
}

// UploadDocument attaches a supporting document to the caller's own
// request. Documents can only be added while the request is still being
// worked on.
func (s *Service) UploadDocument(ctx context.Context, citizenID uuid.UUID, input UploadDocumentInput) (*domain.Document, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(input.FileName)), ".")
	if input.FileName == "" || ext == "" || !slices.Contains(s.uploadCfg.Extensions(), ext) {
		return nil, &domain.ValidationError{Errors: []domain.FieldError{
			{Field: "file", Message: "allowed types: " + s.uploadCfg.AllowedExtensions},
		}}
	}

	req, err := s.requests.GetByID(ctx, input.RequestID)
	if err != nil {
		return nil, fmt.Errorf("request.UploadDocument get request: %w", err)
	}
	if req.CitizenID != citizenID {
		return nil, domain.ErrForbidden
	}
	if req.Status.IsTerminal() {
		return nil, domain.ErrInvalidTransition
	}

	path, err := s.files.Save("uploads", input.FileName, input.Body)
	if err != nil {
		return nil, fmt.Errorf("request.UploadDocument store file: %w", err)
	}

	doc, err := s.documents.Create(ctx, &domain.Document{
		RequestID: req.ID,
		CitizenID: citizenID,
		FileName:  input.FileName,
		FilePath:  path,
		FileType:  ext,
		FileSize:  input.Size,
	})
	if err != nil {
		return nil, fmt.Errorf("request.UploadDocument: %w", err)
	}

	s.log.InfoContext(ctx, "document uploaded",
		slog.String("request_number", req.RequestNumber),
		slog.String("file_type", ext))

	return doc, nil
}
