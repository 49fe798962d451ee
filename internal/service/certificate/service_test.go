package certificate

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/gramseva/gramseva-backend/internal/config"
	"github.com/gramseva/gramseva-backend/internal/domain"
	"github.com/gramseva/gramseva-backend/internal/renderer"
)

type certificateRepoMock struct {
	CreateFunc        func(ctx context.Context, c *domain.Certificate) (*domain.Certificate, error)
	GetByIDFunc       func(ctx context.Context, id uuid.UUID) (*domain.Certificate, error)
	GetByNumberFunc   func(ctx context.Context, number string) (*domain.Certificate, error)
	ListByCitizenFunc func(ctx context.Context, citizenID uuid.UUID) ([]domain.Certificate, error)
}

func (m *certificateRepoMock) Create(ctx context.Context, c *domain.Certificate) (*domain.Certificate, error) {
	return m.CreateFunc(ctx, c)
}

func (m *certificateRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Certificate, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *certificateRepoMock) GetByNumber(ctx context.Context, number string) (*domain.Certificate, error) {
	return m.GetByNumberFunc(ctx, number)
}

func (m *certificateRepoMock) ListByCitizen(ctx context.Context, citizenID uuid.UUID) ([]domain.Certificate, error) {
	return m.ListByCitizenFunc(ctx, citizenID)
}

type requestRepoMock struct {
	GetByIDFunc      func(ctx context.Context, id uuid.UUID) (*domain.ServiceRequest, error)
	UpdateStatusFunc func(ctx context.Context, id uuid.UUID, from, status domain.RequestStatus, remarks *string, assignedTo *uuid.UUID, resolvedAt *time.Time) (*domain.ServiceRequest, error)
}

func (m *requestRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.ServiceRequest, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *requestRepoMock) UpdateStatus(ctx context.Context, id uuid.UUID, from, status domain.RequestStatus, remarks *string, assignedTo *uuid.UUID, resolvedAt *time.Time) (*domain.ServiceRequest, error) {
	return m.UpdateStatusFunc(ctx, id, from, status, remarks, assignedTo, resolvedAt)
}

type categoryRepoMock struct {
	GetByIDFunc func(ctx context.Context, id int32) (*domain.ServiceCategory, error)
}

func (m *categoryRepoMock) GetByID(ctx context.Context, id int32) (*domain.ServiceCategory, error) {
	return m.GetByIDFunc(ctx, id)
}

type citizenRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Citizen, error)
}

func (m *citizenRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Citizen, error) {
	return m.GetByIDFunc(ctx, id)
}

type fileStoreMock struct {
	SaveBytesFunc func(rel string, data []byte) (string, error)
	OpenFunc      func(rel string) (io.ReadCloser, error)
	RemoveFunc    func(rel string) error
}

func (m *fileStoreMock) SaveBytes(rel string, data []byte) (string, error) {
	return m.SaveBytesFunc(rel, data)
}

func (m *fileStoreMock) Open(rel string) (io.ReadCloser, error) {
	return m.OpenFunc(rel)
}

func (m *fileStoreMock) Remove(rel string) error {
	if m.RemoveFunc == nil {
		return nil
	}
	return m.RemoveFunc(rel)
}

type txManagerMock struct{}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type recorderMock struct {
	events []string
}

func (m *recorderMock) Record(eventType string, citizenID *uuid.UUID, payload map[string]any) {
	m.events = append(m.events, eventType)
}

func testCfg() config.CertificateConfig {
	return config.CertificateConfig{
		ValidityDays:  365,
		VerifyBaseURL: "https://gramseva.gov.in/verify",
	}
}

func newService(certs *certificateRepoMock, requests *requestRepoMock, categories *categoryRepoMock, citizens *citizenRepoMock, files *fileStoreMock) (*Service, *recorderMock) {
	events := &recorderMock{}
	svc := NewService(
		slog.New(slog.DiscardHandler),
		certs, requests, categories, citizens,
		renderer.NewTextRenderer(), files,
		&txManagerMock{}, events, testCfg(),
	)
	return svc, events
}

func approvedRequest(citizenID uuid.UUID) *domain.ServiceRequest {
	return &domain.ServiceRequest{
		ID:            uuid.New(),
		CitizenID:     citizenID,
		CategoryID:    1,
		RequestNumber: "REQ-20250314-123456",
		Status:        domain.RequestStatusApproved,
	}
}

func TestService_Issue(t *testing.T) {
	t.Parallel()

	adminID := uuid.New()
	citizenID := uuid.New()
	req := approvedRequest(citizenID)

	var storedCert *domain.Certificate
	var completedStatus domain.RequestStatus
	certs := &certificateRepoMock{
		CreateFunc: func(ctx context.Context, c *domain.Certificate) (*domain.Certificate, error) {
			out := *c
			out.ID = uuid.New()
			storedCert = &out
			return &out, nil
		},
	}
	requests := &requestRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.ServiceRequest, error) {
			r := *req
			return &r, nil
		},
		UpdateStatusFunc: func(ctx context.Context, id uuid.UUID, from, status domain.RequestStatus, remarks *string, assignedTo *uuid.UUID, resolvedAt *time.Time) (*domain.ServiceRequest, error) {
			if from != domain.RequestStatusApproved {
				t.Errorf("from = %s, want approved", from)
			}
			completedStatus = status
			if resolvedAt == nil {
				t.Error("completion must stamp resolved_at")
			}
			r := *req
			r.Status = status
			return &r, nil
		},
	}
	categories := &categoryRepoMock{
		GetByIDFunc: func(ctx context.Context, id int32) (*domain.ServiceCategory, error) {
			return &domain.ServiceCategory{ID: id, NameEn: "Birth Certificate", IsActive: true}, nil
		},
	}
	citizens := &citizenRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Citizen, error) {
			return &domain.Citizen{ID: id, FullName: "Sunita Patil"}, nil
		},
	}
	files := &fileStoreMock{
		SaveBytesFunc: func(rel string, data []byte) (string, error) {
			if !strings.Contains(string(data), "Sunita Patil") {
				t.Error("artifact must carry the holder name")
			}
			return rel, nil
		},
	}
	svc, events := newService(certs, requests, categories, citizens, files)

	issued, err := svc.Issue(context.Background(), adminID, req.ID)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if !strings.HasPrefix(issued.CertificateNumber, "CERT-") {
		t.Errorf("certificate number = %q", issued.CertificateNumber)
	}
	if issued.QRPayload != "https://gramseva.gov.in/verify/"+issued.CertificateNumber {
		t.Errorf("qr payload = %q", issued.QRPayload)
	}
	if storedCert.FilePath == nil {
		t.Error("artifact reference must be stored")
	}
	if issued.ValidUntil == nil {
		t.Fatal("valid_until must be set")
	}
	wantUntil := time.Now().AddDate(0, 0, 365)
	if issued.ValidUntil.Sub(wantUntil) > time.Hour || wantUntil.Sub(*issued.ValidUntil) > time.Hour {
		t.Errorf("valid_until = %v, want about %v", issued.ValidUntil, wantUntil)
	}
	if completedStatus != domain.RequestStatusCompleted {
		t.Errorf("request status = %s, want completed", completedStatus)
	}
	if len(events.events) != 1 || events.events[0] != domain.EventCertificateIssued {
		t.Errorf("events = %v", events.events)
	}
}

func TestService_Issue_NotApproved(t *testing.T) {
	t.Parallel()

	for _, status := range []domain.RequestStatus{
		domain.RequestStatusPending,
		domain.RequestStatusProcessing,
		domain.RequestStatusRejected,
		domain.RequestStatusCompleted,
	} {
		requests := &requestRepoMock{
			GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.ServiceRequest, error) {
				return &domain.ServiceRequest{ID: id, Status: status}, nil
			},
		}
		svc, _ := newService(&certificateRepoMock{}, requests, nil, nil, nil)

		_, err := svc.Issue(context.Background(), uuid.New(), uuid.New())
		if !errors.Is(err, domain.ErrNotApproved) {
			t.Errorf("Issue on %s request: error = %v, want ErrNotApproved", status, err)
		}
	}
}

func TestService_Issue_ConcurrentCompletionRejected(t *testing.T) {
	t.Parallel()

	citizenID := uuid.New()
	req := approvedRequest(citizenID)

	var removed []string
	certs := &certificateRepoMock{
		CreateFunc: func(ctx context.Context, c *domain.Certificate) (*domain.Certificate, error) {
			out := *c
			out.ID = uuid.New()
			return &out, nil
		},
	}
	requests := &requestRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.ServiceRequest, error) {
			r := *req
			return &r, nil
		},
		// Another admin completed the request between the read and the
		// guarded update.
		UpdateStatusFunc: func(ctx context.Context, id uuid.UUID, from, status domain.RequestStatus, remarks *string, assignedTo *uuid.UUID, resolvedAt *time.Time) (*domain.ServiceRequest, error) {
			return nil, domain.ErrNotFound
		},
	}
	categories := &categoryRepoMock{
		GetByIDFunc: func(ctx context.Context, id int32) (*domain.ServiceCategory, error) {
			return &domain.ServiceCategory{ID: id, NameEn: "Birth Certificate", IsActive: true}, nil
		},
	}
	citizens := &citizenRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Citizen, error) {
			return &domain.Citizen{ID: id, FullName: "Sunita Patil"}, nil
		},
	}
	files := &fileStoreMock{
		SaveBytesFunc: func(rel string, data []byte) (string, error) { return rel, nil },
		RemoveFunc: func(rel string) error {
			removed = append(removed, rel)
			return nil
		},
	}
	svc, events := newService(certs, requests, categories, citizens, files)

	_, err := svc.Issue(context.Background(), uuid.New(), req.ID)
	if !errors.Is(err, domain.ErrNotApproved) {
		t.Fatalf("error = %v, want ErrNotApproved", err)
	}
	if len(removed) != 1 {
		t.Fatalf("removed artifacts = %v, want the rolled-back one", removed)
	}
	if len(events.events) != 0 {
		t.Errorf("no events on a failed issuance, got %v", events.events)
	}
}

func TestService_Issue_NumberCollisionLeavesNoArtifact(t *testing.T) {
	t.Parallel()

	citizenID := uuid.New()
	req := approvedRequest(citizenID)

	var saved, removed []string
	attempts := 0
	certs := &certificateRepoMock{
		CreateFunc: func(ctx context.Context, c *domain.Certificate) (*domain.Certificate, error) {
			attempts++
			if attempts == 1 {
				return nil, domain.ErrAlreadyExists
			}
			out := *c
			out.ID = uuid.New()
			return &out, nil
		},
	}
	requests := &requestRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.ServiceRequest, error) {
			r := *req
			return &r, nil
		},
		UpdateStatusFunc: func(ctx context.Context, id uuid.UUID, from, status domain.RequestStatus, remarks *string, assignedTo *uuid.UUID, resolvedAt *time.Time) (*domain.ServiceRequest, error) {
			r := *req
			r.Status = status
			return &r, nil
		},
	}
	categories := &categoryRepoMock{
		GetByIDFunc: func(ctx context.Context, id int32) (*domain.ServiceCategory, error) {
			return &domain.ServiceCategory{ID: id, NameEn: "Birth Certificate", IsActive: true}, nil
		},
	}
	citizens := &citizenRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Citizen, error) {
			return &domain.Citizen{ID: id, FullName: "Sunita Patil"}, nil
		},
	}
	files := &fileStoreMock{
		SaveBytesFunc: func(rel string, data []byte) (string, error) {
			saved = append(saved, rel)
			return rel, nil
		},
		RemoveFunc: func(rel string) error {
			removed = append(removed, rel)
			return nil
		},
	}
	svc, _ := newService(certs, requests, categories, citizens, files)

	issued, err := svc.Issue(context.Background(), uuid.New(), req.ID)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if len(saved) != 2 || len(removed) != 1 {
		t.Fatalf("saved = %v removed = %v, want the colliding artifact cleaned up", saved, removed)
	}
	if removed[0] != saved[0] {
		t.Errorf("removed %q, want %q", removed[0], saved[0])
	}
	if issued.FilePath == nil || *issued.FilePath != saved[1] {
		t.Errorf("file path = %v, want %q", issued.FilePath, saved[1])
	}
}

func TestService_Verify(t *testing.T) {
	t.Parallel()

	past := time.Now().AddDate(0, 0, -1)
	future := time.Now().AddDate(1, 0, 0)
	citizenID := uuid.New()

	certs := &certificateRepoMock{
		GetByNumberFunc: func(ctx context.Context, number string) (*domain.Certificate, error) {
			cert := &domain.Certificate{
				ID:                uuid.New(),
				CitizenID:         citizenID,
				CertificateType:   "Income Certificate",
				CertificateNumber: number,
			}
			switch number {
			case "CERT-2024-00000001":
				cert.ValidUntil = &past
			case "CERT-2025-00000001":
				cert.ValidUntil = &future
			}
			return cert, nil
		},
	}
	citizens := &citizenRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Citizen, error) {
			email := "private@example.com"
			return &domain.Citizen{ID: id, FullName: "Ram Jadhav", Mobile: "9876543210", Email: &email}, nil
		},
	}
	svc, _ := newService(certs, nil, nil, citizens, nil)

	current, err := svc.Verify(context.Background(), "CERT-2025-00000001")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !current.Valid {
		t.Error("certificate valid until next year must verify as valid")
	}
	if current.HolderName != "Ram Jadhav" {
		t.Errorf("holder = %q", current.HolderName)
	}

	expired, err := svc.Verify(context.Background(), "CERT-2024-00000001")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if expired.Valid {
		t.Error("expired certificate must verify as invalid")
	}

	// No expiry date means the certificate never expires.
	forever, err := svc.Verify(context.Background(), "CERT-2023-00000001")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !forever.Valid {
		t.Error("certificate without expiry must verify as valid")
	}
}

func TestService_Download_Access(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	path := "certificates/CERT-2025-00000001.txt"
	certs := &certificateRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Certificate, error) {
			return &domain.Certificate{ID: id, CitizenID: owner, FilePath: &path}, nil
		},
	}
	files := &fileStoreMock{
		OpenFunc: func(rel string) (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader("artifact")), nil
		},
	}
	svc, _ := newService(certs, nil, nil, nil, files)
	ctx := context.Background()

	// Owner may download.
	result, err := svc.Download(ctx, owner, domain.RoleCitizen.String(), uuid.New())
	if err != nil {
		t.Fatalf("Download as owner: %v", err)
	}
	result.Body.Close()

	// Admin may download someone else's.
	if _, err := svc.Download(ctx, uuid.New(), domain.RoleAdmin.String(), uuid.New()); err != nil {
		t.Fatalf("Download as admin: %v", err)
	}

	// Another citizen may not.
	if _, err := svc.Download(ctx, uuid.New(), domain.RoleCitizen.String(), uuid.New()); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("error = %v, want ErrForbidden", err)
	}
}

func TestService_Download_ArtifactMissing(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	path := "certificates/gone.txt"
	certs := &certificateRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Certificate, error) {
			return &domain.Certificate{ID: id, CitizenID: owner, FilePath: &path}, nil
		},
	}
	files := &fileStoreMock{
		OpenFunc: func(rel string) (io.ReadCloser, error) {
			return nil, errors.New("no such file")
		},
	}
	svc, _ := newService(certs, nil, nil, nil, files)

	if _, err := svc.Download(context.Background(), owner, "citizen", uuid.New()); !errors.Is(err, domain.ErrArtifactMissing) {
		t.Fatalf("error = %v, want ErrArtifactMissing", err)
	}
}
