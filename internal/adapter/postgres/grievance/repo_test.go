package grievance_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gramseva/gramseva-backend/internal/adapter/postgres/grievance"
	"github.com/gramseva/gramseva-backend/internal/adapter/postgres/testhelper"
	"github.com/gramseva/gramseva-backend/internal/domain"
)

func newRepo(t *testing.T) (*grievance.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return grievance.New(pool), pool
}

func createOpen(t *testing.T, repo *grievance.Repo, pool *pgxpool.Pool) *domain.Grievance {
	t.Helper()
	citizenID := testhelper.CreateCitizen(t, pool)

	g, err := repo.Create(context.Background(), &domain.Grievance{
		CitizenID:       citizenID,
		GrievanceNumber: domain.NewGrievanceNumber(time.Now()),
		Category:        "Water Supply",
		Subject:         "No water since morning",
		Description:     "The supply line to our lane is dry.",
		AICategory:      "Water Supply",
		AIPriority:      domain.PriorityNormal,
		Status:          domain.GrievanceStatusOpen,
	})
	if err != nil {
		t.Fatalf("create grievance: %v", err)
	}
	return g
}

func TestRepo_CreateAndGetByNumber(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)

	created := createOpen(t, repo, pool)

	got, err := repo.GetByNumber(context.Background(), created.GrievanceNumber)
	if err != nil {
		t.Fatalf("GetByNumber: %v", err)
	}
	if got.ID != created.ID {
		t.Fatalf("expected grievance %s, got %s", created.ID, got.ID)
	}
	if got.Status != domain.GrievanceStatusOpen {
		t.Errorf("status = %s, want open", got.Status)
	}
	if got.EscalationLevel != 0 {
		t.Errorf("escalation_level = %d, want 0", got.EscalationLevel)
	}
}

func TestRepo_ApplyChange_EscalationIncrementsLevel(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	created := createOpen(t, repo, pool)
	adminID := testhelper.CreateAdmin(t, pool)

	first, err := repo.ApplyChange(ctx, created.ID, grievance.StatusChange{
		Status:     domain.GrievanceStatusEscalated,
		AssignedTo: &adminID,
		Escalate:   true,
	})
	if err != nil {
		t.Fatalf("ApplyChange: %v", err)
	}
	if first.Status != domain.GrievanceStatusEscalated {
		t.Errorf("status = %s, want escalated", first.Status)
	}
	if first.EscalationLevel != 1 {
		t.Errorf("escalation_level = %d, want 1", first.EscalationLevel)
	}
	if first.AssignedTo == nil || *first.AssignedTo != adminID {
		t.Error("assignment not stored")
	}

	second, err := repo.ApplyChange(ctx, created.ID, grievance.StatusChange{
		Status:   domain.GrievanceStatusEscalated,
		Escalate: true,
	})
	if err != nil {
		t.Fatalf("ApplyChange: %v", err)
	}
	if second.EscalationLevel != 2 {
		t.Errorf("escalation_level = %d, want 2", second.EscalationLevel)
	}
	if second.AssignedTo == nil || *second.AssignedTo != adminID {
		t.Error("assignment must survive an update that does not reassign")
	}
}

func TestRepo_ApplyChange_ResolveStampsTimestamp(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)

	created := createOpen(t, repo, pool)

	resolvedAt := time.Now().UTC()
	got, err := repo.ApplyChange(context.Background(), created.ID, grievance.StatusChange{
		Status:     domain.GrievanceStatusResolved,
		ResolvedAt: &resolvedAt,
	})
	if err != nil {
		t.Fatalf("ApplyChange: %v", err)
	}
	if got.Status != domain.GrievanceStatusResolved {
		t.Errorf("status = %s, want resolved", got.Status)
	}
	if got.ResolvedAt == nil {
		t.Error("resolved_at should be stamped")
	}
}

func TestRepo_UpdateTrail(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	created := createOpen(t, repo, pool)
	adminID := testhelper.CreateAdmin(t, pool)

	for _, text := range []string{"Team dispatched", "Valve replaced"} {
		_, err := repo.AppendUpdate(ctx, &domain.GrievanceUpdate{
			GrievanceID: created.ID,
			UpdatedBy:   adminID,
			UpdateText:  text,
			Status:      domain.GrievanceStatusOpen,
		})
		if err != nil {
			t.Fatalf("AppendUpdate: %v", err)
		}
	}

	updates, err := repo.ListUpdates(ctx, created.ID)
	if err != nil {
		t.Fatalf("ListUpdates: %v", err)
	}
	if len(updates) != 2 {
		t.Fatalf("expected 2 updates, got %d", len(updates))
	}
	if updates[0].UpdateText != "Valve replaced" {
		t.Errorf("newest update first, got %q", updates[0].UpdateText)
	}
}

func TestRepo_ListByCitizen(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	citizenID := testhelper.CreateCitizen(t, pool)
	for range 3 {
		_, err := repo.Create(ctx, &domain.Grievance{
			CitizenID:       citizenID,
			GrievanceNumber: domain.NewGrievanceNumber(time.Now()),
			Category:        "Roads",
			Subject:         "Pothole near the school",
			Description:     "Deep pothole, dangerous for two-wheelers.",
			AICategory:      "Roads",
			AIPriority:      domain.PriorityNormal,
			Status:          domain.GrievanceStatusOpen,
		})
		if err != nil {
			t.Fatalf("create grievance: %v", err)
		}
	}

	list, err := repo.ListByCitizen(ctx, citizenID, 10, 0)
	if err != nil {
		t.Fatalf("ListByCitizen: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 grievances, got %d", len(list))
	}

	other, err := repo.ListByCitizen(ctx, uuid.New(), 10, 0)
	if err != nil {
		t.Fatalf("ListByCitizen: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("expected no grievances for unrelated citizen, got %d", len(other))
	}
}
