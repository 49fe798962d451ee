package category_test

import (
	"context"
	"errors"
	"testing"

	"github.com/gramseva/gramseva-backend/internal/adapter/postgres/category"
	"github.com/gramseva/gramseva-backend/internal/adapter/postgres/testhelper"
	"github.com/gramseva/gramseva-backend/internal/domain"
)

func newRepo(t *testing.T) *category.Repo {
	t.Helper()
	return category.New(testhelper.SetupTestDB(t))
}

func TestRepo_CreateAndGetByID(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)
	ctx := context.Background()

	desc := "Official birth registration certificate"
	created, err := repo.Create(ctx, &domain.ServiceCategory{
		NameEn:         "Birth Certificate",
		NameHi:         "जन्म प्रमाण पत्र",
		NameMr:         "जन्म दाखला",
		Description:    &desc,
		Fee:            50,
		ProcessingDays: 7,
		IsActive:       true,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected generated id")
	}

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.NameEn != "Birth Certificate" {
		t.Fatalf("expected name, got %q", got.NameEn)
	}
	if got.Fee != 50 {
		t.Fatalf("expected fee 50, got %v", got.Fee)
	}
	if got.LocalizedName("mr") != "जन्म दाखला" {
		t.Fatalf("expected marathi name, got %q", got.LocalizedName("mr"))
	}
}

func TestRepo_GetByID_NotFound(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)

	_, err := repo.GetByID(context.Background(), 999_999)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRepo_ListActive_SkipsInactive(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)
	ctx := context.Background()

	active, err := repo.Create(ctx, &domain.ServiceCategory{
		NameEn: "Trade License", Fee: 200, ProcessingDays: 20, IsActive: true,
	})
	if err != nil {
		t.Fatalf("Create active: %v", err)
	}
	retired, err := repo.Create(ctx, &domain.ServiceCategory{
		NameEn: "Retired Service", Fee: 10, ProcessingDays: 1, IsActive: false,
	})
	if err != nil {
		t.Fatalf("Create inactive: %v", err)
	}

	listed, err := repo.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}

	seen := map[int32]bool{}
	for _, c := range listed {
		seen[c.ID] = true
	}
	if !seen[active.ID] {
		t.Fatal("expected active category in listing")
	}
	if seen[retired.ID] {
		t.Fatal("inactive category must not be listed")
	}
}

func TestRepo_Count(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)
	ctx := context.Background()

	before, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}

	if _, err := repo.Create(ctx, &domain.ServiceCategory{
		NameEn: "Water Connection", Fee: 500, ProcessingDays: 30, IsActive: true,
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	after, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	// Other parallel tests insert too, so only a lower bound is safe.
	if after < before+1 {
		t.Fatalf("expected count to grow, got %d -> %d", before, after)
	}
}
