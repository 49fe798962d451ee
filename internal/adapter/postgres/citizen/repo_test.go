package citizen_test

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/gramseva/gramseva-backend/internal/adapter/postgres/citizen"
	"github.com/gramseva/gramseva-backend/internal/adapter/postgres/testhelper"
	"github.com/gramseva/gramseva-backend/internal/domain"
)

func newRepo(t *testing.T) *citizen.Repo {
	t.Helper()
	return citizen.New(testhelper.SetupTestDB(t))
}

func randomMobile() string {
	return fmt.Sprintf("9%09d", rand.IntN(1_000_000_000))
}

func createCitizen(t *testing.T, repo *citizen.Repo, name string) *domain.Citizen {
	t.Helper()
	created, err := repo.Create(context.Background(), &domain.Citizen{
		FullName:           name,
		Mobile:             randomMobile(),
		LanguagePreference: "en",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return created
}

func TestRepo_CreateAndGetByMobile(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)
	ctx := context.Background()

	created := createCitizen(t, repo, "Sunita Patil")
	if !created.IsActive {
		t.Fatal("new citizen should be active")
	}
	if created.State == "" {
		t.Fatal("expected default state to be set")
	}

	got, err := repo.GetByMobile(ctx, created.Mobile)
	if err != nil {
		t.Fatalf("GetByMobile: %v", err)
	}
	if got.ID != created.ID {
		t.Fatalf("expected citizen %s, got %s", created.ID, got.ID)
	}
}

func TestRepo_Create_DuplicateMobile(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)
	ctx := context.Background()

	created := createCitizen(t, repo, "Ramesh Kumar")

	_, err := repo.Create(ctx, &domain.Citizen{
		FullName:           "Someone Else",
		Mobile:             created.Mobile,
		LanguagePreference: "hi",
	})
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists for duplicate mobile, got %v", err)
	}
}

func TestRepo_GetByID_NotFound(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)

	_, err := repo.GetByID(context.Background(), uuid.New())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRepo_UpdateProfile(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)
	ctx := context.Background()

	created := createCitizen(t, repo, "Old Name")

	email := "sunita@example.com"
	ward := "Ward 4"
	created.FullName = "New Name"
	created.Email = &email
	created.VillageWard = &ward
	created.LanguagePreference = "mr"

	updated, err := repo.UpdateProfile(ctx, created)
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.FullName != "New Name" {
		t.Fatalf("expected updated name, got %q", updated.FullName)
	}
	if updated.Email == nil || *updated.Email != email {
		t.Fatalf("expected email %q, got %v", email, updated.Email)
	}
	if updated.LanguagePreference != "mr" {
		t.Fatalf("expected language mr, got %q", updated.LanguagePreference)
	}
	if updated.UpdatedAt.Before(updated.CreatedAt) {
		t.Fatal("expected updated_at to advance")
	}
}

func TestRepo_ListAndCount_Search(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)
	ctx := context.Background()

	// Unique marker so the shared database does not bleed into the filter.
	marker := fmt.Sprintf("Zeta%d", rand.IntN(1_000_000))
	for i := 0; i < 3; i++ {
		createCitizen(t, repo, fmt.Sprintf("%s Citizen %d", marker, i))
	}

	listed, err := repo.List(ctx, marker, 10, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(listed) != 3 {
		t.Fatalf("expected 3 citizens, got %d", len(listed))
	}

	count, err := repo.Count(ctx, marker)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected count 3, got %d", count)
	}

	page, err := repo.List(ctx, marker, 2, 2)
	if err != nil {
		t.Fatalf("List page 2: %v", err)
	}
	if len(page) != 1 {
		t.Fatalf("expected 1 citizen on second page, got %d", len(page))
	}
}

func TestRepo_CountCreatedSince(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)
	ctx := context.Background()

	before := time.Now().Add(-time.Minute)
	createCitizen(t, repo, "Recent Citizen")

	n, err := repo.CountCreatedSince(ctx, before)
	if err != nil {
		t.Fatalf("CountCreatedSince: %v", err)
	}
	if n < 1 {
		t.Fatalf("expected at least 1 recent citizen, got %d", n)
	}

	future, err := repo.CountCreatedSince(ctx, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("CountCreatedSince future: %v", err)
	}
	if future != 0 {
		t.Fatalf("expected 0 citizens from the future, got %d", future)
	}
}
