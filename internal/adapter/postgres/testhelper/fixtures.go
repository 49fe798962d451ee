package testhelper

import (
	"context"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Fixture helpers insert prerequisite rows directly, bypassing the
// repositories under test.

// CreateCitizen inserts a citizen with a random mobile and returns its id.
func CreateCitizen(t *testing.T, pool *pgxpool.Pool) uuid.UUID {
	t.Helper()

	id := uuid.New()
	mobile := fmt.Sprintf("9%09d", rand.IntN(1_000_000_000))
	_, err := pool.Exec(context.Background(),
		`INSERT INTO citizens (id, full_name, mobile) VALUES ($1, $2, $3)`,
		id, "Test Citizen", mobile,
	)
	if err != nil {
		t.Fatalf("create citizen fixture: %v", err)
	}
	return id
}

// CreateAdmin inserts an admin account and returns its id.
func CreateAdmin(t *testing.T, pool *pgxpool.Pool) uuid.UUID {
	t.Helper()

	id := uuid.New()
	suffix := uuid.New().String()[:8]
	_, err := pool.Exec(context.Background(),
		`INSERT INTO admins (id, username, email, password_hash, full_name, role)
		 VALUES ($1, $2, $3, $4, $5, 'admin')`,
		id, "admin-"+suffix, "admin-"+suffix+"@example.com", "x", "Test Admin",
	)
	if err != nil {
		t.Fatalf("create admin fixture: %v", err)
	}
	return id
}

// CreateCategory inserts an active service category and returns its id.
func CreateCategory(t *testing.T, pool *pgxpool.Pool) int32 {
	t.Helper()

	var id int32
	err := pool.QueryRow(context.Background(),
		`INSERT INTO service_categories (name_en, fee, processing_days)
		 VALUES ($1, 50, 7) RETURNING id`,
		"Test Service "+uuid.New().String()[:8],
	).Scan(&id)
	if err != nil {
		t.Fatalf("create category fixture: %v", err)
	}
	return id
}

// CreateRequest inserts a service request and returns its id.
func CreateRequest(t *testing.T, pool *pgxpool.Pool, citizenID uuid.UUID, categoryID int32, status string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	number := fmt.Sprintf("REQ-00000000-%06d", rand.IntN(1_000_000))
	_, err := pool.Exec(context.Background(),
		`INSERT INTO service_requests (id, citizen_id, category_id, request_number, status)
		 VALUES ($1, $2, $3, $4, $5)`,
		id, citizenID, categoryID, number, status,
	)
	if err != nil {
		t.Fatalf("create request fixture: %v", err)
	}
	return id
}
