package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/ngocanhdo/engkids-backend/internal/data/repos/testutil"
)

func TestStudentRepoGetByPin(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	repo := NewStudentRepo(gdb, testutil.Logger(t))

	seeded := testutil.SeedStudent(t, ctx, tx, "Minh", "Lớp 1A", "1234")
	testutil.SeedStudent(t, ctx, tx, "Lan", "Lớp 1A", "5678")

	got, err := repo.GetByPin(ctx, tx, "1234")
	if err != nil {
		t.Fatalf("GetByPin: %v", err)
	}
	if got == nil {
		t.Fatal("expected a student for pin 1234, got nil")
	}
	if got.ID != seeded.ID {
		t.Fatalf("expected student %s, got %s", seeded.ID, got.ID)
	}

	got, err = repo.GetByPin(ctx, tx, "  1234  ")
	if err != nil {
		t.Fatalf("GetByPin with padding: %v", err)
	}
	if got == nil || got.ID != seeded.ID {
		t.Fatal("expected padded pin to match after trimming")
	}

	got, err = repo.GetByPin(ctx, tx, "0000")
	if err != nil {
		t.Fatalf("GetByPin unknown: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for unknown pin, got %s", got.ID)
	}

	got, err = repo.GetByPin(ctx, tx, "   ")
	if err != nil {
		t.Fatalf("GetByPin blank: %v", err)
	}
	if got != nil {
		t.Fatal("expected nil for blank pin")
	}
}

func TestStudentRepoSearchByName(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	repo := NewStudentRepo(gdb, testutil.Logger(t))

	testutil.SeedStudent(t, ctx, tx, "Anna Tran", "Lớp 2B", "")
	testutil.SeedStudent(t, ctx, tx, "Annabelle Le", "Lớp 1A", "")
	testutil.SeedStudent(t, ctx, tx, "Bao Pham", "Lớp 1A", "")

	results, err := repo.SearchByName(ctx, tx, "anna", "")
	if err != nil {
		t.Fatalf("SearchByName: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 matches for 'anna', got %d", len(results))
	}

	results, err = repo.SearchByName(ctx, tx, "anna", "lớp 1a")
	if err != nil {
		t.Fatalf("SearchByName with class: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 match for 'anna' in Lớp 1A, got %d", len(results))
	}
	if results[0].Name != "Annabelle Le" {
		t.Fatalf("expected Annabelle Le, got %s", results[0].Name)
	}

	results, err = repo.SearchByName(ctx, tx, "", "")
	if err != nil {
		t.Fatalf("SearchByName blank: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no results for blank name, got %d", len(results))
	}
}

func TestStudentRepoUpdateFields(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	repo := NewStudentRepo(gdb, testutil.Logger(t))

	seeded := testutil.SeedStudent(t, ctx, tx, "Minh", "Lớp 1A", "")

	if err := repo.UpdateFields(ctx, tx, seeded.ID, map[string]interface{}{
		"score": 120,
		"stars": 4,
	}); err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}

	got, err := repo.GetByIDs(ctx, tx, []uuid.UUID{seeded.ID})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 student, got %d", len(got))
	}
	if got[0].Score != 120 || got[0].Stars != 4 {
		t.Fatalf("expected score=120 stars=4, got score=%d stars=%d", got[0].Score, got[0].Stars)
	}
}
