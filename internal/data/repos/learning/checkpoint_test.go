package learning

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/ngocanhdo/engkids-backend/internal/data/repos/testutil"
	types "github.com/ngocanhdo/engkids-backend/internal/domain"
)

func TestCheckpointRepoReplaceForVersion(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	repo := NewCheckpointRepo(gdb, testutil.Logger(t))

	lesson := testutil.SeedLesson(t, ctx, tx, "Chào hỏi")
	version := testutil.SeedLessonVersion(t, ctx, tx, lesson.ID)

	first := []*types.Checkpoint{
		{ID: uuid.New(), VersionID: version.ID, Token: "cp-b", TimeSec: 30, Kind: "note"},
		{ID: uuid.New(), VersionID: version.ID, Token: "cp-a", TimeSec: 12.5, Kind: "vocab"},
	}
	if err := repo.ReplaceForVersion(ctx, tx, version.ID, first); err != nil {
		t.Fatalf("ReplaceForVersion: %v", err)
	}

	rows, err := repo.GetByVersionIDs(ctx, tx, []uuid.UUID{version.ID})
	if err != nil {
		t.Fatalf("GetByVersionIDs: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 checkpoints, got %d", len(rows))
	}
	if rows[0].Token != "cp-a" || rows[1].Token != "cp-b" {
		t.Fatalf("expected time_sec ordering cp-a, cp-b, got %s, %s", rows[0].Token, rows[1].Token)
	}

	second := []*types.Checkpoint{
		{ID: uuid.New(), VersionID: version.ID, Token: "cp-c", TimeSec: 5, Kind: "question"},
	}
	if err := repo.ReplaceForVersion(ctx, tx, version.ID, second); err != nil {
		t.Fatalf("ReplaceForVersion again: %v", err)
	}

	rows, err = repo.GetByVersionIDs(ctx, tx, []uuid.UUID{version.ID})
	if err != nil {
		t.Fatalf("GetByVersionIDs after replace: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected old rows gone, got %d rows", len(rows))
	}
	if rows[0].Token != "cp-c" {
		t.Fatalf("expected cp-c, got %s", rows[0].Token)
	}
}

func TestCheckpointRepoReplaceForVersionEmpty(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	repo := NewCheckpointRepo(gdb, testutil.Logger(t))

	lesson := testutil.SeedLesson(t, ctx, tx, "Số đếm")
	version := testutil.SeedLessonVersion(t, ctx, tx, lesson.ID)

	seedRows := []*types.Checkpoint{
		{ID: uuid.New(), VersionID: version.ID, Token: "cp-x", TimeSec: 8, Kind: "note"},
	}
	if err := repo.ReplaceForVersion(ctx, tx, version.ID, seedRows); err != nil {
		t.Fatalf("seed ReplaceForVersion: %v", err)
	}
	if err := repo.ReplaceForVersion(ctx, tx, version.ID, nil); err != nil {
		t.Fatalf("ReplaceForVersion with empty list: %v", err)
	}
	rows, err := repo.GetByVersionIDs(ctx, tx, []uuid.UUID{version.ID})
	if err != nil {
		t.Fatalf("GetByVersionIDs: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected empty list to clear all rows, got %d", len(rows))
	}
}
