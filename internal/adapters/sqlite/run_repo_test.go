package sqlite_test

import (
	"context"
	"testing"

	"github.com/example/scriptembed/internal/adapters/sqlite"
	"github.com/example/scriptembed/internal/ports/secondary"
)

func newRun(root string) *secondary.RunRecord {
	return &secondary.RunRecord{
		RootDir:     root,
		ScriptsDir:  root + "/scripts",
		OutputDir:   root + "/src/server",
		ScriptCount: 2,
		ChunkCount:  3,
		HeaderHash:  "aaaa",
		SourceHash:  "bbbb",
	}
}

func TestRunRepository_Record(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewRunRepository(db)
	ctx := context.Background()

	run := newRun("/proj")
	scripts := []*secondary.RunScriptRecord{
		{Name: "hello", RelPath: "hello.lua", Bytes: 11, NumChunks: 1, ContentHash: "h1"},
		{Name: "auth", RelPath: "auth.lua", Bytes: 4100, NumChunks: 2, ContentHash: "h2"},
	}

	if err := repo.Record(ctx, run, scripts); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if run.ID == 0 {
		t.Fatal("expected run ID to be set")
	}
	if scripts[0].RunID != run.ID {
		t.Errorf("script RunID = %d, want %d", scripts[0].RunID, run.ID)
	}

	got, err := repo.GetScripts(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetScripts failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 scripts, got %d", len(got))
	}
	// Table order is preserved, not alphabetical.
	if got[0].Name != "hello" || got[1].Name != "auth" {
		t.Errorf("scripts = [%s %s], want [hello auth]", got[0].Name, got[1].Name)
	}
	if got[1].NumChunks != 2 || got[1].Bytes != 4100 || got[1].ContentHash != "h2" {
		t.Errorf("auth record = %+v", got[1])
	}
}

func TestRunRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewRunRepository(db)
	ctx := context.Background()

	for _, root := range []string{"/a", "/b", "/c"} {
		if err := repo.Record(ctx, newRun(root), nil); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	runs, err := repo.List(ctx, 2)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].RootDir != "/c" || runs[1].RootDir != "/b" {
		t.Errorf("runs = [%s %s], want newest first [/c /b]", runs[0].RootDir, runs[1].RootDir)
	}
	if runs[0].CreatedAt == "" {
		t.Error("expected CreatedAt to be set")
	}

	all, err := repo.List(ctx, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 runs, got %d", len(all))
	}
}

func TestRunRepository_GetScriptsNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewRunRepository(db)

	if _, err := repo.GetScripts(context.Background(), 42); err == nil {
		t.Fatal("expected error for unknown run")
	}
}

func TestRunRepository_RecordRollsBack(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewRunRepository(db)
	ctx := context.Background()

	// A negative chunk count violates the CHECK constraint on the second insert.
	scripts := []*secondary.RunScriptRecord{
		{Name: "ok", RelPath: "ok.lua", NumChunks: 1, ContentHash: "x"},
		{Name: "bad", RelPath: "bad.lua", NumChunks: -1, ContentHash: "y"},
	}
	if err := repo.Record(ctx, newRun("/proj"), scripts); err == nil {
		t.Fatal("expected Record to fail")
	}

	runs, err := repo.List(ctx, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs after rollback, got %d", len(runs))
	}
}
