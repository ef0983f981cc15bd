package wire

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func TestNewWithoutLedger(t *testing.T) {
	s, err := New("")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer s.Close()

	if s.Generate == nil {
		t.Fatal("expected a GenerateService")
	}
	if _, err := s.History(); !errors.Is(err, ErrLedgerDisabled) {
		t.Errorf("expected ErrLedgerDisabled, got %v", err)
	}
}

func TestNewWithLedger(t *testing.T) {
	s, err := New(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer s.Close()

	history, err := s.History()
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	runs, err := history.ListRuns(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected an empty ledger, got %d runs", len(runs))
	}
}
