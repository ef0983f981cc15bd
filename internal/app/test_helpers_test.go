package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/example/scriptembed/internal/ports/secondary"
)

// Ensure mockRunRepository implements the interface
var _ secondary.RunRepository = (*mockRunRepository)(nil)

// mockRunRepository implements secondary.RunRepository for testing.
type mockRunRepository struct {
	runs      []*secondary.RunRecord
	scripts   map[int64][]*secondary.RunScriptRecord
	recordErr error
	listErr   error
}

func newMockRunRepository() *mockRunRepository {
	return &mockRunRepository{
		scripts: make(map[int64][]*secondary.RunScriptRecord),
	}
}

func (m *mockRunRepository) Record(ctx context.Context, run *secondary.RunRecord, scripts []*secondary.RunScriptRecord) error {
	if m.recordErr != nil {
		return m.recordErr
	}
	run.ID = int64(len(m.runs) + 1)
	run.CreatedAt = "2026-01-01T00:00:00Z"
	for _, s := range scripts {
		s.RunID = run.ID
	}
	m.runs = append(m.runs, run)
	m.scripts[run.ID] = scripts
	return nil
}

func (m *mockRunRepository) List(ctx context.Context, limit int) ([]*secondary.RunRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []*secondary.RunRecord
	for i := len(m.runs) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, m.runs[i])
	}
	return out, nil
}

func (m *mockRunRepository) GetScripts(ctx context.Context, runID int64) ([]*secondary.RunScriptRecord, error) {
	scripts, ok := m.scripts[runID]
	if !ok {
		return nil, errors.New("run not found")
	}
	return scripts, nil
}

// newProject creates a project root with the given scripts under scripts/.
func newProject(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, "scripts", filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}
