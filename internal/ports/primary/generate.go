// Package primary defines the primary ports (driving adapters) for the application.
package primary

import "context"

// GenerateService defines the primary port for generating the embedded-script sources.
type GenerateService interface {
	// Generate discovers, chunks and emits the scripts. With DryRun nothing is written.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// Check renders the artifacts in memory and compares them with the files on disk.
	Check(ctx context.Context, req GenerateRequest) (*CheckResponse, error)
}

// HistoryService defines the primary port for reading the run ledger.
type HistoryService interface {
	// ListRuns retrieves the most recent runs.
	ListRuns(ctx context.Context, limit int) ([]*Run, error)

	// GetRunScripts retrieves the scripts embedded by a run.
	GetRunScripts(ctx context.Context, runID int64) ([]*RunScript, error)
}

// GenerateRequest contains the resolved inputs of a generation run.
type GenerateRequest struct {
	RootDir     string
	ScriptsDir  string
	Extension   string
	Exclude     []string
	Recursive   bool
	OutputDir   string
	OutputName  string
	ChunkSize   int
	CheckSyntax bool
	DryRun      bool
}

// GenerateResponse contains the result of a generation run.
type GenerateResponse struct {
	RunID     int64 // 0 when the ledger is disabled or on dry runs
	Scripts   []*RunScript
	Artifacts []*Artifact
	Written   bool
}

// CheckResponse contains the result of comparing artifacts with disk.
type CheckResponse struct {
	Artifacts []*Artifact
	Stale     []string // paths that are missing or differ
}

// UpToDate reports whether every artifact matches the disk.
func (r *CheckResponse) UpToDate() bool {
	return len(r.Stale) == 0
}

// Artifact is a rendered output file.
type Artifact struct {
	Path    string
	Content string
	Hash    string // xxh3, hex
}

// Run represents a ledger run at the port boundary.
type Run struct {
	ID          int64
	RootDir     string
	ScriptsDir  string
	OutputDir   string
	ScriptCount int
	ChunkCount  int
	HeaderHash  string
	SourceHash  string
	CreatedAt   string
}

// RunScript represents one embedded script at the port boundary.
type RunScript struct {
	Name        string
	RelPath     string
	Bytes       int
	NumChunks   int
	ContentHash string
}
