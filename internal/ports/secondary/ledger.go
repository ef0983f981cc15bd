// Package secondary defines the secondary ports (driven adapters) for the application.
package secondary

import "context"

// RunRecord represents a generation run as stored in the ledger.
type RunRecord struct {
	ID          int64
	RootDir     string
	ScriptsDir  string
	OutputDir   string
	ScriptCount int
	ChunkCount  int
	HeaderHash  string // xxh3, hex
	SourceHash  string // xxh3, hex
	CreatedAt   string
}

// RunScriptRecord represents one embedded script of a run.
type RunScriptRecord struct {
	RunID       int64
	Name        string
	RelPath     string
	Bytes       int
	NumChunks   int
	ContentHash string // xxh3, hex
}

// RunRepository defines the secondary port for the run ledger.
type RunRepository interface {
	// Record persists a run and its scripts atomically and sets run.ID.
	Record(ctx context.Context, run *RunRecord, scripts []*RunScriptRecord) error

	// List retrieves the most recent runs, newest first.
	List(ctx context.Context, limit int) ([]*RunRecord, error)

	// GetScripts retrieves the scripts recorded for a run, in table order.
	GetScripts(ctx context.Context, runID int64) ([]*RunScriptRecord, error)
}
