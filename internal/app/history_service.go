package app

import (
	"context"

	"github.com/example/scriptembed/internal/ports/primary"
	"github.com/example/scriptembed/internal/ports/secondary"
)

// HistoryServiceImpl implements the HistoryService interface.
type HistoryServiceImpl struct {
	runRepo secondary.RunRepository
}

// NewHistoryService creates a new HistoryService with injected dependencies.
func NewHistoryService(runRepo secondary.RunRepository) *HistoryServiceImpl {
	return &HistoryServiceImpl{
		runRepo: runRepo,
	}
}

// ListRuns retrieves the most recent runs.
func (s *HistoryServiceImpl) ListRuns(ctx context.Context, limit int) ([]*primary.Run, error) {
	records, err := s.runRepo.List(ctx, limit)
	if err != nil {
		return nil, err
	}

	runs := make([]*primary.Run, len(records))
	for i, r := range records {
		runs[i] = s.recordToRun(r)
	}
	return runs, nil
}

// GetRunScripts retrieves the scripts embedded by a run.
func (s *HistoryServiceImpl) GetRunScripts(ctx context.Context, runID int64) ([]*primary.RunScript, error) {
	records, err := s.runRepo.GetScripts(ctx, runID)
	if err != nil {
		return nil, err
	}

	out := make([]*primary.RunScript, len(records))
	for i, r := range records {
		out[i] = &primary.RunScript{
			Name:        r.Name,
			RelPath:     r.RelPath,
			Bytes:       r.Bytes,
			NumChunks:   r.NumChunks,
			ContentHash: r.ContentHash,
		}
	}
	return out, nil
}

func (s *HistoryServiceImpl) recordToRun(r *secondary.RunRecord) *primary.Run {
	return &primary.Run{
		ID:          r.ID,
		RootDir:     r.RootDir,
		ScriptsDir:  r.ScriptsDir,
		OutputDir:   r.OutputDir,
		ScriptCount: r.ScriptCount,
		ChunkCount:  r.ChunkCount,
		HeaderHash:  r.HeaderHash,
		SourceHash:  r.SourceHash,
		CreatedAt:   r.CreatedAt,
	}
}

var _ primary.HistoryService = (*HistoryServiceImpl)(nil)
