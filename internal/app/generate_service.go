// Package app contains the application services that run the embedding pipeline.
package app

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/zeebo/xxh3"

	"github.com/example/scriptembed/internal/generator"
	"github.com/example/scriptembed/internal/ports/primary"
	"github.com/example/scriptembed/internal/ports/secondary"
	"github.com/example/scriptembed/internal/scripts"
	"github.com/example/scriptembed/internal/validate"
)

// SyntaxCheckFunc checks one script; it returns nil when the script is valid.
type SyntaxCheckFunc func(name string, src []byte) error

// GenerateServiceImpl implements the GenerateService interface.
type GenerateServiceImpl struct {
	gen         *generator.Generator
	runRepo     secondary.RunRepository // nil disables the ledger
	checkSyntax SyntaxCheckFunc
}

// NewGenerateService creates a new GenerateService. runRepo may be nil.
func NewGenerateService(runRepo secondary.RunRepository) *GenerateServiceImpl {
	return &GenerateServiceImpl{
		gen:         generator.NewGenerator(),
		runRepo:     runRepo,
		checkSyntax: validate.Lua,
	}
}

// rendered is the in-memory outcome of discovery, chunking and rendering.
type rendered struct {
	files  []scripts.ScriptFile
	table  *scripts.Table
	result *generator.GeneratorResult
}

// Generate discovers, chunks and emits the scripts.
func (s *GenerateServiceImpl) Generate(ctx context.Context, req primary.GenerateRequest) (*primary.GenerateResponse, error) {
	r, err := s.render(ctx, req)
	if err != nil {
		return nil, err
	}

	resp := &primary.GenerateResponse{
		Scripts:   toRunScripts(r.files, r.table),
		Artifacts: toArtifacts(r.result),
	}

	if req.DryRun {
		slog.Info("generate.dry_run", "scripts", len(r.files))
		return resp, nil
	}

	if err := s.gen.Write(r.result); err != nil {
		return nil, err
	}
	resp.Written = true
	for _, a := range resp.Artifacts {
		slog.Debug("generate.wrote", "path", a.Path, "hash", a.Hash)
	}

	if s.runRepo != nil {
		runID, err := s.recordRun(ctx, req, resp)
		if err != nil {
			return nil, fmt.Errorf("failed to record run: %w", err)
		}
		resp.RunID = runID
	}

	slog.Info("generate.done", "scripts", len(r.files), "run_id", resp.RunID)
	return resp, nil
}

// Check renders the artifacts in memory and compares them with the files on disk.
func (s *GenerateServiceImpl) Check(ctx context.Context, req primary.GenerateRequest) (*primary.CheckResponse, error) {
	r, err := s.render(ctx, req)
	if err != nil {
		return nil, err
	}

	resp := &primary.CheckResponse{Artifacts: toArtifacts(r.result)}
	for _, a := range resp.Artifacts {
		onDisk, err := fileHash(a.Path)
		if errors.Is(err, os.ErrNotExist) {
			slog.Debug("check.missing", "path", a.Path)
			resp.Stale = append(resp.Stale, a.Path)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", a.Path, err)
		}
		if onDisk != a.Hash {
			slog.Debug("check.differs", "path", a.Path, "want", a.Hash, "got", onDisk)
			resp.Stale = append(resp.Stale, a.Path)
		}
	}

	slog.Info("check.done", "artifacts", len(resp.Artifacts), "stale", len(resp.Stale))
	return resp, nil
}

func (s *GenerateServiceImpl) render(ctx context.Context, req primary.GenerateRequest) (*rendered, error) {
	opts := &scripts.Options{
		Extension: req.Extension,
		Exclude:   req.Exclude,
		Recursive: req.Recursive,
	}

	files, err := scripts.Load(ctx, req.ScriptsDir, opts)
	if err != nil {
		return nil, err
	}
	slog.Debug("generate.discovered", "dir", req.ScriptsDir, "scripts", len(files))

	if req.CheckSyntax {
		if err := s.checkAll(files); err != nil {
			return nil, err
		}
	}

	table := scripts.NewTable(files, req.ChunkSize)
	result, err := s.gen.Render(table, generator.OutputSpec{
		Dir:      req.OutputDir,
		BaseName: req.OutputName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render: %w", err)
	}

	return &rendered{files: files, table: table, result: result}, nil
}

// checkAll runs the syntax check on every Lua script and reports all failures.
func (s *GenerateServiceImpl) checkAll(files []scripts.ScriptFile) error {
	var errs []error
	for _, f := range files {
		if filepath.Ext(f.Path) != ".lua" {
			continue
		}
		if err := s.checkSyntax(f.RelPath, []byte(f.Content)); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *GenerateServiceImpl) recordRun(ctx context.Context, req primary.GenerateRequest, resp *primary.GenerateResponse) (int64, error) {
	run := &secondary.RunRecord{
		RootDir:     req.RootDir,
		ScriptsDir:  req.ScriptsDir,
		OutputDir:   req.OutputDir,
		ScriptCount: len(resp.Scripts),
		HeaderHash:  resp.Artifacts[0].Hash,
		SourceHash:  resp.Artifacts[1].Hash,
	}

	records := make([]*secondary.RunScriptRecord, len(resp.Scripts))
	for i, rs := range resp.Scripts {
		run.ChunkCount += rs.NumChunks
		records[i] = &secondary.RunScriptRecord{
			Name:        rs.Name,
			RelPath:     rs.RelPath,
			Bytes:       rs.Bytes,
			NumChunks:   rs.NumChunks,
			ContentHash: rs.ContentHash,
		}
	}

	if err := s.runRepo.Record(ctx, run, records); err != nil {
		return 0, err
	}
	return run.ID, nil
}

func toRunScripts(files []scripts.ScriptFile, table *scripts.Table) []*primary.RunScript {
	out := make([]*primary.RunScript, len(files))
	for i, f := range files {
		out[i] = &primary.RunScript{
			Name:        f.Name,
			RelPath:     f.RelPath,
			Bytes:       len(f.Content),
			NumChunks:   table.Entries[i].NumChunks,
			ContentHash: contentHash(f.Content),
		}
	}
	return out
}

func toArtifacts(result *generator.GeneratorResult) []*primary.Artifact {
	out := make([]*primary.Artifact, len(result.Files))
	for i, f := range result.Files {
		out[i] = &primary.Artifact{
			Path:    f.Path,
			Content: f.Content,
			Hash:    contentHash(f.Content),
		}
	}
	return out
}

func contentHash(s string) string {
	h := xxh3.New()
	_, _ = io.WriteString(h, s)
	return hex.EncodeToString(h.Sum(nil))
}

func fileHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := xxh3.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

var _ primary.GenerateService = (*GenerateServiceImpl)(nil)
