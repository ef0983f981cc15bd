package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/scriptembed/internal/config"
	"github.com/example/scriptembed/internal/ports/primary"
	"github.com/example/scriptembed/internal/wire"
)

// settings is the resolved project root and config of one invocation.
type settings struct {
	root   string
	cfg    *config.Config
	ledger string
}

// loadSettings resolves --root, --config and --ledger.
func loadSettings(cmd *cobra.Command) (*settings, error) {
	root, _ := cmd.Flags().GetString("root")
	configPath, _ := cmd.Flags().GetString("config")
	ledger, _ := cmd.Flags().GetString("ledger")

	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		root = wd
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	var cfg *config.Config
	if configPath != "" {
		cfg, err = config.LoadConfigFile(configPath)
	} else {
		cfg, err = config.LoadConfig(root)
	}
	if err != nil {
		return nil, err
	}

	s := &settings{root: root, cfg: cfg, ledger: cfg.LedgerPath(root)}
	if ledger != "" {
		s.ledger = resolvePath(root, ledger)
	}
	slog.Debug("settings.loaded", "root", root, "scripts", cfg.ScriptsPath(root), "ledger", s.ledger)
	return s, nil
}

// request builds the generate request for these settings.
func (s *settings) request() primary.GenerateRequest {
	opts := s.cfg.DiscoverOptions()
	out := s.cfg.OutputSpec(s.root)
	return primary.GenerateRequest{
		RootDir:     s.root,
		ScriptsDir:  s.cfg.ScriptsPath(s.root),
		Extension:   opts.Extension,
		Exclude:     opts.Exclude,
		Recursive:   opts.Recursive,
		OutputDir:   out.Dir,
		OutputName:  out.BaseName,
		ChunkSize:   s.cfg.EffectiveChunkSize(),
		CheckSyntax: s.cfg.CheckSyntax,
	}
}

// resolvePath resolves p against the project root unless it is absolute.
func resolvePath(root, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}

// services opens the services for these settings; the caller must Close them.
func (s *settings) services() (*wire.Services, error) {
	return wire.New(s.ledger)
}

// rel shortens path relative to the project root for display.
func (s *settings) rel(path string) string {
	if r, err := filepath.Rel(s.root, path); err == nil && !strings.HasPrefix(r, "..") {
		return r
	}
	return path
}

// setupLogging installs the default slog logger on stderr.
func setupLogging(cmd *cobra.Command, verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
