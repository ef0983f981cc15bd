package scripts

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// DefaultExclude are path segments never embedded; "build" holds generated
// and intermediate files.
var DefaultExclude = []string{"build"}

// Options configures script discovery.
type Options struct {
	Extension string   // e.g. ".lua"
	Exclude   []string // path segments to skip
	Recursive bool     // descend into subdirectories
}

func (o *Options) extension() string {
	if o == nil || o.Extension == "" {
		return ".lua"
	}
	return o.Extension
}

func (o *Options) exclude() []string {
	if o == nil || o.Exclude == nil {
		return DefaultExclude
	}
	return o.Exclude
}

// isExcluded reports whether any segment of rel matches an excluded name.
func isExcluded(rel string, exclude []string) bool {
	for _, seg := range strings.Split(filepath.ToSlash(rel), "/") {
		for _, ex := range exclude {
			if seg == ex {
				return true
			}
		}
	}
	return false
}

// Discover lists the scripts under dir, sorted by relative path. Content is
// not read; see ReadAll and Load.
func Discover(ctx context.Context, dir string, opts *Options) ([]ScriptFile, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDirectoryNotFound, dir, err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDirectoryNotFound, dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrDirectoryNotFound, dir)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var files []ScriptFile
	if opts != nil && opts.Recursive {
		files, err = walkDir(ctx, dir, opts)
	} else {
		files, err = listDir(dir, opts)
	}
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].RelPath < files[j].RelPath })

	seen := make(map[string]string, len(files))
	for _, f := range files {
		if prev, ok := seen[f.Ident]; ok {
			return nil, fmt.Errorf("%w: %s and %s both map to %s_CHUNKS",
				ErrDuplicateIdentifier, prev, f.RelPath, f.Ident)
		}
		seen[f.Ident] = f.RelPath
	}

	return files, nil
}

func listDir(dir string, opts *Options) ([]ScriptFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFileRead, dir, err)
	}

	ext, exclude := opts.extension(), opts.exclude()
	var files []ScriptFile
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ext || isExcluded(e.Name(), exclude) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if e.Type()&fs.ModeSymlink != 0 {
			target, err := os.Stat(path)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %w", ErrFileRead, path, err)
			}
			if target.IsDir() {
				continue
			}
		}
		files = append(files, newScriptFile(path, e.Name()))
	}
	return files, nil
}

func walkDir(ctx context.Context, dir string, opts *Options) ([]ScriptFile, error) {
	ext, exclude := opts.extension(), opts.exclude()

	var files []ScriptFile
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			return fmt.Errorf("%w: %s: %w", ErrFileRead, path, walkErr)
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		if d.IsDir() {
			if rel != "." && isExcluded(rel, exclude) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ext || isExcluded(rel, exclude) {
			return nil
		}
		files = append(files, newScriptFile(path, rel))
		return nil
	})
	return files, err
}

func newScriptFile(path, rel string) ScriptFile {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return ScriptFile{
		Name:    stem,
		Ident:   Identifier(stem),
		Path:    path,
		RelPath: filepath.ToSlash(rel),
	}
}

// ReadAll reads the content of every file, in parallel, keeping the order of
// files. The first failure cancels the remaining reads.
func ReadAll(ctx context.Context, files []ScriptFile) ([]ScriptFile, error) {
	out := make([]ScriptFile, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(runtime.NumCPU(), len(files))))
	for i, f := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			content, err := readFile(f.Path)
			if err != nil {
				return err
			}
			f.Content = content
			out[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func readFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrFileRead, path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrFileRead, path, err)
	}
	return normalizeNewlines(string(data)), nil
}

var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// normalizeNewlines turns CRLF and lone CR line endings into LF. A bare CR
// inside a C string literal ends the line for the compiler.
func normalizeNewlines(s string) string {
	if !strings.Contains(s, "\r") {
		return s
	}
	return newlines.Replace(s)
}

// Load discovers the scripts under dir and reads each one.
func Load(ctx context.Context, dir string, opts *Options) ([]ScriptFile, error) {
	files, err := Discover(ctx, dir, opts)
	if err != nil {
		return nil, err
	}
	return ReadAll(ctx, files)
}
