package generator

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/example/scriptembed/internal/scripts"
	"github.com/example/scriptembed/internal/templates/cgen"
)

// Generator renders C artifacts from templates.
type Generator struct {
	funcs template.FuncMap
}

// NewGenerator creates a new Generator.
func NewGenerator() *Generator {
	return &Generator{
		funcs: cgen.TemplateFuncs(),
	}
}

// Render renders the header and source for table without touching the disk.
func (g *Generator) Render(table *scripts.Table, out OutputSpec) (*GeneratorResult, error) {
	if err := table.Verify(); err != nil {
		return nil, err
	}

	data := struct {
		HeaderName string
		Entries    []scripts.Entry
	}{
		HeaderName: out.HeaderName(),
		Entries:    table.Entries,
	}

	files := []struct {
		template string
		name     string
	}{
		{cgen.Header, out.HeaderName()},
		{cgen.Source, out.SourceName()},
	}

	result := &GeneratorResult{}
	for _, f := range files {
		content, err := g.renderTemplate(f.template, data)
		if err != nil {
			return nil, fmt.Errorf("failed to render %s: %w", f.template, err)
		}
		result.Files = append(result.Files, GeneratedFile{
			Path:    filepath.Join(out.Dir, f.name),
			Content: content,
		})
	}

	return result, nil
}

// Write creates the output directories and writes every file, replacing
// whatever is there. Each file is written to a temporary sibling first and
// renamed into place, so a failed run never leaves a truncated artifact.
func (g *Generator) Write(result *GeneratorResult) error {
	for _, f := range result.Files {
		if err := writeFileAtomic(f.Path, []byte(f.Content)); err != nil {
			return err
		}
	}
	return nil
}

// renderTemplate renders a C template.
func (g *Generator) renderTemplate(name string, data any) (string, error) {
	tmplContent, err := cgen.GetTemplate(name)
	if err != nil {
		return "", err
	}

	tmpl, err := template.New(name).Funcs(g.funcs).Parse(tmplContent)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDirectoryCreate, dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrFileWrite, path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %s: %w", ErrFileWrite, path, err)
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %s: %w", ErrFileWrite, path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrFileWrite, path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrFileWrite, path, err)
	}
	return nil
}
