// Package generator renders the embedded-script table into C sources and
// writes them to disk.
package generator

import "errors"

// DefaultBaseName is the file name, without extension, of both artifacts.
const DefaultBaseName = "generated_scripts"

var (
	// ErrDirectoryCreate is returned when the output directory cannot be created.
	ErrDirectoryCreate = errors.New("failed to create output directory")

	// ErrFileWrite is returned when an artifact cannot be written.
	ErrFileWrite = errors.New("failed to write generated file")
)

// OutputSpec says where the artifacts go.
type OutputSpec struct {
	Dir      string // output directory
	BaseName string // "generated_scripts" -> generated_scripts.h / generated_scripts.c
}

// HeaderName returns the header file name.
func (o OutputSpec) HeaderName() string {
	return o.baseName() + ".h"
}

// SourceName returns the source file name.
func (o OutputSpec) SourceName() string {
	return o.baseName() + ".c"
}

func (o OutputSpec) baseName() string {
	if o.BaseName == "" {
		return DefaultBaseName
	}
	return o.BaseName
}

// GeneratedFile is one rendered artifact.
type GeneratedFile struct {
	Path    string // full path the file is written to
	Content string // file content
}

// GeneratorResult contains the rendered artifacts, header first.
type GeneratorResult struct {
	Files []GeneratedFile
}
