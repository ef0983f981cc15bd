// Package cgen provides the templates for the generated C artifacts.
package cgen

import (
	"embed"
	"text/template"

	"github.com/example/scriptembed/internal/scripts"
)

//go:embed c/*.tmpl
var cTemplates embed.FS

// Template names.
const (
	Header = "header.h"
	Source = "source.c"
)

// GetTemplate returns the content of a C template.
func GetTemplate(name string) (string, error) {
	content, err := cTemplates.ReadFile("c/" + name + ".tmpl")
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// TemplateFuncs returns the template function map for the C templates.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"cstring": scripts.Escape,
		"guard":   HeaderGuard,
	}
}

// HeaderGuard derives the include guard from a header file name.
// e.g., "generated_scripts.h" -> "GENERATED_SCRIPTS_H"
func HeaderGuard(headerName string) string {
	return scripts.Identifier(headerName)
}
