// Package validate checks scripts for syntax errors before they are embedded.
package validate

import (
	"errors"
	"fmt"
	"sync"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_lua "github.com/tree-sitter-grammars/tree-sitter-lua/bindings/go"
)

// ErrSyntax is wrapped by every SyntaxError.
var ErrSyntax = errors.New("syntax error")

// SyntaxError locates the first syntax error in a script. Line and Column are 1-based.
type SyntaxError struct {
	Name   string
	Line   int
	Column int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %v", e.Name, e.Line, e.Column, ErrSyntax)
}

func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

var (
	luaOnce sync.Once
	luaLang *tree_sitter.Language
	luaPool *sync.Pool
)

func initLua() {
	luaOnce.Do(func() {
		luaLang = tree_sitter.NewLanguage(tree_sitter_lua.Language())
		luaPool = &sync.Pool{
			New: func() any {
				p := tree_sitter.NewParser()
				if err := p.SetLanguage(luaLang); err != nil {
					return nil
				}
				return p
			},
		}
	})
}

// Lua parses src as Lua and returns a *SyntaxError for the first ERROR or
// MISSING node, or nil when the script parses cleanly.
func Lua(name string, src []byte) error {
	initLua()

	p, _ := luaPool.Get().(*tree_sitter.Parser)
	if p == nil {
		return fmt.Errorf("failed to get lua parser")
	}
	tree := p.Parse(src, nil)
	luaPool.Put(p)
	if tree == nil {
		return fmt.Errorf("parse failed for %s", name)
	}
	defer tree.Close()

	root := tree.RootNode()
	if !root.HasError() {
		return nil
	}

	bad := firstError(root)
	if bad == nil {
		bad = root
	}
	pos := bad.StartPosition()
	return &SyntaxError{
		Name:   name,
		Line:   int(pos.Row) + 1,
		Column: int(pos.Column) + 1,
	}
}

// firstError returns the first ERROR or MISSING node in document order.
func firstError(node *tree_sitter.Node) *tree_sitter.Node {
	if node.IsError() || node.IsMissing() {
		return node
	}
	if !node.HasError() {
		return nil
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		if found := firstError(child); found != nil {
			return found
		}
	}
	return nil
}
