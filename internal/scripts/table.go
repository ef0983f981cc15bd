package scripts

import (
	"fmt"
	"strings"
)

// Table is the ordered set of entries emitted into the generated sources.
type Table struct {
	ChunkSize int
	Entries   []Entry
}

// NewTable chunks and escapes every script, keeping the order of files.
func NewTable(files []ScriptFile, chunkSize int) *Table {
	t := &Table{
		ChunkSize: chunkSize,
		Entries:   make([]Entry, 0, len(files)),
	}
	for _, f := range files {
		raw := Chunk(f.Content, chunkSize)
		escaped := make([]string, len(raw))
		for i, c := range raw {
			escaped[i] = Escape(c)
		}
		t.Entries = append(t.Entries, Entry{
			Name:      f.Name,
			Ident:     f.Ident,
			Chunks:    escaped,
			NumChunks: len(escaped),
		})
	}
	return t
}

// Verify checks that every entry's chunk count matches its chunk array.
func (t *Table) Verify() error {
	for _, e := range t.Entries {
		if e.NumChunks != len(e.Chunks) {
			return fmt.Errorf("script %q: num_chunks %d does not match %d chunks", e.Name, e.NumChunks, len(e.Chunks))
		}
	}
	return nil
}

// Lookup scans the table for name and reassembles the original script text,
// the same way the runtime consumer does.
func (t *Table) Lookup(name string) (string, bool) {
	for _, e := range t.Entries {
		if e.Name != name {
			continue
		}
		n := min(e.NumChunks, len(e.Chunks))
		var b strings.Builder
		for _, c := range e.Chunks[:max(n, 0)] {
			b.WriteString(Unescape(c))
		}
		return b.String(), true
	}
	return "", false
}
