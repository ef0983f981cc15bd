package scripts

import (
	"strings"
	"testing"
)

func TestNewTable(t *testing.T) {
	files := []ScriptFile{
		{Name: "hello", Ident: "HELLO", Content: `print("hi")`},
		{Name: "empty", Ident: "EMPTY", Content: ""},
		{Name: "long", Ident: "LONG", Content: strings.Repeat("x", 4500)},
	}

	table := NewTable(files, DefaultChunkSize)

	if err := table.Verify(); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if len(table.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(table.Entries))
	}

	hello := table.Entries[0]
	if hello.NumChunks != 1 || hello.Chunks[0] != `print(\"hi\")` {
		t.Errorf("hello entry = %+v", hello)
	}
	if hello.ChunkArray() != "HELLO_CHUNKS" {
		t.Errorf("ChunkArray() = %q, want HELLO_CHUNKS", hello.ChunkArray())
	}

	empty := table.Entries[1]
	if empty.NumChunks != 0 || len(empty.Chunks) != 0 {
		t.Errorf("empty entry = %+v", empty)
	}
	if empty.ChunkArray() != "" {
		t.Errorf("ChunkArray() for empty script = %q, want \"\"", empty.ChunkArray())
	}

	if got := table.Entries[2].NumChunks; got != 3 {
		t.Errorf("long NumChunks = %d, want 3", got)
	}

	if table.Entries[0].Name != "hello" || table.Entries[2].Name != "long" {
		t.Errorf("entries out of order: %s, %s", table.Entries[0].Name, table.Entries[2].Name)
	}
}

func TestTableLookup(t *testing.T) {
	content := "local msg = \"a\\\\b\"\nprint(msg)\n"
	table := NewTable([]ScriptFile{{Name: "msg", Ident: "MSG", Content: content}}, 5)

	got, ok := table.Lookup("msg")
	if !ok {
		t.Fatal("Lookup(msg) not found")
	}
	if got != content {
		t.Errorf("Lookup(msg) = %q, want %q", got, content)
	}

	if _, ok := table.Lookup("missing"); ok {
		t.Error("Lookup(missing) should not be found")
	}
}

func TestTableVerifyDetectsMismatch(t *testing.T) {
	table := &Table{Entries: []Entry{{Name: "bad", Chunks: []string{"a"}, NumChunks: 2}}}
	if err := table.Verify(); err == nil {
		t.Fatal("expected Verify to fail")
	}
}

func TestTableLookupMismatchedCount(t *testing.T) {
	table := &Table{Entries: []Entry{
		{Name: "over", Chunks: []string{"a", `\"b`}, NumChunks: 5},
		{Name: "negative", Chunks: []string{"a"}, NumChunks: -1},
	}}

	got, ok := table.Lookup("over")
	if !ok || got != `a"b` {
		t.Errorf("Lookup(over) = %q, %v, want %q", got, ok, `a"b`)
	}
	if got, ok := table.Lookup("negative"); !ok || got != "" {
		t.Errorf("Lookup(negative) = %q, %v, want empty", got, ok)
	}
}
