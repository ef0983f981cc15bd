// Package scripts discovers script files and turns them into the chunked,
// escaped table that is embedded into the generated C sources.
package scripts

// DefaultChunkSize is the maximum number of characters per string literal.
const DefaultChunkSize = 2000

// ScriptFile is a discovered script and its raw content.
type ScriptFile struct {
	Name    string // file stem: "hello"
	Ident   string // identifier-safe prefix: "HELLO"
	Path    string // absolute path on disk
	RelPath string // slash-separated, relative to the scripts dir
	Content string // raw text, read once
}

// Entry is one row of the embedded-script table.
type Entry struct {
	Name      string
	Ident     string
	Chunks    []string // escaped literals, in source order
	NumChunks int
}

// ChunkArray returns the C array name for the entry, or "" when the entry has
// no chunks and therefore no array.
func (e Entry) ChunkArray() string {
	if len(e.Chunks) == 0 {
		return ""
	}
	return e.Ident + "_CHUNKS"
}
