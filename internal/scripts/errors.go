package scripts

import "errors"

var (
	// ErrDirectoryNotFound is returned when the scripts directory is missing or not a directory.
	ErrDirectoryNotFound = errors.New("scripts directory not found")

	// ErrFileRead is returned when a directory listing or a script read fails.
	ErrFileRead = errors.New("failed to read script")

	// ErrDuplicateIdentifier is returned when two scripts map to the same C identifier.
	ErrDuplicateIdentifier = errors.New("duplicate script identifier")
)
