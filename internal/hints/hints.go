// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/alnah/go-makechap"
)

// ForMalformedHeading returns a hint matching the cause of a heading error.
func ForMalformedHeading(err error) string {
	switch {
	case errors.Is(err, makechap.ErrAmbiguousHeadingText):
		return format("put the title either inside the anchor or after it, not both")
	case errors.Is(err, makechap.ErrMissingHeadingText):
		return format("add the title after the anchor, e.g. <H2><a name=\"x\"></a>Title</H2>")
	default:
		return ""
	}
}

// ForUnterminatedIndex returns a hint for an index block without its closing marker.
func ForUnterminatedIndex() string {
	return format("each " + makechap.IndexMarker + " marker must be paired; remove the stray one and rerun")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-makechap/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Find a user config path (contains .config/go-makechap) to suggest
	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), ".config/go-makechap") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForWriteFailure returns hints for errors rewriting a chapter in place.
func ForWriteFailure(backupDisabled bool) string {
	hints := []string{"check the chapter file and its directory are writable"}
	if !backupDisabled {
		hints = append(hints, "use --no-backup if the backup copy cannot be created")
	}
	return formatHints(hints)
}

// ForChaptersFile returns hints for a missing or empty chapters list.
func ForChaptersFile() string {
	return format("list one chapter file per line; blank lines and # comments are ignored")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
