package makechap

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
)

// Input describes one chapter to renumber.
type Input struct {
	Name    string // document name, used in external index links
	Content string // full chapter text
	Number  int    // chapter number, 0 or greater
	Base    string // anchor prefix; empty = derived from Name
}

// Heading records how one heading line was rewritten.
type Heading struct {
	Level     int
	Label     string // "3.2.1"
	Anchor    string
	Text      string
	Preserved bool // true when an existing, non-autogenerated anchor was kept
}

// Result holds the output of one renumbering pass.
type Result struct {
	Lines    []string  // rewritten lines, index substituted
	Content  string    // Lines joined with "\n" plus a trailing newline
	Index    string    // index fragment with in-page links
	Title    string    // text of the last H1, empty if none
	Headings []Heading // rewritten headings in document order
}

// ContentsEntry renders the block printed for a contents page spanning chapters:
// a top-level entry linking to the chapter anchor, a blank line, then the index
// with links qualified by name.
func (r *Result) ContentsEntry(name, base string, number int) string {
	return fmt.Sprintf("<h3><a href=\"%s#%s\">%d %s</a></h3>\n\n%s\n",
		name, base, number, r.Title, ExternalIndex(r.Index, name))
}

// Option configures a Renumberer.
type Option func(*Renumberer)

// WithLogger sets the logger used for per-heading debug output.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Renumberer) {
		r.logger = logger
	}
}

// WithIndexClass sets the CSS class of the generated index container.
// Empty keeps DefaultIndexClass.
func WithIndexClass(class string) Option {
	return func(r *Renumberer) {
		if class != "" {
			r.indexClass = class
		}
	}
}

// indexClassPattern accepts a single CSS class token.
var indexClassPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// ValidateIndexClass checks that class can be written into the index container.
func ValidateIndexClass(class string) error {
	if !indexClassPattern.MatchString(class) {
		return fmt.Errorf("%w: %q", ErrInvalidIndexClass, class)
	}
	return nil
}

// BaseName derives the anchor prefix from a document name: the file name
// without directories, cut at its first dot ("Doc/Preface.html" -> "Preface").
func BaseName(name string) string {
	base := filepath.Base(name)
	if i := strings.IndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	return base
}

// SplitLines splits text at "\n", "\r\n" and "\r". A trailing line break does
// not produce a final empty line.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}
