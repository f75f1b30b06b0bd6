package makechap

import (
	"fmt"
	"strings"
)

// Index block markers. Both are part of the chapter file format.
const (
	// IndexMarker delimits a generated index block. A line equal to it toggles
	// removal of the previous block when a chapter is processed again.
	IndexMarker = "<!-- INDEX -->"

	// IndexPlaceholder is emitted after each H1 and replaced by the index.
	IndexPlaceholder = "@INDEX@"

	// DefaultIndexClass is the CSS class of the index container.
	DefaultIndexClass = "sectiontoc"
)

// tocBuilder accumulates the nested index list for levels 2-5.
type tocBuilder struct {
	buf strings.Builder
}

func newTOCBuilder(class string) *tocBuilder {
	t := &tocBuilder{}
	t.buf.WriteString(IndexMarker + "\n")
	fmt.Fprintf(&t.buf, "<div class=\"%s\">\n", class)
	return t
}

// add appends an entry for a heading at level (2-5).
// counters holds the values after the heading's own counter was incremented
// and before deeper counters were reset: a non-zero deeper counter means that
// level still has an open list.
func (t *tocBuilder) add(level int, counters *[4]int, anchor, text string) {
	idx := level - 2
	t.closeDeeper(counters, idx)
	if counters[idx] == 1 {
		t.buf.WriteString("<ul>\n")
	}
	fmt.Fprintf(&t.buf, "<li><a href=\"#%s\">%s</a>\n", anchor, text)
}

// closeDeeper closes every open list strictly deeper than idx, deepest first.
// idx -1 closes all of them.
func (t *tocBuilder) closeDeeper(counters *[4]int, idx int) {
	for d := len(counters) - 1; d > idx; d-- {
		if counters[d] != 0 {
			t.buf.WriteString("</ul>\n")
		}
	}
}

// finish closes the open lists and the container and returns the fragment.
func (t *tocBuilder) finish(counters *[4]int) string {
	t.closeDeeper(counters, -1)
	t.buf.WriteString("</div>\n" + IndexMarker + "\n")
	return t.buf.String()
}

// ExternalIndex rewrites the in-page links of an index fragment so they point
// into the named document, for use in a contents page spanning chapters.
func ExternalIndex(index, name string) string {
	return strings.ReplaceAll(index, `<li><a href="#`, `<li><a href="`+name+`#`)
}
