package makechap

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Renumberer rewrites chapter headings and builds the chapter index.
// It holds configuration only; every call runs with fresh state, so one
// Renumberer may be shared by concurrent callers.
type Renumberer struct {
	logger     zerolog.Logger
	indexClass string
}

// New creates a Renumberer with default configuration.
func New(opts ...Option) *Renumberer {
	r := &Renumberer{
		logger:     zerolog.Nop(),
		indexClass: DefaultIndexClass,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Renumber runs a default Renumberer over lines.
func Renumber(lines []string, number int, base string) (*Result, error) {
	return New().Renumber(lines, number, base)
}

// Process renumbers a whole chapter text.
func (r *Renumberer) Process(in Input) (*Result, error) {
	base := in.Base
	if base == "" {
		base = BaseName(in.Name)
	}
	return r.Renumber(SplitLines(in.Content), in.Number, base)
}

// Renumber numbers the H1-H5 headings of lines as chapter number, naming new
// anchors "<base>_nn<i>", and inserts the chapter index after each H1.
// It fails on the first ill-formed heading; lines is never modified.
func (r *Renumberer) Renumber(lines []string, number int, base string) (*Result, error) {
	if number < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChapterNumber, number)
	}
	if base == "" {
		return nil, ErrEmptyBase
	}
	if err := ValidateIndexClass(r.indexClass); err != nil {
		return nil, err
	}

	p := &pass{
		logger: r.logger.With().Str("base", base).Int("chapter", number).Logger(),
		number: strconv.Itoa(number),
		base:   base,
		toc:    newTOCBuilder(r.indexClass),
		out:    make([]string, 0, len(lines)+8),
	}

	for i, line := range lines {
		if err := p.line(i+1, line); err != nil {
			return nil, err
		}
	}
	if p.skip {
		return nil, ErrUnterminatedIndex
	}

	return p.result(), nil
}

// pass is the mutable state of one renumbering run.
type pass struct {
	logger zerolog.Logger
	number string
	base   string

	counters  [4]int // section, subsection, subsubsection, subsubsubsection
	nameIndex int
	skip      bool // inside a previous index block
	skipSpace bool // just emitted a heading

	toc          *tocBuilder
	out          []string
	placeholders []int // positions in out holding IndexPlaceholder
	title        string
	headings     []Heading
}

func (p *pass) line(n int, s string) error {
	if s == IndexMarker {
		p.skip = !p.skip
		return nil
	}
	if p.skip {
		return nil
	}

	if s == "" && p.skipSpace {
		return nil
	}
	if p.skipSpace {
		p.out = append(p.out, "", "")
		p.skipSpace = false
	}

	h, ok := matchHeading(s)
	if !ok {
		p.out = append(p.out, s)
		return nil
	}

	text, err := h.title()
	if err != nil {
		return &HeadingError{Line: n, Text: s, Err: err}
	}

	p.nameIndex++
	anchor, preserved := p.anchorFor(h)

	var rec Heading
	if h.level == minLevel {
		rec = p.chapterHeading(anchor, text)
	} else {
		rec = p.sectionHeading(h.level, anchor, text)
	}
	rec.Preserved = preserved
	p.headings = append(p.headings, rec)

	p.logger.Debug().
		Int("line", n).
		Int("level", h.level).
		Str("label", rec.Label).
		Str("anchor", anchor).
		Bool("preserved", preserved).
		Msg("heading renumbered")

	p.skipSpace = true
	return nil
}

// anchorFor keeps a hand-written anchor name and generates one otherwise.
func (p *pass) anchorFor(h heading) (string, bool) {
	if name, ok := h.anchorName(); ok && !IsAutogenerated(name) {
		return name, true
	}
	return fmt.Sprintf("%s_nn%d", p.base, p.nameIndex), false
}

func (p *pass) chapterHeading(anchor, text string) Heading {
	// A new H1 section starts a fresh top-level list.
	p.toc.closeDeeper(&p.counters, -1)
	p.counters = [4]int{}

	rec := p.emit(1, p.number, anchor, text)
	p.placeholders = append(p.placeholders, len(p.out))
	p.out = append(p.out, IndexPlaceholder)
	p.title = text
	return rec
}

func (p *pass) sectionHeading(level int, anchor, text string) Heading {
	idx := level - 2
	p.counters[idx]++

	parts := make([]string, 0, level)
	parts = append(parts, p.number)
	for i := 0; i <= idx; i++ {
		parts = append(parts, strconv.Itoa(p.counters[i]))
	}
	rec := p.emit(level, strings.Join(parts, "."), anchor, text)

	p.toc.add(level, &p.counters, anchor, text)
	for i := idx + 1; i < len(p.counters); i++ {
		p.counters[i] = 0
	}
	return rec
}

// emit writes the heading in new style: the anchor wraps the numbered title.
func (p *pass) emit(level int, label, anchor, text string) Heading {
	p.out = append(p.out, fmt.Sprintf("<H%d><a name=\"%s\">%s %s</a></H%d>", level, anchor, label, text, level))
	return Heading{Level: level, Label: label, Anchor: anchor, Text: text}
}

// result substitutes the finished index into the placeholder lines.
func (p *pass) result() *Result {
	index := p.toc.finish(&p.counters)
	for _, i := range p.placeholders {
		p.out[i] = index
	}

	content := strings.Join(p.out, "\n") + "\n"
	return &Result{
		Lines:    SplitLines(content),
		Content:  content,
		Index:    index,
		Title:    p.title,
		Headings: p.headings,
	}
}
