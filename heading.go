package makechap

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Heading levels handled by the renumberer.
const (
	minLevel = 1
	maxLevel = 5
)

// headingMatchers holds one matcher per level, H1 first.
// Capture 1 is the heading body up to the first closing tag.
var headingMatchers = compileHeadingMatchers()

func compileHeadingMatchers() []*regexp.Regexp {
	matchers := make([]*regexp.Regexp, 0, maxLevel)
	for level := minLevel; level <= maxLevel; level++ {
		pattern := fmt.Sprintf(`(?i)^.*?<h%d>(.*?)</h%d>`, level, level)
		matchers = append(matchers, regexp.MustCompile(pattern))
	}
	return matchers
}

var (
	// anchorOpenPattern matches an anchor start tag at the beginning of the input.
	anchorOpenPattern = regexp.MustCompile(`(?i)^\s*(<a(?:\s[^>]*)?>)`)

	// anchorTagPattern finds anchor start and end tags, used to pair nested anchors.
	anchorTagPattern = regexp.MustCompile(`(?i)<a(?:\s[^>]*)?>|</a\s*>`)

	// numberingPattern matches leading numbering such as "1.2 ".
	numberingPattern = regexp.MustCompile(`^[\d.\s]*`)
)

// autogeneratedPattern marks anchor names produced by a previous run.
var autogeneratedPattern = regexp.MustCompile(`(?i)_nn\d`)

// heading is the structured extraction of one heading line.
type heading struct {
	level     int
	anchorTag string // leading "<a ...>" tag, empty when the heading has none
	inside    string // new style: <a name="x">1.1 Title</a>
	after     string // old style: <a name="x"></a>1.1 Title
}

// matchHeading tests line against the H1..H5 matchers in order.
func matchHeading(line string) (heading, bool) {
	for i, re := range headingMatchers {
		m := re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		h := splitHeadingBody(m[1])
		h.level = minLevel + i
		return h, true
	}
	return heading{}, false
}

// splitHeadingBody separates the leading anchors of a heading body from its text.
// Consecutive empty anchors (or anchors holding only numbering) are skipped and
// the last one is kept. An anchor wrapping text fills inside when it comes first;
// after any empty anchor it stays at the start of after.
func splitHeadingBody(body string) heading {
	var h heading
	rest := body
	for {
		tag, content, remainder, ok := leadingAnchor(rest)
		if !ok {
			break
		}
		text := stripNumbering(content)
		if text == "" {
			h.anchorTag = tag
			rest = remainder
			continue
		}
		if h.anchorTag == "" {
			h.anchorTag = tag
			h.inside = text
			rest = remainder
		}
		break
	}
	h.after = stripNumbering(rest)
	return h
}

// leadingAnchor splits s when it starts with an anchor. content runs up to the
// matching end tag, so links nested in the anchor stay part of it.
func leadingAnchor(s string) (tag, content, rest string, ok bool) {
	open := anchorOpenPattern.FindStringSubmatchIndex(s)
	if open == nil {
		return "", "", "", false
	}
	tag = s[open[2]:open[3]]
	body := s[open[1]:]

	depth := 1
	for _, loc := range anchorTagPattern.FindAllStringIndex(body, -1) {
		if body[loc[0]+1] != '/' {
			depth++
			continue
		}
		depth--
		if depth == 0 {
			return tag, body[:loc[0]], body[loc[1]:], true
		}
	}
	return "", "", "", false
}

func stripNumbering(s string) string {
	return s[len(numberingPattern.FindString(s)):]
}

// title returns the heading text, enforcing that exactly one style supplies it.
// An anchor wrapping text right after an empty leading one populates both slots.
func (h heading) title() (string, error) {
	newStyle := h.inside != "" || startsWithWrappedText(h.after)
	oldStyle := h.after != ""

	switch {
	case newStyle && oldStyle:
		return "", ErrAmbiguousHeadingText
	case !newStyle && !oldStyle:
		return "", ErrMissingHeadingText
	case oldStyle:
		return h.after, nil
	default:
		return h.inside, nil
	}
}

// anchorName returns the name attribute of the leading anchor, if any.
func (h heading) anchorName() (string, bool) {
	if h.anchorTag == "" {
		return "", false
	}

	z := html.NewTokenizer(strings.NewReader(h.anchorTag))
	if z.Next() != html.StartTagToken {
		return "", false
	}

	_, hasAttr := z.TagName()
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()
		if string(key) == "name" && len(val) > 0 {
			return string(val), true
		}
	}
	return "", false
}

func startsWithWrappedText(s string) bool {
	_, content, _, ok := leadingAnchor(s)
	return ok && stripNumbering(content) != ""
}

// IsAutogenerated reports whether an anchor name looks like one this tool
// generated (it contains "_nn" followed by a digit). Such anchors may be
// renamed on the next run; any other name is kept as a stable link target.
func IsAutogenerated(anchor string) bool {
	return autogeneratedPattern.MatchString(anchor)
}
