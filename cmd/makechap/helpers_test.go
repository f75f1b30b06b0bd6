package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// prefaceChapter is a small chapter with an old index, a preserved anchor
// and headings that still need anchors.
const prefaceChapter = `<html>
<body>
<H1><a name="Preface"></a>Preface</H1>
<!-- INDEX -->
<ul><li>stale</li></ul>
<!-- INDEX -->

<H2>Introduction</H2>
Some text.
<H3>Details</H3>
<H2><a name="credits">Credits</a></H2>
</body>
</html>
`

// malformedChapter has a heading with a title both inside and after an anchor.
const malformedChapter = `<H1><a name="Bad"></a>Bad</H1>
<H2>Fine</H2>
<H2><a name="x"></a><a name="y">Title</a></H2>
`

// newTestEnv returns an Environment writing into buffers, with a fixed clock.
func newTestEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	fixed := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	return &Environment{
		Now:    func() time.Time { return fixed },
		Stdout: stdout,
		Stderr: stderr,
	}, stdout, stderr
}

// writeFile creates dir/name with content and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

// readFile returns the content of path as a string.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}
