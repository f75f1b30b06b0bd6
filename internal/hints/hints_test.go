package hints

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-makechap"
)

func TestForMalformedHeading(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		contains string
	}{
		{
			name:     "ambiguous title",
			err:      &makechap.HeadingError{Line: 3, Err: makechap.ErrAmbiguousHeadingText},
			contains: "not both",
		},
		{
			name:     "missing title",
			err:      &makechap.HeadingError{Line: 3, Err: makechap.ErrMissingHeadingText},
			contains: "add the title",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hint := ForMalformedHeading(tt.err)
			if !strings.HasPrefix(hint, "\n  hint: ") {
				t.Errorf("hint %q should start with hint prefix", hint)
			}
			if !strings.Contains(hint, tt.contains) {
				t.Errorf("hint %q should contain %q", hint, tt.contains)
			}
		})
	}
}

func TestForMalformedHeading_UnrelatedError(t *testing.T) {
	t.Parallel()

	if hint := ForMalformedHeading(errors.New("disk full")); hint != "" {
		t.Errorf("expected empty hint, got %q", hint)
	}
}

func TestForUnterminatedIndex(t *testing.T) {
	t.Parallel()

	hint := ForUnterminatedIndex()
	if !strings.Contains(hint, "<!-- INDEX -->") {
		t.Errorf("hint %q should name the index marker", hint)
	}
}

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	t.Run("with user config path", func(t *testing.T) {
		t.Parallel()

		paths := []string{"book.yaml", "book.yml", "/home/u/.config/go-makechap/book.yaml"}
		hint := ForConfigNotFound(paths)

		if !strings.Contains(hint, "--config") {
			t.Error("expected --config suggestion")
		}
		if !strings.Contains(hint, "create /home/u/.config/go-makechap/book.yaml") {
			t.Errorf("expected user config suggestion, got %q", hint)
		}
	})

	t.Run("without user config path", func(t *testing.T) {
		t.Parallel()

		hint := ForConfigNotFound([]string{"book.yaml"})

		if !strings.Contains(hint, "--config") {
			t.Error("expected --config suggestion")
		}
		if strings.Contains(hint, "create") {
			t.Errorf("unexpected create suggestion in %q", hint)
		}
	})
}

func TestForWriteFailure(t *testing.T) {
	t.Parallel()

	withBackup := ForWriteFailure(false)
	if !strings.Contains(withBackup, "--no-backup") {
		t.Errorf("expected --no-backup suggestion, got %q", withBackup)
	}

	noBackup := ForWriteFailure(true)
	if strings.Contains(noBackup, "--no-backup") {
		t.Errorf("unexpected --no-backup suggestion, got %q", noBackup)
	}
	if strings.Count(noBackup, "hint:") != 1 {
		t.Errorf("expected a single hint line, got %q", noBackup)
	}
}

func TestForChaptersFile(t *testing.T) {
	t.Parallel()

	if hint := ForChaptersFile(); !strings.Contains(hint, "one chapter file per line") {
		t.Errorf("unexpected hint %q", hint)
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	if got := format(""); got != "" {
		t.Errorf("format(\"\") = %q, want empty", got)
	}
	if got := format("x"); got != "\n  hint: x" {
		t.Errorf("format(\"x\") = %q", got)
	}
	if got := formatHints(nil); got != "" {
		t.Errorf("formatHints(nil) = %q, want empty", got)
	}
	if got := formatHints([]string{"a", "b"}); got != "\n  hint: a; b" {
		t.Errorf("formatHints() = %q", got)
	}
}
