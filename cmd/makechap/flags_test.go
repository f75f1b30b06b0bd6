package main

import (
	"bytes"
	"errors"
	"slices"
	"testing"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-makechap/internal/config"
)

func TestParseChapterFlags(t *testing.T) {
	t.Parallel()

	var stderr bytes.Buffer
	args := []string{"-c", "book", "-q", "--dry-run", "--no-backup", "--backup-suffix", "~", "--index-class", "toc", "Preface.html", "1"}

	f, positional, err := parseChapterFlags(args, &stderr)
	if err != nil {
		t.Fatalf("parseChapterFlags() error = %v", err)
	}

	if f.common.config != "book" || !f.common.quiet || f.common.verbose {
		t.Errorf("common flags = %+v", f.common)
	}
	want := rewriteFlags{dryRun: true, noBackup: true, backupSuffix: "~", indexClass: "toc"}
	if f.rewrite != want {
		t.Errorf("rewrite flags = %+v, want %+v", f.rewrite, want)
	}
	if !slices.Equal(positional, []string{"Preface.html", "1"}) {
		t.Errorf("positional = %q", positional)
	}
}

func TestParseChapterFlags_Interspersed(t *testing.T) {
	t.Parallel()

	var stderr bytes.Buffer
	f, positional, err := parseChapterFlags([]string{"Preface.html", "-v", "2"}, &stderr)
	if err != nil {
		t.Fatalf("parseChapterFlags() error = %v", err)
	}
	if !f.common.verbose {
		t.Error("verbose should be set")
	}
	if !slices.Equal(positional, []string{"Preface.html", "2"}) {
		t.Errorf("positional = %q", positional)
	}
}

func TestParseChapterFlags_Help(t *testing.T) {
	t.Parallel()

	var stderr bytes.Buffer
	_, _, err := parseChapterFlags([]string{"--help"}, &stderr)
	if !errors.Is(err, flag.ErrHelp) {
		t.Errorf("error = %v, want ErrHelp", err)
	}
	if !bytes.Contains(stderr.Bytes(), []byte("Usage: makechap [flags] <file> <num>")) {
		t.Errorf("usage should be printed, got %q", stderr.String())
	}
}

func TestParseContentsFlags(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		var stderr bytes.Buffer
		f, positional, err := parseContentsFlags(nil, &stderr)
		if err != nil {
			t.Fatalf("parseContentsFlags() error = %v", err)
		}
		if f.first != firstNumberUnset {
			t.Errorf("first = %d, want unset sentinel", f.first)
		}
		if f.workers != 0 || f.output != "" || f.title != "" {
			t.Errorf("unexpected defaults: %+v", f)
		}
		if len(positional) != 0 {
			t.Errorf("positional = %q, want none", positional)
		}
	})

	t.Run("all flags", func(t *testing.T) {
		t.Parallel()

		var stderr bytes.Buffer
		args := []string{"-o", "toc.html", "--title", "Manual", "--first", "0", "-w", "3", "-n", "book.list"}
		f, positional, err := parseContentsFlags(args, &stderr)
		if err != nil {
			t.Fatalf("parseContentsFlags() error = %v", err)
		}
		if f.output != "toc.html" || f.title != "Manual" || f.first != 0 || f.workers != 3 || !f.rewrite.dryRun {
			t.Errorf("flags = %+v", f)
		}
		if !slices.Equal(positional, []string{"book.list"}) {
			t.Errorf("positional = %q", positional)
		}
	})
}

func TestMergeFlags(t *testing.T) {
	t.Parallel()

	t.Run("unset flags keep config", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		mergeRewriteFlags(&rewriteFlags{}, cfg)
		mergeContentsFlags(&contentsFlags{first: firstNumberUnset}, cfg)

		want := config.DefaultConfig()
		if cfg.Backup != want.Backup || cfg.Index != want.Index {
			t.Errorf("config changed: %+v", cfg)
		}
		if cfg.Contents.FirstChapter() != config.DefaultFirstNumber {
			t.Errorf("FirstChapter() = %d", cfg.Contents.FirstChapter())
		}
	})

	t.Run("set flags override config", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		mergeRewriteFlags(&rewriteFlags{noBackup: true, backupSuffix: ".old", indexClass: "x"}, cfg)
		mergeContentsFlags(&contentsFlags{title: "T", first: 0, workers: 2}, cfg)

		if !cfg.Backup.Disabled || cfg.Backup.Suffix != ".old" || cfg.Index.Class != "x" {
			t.Errorf("rewrite flags not applied: %+v", cfg)
		}
		if cfg.Contents.Title != "T" || cfg.Contents.FirstChapter() != 0 || cfg.Contents.Workers != 2 {
			t.Errorf("contents flags not applied: %+v", cfg.Contents)
		}
	})
}

func TestValidateWorkers(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 1, config.MaxWorkers} {
		if err := validateWorkers(n); err != nil {
			t.Errorf("validateWorkers(%d) = %v, want nil", n, err)
		}
	}
	for _, n := range []int{-1, config.MaxWorkers + 1} {
		if err := validateWorkers(n); !errors.Is(err, ErrInvalidWorkerCount) {
			t.Errorf("validateWorkers(%d) = %v, want ErrInvalidWorkerCount", n, err)
		}
	}
}
