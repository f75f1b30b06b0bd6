package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	flag "github.com/spf13/pflag"
	"golang.org/x/net/html"

	"github.com/alnah/go-makechap"
	"github.com/alnah/go-makechap/internal/config"
	"github.com/alnah/go-makechap/internal/fileutil"
	"github.com/alnah/go-makechap/internal/hints"
)

// Sentinel errors for the contents command.
var (
	ErrReadChapterList = errors.New("failed to read chapter list")
	ErrNoChapters      = errors.New("chapter list is empty")
	ErrDuplicateEntry  = errors.New("chapter listed twice")
	ErrWriteContents   = errors.New("failed to write contents page")
	ErrChaptersFailed  = errors.New("some chapters failed")
)

// contentsHeader opens the contents page; both verbs receive the escaped title.
const contentsHeader = `<!DOCTYPE HTML PUBLIC "-//W3C//DTD HTML 4.01 Transitional//EN">
<html>
<head>
<title>%s</title>
<meta http-equiv="Content-Type" content="text/html; charset=UTF-8">
</head>

<body bgcolor="#ffffff">
<h1>%s</h1>

`

const contentsFooter = "</body>\n</html>\n"

// runContents renumbers every chapter of a list, then writes the contents page.
// The page is written only when every chapter succeeded.
func runContents(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseContentsFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	if len(positional) > 1 {
		printContentsUsage(env.Stderr)
		return fmt.Errorf("%w: expected at most one chapter list, got %d", ErrUsage, len(positional))
	}

	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)

	cfg, err := loadConfig(&flags.common, logger)
	if err != nil {
		return err
	}
	mergeRewriteFlags(&flags.rewrite, cfg)
	mergeContentsFlags(flags, cfg)

	opts, err := newRewriteOptions(&flags.rewrite, cfg, logger)
	if err != nil {
		return err
	}

	listPath := cfg.Contents.Chapters
	if len(positional) == 1 {
		listPath = positional[0]
	}

	entries, err := readChapterList(listPath)
	if err != nil {
		return err
	}
	jobs := buildJobs(listPath, entries, cfg.Contents.FirstChapter())

	poolSize := resolvePoolSize(cfg.Contents.Workers)
	logger.Debug().Int("workers", poolSize).Int("chapters", len(jobs)).Msg("renumbering chapters")

	results := renumberBatch(ctx, jobs, poolSize, opts, logger, env)

	quiet := flags.common.quiet || opts.dryRun
	if failed := printResults(results, quiet, flags.common.verbose, env); failed > 0 {
		return fmt.Errorf("%w: %d of %d, contents page not written", ErrChaptersFailed, failed, len(results))
	}

	for _, r := range results {
		if r.Result.Title == "" {
			logger.Warn().Str("file", r.Job.Path).Msg("chapter has no H1 heading")
		}
	}

	page := buildContentsPage(cfg.Contents.Title, results)
	if opts.dryRun {
		fmt.Fprint(env.Stdout, page)
		return nil
	}

	outPath := resolveContentsPath(flags.output, cfg, listPath)
	if err := fileutil.WriteFileAtomic(outPath, []byte(page), fileutil.DefaultFilePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteContents, err)
	}

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Created %s\n", outPath)
	}
	return nil
}

// mergeContentsFlags applies explicitly set contents flags over cfg.
func mergeContentsFlags(f *contentsFlags, cfg *config.Config) {
	if f.title != "" {
		cfg.Contents.Title = f.title
	}
	if f.first != firstNumberUnset {
		first := f.first
		cfg.Contents.FirstNumber = &first
	}
	if f.workers > 0 {
		cfg.Contents.Workers = f.workers
	}
}

// readChapterList returns the entries of a chapter list file:
// one chapter per line, blank lines and # comments skipped. Two entries
// naming the same file ("a.html", "./a.html") are rejected.
func readChapterList(path string) ([]string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- list path is user-provided
	if err != nil {
		return nil, fmt.Errorf("%w: %v%s", ErrReadChapterList, err, hints.ForChaptersFile())
	}

	dir := filepath.Dir(path)
	var entries []string
	seen := make(map[string]string)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		resolved := resolveEntry(dir, line)
		if prev, ok := seen[resolved]; ok {
			return nil, fmt.Errorf("%w: %s (same file as %s)", ErrDuplicateEntry, line, prev)
		}
		seen[resolved] = line
		entries = append(entries, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadChapterList, err)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %s%s", ErrNoChapters, path, hints.ForChaptersFile())
	}
	return entries, nil
}

// buildJobs numbers entries in order from first. Relative entries are
// resolved against the directory of the list and keep their listed name for links.
func buildJobs(listPath string, entries []string, first int) []chapterJob {
	dir := filepath.Dir(listPath)
	jobs := make([]chapterJob, len(entries))
	for i, entry := range entries {
		jobs[i] = chapterJob{Path: resolveEntry(dir, entry), Name: entry, Number: first + i}
	}
	return jobs
}

// resolveEntry returns the cleaned path of a list entry, relative entries
// being taken from dir.
func resolveEntry(dir, entry string) string {
	path := filepath.FromSlash(entry)
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(dir, path)
}

// resolveContentsPath picks the contents page location. The flag is used as
// given; a configured relative path is placed next to the chapter list.
func resolveContentsPath(flagOutput string, cfg *config.Config, listPath string) string {
	if flagOutput != "" {
		return flagOutput
	}
	out := cfg.Contents.Output
	if filepath.IsAbs(out) {
		return out
	}
	return filepath.Join(filepath.Dir(listPath), out)
}

// buildContentsPage assembles the contents page from chapter results, in list order.
func buildContentsPage(title string, results []chapterResult) string {
	escaped := html.EscapeString(title)

	var b strings.Builder
	fmt.Fprintf(&b, contentsHeader, escaped, escaped)
	for _, r := range results {
		b.WriteString(r.Result.ContentsEntry(r.Job.Name, makechap.BaseName(r.Job.Name), r.Job.Number))
	}
	b.WriteString(contentsFooter)
	return b.String()
}

// ResultSummary holds the count of succeeded and failed chapters.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed chapters.
func countResults(results []chapterResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResults reports each chapter and returns the number of failures.
// Failures always go to stderr.
func printResults(results []chapterResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.Job.Path, r.Err)
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> chapter %d, %d headings (%v)\n",
				r.Job.Path, r.Job.Number, len(r.Result.Headings), r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Renumbered %s as chapter %d\n", r.Job.Path, r.Job.Number)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}
