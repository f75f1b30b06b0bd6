package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"

	"github.com/alnah/go-makechap"
	"github.com/alnah/go-makechap/internal/fileutil"
	"github.com/alnah/go-makechap/internal/hints"
)

// Sentinel errors for chapter file operations.
var (
	ErrReadChapter  = errors.New("failed to read chapter")
	ErrWriteBackup  = errors.New("failed to write backup")
	ErrWriteChapter = errors.New("failed to write chapter")
)

// chapterJob identifies one chapter to renumber.
type chapterJob struct {
	Path   string // file read and rewritten
	Name   string // name used in contents links
	Number int
}

// chapterResult holds the outcome of renumbering one chapter.
type chapterResult struct {
	Job      chapterJob
	Result   *makechap.Result
	Backup   string // empty when no backup was written
	Err      error
	Duration time.Duration
}

// runChapter renumbers one chapter in place and prints its contents entry.
func runChapter(_ context.Context, args []string, env *Environment) error {
	flags, positional, err := parseChapterFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	if len(positional) != 2 {
		printChapterUsage(env.Stderr)
		return fmt.Errorf("%w: expected <file> <num>, got %d argument(s)", ErrUsage, len(positional))
	}

	number, err := parseChapterNumber(positional[1])
	if err != nil {
		return err
	}

	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)

	cfg, err := loadConfig(&flags.common, logger)
	if err != nil {
		return err
	}
	mergeRewriteFlags(&flags.rewrite, cfg)

	opts, err := newRewriteOptions(&flags.rewrite, cfg, logger)
	if err != nil {
		return err
	}

	job := chapterJob{Path: positional[0], Name: positional[0], Number: number}
	res := processChapter(job, opts, logger, env)
	if res.Err != nil {
		return res.Err
	}

	fmt.Fprint(env.Stdout, res.Result.ContentsEntry(job.Name, makechap.BaseName(job.Name), job.Number))
	return nil
}

// parseChapterNumber parses the chapter number argument.
func parseChapterNumber(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	return n, nil
}

// processChapter runs the rewrite pipeline for one chapter:
// read, back up the original, renumber, replace the file.
// Nothing is written back when renumbering fails.
func processChapter(job chapterJob, opts *rewriteOptions, logger zerolog.Logger, env *Environment) chapterResult {
	start := env.Now()
	result := chapterResult{Job: job}
	done := func(err error) chapterResult {
		result.Err = err
		result.Duration = env.Now().Sub(start)
		return result
	}

	data, err := os.ReadFile(job.Path) // #nosec G304 -- chapter path is user-provided
	if err != nil {
		return done(fmt.Errorf("%w: %v", ErrReadChapter, err))
	}

	if opts.backup && !opts.dryRun {
		backup, err := fileutil.WriteBackup(job.Path, opts.suffix, data)
		if err != nil {
			return done(fmt.Errorf("%w: %v%s", ErrWriteBackup, err, hints.ForWriteFailure(false)))
		}
		result.Backup = backup
		logger.Debug().Str("file", job.Path).Str("backup", backup).Msg("backup written")
	}

	res, err := opts.renumberer.Process(makechap.Input{
		Name:    job.Name,
		Content: string(data),
		Number:  job.Number,
	})
	if err != nil {
		return done(withHint(err))
	}
	result.Result = res

	if !opts.dryRun {
		if err := fileutil.ReplaceFile(job.Path, []byte(res.Content)); err != nil {
			return done(fmt.Errorf("%w: %v%s", ErrWriteChapter, err, hints.ForWriteFailure(!opts.backup)))
		}
	}

	logger.Debug().
		Str("file", job.Path).
		Int("chapter", job.Number).
		Int("headings", len(res.Headings)).
		Bool("dry_run", opts.dryRun).
		Msg("chapter renumbered")

	return done(nil)
}

// withHint appends the matching hint to a renumbering error.
func withHint(err error) error {
	switch {
	case errors.Is(err, makechap.ErrMalformedHeading):
		return fmt.Errorf("%w%s", err, hints.ForMalformedHeading(err))
	case errors.Is(err, makechap.ErrUnterminatedIndex):
		return fmt.Errorf("%w%s", err, hints.ForUnterminatedIndex())
	default:
		return err
	}
}
