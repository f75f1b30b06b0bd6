package main

import (
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-makechap"
	"github.com/alnah/go-makechap/internal/config"
	"github.com/alnah/go-makechap/internal/fileutil"
)

// Exit codes for the makechap CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // All chapters renumbered
	ExitGeneral = 1 // Malformed heading, failed chapters, unexpected error
	ExitUsage   = 2 // Invalid arguments, flags, config, or validation
	ExitIO      = 3 // File not found, permission denied, write failure
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadChapter) ||
		errors.Is(err, ErrReadChapterList) ||
		errors.Is(err, ErrWriteBackup) ||
		errors.Is(err, ErrWriteChapter) ||
		errors.Is(err, ErrWriteContents) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidNumber) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrNoChapters) ||
		errors.Is(err, ErrDuplicateEntry) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrConfigTooLarge) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidField) ||
		errors.Is(err, fileutil.ErrSuffixEmpty) ||
		errors.Is(err, fileutil.ErrSuffixPathTraversal) ||
		errors.Is(err, makechap.ErrInvalidChapterNumber) ||
		errors.Is(err, makechap.ErrInvalidIndexClass) ||
		errors.Is(err, makechap.ErrEmptyBase) {
		return ExitUsage
	}

	return ExitGeneral
}

// reportError prints err on stderr and maps it to an exit code.
// A help request is not an error: the usage text was already printed.
func reportError(err error, env *Environment) int {
	if err == nil {
		return ExitSuccess
	}
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	fmt.Fprintf(env.Stderr, "error: %v\n", err)
	return exitCodeFor(err)
}
