package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// firstNumberUnset detects if --first was explicitly set.
// Since 0 is a valid chapter number (preface), we use an out-of-range sentinel.
const firstNumberUnset = -1

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// rewriteFlags holds flags controlling how chapter files are rewritten.
type rewriteFlags struct {
	dryRun       bool
	noBackup     bool
	backupSuffix string
	indexClass   string
}

// chapterFlags holds all flags for chapter mode.
type chapterFlags struct {
	common  commonFlags
	rewrite rewriteFlags
}

// contentsFlags holds all flags for the contents command.
type contentsFlags struct {
	common  commonFlags
	rewrite rewriteFlags
	output  string
	title   string
	first   int
	workers int
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log every renumbered heading")
}

// addRewriteFlags adds chapter rewrite flags to a FlagSet.
func addRewriteFlags(fs *flag.FlagSet, f *rewriteFlags) {
	fs.BoolVarP(&f.dryRun, "dry-run", "n", false, "print results without writing any file")
	fs.BoolVar(&f.noBackup, "no-backup", false, "do not keep a copy of the original file")
	fs.StringVar(&f.backupSuffix, "backup-suffix", "", "backup file suffix (default: .bak)")
	fs.StringVar(&f.indexClass, "index-class", "", "CSS class of the chapter index (default: sectiontoc)")
}

// parseChapterFlags parses chapter mode flags and returns positional args.
func parseChapterFlags(args []string, stderr io.Writer) (*chapterFlags, []string, error) {
	fs := flag.NewFlagSet("makechap", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &chapterFlags{}

	addCommonFlags(fs, &f.common)
	addRewriteFlags(fs, &f.rewrite)

	fs.Usage = func() { printChapterUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// parseContentsFlags parses contents command flags and returns positional args.
func parseContentsFlags(args []string, stderr io.Writer) (*contentsFlags, []string, error) {
	fs := flag.NewFlagSet("contents", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &contentsFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "contents page path (default: Contents.html next to the chapter list)")
	fs.StringVar(&f.title, "title", "", "contents page title")
	fs.IntVar(&f.first, "first", firstNumberUnset, "number of the first chapter (default: 1)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")

	addCommonFlags(fs, &f.common)
	addRewriteFlags(fs, &f.rewrite)

	fs.Usage = func() { printContentsUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
