package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: makechap [flags] <file> <num>")
	fmt.Fprintln(w, "       makechap <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Renumber the H1-H5 headings of an HTML chapter and rebuild its index.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  contents   Renumber every chapter of a list and write the contents page")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'makechap help chapter' for chapter mode flags.")
}

// printRewriteFlags prints the flags shared by chapter mode and contents.
func printRewriteFlags(w io.Writer) {
	fmt.Fprintln(w, "Rewrite:")
	fmt.Fprintln(w, "  -n, --dry-run             Print results without writing any file")
	fmt.Fprintln(w, "      --no-backup           Do not keep a copy of the original file")
	fmt.Fprintln(w, "      --backup-suffix <s>   Backup file suffix (default: .bak)")
	fmt.Fprintln(w, "      --index-class <s>     CSS class of the chapter index (default: sectiontoc)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Log every renumbered heading")
}

// printChapterUsage prints usage for chapter mode.
func printChapterUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: makechap [flags] <file> <num>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Renumber the headings of one chapter in place and print its contents entry.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  file     HTML chapter file, rewritten in place")
	fmt.Fprintln(w, "  num      Chapter number (0 or greater)")
	fmt.Fprintln(w)
	printRewriteFlags(w)
}

// printContentsUsage prints usage for the contents command.
func printContentsUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: makechap contents [flags] [chapters-file]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Renumber every chapter listed in chapters-file and write the contents page.")
	fmt.Fprintln(w, "The list holds one file per line; blank lines and # comments are ignored.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  chapters-file    Chapter list (default: contents.chapters from config, or \"chapters\")")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Contents:")
	fmt.Fprintln(w, "  -o, --output <path>       Contents page (default: Contents.html next to the list)")
	fmt.Fprintln(w, "      --title <s>           Contents page title")
	fmt.Fprintln(w, "      --first <n>           Number of the first chapter (default: 1)")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	printRewriteFlags(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "chapter":
		printChapterUsage(env.Stdout)
	case "contents":
		printContentsUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: makechap version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: makechap help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
