package main

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags controlling the CLI itself.
type commonFlags struct {
	config      string
	quiet       bool
	verbose     bool
	version     bool
	printConfig bool
}

// inputFlags holds per-document flags.
type inputFlags struct {
	locale           string
	noSanitize       bool
	allowExtraQuotes bool
	allowElements    []string
	references       string
}

// renderFlags holds renderer construction flags.
type renderFlags struct {
	assetPath string
	highlight string
	maxDepth  int
}

// outputFlags holds output destination flags.
type outputFlags struct {
	path string
	text bool
}

// cliFlags holds all flags for the govspeak command.
type cliFlags struct {
	common  commonFlags
	input   inputFlags
	render  renderFlags
	output  outputFlags
	workers int
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs and timing")
	fs.BoolVar(&f.version, "version", false, "print version and exit")
	fs.BoolVar(&f.printConfig, "print-config", false, "print the effective configuration as YAML and exit")
}

// addInputFlags adds per-document flags to a FlagSet.
func addInputFlags(fs *flag.FlagSet, f *inputFlags) {
	fs.StringVar(&f.locale, "locale", "", "locale for component strings (en, cy)")
	fs.BoolVar(&f.noSanitize, "no-sanitize", false, "skip the HTML sanitizer")
	fs.BoolVar(&f.allowExtraQuotes, "allow-extra-quotes", false, "keep quote marks around blockquote lines")
	fs.StringArrayVar(&f.allowElements, "allow-element", nil, "extra element kept by the sanitizer (repeatable)")
	fs.StringVarP(&f.references, "references", "r", "", "YAML file with images, attachments, links and contacts")
}

// addRenderFlags adds renderer flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.StringVar(&f.assetPath, "asset-path", "", "custom template and locale directory")
	fs.StringVar(&f.highlight, "highlight", "", "highlight code blocks with a chroma style")
	fs.IntVar(&f.maxDepth, "max-depth", 0, "maximum nested render depth (0 = default)")
}

// addOutputFlags adds output flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.StringVarP(&f.path, "output", "o", "", "output file or directory")
	fs.BoolVar(&f.text, "text", false, "write plain text instead of HTML")
}

// parseFlags parses command-line flags and returns positional args.
func parseFlags(args []string, stderr io.Writer) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("govspeak", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: govspeak [flags] <file|dir|->\n\nFlags:\n%s", fs.FlagUsages())
	}

	f := &cliFlags{}
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	addCommonFlags(fs, &f.common)
	addInputFlags(fs, &f.input)
	addRenderFlags(fs, &f.render)
	addOutputFlags(fs, &f.output)

	var rest []string
	if len(args) > 1 {
		rest = args[1:]
	}
	if err := fs.Parse(rest); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
