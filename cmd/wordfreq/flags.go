package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/cognicore/wordfreq/internal/source"
)

const usageText = `Usage: wordfreq [flags] [text-or-file]

Counts word frequencies in the given text, or in the file at that path when
one exists. Without an argument an interactive shell starts.

Flags:
`

type cliOptions struct {
	text           string
	hasText        bool
	output         string
	hideSingletons bool
	configPath     string
	offline        bool
	format         source.Format
}

// parseArgs accepts flags before and after the positional argument.
// Everything after "--" is positional.
func parseArgs(args []string, stderr io.Writer) (cliOptions, error) {
	var opts cliOptions

	fs := flag.NewFlagSet("wordfreq", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.output, "o", "", "Write CSV to this path instead of printing a table")
	fs.StringVar(&opts.output, "output", "", "Same as -o")
	fs.BoolVar(&opts.hideSingletons, "H", false, "Hide words that occur only once")
	fs.BoolVar(&opts.hideSingletons, "hide-count-1", false, "Same as -H")
	fs.StringVar(&opts.configPath, "config", "", "Config file (default $WORDFREQ_CONFIG)")
	fs.BoolVar(&opts.offline, "offline", false, "Do not fetch missing lexical resources")
	format := fs.String("format", "", "Decode the input as html or jsonl (default: count the text as is)")
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usageText)
		fs.PrintDefaults()
	}

	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return opts, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			break
		}
		if endsWithTerminator(fs, args[:len(args)-len(rest)]) {
			positional = append(positional, rest...)
			break
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}

	var err error
	if opts.format, err = source.ParseFormat(*format); err != nil {
		fs.Usage()
		return opts, err
	}

	switch len(positional) {
	case 0:
	case 1:
		opts.text = positional[0]
		opts.hasText = true
	default:
		fs.Usage()
		return opts, fmt.Errorf("expected one text or file argument, got %d", len(positional))
	}
	return opts, nil
}

// endsWithTerminator reports whether parsing stopped at a "--" terminator
// rather than taking "--" as the value of a flag such as -o.
func endsWithTerminator(fs *flag.FlagSet, parsed []string) bool {
	for i := 0; i < len(parsed); i++ {
		arg := parsed[i]
		if arg == "--" {
			return true
		}
		name := strings.TrimLeft(arg, "-")
		if strings.Contains(name, "=") {
			continue
		}
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if bf, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && bf.IsBoolFlag() {
			continue
		}
		i++
	}
	return false
}
