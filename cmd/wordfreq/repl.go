package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cognicore/wordfreq/pkg/wordfreq/internalerr"
	"github.com/cognicore/wordfreq/pkg/wordfreq/session"
)

const helpText = `Type or paste text; lines accumulate until you run a command.
  :count         count the text entered so far
  :toggle        hide or show words that occur once
  :save <path>   save the full results as CSV
  :clear         discard the entered text
  :help          show this help
  :quit          exit (Ctrl+D works too)`

// runInteractive reads lines from in until EOF or :quit. Command failures
// are reported on out and never end the shell.
func runInteractive(in io.Reader, out io.Writer, s *session.Session) error {
	fmt.Fprintln(out, "===========================================")
	fmt.Fprintln(out, "  Word Frequency Counter")
	fmt.Fprintln(out, "===========================================")
	fmt.Fprintln(out)
	fmt.Fprintln(out, helpText)
	fmt.Fprintln(out)

	var text []string
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}

		line := scanner.Text()
		cmd, arg, isCmd := parseCommand(line)
		if !isCmd {
			text = append(text, line)
			continue
		}

		switch cmd {
		case "count":
			if err := s.Count(strings.Join(text, "\n")); err != nil {
				fmt.Fprintln(out, "Error:", err)
				continue
			}
			printResults(out, s)
		case "toggle":
			if s.ToggleSingletons() {
				fmt.Fprintln(out, "Hiding words with count 1.")
			} else {
				fmt.Fprintln(out, "Showing all words.")
			}
			if s.Counted() {
				printResults(out, s)
			}
		case "save":
			saveResults(out, s, arg)
		case "clear":
			text = nil
			fmt.Fprintln(out, "Input cleared.")
		case "help":
			fmt.Fprintln(out, helpText)
		case "quit", "q", "exit":
			fmt.Fprintln(out, "Goodbye!")
			return nil
		default:
			fmt.Fprintf(out, "Unknown command :%s (try :help)\n", cmd)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	fmt.Fprintln(out, "\nGoodbye!")
	return nil
}

// parseCommand splits ":save out.csv" into ("save", "out.csv").
// Lines starting with "::" are plain text.
func parseCommand(line string) (cmd, arg string, ok bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, ":") || strings.HasPrefix(trimmed, "::") {
		return "", "", false
	}
	cmd, arg, _ = strings.Cut(trimmed[1:], " ")
	return strings.ToLower(cmd), strings.TrimSpace(arg), true
}

func printResults(out io.Writer, s *session.Session) {
	rendered := s.Render()
	if rendered == "" {
		fmt.Fprintln(out, "(no words)")
		return
	}
	fmt.Fprintln(out, rendered)
}

func saveResults(out io.Writer, s *session.Session, path string) {
	if path == "" {
		fmt.Fprintln(out, "Usage: :save <path>")
		return
	}
	err := s.SaveCSV(path)
	switch {
	case errors.Is(err, internalerr.ErrNoResults):
		fmt.Fprintln(out, "No data to save. Run :count first.")
	case err != nil:
		fmt.Fprintln(out, "Error:", err)
	default:
		fmt.Fprintf(out, "Saved CSV → %s\n", path)
	}
}
