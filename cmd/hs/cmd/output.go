package cmd

import (
	"encoding/json"
	"os"

	"github.com/mattn/go-isatty"
)

// printJSON writes v to stdout as JSON: indented when stdout is a terminal,
// compact single-line when piped.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
