package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/datatug/dirstats/pkg/exitcodes"
)

const commandPrefix = "dir-stats-"

// Dispatch runs the command named by the program name in args[0], so the
// binary can be linked under any tool name, or else by args[1], which may
// omit the "dir-stats-" prefix ("summary", "browse", ...). "scan" selects
// dir-stats.
func Dispatch(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) > 0 {
		name := strings.TrimSuffix(filepath.Base(args[0]), ".exe")
		if f, ok := Commands[name]; ok {
			return f(ctx, args[1:], stdout, stderr)
		}
	}
	if len(args) > 1 {
		if f, ok := lookupCommand(args[1]); ok {
			return f(ctx, args[2:], stdout, stderr)
		}
		_, _ = fmt.Fprintf(stderr, "Error: unknown command %q\n", args[1])
	}
	printCommands(stderr)
	return exitcodes.Usage
}

func lookupCommand(name string) (RunFunc, bool) {
	if name == "scan" {
		name = "dir-stats"
	}
	if f, ok := Commands[name]; ok {
		return f, true
	}
	f, ok := Commands[commandPrefix+name]
	return f, ok
}

func printCommands(w io.Writer) {
	names := make([]string, 0, len(Commands))
	for name := range Commands {
		names = append(names, name)
	}
	slices.Sort(names)
	_, _ = fmt.Fprintln(w, "Usage: dirstats COMMAND [options] [arguments]\n\nCommands:")
	for _, name := range names {
		_, _ = fmt.Fprintf(w, "  %s\n", name)
	}
}
