package cli

import (
	"os"

	"golang.org/x/term"
)

// IsTTY checks if the given file descriptor is a terminal.
func IsTTY(fd uintptr) bool {
	return term.IsTerminal(int(fd))
}

// IsOutputTerminal reports whether stdout is a terminal rather than a pipe
// or redirect. Used to pick human-readable log output by default; piped
// invocations get JSON lines instead.
func IsOutputTerminal() bool {
	return IsTTY(os.Stdout.Fd())
}
