package cli

import (
	"os"

	"golang.org/x/term"
)

// TerminalPassword returns a PasswordReader for f when f is a terminal, and
// nil otherwise so the controller falls back to line input.
func TerminalPassword(f *os.File) PasswordReader {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return nil
	}
	return func() (string, error) {
		secret, err := term.ReadPassword(fd)
		if err != nil {
			return "", err
		}
		return string(secret), nil
	}
}
