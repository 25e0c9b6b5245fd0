package console

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// ErrNoTerminal is returned when a passphrase prompt is needed but input
// is not a terminal.
var ErrNoTerminal = errors.New("stdin is not a terminal; pass the passphrase with --passphrase")

// ReadPassphrase prompts on out and reads a line from in without echo.
func ReadPassphrase(prompt string, in *os.File, out io.Writer) (string, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return "", ErrNoTerminal
	}
	fmt.Fprint(out, prompt)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
