package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Test seams for the terminal.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// getPassword prompts for a password. On a terminal it is read without
// echo; otherwise one line is read from the app's input.
func (a *App) getPassword(prompt string) (string, error) {
	if _, err := fmt.Fprint(a.out, prompt); err != nil {
		return "", err
	}

	fd := int(os.Stdin.Fd())
	if isTerminal(fd) {
		pw, err := readPassword(fd)
		fmt.Fprintln(a.out)
		if err != nil {
			return "", err
		}
		return string(pw), nil
	}

	line, err := a.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
		return "", fmt.Errorf("read password: %w", err)
	}
	fmt.Fprintln(a.out)
	return strings.TrimRight(line, "\r\n"), nil
}
