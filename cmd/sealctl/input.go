package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

var errEmptySecret = errors.New("secret is empty")

// secretSource resolves a secret from an environment variable, falling back
// to a terminal prompt when envName is empty.
func (a *app) secretSource(envName, prompt string) ([]byte, error) {
	if envName != "" {
		v := a.getenv(envName)
		if v == "" {
			return nil, fmt.Errorf("%w: environment variable %s is not set", errEmptySecret, envName)
		}
		return []byte(v), nil
	}

	if _, err := fmt.Fprint(a.stderr, prompt+": "); err != nil {
		return nil, err
	}
	secret, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(a.stderr)
	if err != nil {
		return nil, err
	}
	if len(secret) == 0 {
		return nil, errEmptySecret
	}
	return secret, nil
}

// argOrStdin returns the first positional argument, or one line read from stdin.
func (a *app) argOrStdin(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	line, err := bufio.NewReader(a.stdin).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
