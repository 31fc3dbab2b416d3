package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var errNoKey = errors.New("no cipher key: use --key, TRANSPOSITION_KEY or the config file")

// Terminal hooks, replaced in tests.
var (
	stdinIsTerminal = func() bool {
		return term.IsTerminal(int(os.Stdin.Fd()))
	}
	readPassword = func() ([]byte, error) {
		return term.ReadPassword(int(os.Stdin.Fd()))
	}
)

// resolveKey returns the configured key (flag, env or config file, already
// merged by viper) or prompts for one without echo when stdin is a terminal.
func (a *app) resolveKey(cmd *cobra.Command) (string, error) {
	if a.cfg.Key != "" {
		return a.cfg.Key, nil
	}
	if !stdinIsTerminal() {
		return "", errNoKey
	}
	return promptForKey(cmd)
}

func promptForKey(cmd *cobra.Command) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), "Cipher key: ")
	b, err := readPassword()
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", fmt.Errorf("reading key: %w", err)
	}
	key := strings.TrimSpace(string(b))
	if key == "" {
		return "", errNoKey
	}
	return key, nil
}
