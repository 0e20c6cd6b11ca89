package handlers

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"stockpile/config"
	"stockpile/storage"
	"stockpile/store"
)

// CLI drives the interactive menus. It is a thin layer: every choice is
// parsed, handed to the store, and the result rendered as one message.
type CLI struct {
	cfg     *config.Config
	adapter storage.Adapter
	creds   *store.CredentialStore

	in         *bufio.Scanner
	out        io.Writer
	passwordFd int
	eof        bool
}

// New builds a CLI reading from stdin and writing to stdout.
func New(cfg *config.Config, adapter storage.Adapter, creds *store.CredentialStore) *CLI {
	return NewWithIO(cfg, adapter, creds, os.Stdin, os.Stdout)
}

// NewWithIO is New with explicit streams, used by tests to script a session.
func NewWithIO(cfg *config.Config, adapter storage.Adapter, creds *store.CredentialStore, in io.Reader, out io.Writer) *CLI {
	c := &CLI{
		cfg:        cfg,
		adapter:    adapter,
		creds:      creds,
		in:         bufio.NewScanner(in),
		out:        out,
		passwordFd: -1,
	}
	// Hidden password input only works on a real terminal.
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		c.passwordFd = int(f.Fd())
	}
	return c
}

// Run shows the login menu until a session starts, then the main menu until
// the user exits. Logging out returns to the login menu.
func (c *CLI) Run() {
	fmt.Fprintln(c.out, "\nWelcome to the Stockpile Inventory Management System!")

	if sess, ok := c.resumeSession(); ok {
		if !c.runMain(sess) {
			return
		}
	}

	for {
		sess, exit := c.runLogin()
		if exit {
			return
		}
		if !c.runMain(sess) {
			return
		}
	}
}

// readLine prompts and returns one line of input. EOF reads as empty and is
// remembered so the menu loops can stop instead of re-prompting forever.
func (c *CLI) readLine(prompt string) string {
	fmt.Fprint(c.out, prompt)
	if !c.in.Scan() {
		c.eof = true
		return ""
	}
	return c.in.Text()
}

// readSecret reads a password without echo when attached to a terminal, and
// falls back to a plain line read otherwise.
func (c *CLI) readSecret(prompt string) string {
	if c.passwordFd < 0 {
		return c.readLine(prompt)
	}
	fmt.Fprint(c.out, prompt)
	secret, err := term.ReadPassword(c.passwordFd)
	fmt.Fprintln(c.out)
	if err != nil {
		return ""
	}
	return string(secret)
}

// renderError prints the single user-visible message for a failed operation.
func (c *CLI) renderError(err error) {
	switch {
	case errors.Is(err, store.ErrPersistence):
		fmt.Fprintf(c.out, "Could not save your changes, the operation was rolled back: %v\n", err)
	default:
		fmt.Fprintf(c.out, "Error: %v\n", err)
	}
}
