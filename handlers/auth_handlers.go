package handlers

import (
	"fmt"
	"log"

	"stockpile/auth"
	"stockpile/store"
)

// resumeSession restores a session from a previously saved token, so a user
// who exited without logging out is not asked for their password again.
func (c *CLI) resumeSession() (*store.Session, bool) {
	token, ok := auth.LoadSession(c.cfg.SessionFile)
	if !ok {
		return nil, false
	}
	username, err := auth.ParseToken(c.cfg.JWTSecret, token)
	if err != nil || !c.creds.Exists(username) {
		auth.ClearSession(c.cfg.SessionFile)
		return nil, false
	}
	fmt.Fprintf(c.out, "Resuming session for %q.\n", username)
	return c.openSession(username), true
}

// runLogin loops over the login menu until a session starts or the user exits.
func (c *CLI) runLogin() (sess *store.Session, exit bool) {
	for {
		fmt.Fprintln(c.out, "\nLogin Menu")
		fmt.Fprintln(c.out, "1. Login")
		fmt.Fprintln(c.out, "2. Register")
		fmt.Fprintln(c.out, "3. Exit")

		choice := c.readLine("Enter your choice (1-3): ")
		if c.eof {
			return nil, true
		}
		switch choice {
		case "1":
			if sess := c.handleLogin(); sess != nil {
				return sess, false
			}
		case "2":
			c.handleRegister()
		case "3":
			fmt.Fprintln(c.out, "\nExiting Program. Thank you!")
			return nil, true
		default:
			fmt.Fprintln(c.out, "Invalid choice. Please enter a number from 1 to 3.")
		}
	}
}

func (c *CLI) handleLogin() *store.Session {
	username := c.readLine("Enter username: ")
	password := c.readSecret("Enter password: ")

	if err := c.creds.Authenticate(username, password); err != nil {
		c.renderError(err)
		return nil
	}
	fmt.Fprintln(c.out, "Login successful.")

	token, err := auth.CreateToken(c.cfg.JWTSecret, username)
	if err == nil {
		err = auth.SaveSession(c.cfg.SessionFile, token)
	}
	if err != nil {
		log.Printf("could not persist session token: %v", err)
	}

	return c.openSession(username)
}

func (c *CLI) handleRegister() {
	username := c.readLine("Enter a new username: ")
	password := c.readSecret("Enter a new password: ")

	if err := c.creds.Register(username, password); err != nil {
		c.renderError(err)
		return
	}
	fmt.Fprintln(c.out, "Registration successful. You can now log in.")
}

// openSession loads the inventory document for username. An unreadable
// document is reported and the session starts from an empty inventory, the
// lenient default this system has always had.
func (c *CLI) openSession(username string) *store.Session {
	doc, err := c.adapter.LoadDocument()
	if err != nil {
		log.Printf("warning: could not read inventory document, starting empty: %v", err)
		doc = nil
	}
	return store.NewSession(c.adapter, doc, username)
}
