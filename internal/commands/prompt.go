package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// credentials reads a username and password for the login and register
// forms. Values given as flags are used as-is; missing ones are prompted
// for on env.In, with echo disabled for the password when In is a terminal.
func credentials(env *Env, username, password string) (string, string, error) {
	var lines *bufio.Reader
	if env.In != nil {
		lines = bufio.NewReader(env.In)
	}

	if username == "" {
		if lines == nil {
			return "", "", errors.New("username required")
		}
		fmt.Fprint(env.ErrOut, "Username: ")
		line, err := readLine(lines)
		if err != nil {
			return "", "", fmt.Errorf("read username: %w", err)
		}
		username = line
	}

	if password == "" {
		if f, ok := env.In.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			fmt.Fprint(env.ErrOut, "Password: ")
			b, err := term.ReadPassword(int(f.Fd()))
			fmt.Fprintln(env.ErrOut)
			if err != nil {
				return "", "", fmt.Errorf("read password: %w", err)
			}
			password = string(b)
		} else if lines != nil {
			fmt.Fprint(env.ErrOut, "Password: ")
			line, err := readLine(lines)
			if err != nil {
				return "", "", fmt.Errorf("read password: %w", err)
			}
			password = line
		}
	}

	username = strings.TrimSpace(username)
	if username == "" {
		return "", "", errors.New("username required")
	}
	if password == "" {
		return "", "", errors.New("password required")
	}
	return username, password, nil
}

// readLine returns the next line without its terminator. A final line
// without a newline is accepted.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
