package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-authgate/edgegate/internal/auth"

	"golang.org/x/term"
)

const defaultSaltLength = 32

// runHashPassword prints the environment lines for an admin identity.
// The password is read without echo when stdin is a terminal, otherwise as
// the first line of stdin.
func runHashPassword(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("hash-password", flag.ContinueOnError)
	fs.SetOutput(stderr)
	salt := fs.String("salt", "", "Salt to use (random if empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *salt == "" {
		generated, err := auth.GenerateSalt(defaultSaltLength)
		if err != nil {
			return fmt.Errorf("failed to generate salt: %w", err)
		}
		*salt = generated
	}

	password, err := readPassword(stdin, stderr)
	if err != nil {
		return err
	}
	if password == "" {
		return errors.New("password must not be empty")
	}

	fmt.Fprintf(stdout, "ADMIN_SALT=%s\n", *salt)
	fmt.Fprintf(stdout, "ADMIN_PASSWORD_HASH=%s\n", auth.HashPassword(password, *salt))
	return nil
}

func readPassword(stdin io.Reader, stderr io.Writer) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(stderr, "Password: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(stderr)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
