// Command passwd prints a password hash for seeding the users table, or a
// random session secret with -secret.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/dmitrijs2005/medidesk/internal/common"
	"github.com/dmitrijs2005/medidesk/internal/server/auth"
	"github.com/dmitrijs2005/medidesk/internal/server/config"
	"golang.org/x/term"
)

var errMismatch = errors.New("passwords do not match")

// readPassword reads one line from the terminal without echo.
var readPassword = func(prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)
	return term.ReadPassword(int(os.Stdin.Fd()))
}

func hashFromPrompt(w io.Writer) error {
	first, err := readPassword("Password: ")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(first)

	second, err := readPassword("Repeat: ")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(second)

	if len(first) == 0 {
		return errors.New("empty password")
	}
	if !bytes.Equal(first, second) {
		return errMismatch
	}

	hash, err := auth.HashPassword(string(first))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, hash)
	return err
}

func printSecret(w io.Writer) error {
	s, err := common.MakeRandHexString(config.MinSecretKeyLength)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, s)
	return err
}

func run(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("passwd", flag.ContinueOnError)
	secret := fs.Bool("secret", false, "print a random session secret instead of hashing a password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *secret {
		return printSecret(w)
	}
	return hashFromPrompt(w)
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("%v", err)
	}
}
