package cli

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// GetSecret prints a prompt to w and reads the signing secret from the
// terminal without echo. A newline is printed after the read.
func GetSecret(w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, "Enter signing secret: "); err != nil {
		return nil, err
	}
	secret, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return secret, nil
}
