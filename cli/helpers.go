package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"golang.org/x/term"
)

// GetVaultPath returns the default vault file location, creating the
// containing directory if needed.
func GetVaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(home, ".keepgo")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}

	return filepath.Join(dir, "vault.keep"), nil
}

// ReadPassword reads a line with terminal echo disabled. The caller owns
// the returned buffer and zeroizes it after use.
func ReadPassword(prompt string) ([]byte, error) {
	fmt.Print(prompt)
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	return pw, err
}

// ReadPasswordMasked reads a line echoing '*' per character. The caller
// owns the returned buffer and zeroizes it after use.
func ReadPasswordMasked(prompt string) []byte {
	fmt.Print(prompt)
	fd := int(os.Stdin.Fd())
	state, _ := term.MakeRaw(fd)
	defer term.Restore(fd, state)

	return readMasked(os.Stdin, os.Stdout)
}

// readMasked consumes bytes until Enter or read failure. A closed or
// exhausted input returns whatever was typed so far instead of spinning.
func readMasked(r io.Reader, w io.Writer) []byte {
	var input []rune
	for {
		var buf [1]byte
		n, err := r.Read(buf[:])
		if n > 0 {
			switch c := buf[0]; c {
			case 13, 10: // Enter
				fmt.Fprintln(w)
				return []byte(string(input))
			case 127, 8: // Backspace
				if len(input) > 0 {
					input = input[:len(input)-1]
					fmt.Fprint(w, "\b \b")
				}
			default:
				ch, _ := utf8.DecodeRune(buf[:])
				input = append(input, ch)
				fmt.Fprint(w, "*")
			}
		}
		if err != nil {
			fmt.Fprintln(w)
			return []byte(string(input))
		}
	}
}
