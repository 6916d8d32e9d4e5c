package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// promptLine asks for one line of input on stdin.
func promptLine(label string) (string, error) {
	fmt.Print(label)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// promptSecret asks for a secret without echoing when stdin is a terminal.
// Falls back to a plain line read when input is piped in.
func promptSecret(label string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return promptLine(label)
	}

	fmt.Print(label)
	secret, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("reading secret: %w", err)
	}
	return strings.TrimSpace(string(secret)), nil
}

// mask shortens a secret for display: first 10 characters plus the length.
func mask(secret string) string {
	if len(secret) <= 10 {
		return fmt.Sprintf("%s (length: %d)", secret, len(secret))
	}
	return fmt.Sprintf("%s... (length: %d)", secret[:10], len(secret))
}
