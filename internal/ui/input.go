package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Stdin is the prompt input, replaceable in tests
var Stdin io.Reader = os.Stdin

var (
	reader    *bufio.Reader
	readerSrc io.Reader
)

// readLine reads through one buffered reader per Stdin value
func readLine() string {
	if reader == nil || readerSrc != Stdin {
		reader = bufio.NewReader(Stdin)
		readerSrc = Stdin
	}
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

// Confirm prompts the user to type the expected value to confirm an action.
// Returns true if the user input matches expectedValue (case-sensitive).
func Confirm(prompt string, expectedValue string) bool {
	return strings.TrimSpace(Prompt(prompt)) == expectedValue
}

// ConfirmYes is Confirm with "yes" as the expected answer
func ConfirmYes(prompt string) bool {
	return Confirm(prompt, "yes")
}

// Prompt writes prompt and reads one line of input
func Prompt(prompt string) string {
	fmt.Fprint(Stdout, prompt)
	return readLine()
}

// PromptDefault is Prompt with a value used for empty input
func PromptDefault(prompt string, def string) string {
	if def != "" {
		prompt = fmt.Sprintf("%s [%s]: ", strings.TrimSuffix(prompt, ": "), def)
	}
	if v := Prompt(prompt); v != "" {
		return v
	}
	return def
}

// PromptSecret reads a line without echo when stdin is a terminal
func PromptSecret(prompt string) (string, error) {
	f, ok := Stdin.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return Prompt(prompt), nil
	}
	fmt.Fprint(Stdout, prompt)
	b, err := term.ReadPassword(int(f.Fd()))
	fmt.Fprintln(Stdout)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}
