package view

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/manifoldco/promptui"
	"golang.org/x/term"
)

// ErrAborted is returned when the user cancels a prompt (Ctrl+C / Ctrl+D)
var ErrAborted = errors.New("aborted")

// Prompter collects input for the views
type Prompter interface {
	Input(label, defaultValue string) (string, error)
	Password(label string) (string, error)
	Select(label string, items []string) (int, error)
}

// TerminalPrompter reads from the controlling terminal
type TerminalPrompter struct {
	out          io.Writer
	stdin        int
	isTerminal   func(fd int) bool
	readPassword func(fd int) ([]byte, error)
}

// NewTerminalPrompter creates a prompter that echoes its labels to out
func NewTerminalPrompter(out io.Writer) *TerminalPrompter {
	return &TerminalPrompter{
		out:          out,
		stdin:        int(os.Stdin.Fd()),
		isTerminal:   term.IsTerminal,
		readPassword: term.ReadPassword,
	}
}

func (p *TerminalPrompter) Input(label, defaultValue string) (string, error) {
	prompt := promptui.Prompt{
		Label:   label,
		Default: defaultValue,
	}

	value, err := prompt.Run()
	if err != nil {
		return "", mapPromptError(err)
	}
	return value, nil
}

func (p *TerminalPrompter) Password(label string) (string, error) {
	if !p.isTerminal(p.stdin) {
		return "", fmt.Errorf("password is required in non-interactive mode (use --password flag or EQUITYDASH_PASSWORD env var)")
	}

	fmt.Fprintf(p.out, "%s: ", label)
	bytePassword, err := p.readPassword(p.stdin)
	fmt.Fprintln(p.out) // New line after password input
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(bytePassword), nil
}

func (p *TerminalPrompter) Select(label string, items []string) (int, error) {
	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "> {{ . | cyan }}",
		Inactive: "  {{ . }}",
		Selected: "{{ . | green }}",
	}

	prompt := promptui.Select{
		Label:     label,
		Items:     items,
		Templates: templates,
		Size:      len(items),
	}

	index, _, err := prompt.Run()
	if err != nil {
		return -1, mapPromptError(err)
	}
	return index, nil
}

func mapPromptError(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) || errors.Is(err, promptui.ErrAbort) {
		return ErrAborted
	}
	return fmt.Errorf("prompt failed: %w", err)
}
