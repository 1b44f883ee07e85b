package wizard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/betterde/startfast/internal/project"
	"github.com/manifoldco/promptui"
)

var ErrCancelled = errors.New("operation cancelled")

// Prompter asks the user for a single value.
type Prompter interface {
	Input(label, def string, validate func(string) error) (string, error)
	Select(label string, options []project.Option, def string) (string, error)
	Confirm(label string, def bool) (bool, error)
}

// Terminal prompts on the controlling terminal using promptui.
type Terminal struct{}

func (Terminal) Input(label, def string, validate func(string) error) (string, error) {
	prompt := promptui.Prompt{
		Label:     label,
		Default:   def,
		AllowEdit: true,
		Validate: func(input string) error {
			if validate == nil {
				return nil
			}
			return validate(strings.TrimSpace(input))
		},
	}

	value, err := prompt.Run()
	if err != nil {
		return "", interrupted(err)
	}
	return strings.TrimSpace(value), nil
}

func (Terminal) Select(label string, options []project.Option, def string) (string, error) {
	cursor := 0
	for i, opt := range options {
		if opt.Value == def {
			cursor = i
		}
	}

	prompt := promptui.Select{
		Label:     label,
		Items:     options,
		CursorPos: cursor,
		Size:      len(options),
		Templates: &promptui.SelectTemplates{
			Label:    "{{ . }}",
			Active:   "▸ {{ .Name | cyan }} ({{ .Value }})",
			Inactive: "  {{ .Name }} ({{ .Value }})",
			Selected: "{{ .Name | green }}",
			Details:  "{{ .Description | faint }}",
		},
	}

	i, _, err := prompt.Run()
	if err != nil {
		return "", interrupted(err)
	}
	return options[i].Value, nil
}

func (Terminal) Confirm(label string, def bool) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	if def {
		prompt.Default = "y"
	}

	_, err := prompt.Run()
	if errors.Is(err, promptui.ErrAbort) {
		return false, nil
	}
	if err != nil {
		return false, interrupted(err)
	}
	return true, nil
}

func interrupted(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return ErrCancelled
	}
	return fmt.Errorf("prompt failed: %w", err)
}
