// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package prompt asks the interactive questions of the CLI. Terminal prompts
// are rendered with charmbracelet/huh; tests use Scripted.
package prompt

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
)

// ErrNoAnswer is returned by Scripted when it runs out of answers.
var ErrNoAnswer = errors.New("no scripted answer left")

// Prompter asks the user for confirmation and free-form input.
type Prompter interface {
	// Confirm asks a yes/no question, preselecting def.
	Confirm(title string, def bool) (bool, error)

	// Input asks for a line of text. An empty answer yields def.
	Input(title, def string) (string, error)
}

// Terminal prompts on the controlling terminal with huh forms.
type Terminal struct{}

// Confirm implements Prompter.
func (Terminal) Confirm(title string, def bool) (bool, error) {
	v := def
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&v).
		Run()
	if err != nil {
		return false, fmt.Errorf("prompt %q: %w", title, err)
	}
	return v, nil
}

// Input implements Prompter.
func (Terminal) Input(title, def string) (string, error) {
	var v string
	err := huh.NewInput().
		Title(title).
		Placeholder(def).
		Value(&v).
		Run()
	if err != nil {
		return "", fmt.Errorf("prompt %q: %w", title, err)
	}
	if v == "" {
		return def, nil
	}
	return v, nil
}

// Scripted answers prompts from fixed lists, in order. It records every
// question asked and the preselected answer of every confirmation.
type Scripted struct {
	Confirms []bool
	Inputs   []string
	Asked    []string
	Defaults []bool
}

// Confirm implements Prompter.
func (s *Scripted) Confirm(title string, def bool) (bool, error) {
	s.Asked = append(s.Asked, title)
	s.Defaults = append(s.Defaults, def)
	if len(s.Confirms) == 0 {
		return false, fmt.Errorf("confirm %q: %w", title, ErrNoAnswer)
	}
	v := s.Confirms[0]
	s.Confirms = s.Confirms[1:]
	return v, nil
}

// Input implements Prompter.
func (s *Scripted) Input(title, def string) (string, error) {
	s.Asked = append(s.Asked, title)
	if len(s.Inputs) == 0 {
		return "", fmt.Errorf("input %q: %w", title, ErrNoAnswer)
	}
	v := s.Inputs[0]
	s.Inputs = s.Inputs[1:]
	if v == "" {
		return def, nil
	}
	return v, nil
}
