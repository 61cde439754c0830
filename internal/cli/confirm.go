// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/peterh/liner"
)

// Prompter reads one line of input after showing prompt.
type Prompter interface {
	Prompt(prompt string) (string, error)
}

// LinerPrompter prompts through peterh/liner, so the answer line supports
// editing and ctrl+c aborts.
type LinerPrompter struct{}

// Prompt shows prompt and returns the typed line.
func (LinerPrompter) Prompt(prompt string) (string, error) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	return line.Prompt(prompt)
}

// ConfirmationOptions controls RequireConfirmation.
type ConfirmationOptions struct {
	// ConfirmFlag indicates --confirm was passed (skip the prompt)
	ConfirmFlag bool
	// JSONMode indicates --json was passed (prompts are not allowed)
	JSONMode bool
}

// RequireConfirmation checks that the user agreed to a destructive action.
//
// Confirmation flow:
//  1. --confirm: proceed without prompting
//  2. --json: fail, JSON mode never prompts
//  3. no terminal on stdin: fail, there is nobody to ask
//  4. otherwise ask "action? [y/N]"
//
// It returns ErrCancelled when the user declines or aborts.
func RequireConfirmation(env *Env, action string, details map[string]string, opts ConfirmationOptions) error {
	if opts.ConfirmFlag {
		return nil
	}
	if opts.JSONMode {
		return NewValidationErrorWithExample("confirm", "", "JSON mode requires --confirm for "+action, "--confirm")
	}
	if env.Prompter == nil || !env.Interactive {
		return NewValidationErrorWithExample("confirm", "", "stdin is not a terminal; pass --confirm to "+action, "--confirm")
	}

	for _, k := range sortedKeys(details) {
		fmt.Fprintf(env.Err, "  %s %s\n", RenderLabel(k+":", 12), details[k])
	}

	answer, err := env.Prompter.Prompt(WarningStyle.Render(titleCase(action)+"? [y/N] "))
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) {
			return ErrCancelled
		}
		return NewCommandError("confirm", "read", "could not read answer", err)
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return nil
	default:
		return ErrCancelled
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
