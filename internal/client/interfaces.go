// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run executes one command line and returns when it is done.
	Run(ctx context.Context, args []string) error
}

// Prompter asks the user for input on the terminal.
type Prompter interface {
	// Password reads a password with masked echo. With confirm the user
	// types it twice.
	Password(ctx context.Context, prompt string, confirm bool) (string, error)

	// Confirm asks a yes/no question.
	Confirm(ctx context.Context, question string) (bool, error)
}
