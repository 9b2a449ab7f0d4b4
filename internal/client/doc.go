// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the pts command line.
//
// One invocation runs one command against the store: the store is opened
// through the vault service, mutated, and saved back before the command
// returns. Prompts go through a [Prompter] and secrets are written to the
// configured output or copied to the clipboard.
package client
