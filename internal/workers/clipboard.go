// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/atotto/clipboard"

	"github.com/MKhiriev/pass-the-salt/internal/logger"
)

// Clipboard is the system clipboard.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

type systemClipboard struct{}

// SystemClipboard returns the clipboard of the running desktop session.
func SystemClipboard() Clipboard {
	return systemClipboard{}
}

func (systemClipboard) ReadAll() (string, error) {
	return clipboard.ReadAll()
}

func (systemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// ClipboardClearer empties the clipboard once a delay has passed or its
// context is done, but only while the clipboard still holds the value that
// was copied. Anything the user copied in the meantime is left alone.
type ClipboardClearer struct {
	ctx   context.Context
	clip  Clipboard
	value string
	after time.Duration

	// cleared is closed when Run returns.
	cleared chan struct{}

	logger *logger.Logger
}

// NewClipboardClearer returns a worker clearing value from clip after the
// given delay.
func NewClipboardClearer(ctx context.Context, clip Clipboard, value string, after time.Duration, log *logger.Logger) *ClipboardClearer {
	return &ClipboardClearer{
		ctx:     ctx,
		clip:    clip,
		value:   value,
		after:   after,
		cleared: make(chan struct{}),
		logger:  log,
	}
}

// Run blocks until the delay has passed or the context is done, then clears
// the clipboard.
func (c *ClipboardClearer) Run() {
	defer close(c.cleared)

	timer := time.NewTimer(c.after)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-c.ctx.Done():
	}

	current, err := c.clip.ReadAll()
	if err != nil {
		c.logger.Err(err).Str("func", "*ClipboardClearer.Run").Msg("failed to read clipboard")
		return
	}
	if current != c.value {
		c.logger.Debug().Str("func", "*ClipboardClearer.Run").Msg("clipboard changed, leaving it alone")
		return
	}

	if err = c.clip.WriteAll(""); err != nil {
		c.logger.Err(err).Str("func", "*ClipboardClearer.Run").Msg("failed to clear clipboard")
		return
	}
	c.logger.Debug().Str("func", "*ClipboardClearer.Run").Msg("clipboard cleared")
}

// Done is closed once Run has returned.
func (c *ClipboardClearer) Done() <-chan struct{} {
	return c.cleared
}
