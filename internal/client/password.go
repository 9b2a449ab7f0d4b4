package client

import (
	"context"

	"github.com/MKhiriev/pass-the-salt/internal/pts"
)

// NewPasswordSource returns the master password source of one invocation. A
// configured master password is used as is; otherwise the user is prompted
// the first time the store needs it. Creating a store asks for confirmation.
func NewPasswordSource(ctx context.Context, master string, prompter Prompter, args []string) pts.PasswordSource {
	if master != "" {
		return pts.StaticPassword(master)
	}

	confirm := len(args) > 0 && args[0] == "init"
	return pts.DeferredPassword(func() (string, error) {
		if prompter == nil {
			return "", ErrUsage
		}
		return prompter.Password(ctx, "Master password", confirm)
	})
}
