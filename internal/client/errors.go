package client

import (
	"errors"

	"github.com/MKhiriev/pass-the-salt/internal/config"
	"github.com/MKhiriev/pass-the-salt/internal/pts"
	"github.com/MKhiriev/pass-the-salt/internal/service"
	"github.com/MKhiriev/pass-the-salt/internal/store"
	"github.com/MKhiriev/pass-the-salt/internal/tui"
)

// ErrUsage is returned for malformed command lines.
var ErrUsage = errors.New("usage error")

// Exit codes returned by [ExitCode].
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitUsage       = 2
	ExitLabel       = 3
	ExitAuth        = 4
	ExitStore       = 5
	ExitConfig      = 6
	ExitUnavailable = 7
	ExitCancelled   = 130
)

// ExitCode maps an error returned by [App.Run] to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, tui.ErrUserQuit):
		return ExitCancelled
	case errors.Is(err, ErrUsage):
		return ExitUsage
	case errors.Is(err, pts.ErrLabel):
		return ExitLabel
	case errors.Is(err, service.ErrWrongPassword):
		return ExitAuth
	case errors.Is(err, store.ErrStoreNotFound), errors.Is(err, store.ErrStoreExists):
		return ExitStore
	case errors.Is(err, pts.ErrConfiguration),
		errors.Is(err, config.ErrInvalidAppConfigs),
		errors.Is(err, config.ErrInvalidStorageConfigs),
		errors.Is(err, config.ErrInvalidWorkerConfigs):
		return ExitConfig
	case errors.Is(err, store.ErrStorageUnavailable):
		return ExitUnavailable
	default:
		return ExitFailure
	}
}
