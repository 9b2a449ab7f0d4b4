package service

import (
	"context"

	"github.com/MKhiriev/pass-the-salt/internal/pts"
	"github.com/MKhiriev/pass-the-salt/models"
)

// VaultService moves a [pts.PassTheSalt] across the persistence boundary.
type VaultService interface {
	// Init creates and saves an empty store owned by owner.
	Init(ctx context.Context, owner string) (*pts.PassTheSalt, error)

	// Open loads the store and verifies the master password.
	Open(ctx context.Context) (*pts.PassTheSalt, error)

	// Save persists the store.
	Save(ctx context.Context, store *pts.PassTheSalt) error
}

// AppInfoService exposes build metadata.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}
