package service

import (
	"github.com/MKhiriev/pass-the-salt/internal/logger"
	"github.com/MKhiriev/pass-the-salt/internal/store"
	"github.com/MKhiriev/pass-the-salt/models"
)

// Services bundles the services used by the command-line client.
type Services struct {
	VaultService   VaultService
	AppInfoService AppInfoService
}

func NewServices(repo store.Repository, opts VaultOptions, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(buildInfo, logger)
	if err != nil {
		return nil, err
	}
	if opts.Version == "" {
		opts.Version = buildInfo.BuildVersion()
	}

	return &Services{
		VaultService:   NewVaultService(repo, opts, logger),
		AppInfoService: appInfo,
	}, nil
}
