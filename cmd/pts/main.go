package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/pass-the-salt/internal/client"
	"github.com/MKhiriev/pass-the-salt/internal/config"
	"github.com/MKhiriev/pass-the-salt/internal/logger"
	"github.com/MKhiriev/pass-the-salt/internal/pts"
	"github.com/MKhiriev/pass-the-salt/internal/service"
	"github.com/MKhiriev/pass-the-salt/internal/store"
	"github.com/MKhiriev/pass-the-salt/internal/tui"
	"github.com/MKhiriev/pass-the-salt/internal/workers"
	"github.com/MKhiriev/pass-the-salt/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, args, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "pts: %v\n", err)
		if code := client.ExitCode(err); code != client.ExitFailure {
			return code
		}
		return client.ExitUsage
	}

	log := logger.NewClientLogger("pts", cfg.App.LogFile, cfg.App.LogLevel)
	log.Debug().Str("path", cfg.Storage.Path).Str("driver", cfg.Storage.DB.Driver).
		Bool("db", cfg.Storage.DB.DSN != "").Msg("received configs")

	repo, err := store.NewRepository(ctx, cfg.Storage, log)
	if err != nil {
		log.Err(err).Msg("error creating repository")
		fmt.Fprintf(os.Stderr, "pts: %v\n", err)
		return client.ExitCode(err)
	}
	defer repo.Close()

	ui := tui.New(log)
	services, err := service.NewServices(repo, service.VaultOptions{
		Password: client.NewPasswordSource(ctx, cfg.App.Master, ui, args),
		Path:     cfg.Storage.Path,
	}, buildInfo(), log)
	if err != nil {
		log.Err(err).Msg("create services")
		fmt.Fprintf(os.Stderr, "pts: %v\n", err)
		return client.ExitFailure
	}

	app, err := client.NewApp(services, ui, workers.SystemClipboard(), cfg, os.Stdout, log)
	if err != nil {
		log.Err(err).Msg("init client app error")
		fmt.Fprintf(os.Stderr, "pts: %v\n", err)
		return client.ExitFailure
	}

	if err = app.Run(ctx, args); err != nil {
		fmt.Fprintf(os.Stderr, "pts: %v\n", err)
		return client.ExitCode(err)
	}
	return client.ExitOK
}

func buildInfo() models.AppBuildInfo {
	if buildVersion == "" {
		buildVersion = pts.DefaultVersion
	}
	return models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
}
