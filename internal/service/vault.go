// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/pass-the-salt/internal/crypto"
	"github.com/MKhiriev/pass-the-salt/internal/logger"
	"github.com/MKhiriev/pass-the-salt/internal/pts"
	"github.com/MKhiriev/pass-the-salt/internal/store"
)

// vaultService is the default [VaultService]. Every store it hands out is
// configured with the same key chain, password source and default path.
type vaultService struct {
	repo     store.Repository
	keychain crypto.KeyChainService
	source   pts.PasswordSource
	path     string
	version  string

	logger *logger.Logger
}

// VaultOptions carries what a vault needs besides its repository.
type VaultOptions struct {
	// KeyChain defaults to [crypto.NewKeyChainService].
	KeyChain crypto.KeyChainService

	// Password supplies the master password.
	Password pts.PasswordSource

	// Path is reported by [pts.PassTheSalt.Path].
	Path string

	// Version is written into stores created by Init.
	Version string
}

// NewVaultService constructs a [VaultService] over repo.
func NewVaultService(repo store.Repository, opts VaultOptions, logger *logger.Logger) VaultService {
	if opts.KeyChain == nil {
		opts.KeyChain = crypto.NewKeyChainService()
	}
	return &vaultService{
		repo:     repo,
		keychain: opts.KeyChain,
		source:   opts.Password,
		path:     opts.Path,
		version:  opts.Version,
		logger:   logger,
	}
}

func (s *vaultService) options(extra ...pts.Option) []pts.Option {
	return append([]pts.Option{pts.WithKeyChain(s.keychain), pts.WithLogger(s.logger)}, extra...)
}

func (s *vaultService) Init(ctx context.Context, owner string) (*pts.PassTheSalt, error) {
	log := logger.FromContext(ctx)

	exists, err := s.repo.Exists(ctx)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, store.ErrStoreExists
	}

	opts := s.options(pts.WithOwner(owner))
	if s.version != "" {
		opts = append(opts, pts.WithVersion(s.version))
	}

	p := pts.New(opts...).WithMaster(s.source).WithPath(s.path)
	if err = p.SetMaster(); err != nil {
		log.Err(err).Str("func", "*vaultService.Init").Msg("failed to build master verification record")
		return nil, err
	}

	if err = s.Save(ctx, p); err != nil {
		return nil, err
	}

	log.Info().Str("func", "*vaultService.Init").Bool("owner", owner != "").Msg("store initialized")
	return p, nil
}

func (s *vaultService) Open(ctx context.Context) (*pts.PassTheSalt, error) {
	log := logger.FromContext(ctx)

	record, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	p, err := pts.FromRecord(record, s.options()...)
	if err != nil {
		log.Err(err).Str("func", "*vaultService.Open").Msg("failed to decode store")
		return nil, err
	}
	p.WithMaster(s.source).WithPath(s.path)

	if !p.HasMaster() {
		return p, nil
	}

	valid, err := p.MasterValid()
	if err != nil {
		return nil, err
	}
	if !valid {
		log.Warn().Str("func", "*vaultService.Open").Msg("master password rejected")
		return nil, ErrWrongPassword
	}
	return p, nil
}

func (s *vaultService) Save(ctx context.Context, p *pts.PassTheSalt) error {
	if p == nil {
		return errors.New("no store to save")
	}

	record, err := p.Record()
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}
	return s.repo.Save(ctx, record)
}
