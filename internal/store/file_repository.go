// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/MKhiriev/pass-the-salt/internal/logger"
	"github.com/MKhiriev/pass-the-salt/models"
)

// fileRepository keeps the store document in a single JSON file. Writes go
// to a temporary file in the same directory which then replaces the
// document, so a crash never leaves a truncated store behind.
type fileRepository struct {
	path   string
	mu     sync.Mutex
	logger *logger.Logger
}

// NewFileRepository constructs a [Repository] backed by the file at path.
func NewFileRepository(path string, log *logger.Logger) Repository {
	log.Debug().Str("path", path).Msg("creating file repository")
	return &fileRepository{
		path:   path,
		logger: log,
	}
}

func (r *fileRepository) Load(ctx context.Context) (models.StoreRecord, error) {
	log := logger.FromContext(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return models.StoreRecord{}, fmt.Errorf("%w: %s", ErrStoreNotFound, r.path)
		}
		log.Err(err).Str("func", "*fileRepository.Load").Str("path", r.path).Msg("failed to read store file")
		return models.StoreRecord{}, fmt.Errorf("read store file: %w", err)
	}

	record, err := models.UnmarshalDocument(data)
	if err != nil {
		log.Err(err).Str("func", "*fileRepository.Load").Str("path", r.path).Msg("failed to decode store file")
		return models.StoreRecord{}, err
	}

	return record, nil
}

func (r *fileRepository) Save(ctx context.Context, record models.StoreRecord) error {
	log := logger.FromContext(ctx)

	payload, err := models.MarshalDocument(record)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	dir := filepath.Dir(r.path)
	if dir != "." {
		if err = os.MkdirAll(dir, 0o700); err != nil {
			log.Err(err).Str("func", "*fileRepository.Save").Str("dir", dir).Msg("failed to create store dir")
			return fmt.Errorf("create store dir: %w", err)
		}
	}

	if err = writeFileAtomic(r.path, payload); err != nil {
		log.Err(err).Str("func", "*fileRepository.Save").Str("path", r.path).Msg("failed to write store file")
		return err
	}

	log.Debug().Str("func", "*fileRepository.Save").Int("secrets", len(record.Secrets)).Msg("store saved")
	return nil
}

func (r *fileRepository) Exists(ctx context.Context) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := os.Stat(r.path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("stat store file: %w", err)
	}
}

func (r *fileRepository) Close() error {
	return nil
}

func writeFileAtomic(path string, payload []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp store file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod temp store file: %w", err)
	}
	if _, err = tmp.Write(payload); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp store file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp store file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp store file: %w", err)
	}

	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace store file: %w", err)
	}
	return nil
}
