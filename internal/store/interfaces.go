package store

import (
	"context"

	"github.com/MKhiriev/pass-the-salt/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/repository_mock.go -package=mock

// Repository persists a single store document.
type Repository interface {
	// Load returns the stored document or ErrStoreNotFound.
	Load(ctx context.Context) (models.StoreRecord, error)

	// Save writes the document, replacing any previous version.
	Save(ctx context.Context, record models.StoreRecord) error

	// Exists reports whether a document has been saved.
	Exists(ctx context.Context) (bool, error)

	// Close releases the underlying resources.
	Close() error
}

// ErrorClassificator decides whether a failed database operation is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
