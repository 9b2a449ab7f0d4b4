// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package pts

import (
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/pass-the-salt/models"
)

// now is the clock used for modification timestamps.
var now = func() time.Time {
	return time.Now().UTC()
}

// Secret is a secret held by a [PassTheSalt]. The set of implementations is
// closed: [*Generatable], [*Login] and [*Encrypted].
type Secret interface {
	// Kind returns the serialization tag of the variant.
	Kind() models.SecretKind

	// Modified returns the last time a field of the secret changed.
	Modified() time.Time

	// Label returns the label the secret is bound to, or ErrContext.
	Label() (string, error)

	// Bound reports whether the secret is attached to a store.
	Bound() bool

	// AddContext binds the secret to label inside store.
	AddContext(label string, store *PassTheSalt)

	// RemoveContext unbinds the secret.
	RemoveContext()

	// Get returns the secret value. The secret must be bound.
	Get() (string, error)

	// Display returns a row describing the secret for listings.
	Display() (DisplayRow, error)

	// Record returns the persisted form of the secret, including its tag.
	Record() (models.SecretRecord, error)

	// add and remove run the variant's side effects when the store inserts or
	// detaches the secret. Both require a bound context.
	add() error
	remove() error
}

// secretContext is the label/store pair of a bound secret. The store pointer
// is a back-reference only; the store owns the secret, not the other way.
type secretContext struct {
	label string
	store *PassTheSalt
}

// secretBase carries the state shared by every variant.
type secretBase struct {
	modified time.Time
	ctx      *secretContext
}

func newSecretBase() secretBase {
	return secretBase{modified: now()}
}

// Modified implements [Secret].
func (b *secretBase) Modified() time.Time {
	return b.modified
}

// Bound implements [Secret].
func (b *secretBase) Bound() bool {
	return b.ctx != nil
}

// AddContext implements [Secret].
func (b *secretBase) AddContext(label string, store *PassTheSalt) {
	b.ctx = &secretContext{label: label, store: store}
}

// RemoveContext implements [Secret].
func (b *secretBase) RemoveContext() {
	b.ctx = nil
}

// Label implements [Secret].
func (b *secretBase) Label() (string, error) {
	c, err := b.context()
	if err != nil {
		return "", err
	}
	return c.label, nil
}

func (b *secretBase) context() (*secretContext, error) {
	if b.ctx == nil {
		return nil, ErrContext
	}
	return b.ctx, nil
}

func (b *secretBase) touch() {
	b.modified = now()
}

// add is the base side effect: it only asserts the context.
func (b *secretBase) add() error {
	_, err := b.context()
	return err
}

// remove is the base side effect: it only asserts the context.
func (b *secretBase) remove() error {
	_, err := b.context()
	return err
}

func (b *secretBase) display(kind models.SecretKind) (DisplayRow, error) {
	label, err := b.Label()
	if err != nil {
		return DisplayRow{}, err
	}

	top, _, _ := strings.Cut(string(kind), ".")
	return DisplayRow{Label: label, Kind: top, Modified: b.modified}, nil
}

func (b *secretBase) recordBase() models.SecretRecord {
	var rec models.SecretRecord
	if !b.modified.IsZero() {
		modified := b.modified
		rec.Modified = &modified
	}
	return rec
}

func baseFromRecord(rec models.SecretRecord) secretBase {
	var b secretBase
	if rec.Modified != nil {
		b.modified = *rec.Modified
	}
	return b
}

// DisplayRow describes a secret in a listing.
type DisplayRow struct {
	Label    string
	Kind     string
	Modified time.Time

	// Salt is set for generatable secrets only.
	Salt string
}

// Columns returns the row as strings: label, kind, modified and, for
// generatable secrets, the salt.
func (r DisplayRow) Columns() []string {
	cols := []string{r.Label, r.Kind, r.Modified.Format(time.DateTime)}
	if r.Kind == string(models.KindGeneratable) {
		cols = append(cols, r.Salt)
	}
	return cols
}

// kindTag returns the serialization tag of a secret.
func kindTag(s Secret) (models.SecretKind, error) {
	switch s.(type) {
	case *Encrypted:
		return models.KindEncrypted, nil
	case *Login:
		return models.KindLogin, nil
	case *Generatable:
		return models.KindGeneratable, nil
	default:
		return "", fmt.Errorf("%w: %T has an unknown kind", ErrSerialization, s)
	}
}

// SecretFromRecord decodes any secret variant by dispatching on its kind tag.
// The returned secret is unbound.
func SecretFromRecord(rec models.SecretRecord) (Secret, error) {
	switch rec.Kind {
	case models.KindEncrypted:
		return EncryptedFromRecord(rec)
	case models.KindGeneratable:
		return GeneratableFromRecord(rec)
	case models.KindLogin:
		return LoginFromRecord(rec)
	default:
		return nil, fmt.Errorf("%w: %q is not a valid secret kind", ErrDeserialization, rec.Kind)
	}
}
