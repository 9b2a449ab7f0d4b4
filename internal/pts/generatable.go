// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package pts

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/MKhiriev/pass-the-salt/models"
)

// generatable holds what [Generatable] and [Login] share: a base and an
// algorithm.
type generatable struct {
	secretBase
	algorithm Algorithm
}

// Algorithm returns the derivation parameters.
func (g *generatable) Algorithm() Algorithm {
	return g.algorithm
}

// generate derives the value for salt. The owning store is locked for the
// duration so the master password source is consulted at most once.
func (g *generatable) generate(salt string) (string, error) {
	c, err := g.context()
	if err != nil {
		return "", err
	}

	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	key, err := c.store.masterKey()
	if err != nil {
		return "", err
	}

	value, err := c.store.keychain.Derive(salt, key, g.algorithm.Version, g.algorithm.Length)
	if err != nil {
		return "", fmt.Errorf("generate secret %q: %w", c.label, err)
	}
	return value, nil
}

// Generatable is a secret regenerated on demand from a salt. Nothing secret
// is stored.
type Generatable struct {
	generatable
	salt string
}

// NewGeneratable returns an unbound generatable secret.
func NewGeneratable(salt string, algorithm Algorithm) *Generatable {
	return &Generatable{
		generatable: generatable{secretBase: newSecretBase(), algorithm: algorithm},
		salt:        salt,
	}
}

// GeneratableFromRecord decodes a generatable secret without looking at the
// kind tag.
func GeneratableFromRecord(rec models.SecretRecord) (*Generatable, error) {
	if rec.Salt == nil {
		return nil, fmt.Errorf("%w: generatable secret requires a salt", ErrDeserialization)
	}
	algorithm, err := algorithmFromRecord(rec.Algorithm)
	if err != nil {
		return nil, err
	}

	return &Generatable{
		generatable: generatable{secretBase: baseFromRecord(rec), algorithm: algorithm},
		salt:        *rec.Salt,
	}, nil
}

// Kind implements [Secret].
func (g *Generatable) Kind() models.SecretKind {
	return models.KindGeneratable
}

// Salt returns the stored salt.
func (g *Generatable) Salt() string {
	return g.salt
}

// Get implements [Secret].
func (g *Generatable) Get() (string, error) {
	return g.generate(g.salt)
}

// Display implements [Secret]. The salt is appended to the row.
func (g *Generatable) Display() (DisplayRow, error) {
	row, err := g.display(g.Kind())
	if err != nil {
		return DisplayRow{}, err
	}
	row.Salt = g.salt
	return row, nil
}

// Record implements [Secret].
func (g *Generatable) Record() (models.SecretRecord, error) {
	kind, err := kindTag(g)
	if err != nil {
		return models.SecretRecord{}, err
	}

	rec := g.recordBase()
	salt := g.salt
	rec.Salt = &salt
	rec.Algorithm = g.algorithm.record()
	rec.Kind = kind
	return rec, nil
}

// Login is a generatable secret for an account. Its salt is computed from
// the domain, the username and an iteration counter, so bumping the
// iteration rotates the password without storing a new salt.
type Login struct {
	generatable
	domain    string
	username  string
	iteration *int
}

// NewLogin returns an unbound login secret. A nil iteration counts as 0.
func NewLogin(domain, username string, iteration *int, algorithm Algorithm) *Login {
	return &Login{
		generatable: generatable{secretBase: newSecretBase(), algorithm: algorithm},
		domain:      domain,
		username:    username,
		iteration:   copyInt(iteration),
	}
}

// LoginFromRecord decodes a login secret without looking at the kind tag.
func LoginFromRecord(rec models.SecretRecord) (*Login, error) {
	if rec.Domain == nil || rec.Username == nil {
		return nil, fmt.Errorf("%w: login secret requires a domain and a username", ErrDeserialization)
	}
	algorithm, err := algorithmFromRecord(rec.Algorithm)
	if err != nil {
		return nil, err
	}

	return &Login{
		generatable: generatable{secretBase: baseFromRecord(rec), algorithm: algorithm},
		domain:      *rec.Domain,
		username:    *rec.Username,
		iteration:   copyInt(rec.Iteration),
	}, nil
}

// Kind implements [Secret].
func (l *Login) Kind() models.SecretKind {
	return models.KindLogin
}

// Domain returns the login domain.
func (l *Login) Domain() string {
	return l.domain
}

// Username returns the login username.
func (l *Login) Username() string {
	return l.username
}

// Iteration returns the iteration counter, 0 when unset.
func (l *Login) Iteration() int {
	if l.iteration == nil {
		return 0
	}
	return *l.iteration
}

// SetIteration changes the iteration counter and with it the salt.
func (l *Login) SetIteration(iteration int) {
	l.iteration = &iteration
	l.touch()
}

// Salt returns domain|username|iteration. It is recomputed on every call.
func (l *Login) Salt() string {
	return strings.Join([]string{l.domain, l.username, strconv.Itoa(l.Iteration())}, "|")
}

// Get implements [Secret].
func (l *Login) Get() (string, error) {
	return l.generate(l.Salt())
}

// Display implements [Secret]. The computed salt is appended to the row.
func (l *Login) Display() (DisplayRow, error) {
	row, err := l.display(l.Kind())
	if err != nil {
		return DisplayRow{}, err
	}
	row.Salt = l.Salt()
	return row, nil
}

// Record implements [Secret]. The salt is not persisted.
func (l *Login) Record() (models.SecretRecord, error) {
	kind, err := kindTag(l)
	if err != nil {
		return models.SecretRecord{}, err
	}

	rec := l.recordBase()
	rec.Algorithm = l.algorithm.record()
	domain, username := l.domain, l.username
	rec.Domain = &domain
	rec.Username = &username
	rec.Iteration = copyInt(l.iteration)
	rec.Kind = kind
	return rec, nil
}

func copyInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
