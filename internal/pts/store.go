// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package pts

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/pass-the-salt/internal/crypto"
	"github.com/MKhiriev/pass-the-salt/internal/logger"
)

// DefaultVersion is written to new stores unless [WithVersion] is given.
const DefaultVersion = "dev"

// PassTheSalt is a store of labelled secrets. It owns the label mapping and
// the encrypted substore; secrets added to it hold a back-reference used to
// derive keys and re-encrypt the substore.
//
// All public methods are safe for concurrent use. The store, including the
// encrypted substore, is one critical section.
type PassTheSalt struct {
	mu sync.Mutex

	config           Config
	labels           []string
	secrets          map[string]Secret
	secretsEncrypted *string
	version          string
	modified         time.Time

	source PasswordSource
	master *string
	path   string

	keychain crypto.KeyChainService
	logger   *logger.Logger
}

// Option configures a [PassTheSalt] on construction.
type Option func(*PassTheSalt)

// WithKeyChain sets the cryptographic collaborator. The default is
// [crypto.NewKeyChainService].
func WithKeyChain(kc crypto.KeyChainService) Option {
	return func(p *PassTheSalt) {
		p.keychain = kc
	}
}

// WithLogger sets the logger used for debug events.
func WithLogger(log *logger.Logger) Option {
	return func(p *PassTheSalt) {
		p.logger = log
	}
}

// WithOwner sets the owner mixed into the master key.
func WithOwner(owner string) Option {
	return func(p *PassTheSalt) {
		p.config.Owner = owner
	}
}

// WithVersion sets the version written with the store.
func WithVersion(version string) Option {
	return func(p *PassTheSalt) {
		p.version = version
	}
}

// New returns an empty store.
func New(opts ...Option) *PassTheSalt {
	p := &PassTheSalt{
		secrets:  make(map[string]Secret),
		version:  DefaultVersion,
		modified: now(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.keychain == nil {
		p.keychain = crypto.NewKeyChainService()
	}
	if p.logger == nil {
		p.logger = logger.Nop()
	}
	return p
}

// WithMaster sets the master password source and returns the store. A
// previously resolved password is forgotten.
func (p *PassTheSalt) WithMaster(src PasswordSource) *PassTheSalt {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.source = src
	p.master = nil
	return p
}

// WithPath sets the default path and returns the store.
func (p *PassTheSalt) WithPath(path string) *PassTheSalt {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.path = path
	return p
}

// Path returns the default path or ErrConfiguration when none is set.
func (p *PassTheSalt) Path() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.path == "" {
		return "", fmt.Errorf("%w: no default path is configured", ErrConfiguration)
	}
	return p.path, nil
}

// MasterKey returns the key used for generation and substore encryption:
// "owner|master", or the master password alone when there is no owner.
func (p *PassTheSalt) MasterKey() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.masterKey()
}

func (p *PassTheSalt) masterKey() (string, error) {
	password, err := p.masterPassword()
	if err != nil {
		return "", err
	}
	if p.config.Owner == "" {
		return password, nil
	}
	return p.config.Owner + "|" + password, nil
}

// masterPassword consults the source once and caches a successful result.
func (p *PassTheSalt) masterPassword() (string, error) {
	if p.master != nil {
		return *p.master, nil
	}
	if p.source == nil {
		return "", fmt.Errorf("%w: no master password is configured", ErrConfiguration)
	}

	password, err := p.source.Password()
	if err != nil {
		return "", fmt.Errorf("%w: read master password: %w", ErrConfiguration, err)
	}
	p.master = &password
	return password, nil
}

// Owner returns the configured owner, empty when there is none.
func (p *PassTheSalt) Owner() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.config.Owner
}

// Version returns the version the store was written with.
func (p *PassTheSalt) Version() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.version
}

// Modified returns the last time a secret was added or removed.
func (p *PassTheSalt) Modified() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.modified
}

// SetMaster replaces the master verification record with one built from
// the current master password.
func (p *PassTheSalt) SetMaster() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	password, err := p.masterPassword()
	if err != nil {
		return err
	}
	master, err := NewMaster(p.keychain, password)
	if err != nil {
		return err
	}
	p.config.Master = master
	p.touch()
	return nil
}

// MasterValid checks the current master password against the stored
// verification record. A store without a record accepts any password.
func (p *PassTheSalt) MasterValid() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.config.Master == nil {
		return true, nil
	}
	password, err := p.masterPassword()
	if err != nil {
		return false, err
	}
	return p.verifyMaster(password)
}

// HasMaster reports whether the store carries a master verification record.
func (p *PassTheSalt) HasMaster() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.config.Master != nil
}

// Labels returns the labels in insertion order. A non-empty pattern keeps
// only labels it matches at their start; an invalid pattern is ErrLabel.
func (p *PassTheSalt) Labels(pattern string) ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.matchLabels(pattern)
}

func (p *PassTheSalt) matchLabels(pattern string) ([]string, error) {
	if pattern == "" {
		return slices.Clone(p.labels), nil
	}

	// the pattern must compile on its own before it is anchored, otherwise
	// an unbalanced group like "a)|(b" escapes the anchor
	if _, err := regexp.Compile(pattern); err != nil {
		return nil, fmt.Errorf("%w: %q is an invalid regex expression", ErrLabel, pattern)
	}
	re, err := regexp.Compile("^(?:" + pattern + ")")
	if err != nil {
		return nil, fmt.Errorf("%w: %q is an invalid regex expression", ErrLabel, pattern)
	}

	var matches []string
	for _, label := range p.labels {
		if re.MatchString(label) {
			matches = append(matches, label)
		}
	}
	return matches, nil
}

// Resolve turns a label or an unambiguous pattern into a label. An existing
// label is returned unchanged; otherwise the pattern must match exactly one
// label.
func (p *PassTheSalt) Resolve(pattern string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.secrets[pattern]; ok {
		return pattern, nil
	}

	matches, err := p.matchLabels(pattern)
	if err != nil {
		return "", err
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", fmt.Errorf("%w: unable to resolve pattern %q", ErrLabel, pattern)
	default:
		return "", fmt.Errorf("%w: pattern %q matches multiple secrets: %s",
			ErrLabel, pattern, strings.Join(matches, ", "))
	}
}

// Contains reports whether label exists.
func (p *PassTheSalt) Contains(label string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, ok := p.secrets[label]
	return ok
}

// Len returns the number of secrets.
func (p *PassTheSalt) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.labels)
}

// Add binds secret to label and runs its add side effects. The label must
// not exist and the secret must not be bound already. On failure the store
// and the secret are left as they were.
func (p *PassTheSalt) Add(label string, secret Secret) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.add(label, secret, len(p.labels)); err != nil {
		return err
	}
	p.touch()
	return nil
}

func (p *PassTheSalt) add(label string, secret Secret, index int) error {
	if _, ok := p.secrets[label]; ok {
		return fmt.Errorf("%w: %q already exists", ErrLabel, label)
	}
	if secret.Bound() {
		return fmt.Errorf("%w: secret is already bound to a store", ErrContext)
	}

	secret.AddContext(label, p)
	if err := secret.add(); err != nil {
		secret.RemoveContext()
		return err
	}

	p.secrets[label] = secret
	p.labels = slices.Insert(p.labels, index, label)

	p.logger.Debug().Str("label", label).Str("kind", string(secret.Kind())).Msg("secret added")
	return nil
}

// Get returns the secret stored under label. Callers holding a pattern
// should [PassTheSalt.Resolve] it first.
func (p *PassTheSalt) Get(label string) (Secret, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	secret, ok := p.secrets[label]
	if !ok {
		return nil, fmt.Errorf("%w: %q does not exist", ErrLabel, label)
	}
	return secret, nil
}

// Pop removes the secret stored under label, runs its remove side effects
// and returns it unbound.
func (p *PassTheSalt) Pop(label string) (Secret, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	secret, _, err := p.pop(label)
	if err != nil {
		return nil, err
	}
	p.touch()
	return secret, nil
}

// pop returns the detached secret and the position it had.
func (p *PassTheSalt) pop(label string) (Secret, int, error) {
	secret, ok := p.secrets[label]
	if !ok {
		return nil, 0, fmt.Errorf("%w: %q does not exist", ErrLabel, label)
	}

	if err := secret.remove(); err != nil {
		return nil, 0, err
	}

	index := slices.Index(p.labels, label)
	p.labels = slices.Delete(p.labels, index, index+1)
	delete(p.secrets, label)
	secret.RemoveContext()

	p.logger.Debug().Str("label", label).Str("kind", string(secret.Kind())).Msg("secret removed")
	return secret, index, nil
}

// Remove deletes the secret stored under label.
func (p *PassTheSalt) Remove(label string) error {
	_, err := p.Pop(label)
	return err
}

// Move renames label to newLabel by popping the secret and adding it again,
// so every side effect of removal and insertion runs. Like any add, the new
// label goes to the end of the label order. On failure the secret is put
// back where it was.
func (p *PassTheSalt) Move(label, newLabel string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.secrets[newLabel]; ok {
		return fmt.Errorf("%w: %q already exists", ErrLabel, newLabel)
	}

	secret, index, err := p.pop(label)
	if err != nil {
		return err
	}

	if err = p.add(newLabel, secret, len(p.labels)); err != nil {
		if rerr := p.add(label, secret, index); rerr != nil {
			p.logger.Error().Err(rerr).Str("label", label).Msg("failed to restore secret after move")
		}
		return err
	}

	p.logger.Debug().Str("from", label).Str("to", newLabel).Msg("secret moved")
	p.touch()
	return nil
}

// Each calls fn for every secret in label order while the store is locked.
// fn must not call back into the store or into a bound secret's Get.
func (p *PassTheSalt) Each(fn func(label string, secret Secret) error) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, label := range p.labels {
		if err := fn(label, p.secrets[label]); err != nil {
			return err
		}
	}
	return nil
}

func (p *PassTheSalt) touch() {
	p.modified = now()
}

// verifyMaster checks candidate against the stored verification record
// without touching the configured password source. It reports false when
// the store has no record.
func (p *PassTheSalt) verifyMaster(candidate string) (bool, error) {
	if p.config.Master == nil {
		return false, nil
	}
	return p.config.Master.IsValid(p.keychain, candidate)
}
