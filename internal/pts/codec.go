package pts

import (
	"fmt"

	"github.com/MKhiriev/pass-the-salt/models"
)

// FromRecord builds a store from its persisted form and binds every secret
// to it, so the result is usable without a further binding pass.
func FromRecord(rec models.StoreRecord, opts ...Option) (*PassTheSalt, error) {
	p := New(opts...)

	if rec.Config.Owner != nil {
		p.config.Owner = *rec.Config.Owner
	}
	p.config.Master = masterFromRecord(rec.Config.Master)
	if rec.Version != "" {
		p.version = rec.Version
	}
	if rec.Modified != nil {
		p.modified = *rec.Modified
	}
	if rec.SecretsEncrypted != nil && *rec.SecretsEncrypted != "" {
		blob := *rec.SecretsEncrypted
		p.secretsEncrypted = &blob
	}

	p.labels = make([]string, 0, len(rec.Secrets))
	for _, entry := range rec.Secrets {
		if _, ok := p.secrets[entry.Label]; ok {
			return nil, fmt.Errorf("%w: %q: %w", ErrDeserialization, entry.Label, models.ErrDuplicateLabel)
		}

		secret, err := SecretFromRecord(entry.Secret)
		if err != nil {
			return nil, fmt.Errorf("secret %q: %w", entry.Label, err)
		}
		secret.AddContext(entry.Label, p)

		p.secrets[entry.Label] = secret
		p.labels = append(p.labels, entry.Label)
	}

	p.logger.Debug().Int("secrets", len(p.labels)).Msg("store decoded")
	return p, nil
}

// Record returns the persisted form of the store.
func (p *PassTheSalt) Record() (models.StoreRecord, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	rec := models.StoreRecord{
		Config:  p.configRecord(),
		Secrets: make(models.SecretEntries, 0, len(p.labels)),
		Version: p.version,
	}
	if !p.modified.IsZero() {
		modified := p.modified
		rec.Modified = &modified
	}
	if p.secretsEncrypted != nil {
		blob := *p.secretsEncrypted
		rec.SecretsEncrypted = &blob
	}

	for _, label := range p.labels {
		secretRec, err := p.secrets[label].Record()
		if err != nil {
			return models.StoreRecord{}, fmt.Errorf("secret %q: %w", label, err)
		}
		rec.Secrets = append(rec.Secrets, models.SecretEntry{Label: label, Secret: secretRec})
	}
	return rec, nil
}

func (p *PassTheSalt) configRecord() models.ConfigRecord {
	var rec models.ConfigRecord
	if p.config.Owner != "" {
		owner := p.config.Owner
		rec.Owner = &owner
	}
	rec.Master = p.config.Master.record()
	return rec
}
