package database

import (
	"fmt"

	"github.com/powerhive/pooldesc/pkg/pool"
)

// PoolMapper converts between pool descriptors and stored records.
// Algorithm names are rendered and resolved through the configured table.
type PoolMapper struct {
	table *pool.Table
}

// NewPoolMapper creates a new mapper.
func NewPoolMapper(table *pool.Table) *PoolMapper {
	return &PoolMapper{table: table}
}

// ToRecord converts a descriptor to a record ready for UpsertPool.
func (m *PoolMapper) ToRecord(label string, d *pool.Descriptor) (*PoolRecord, error) {
	if !d.IsValid() {
		return nil, fmt.Errorf("cannot store pool %q: %w", d.URL(), pool.ErrEmptyHost)
	}

	algo, err := m.table.Name(d.Algorithm(), true)
	if err != nil {
		return nil, fmt.Errorf("cannot store pool %q: %w", d.URL(), err)
	}

	return &PoolRecord{
		Label:     label,
		URL:       d.URL(),
		Host:      d.Host(),
		Port:      int(d.Port()),
		User:      d.User(),
		Password:  d.Password(),
		Algorithm: algo,
		Variant:   int(d.StoredVariant()),
		NiceHash:  d.NiceHash(),
		KeepAlive: d.KeepAlive(),
	}, nil
}

// ToDescriptor rebuilds a descriptor from a stored record.
func (m *PoolMapper) ToDescriptor(r *PoolRecord) (*pool.Descriptor, error) {
	d, err := pool.New(r.URL)
	if err != nil || d.Host() != r.Host || int(d.Port()) != r.Port {
		// Records built from discrete fields carry a synthesized host:port URL
		// that may not parse back, e.g. for IPv6 hosts.
		d = pool.NewFromFields(pool.Fields{Host: r.Host, Port: uint16(r.Port)})
		if d.URL() != r.URL {
			return nil, fmt.Errorf("stored pool %s: url %q does not match %s:%d", r.UUID, r.URL, r.Host, r.Port)
		}
	}

	d.SetUser(r.User)
	d.SetPassword(r.Password)
	d.SetNiceHash(r.NiceHash)
	d.SetKeepAlive(r.KeepAlive)
	if err := d.SetVariant(r.Variant); err != nil {
		return nil, fmt.Errorf("stored pool %s: %w", r.UUID, err)
	}

	if r.Algorithm != "invalid" {
		algo := m.table.Resolve(r.Algorithm)
		if algo == pool.InvalidAlgorithm {
			return nil, fmt.Errorf("stored pool %s: %w: %q", r.UUID, pool.ErrAlgorithmDisabled, r.Algorithm)
		}
		d.SetAlgorithm(algo)
	}

	return d, nil
}
