package database

import "context"

// PoolFilter narrows ListPools results.
type PoolFilter struct {
	Algorithm    string // Short algorithm name, empty = any
	Host         string // Exact host, empty = any
	NiceHashOnly bool
}

// Repository defines the interface for pool descriptor storage.
type Repository interface {
	// Database lifecycle
	Close() error

	// Pools
	UpsertPool(ctx context.Context, p *PoolRecord) error
	GetPool(ctx context.Context, uuid string) (*PoolRecord, error)
	GetPoolByURL(ctx context.Context, url, user string) (*PoolRecord, error)
	ListPools(ctx context.Context, filter PoolFilter) ([]*PoolRecord, error)
	DeletePool(ctx context.Context, uuid string) error
}

// Ensure SQLiteRepository implements Repository.
var _ Repository = (*SQLiteRepository)(nil)
