// Package database provides SQLite storage for normalized pool descriptors.
package database

import "time"

// PoolRecord is the stored form of a pool descriptor.
// URL and User together identify a record.
type PoolRecord struct {
	ID        int64     `json:"id"`
	UUID      string    `json:"uuid"`
	Label     string    `json:"label"`     // Operator-facing name, e.g. "primary"
	URL       string    `json:"url"`       // Raw URL as configured
	Host      string    `json:"host"`
	Port      int       `json:"port"`
	User      string    `json:"user"`
	Password  string    `json:"password"`
	Algorithm string    `json:"algorithm"` // Short name, or "invalid"
	Variant   int       `json:"variant"`   // Stored variant, -1 = auto
	NiceHash  bool      `json:"nicehash"`
	KeepAlive int       `json:"keepalive"` // Seconds, 0 = disabled
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
