package database

// Schema contains the SQLite database schema.
const Schema = `
-- Normalized pool descriptors
CREATE TABLE IF NOT EXISTS pools (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    uuid TEXT NOT NULL UNIQUE,
    label TEXT,
    url TEXT NOT NULL,           -- raw URL as configured
    host TEXT NOT NULL,
    port INTEGER NOT NULL,
    user TEXT NOT NULL DEFAULT '',
    password TEXT NOT NULL DEFAULT '',
    algorithm TEXT NOT NULL,     -- short name, e.g. "cn-lite", or "invalid"
    variant INTEGER NOT NULL DEFAULT -1,
    nicehash INTEGER DEFAULT 0,
    keepalive INTEGER DEFAULT 0,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    UNIQUE(url, user)
);

CREATE INDEX IF NOT EXISTS idx_pools_host ON pools(host);
CREATE INDEX IF NOT EXISTS idx_pools_algorithm ON pools(algorithm);

-- Schema version tracking
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

// SchemaVersion is the current schema version.
const SchemaVersion = 1

// Migrations contains SQL migrations indexed by version.
// Each migration upgrades from version N-1 to version N.
var Migrations = map[int]string{
	1: Schema, // Initial schema
}
