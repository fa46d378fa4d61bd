package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite repository.
// The dbPath can be a file path or ":memory:" for in-memory database.
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		// Every connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}

	repo := &SQLiteRepository{db: db}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repo, nil
}

// migrate runs database migrations.
func (r *SQLiteRepository) migrate() error {
	var currentVersion int
	err := r.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&currentVersion)
	if err != nil {
		// Table doesn't exist, run initial schema
		if _, err := r.db.Exec(Schema); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
		_, err = r.db.Exec("INSERT INTO schema_version (version) VALUES (?)", SchemaVersion)
		return err
	}

	for v := currentVersion + 1; v <= SchemaVersion; v++ {
		migration, ok := Migrations[v]
		if !ok {
			continue
		}
		if _, err := r.db.Exec(migration); err != nil {
			return fmt.Errorf("failed to run migration %d: %w", v, err)
		}
		if _, err := r.db.Exec("INSERT INTO schema_version (version) VALUES (?)", v); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", v, err)
		}
	}
	return nil
}

// Close closes the database connection.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// DB returns the underlying database connection for advanced queries.
func (r *SQLiteRepository) DB() *sql.DB {
	return r.db
}

// =============================================================================
// Pools
// =============================================================================

const poolColumns = `id, uuid, label, url, host, port, user, password, algorithm,
	variant, nicehash, keepalive, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPool(s rowScanner) (*PoolRecord, error) {
	p := &PoolRecord{}
	var label sql.NullString
	err := s.Scan(&p.ID, &p.UUID, &label, &p.URL, &p.Host, &p.Port, &p.User, &p.Password,
		&p.Algorithm, &p.Variant, &p.NiceHash, &p.KeepAlive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Label = label.String
	return p, nil
}

// UpsertPool inserts p or updates the record with the same URL and user.
// On return p carries the stored ID, UUID and timestamps.
func (r *SQLiteRepository) UpsertPool(ctx context.Context, p *PoolRecord) error {
	existing, err := r.GetPoolByURL(ctx, p.URL, p.User)
	if err != nil {
		return err
	}

	now := time.Now()
	p.UpdatedAt = now

	if existing != nil {
		p.ID = existing.ID
		p.UUID = existing.UUID
		p.CreatedAt = existing.CreatedAt
		_, err = r.db.ExecContext(ctx, `
			UPDATE pools SET label = ?, host = ?, port = ?, password = ?, algorithm = ?,
				variant = ?, nicehash = ?, keepalive = ?, updated_at = ?
			WHERE id = ?`,
			p.Label, p.Host, p.Port, p.Password, p.Algorithm,
			p.Variant, p.NiceHash, p.KeepAlive, p.UpdatedAt, p.ID)
		return err
	}

	if p.UUID == "" {
		p.UUID = uuid.NewString()
	}
	p.CreatedAt = now

	result, err := r.db.ExecContext(ctx, `
		INSERT INTO pools (uuid, label, url, host, port, user, password, algorithm,
			variant, nicehash, keepalive, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.UUID, p.Label, p.URL, p.Host, p.Port, p.User, p.Password, p.Algorithm,
		p.Variant, p.NiceHash, p.KeepAlive, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return err
	}
	p.ID, _ = result.LastInsertId()
	return nil
}

func (r *SQLiteRepository) GetPool(ctx context.Context, id string) (*PoolRecord, error) {
	p, err := scanPool(r.db.QueryRowContext(ctx,
		"SELECT "+poolColumns+" FROM pools WHERE uuid = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

func (r *SQLiteRepository) GetPoolByURL(ctx context.Context, url, user string) (*PoolRecord, error) {
	p, err := scanPool(r.db.QueryRowContext(ctx,
		"SELECT "+poolColumns+" FROM pools WHERE url = ? AND user = ?", url, user))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

func (r *SQLiteRepository) ListPools(ctx context.Context, filter PoolFilter) ([]*PoolRecord, error) {
	var where []string
	var args []any

	if filter.Algorithm != "" {
		where = append(where, "algorithm = ?")
		args = append(args, filter.Algorithm)
	}
	if filter.Host != "" {
		where = append(where, "host = ?")
		args = append(args, filter.Host)
	}
	if filter.NiceHashOnly {
		where = append(where, "nicehash = 1")
	}

	query := "SELECT " + poolColumns + " FROM pools"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pools []*PoolRecord
	for rows.Next() {
		p, err := scanPool(rows)
		if err != nil {
			return nil, err
		}
		pools = append(pools, p)
	}
	return pools, rows.Err()
}

func (r *SQLiteRepository) DeletePool(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM pools WHERE uuid = ?", id)
	return err
}
