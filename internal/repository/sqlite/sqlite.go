// Package sqlite implements the repository interfaces on top of a single
// SQLite file.
//
// WHY modernc.org/sqlite?
// It is a pure Go translation of SQLite, so the binary builds without CGo and
// cross-compiles cleanly. github.com/jmoiron/sqlx sits on top of database/sql
// to scan rows straight into the `db`-tagged model structs.
//
// CONCURRENCY:
// The pool is capped at one open connection. SQLite allows a single writer
// anyway, and it keeps ":memory:" databases (used by the tests) from being
// silently split across several connections. Every statement is independently
// atomic; nothing here spans a transaction across statements.
package sqlite

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"

	"github.com/sakif/couple-gallery/internal/model"

	// Registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// DB wraps the sqlx handle and implements every repository interface.
// It is created once at startup and injected wherever data access is needed.
type DB struct {
	conn *sqlx.DB
	now  func() time.Time
}

// New opens (or creates) the database at dbPath, applies pending migrations
// and seeds the default rows.
//
// dbPath examples:
//   - "data/gallery.db" → file-based database
//   - ":memory:"        → in-memory database, lost on Close (tests)
func New(dbPath string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL lets readers proceed while a write is in flight.
	// On ":memory:" SQLite answers "memory" and carries on.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// Foreign keys are OFF by default in SQLite.
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn, now: time.Now}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	if err := db.seed(context.Background()); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: seeding defaults: %w", err)
	}

	return db, nil
}

// Close closes the underlying connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping reports whether the database is reachable. Used by the health check.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// migrate applies the embedded SQL migrations with golang-migrate.
//
// The migrate instance is deliberately not closed: closing it would also
// close the *sql.DB we handed to it.
func (db *DB) migrate() error {
	src, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return fmt.Errorf("loading migration files: %w", err)
	}

	driver, err := migratesqlite.WithInstance(db.conn.DB, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("creating migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("applying migrations: %w", err)
	}

	return nil
}

// seed inserts the rows the application expects to exist:
//   - the singleton profile row (id = 1)
//   - one welcome message when the messages table is empty
//   - every default setting whose key is absent
//
// It runs on every start and never overwrites existing data.
func (db *DB) seed(ctx context.Context) error {
	now := db.now()
	today := now.Format(model.DateLayout)

	_, err := db.conn.ExecContext(ctx,
		`INSERT OR IGNORE INTO profile (id, name1, name2, together_date, site_title, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		model.ProfileID, "Him", "Her", today, "Our Story", now,
	)
	if err != nil {
		return fmt.Errorf("seeding profile: %w", err)
	}

	var count int
	if err := db.conn.GetContext(ctx, &count, `SELECT COUNT(*) FROM messages`); err != nil {
		return fmt.Errorf("counting messages: %w", err)
	}
	if count == 0 {
		_, err := db.conn.ExecContext(ctx,
			`INSERT INTO messages (content, effective_date, created_at) VALUES (?, ?, ?)`,
			model.WelcomeMessage, today, now,
		)
		if err != nil {
			return fmt.Errorf("seeding welcome message: %w", err)
		}
	}

	for key, value := range model.DefaultSettings {
		_, err := db.conn.ExecContext(ctx,
			`INSERT OR IGNORE INTO settings (key, value, updated_at) VALUES (?, ?, ?)`,
			key, value, now,
		)
		if err != nil {
			return fmt.Errorf("seeding setting %s: %w", key, err)
		}
	}

	return nil
}
