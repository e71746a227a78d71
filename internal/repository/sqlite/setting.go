package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sakif/couple-gallery/internal/apperror"
	"github.com/sakif/couple-gallery/internal/model"
	"github.com/sakif/couple-gallery/internal/repository"
)

var _ repository.SettingRepository = (*DB)(nil)

func (db *DB) ListSettings(ctx context.Context) ([]model.Setting, error) {
	settings := []model.Setting{}
	err := db.conn.SelectContext(ctx, &settings,
		`SELECT key, value, updated_at FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing settings: %w", err)
	}
	return settings, nil
}

func (db *DB) GetSetting(ctx context.Context, key string) (*model.Setting, error) {
	var s model.Setting
	err := db.conn.GetContext(ctx, &s,
		`SELECT key, value, updated_at FROM settings WHERE key = ?`, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("setting", key)
		}
		return nil, fmt.Errorf("sqlite: getting setting %s: %w", key, err)
	}
	return &s, nil
}

// UpsertSetting inserts key or, if it already exists, replaces its value.
//
// ON CONFLICT ... DO UPDATE keeps the row in place instead of the delete and
// re-insert that INSERT OR REPLACE would do.
func (db *DB) UpsertSetting(ctx context.Context, key, value string) error {
	now := db.now()
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, now,
	)
	if err != nil {
		return fmt.Errorf("sqlite: upserting setting %s: %w", key, err)
	}
	return nil
}
