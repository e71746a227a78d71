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

var _ repository.ProfileRepository = (*DB)(nil)

// GetProfile returns the singleton profile row. The row is seeded at startup,
// so ErrNotFound only happens if someone deleted it by hand.
func (db *DB) GetProfile(ctx context.Context) (*model.Profile, error) {
	var p model.Profile
	err := db.conn.GetContext(ctx, &p,
		`SELECT id, name1, name2, avatar1, avatar2, together_date, site_title, bio, updated_at
		 FROM profile WHERE id = ?`,
		model.ProfileID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("profile", model.ProfileID)
		}
		return nil, fmt.Errorf("sqlite: getting profile: %w", err)
	}
	return &p, nil
}

// UpdateProfile applies patch to the singleton row and bumps updated_at.
func (db *DB) UpdateProfile(ctx context.Context, patch model.ProfilePatch) error {
	b := newUpdate("profile")
	if err := b.apply(patch); err != nil {
		return fmt.Errorf("sqlite: updating profile: %w", err)
	}
	if err := b.set("updated_at", db.now()); err != nil {
		return fmt.Errorf("sqlite: updating profile: %w", err)
	}

	query, args := b.where("id = ?", model.ProfileID)
	if _, err := db.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("sqlite: updating profile: %w", err)
	}
	return nil
}
