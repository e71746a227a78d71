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

// Compile-time check that *DB implements repository.PhotoRepository.
var _ repository.PhotoRepository = (*DB)(nil)

const photoColumns = `id, title, en_title, image_url, description, date, tags, created_at, updated_at`

// ListPhotos returns every photo, newest date first. Rows sharing a date are
// ordered by id (newest first) so the listing is stable.
func (db *DB) ListPhotos(ctx context.Context) ([]model.Photo, error) {
	photos := []model.Photo{}
	err := db.conn.SelectContext(ctx, &photos,
		`SELECT `+photoColumns+` FROM photos ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing photos: %w", err)
	}
	return photos, nil
}

// GetPhoto returns the photo with the given id or apperror.ErrNotFound.
func (db *DB) GetPhoto(ctx context.Context, id int64) (*model.Photo, error) {
	var p model.Photo
	err := db.conn.GetContext(ctx, &p,
		`SELECT `+photoColumns+` FROM photos WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("photo", id)
		}
		return nil, fmt.Errorf("sqlite: getting photo %d: %w", id, err)
	}
	return &p, nil
}

// CreatePhoto inserts photo and returns the generated id. The caller's struct
// is updated with the id and timestamps.
func (db *DB) CreatePhoto(ctx context.Context, photo *model.Photo) (int64, error) {
	if photo.Tags == nil {
		photo.Tags = model.Tags{}
	}
	tags, err := photo.Tags.Value()
	if err != nil {
		return 0, fmt.Errorf("sqlite: creating photo: %w", err)
	}

	now := db.now()
	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO photos (title, en_title, image_url, description, date, tags, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		photo.Title,
		photo.EnTitle,
		photo.ImageURL,
		photo.Description,
		photo.Date,
		tags,
		now,
		now,
	)
	if err != nil {
		return 0, fmt.Errorf("sqlite: creating photo: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("sqlite: reading photo id: %w", err)
	}

	photo.ID = id
	photo.CreatedAt = now
	photo.UpdatedAt = now
	return id, nil
}

// UpdatePhoto writes the fields present in patch and always bumps updated_at,
// so an empty patch is a pure "touch".
func (db *DB) UpdatePhoto(ctx context.Context, id int64, patch model.PhotoPatch) error {
	b := newUpdate("photos")
	if err := b.apply(patch); err != nil {
		return fmt.Errorf("sqlite: updating photo %d: %w", id, err)
	}
	if err := b.set("updated_at", db.now()); err != nil {
		return fmt.Errorf("sqlite: updating photo %d: %w", id, err)
	}

	query, args := b.where("id = ?", id)
	if _, err := db.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("sqlite: updating photo %d: %w", id, err)
	}
	return nil
}

// DeletePhoto removes the row if it exists.
func (db *DB) DeletePhoto(ctx context.Context, id int64) error {
	if _, err := db.conn.ExecContext(ctx, `DELETE FROM photos WHERE id = ?`, id); err != nil {
		return fmt.Errorf("sqlite: deleting photo %d: %w", id, err)
	}
	return nil
}
