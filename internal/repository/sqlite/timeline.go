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

var _ repository.TimelineRepository = (*DB)(nil)

const timelineColumns = `id, title, description, date, icon, photo_id`

func (db *DB) ListTimeline(ctx context.Context) ([]model.TimelineEvent, error) {
	events := []model.TimelineEvent{}
	err := db.conn.SelectContext(ctx, &events,
		`SELECT `+timelineColumns+` FROM timeline ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing timeline: %w", err)
	}
	return events, nil
}

func (db *DB) GetTimelineEvent(ctx context.Context, id int64) (*model.TimelineEvent, error) {
	var e model.TimelineEvent
	err := db.conn.GetContext(ctx, &e,
		`SELECT `+timelineColumns+` FROM timeline WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("timeline event", id)
		}
		return nil, fmt.Errorf("sqlite: getting timeline event %d: %w", id, err)
	}
	return &e, nil
}

// CreateTimelineEvent inserts event, defaulting Icon to "heart".
func (db *DB) CreateTimelineEvent(ctx context.Context, event *model.TimelineEvent) (int64, error) {
	if event.Icon == "" {
		event.Icon = model.DefaultTimelineIcon
	}
	var photoID sql.NullInt64
	if event.PhotoID != nil && *event.PhotoID != 0 {
		photoID = sql.NullInt64{Int64: *event.PhotoID, Valid: true}
	} else {
		event.PhotoID = nil
	}

	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO timeline (title, description, date, icon, photo_id) VALUES (?, ?, ?, ?, ?)`,
		event.Title,
		event.Description,
		event.Date,
		event.Icon,
		photoID,
	)
	if err != nil {
		return 0, fmt.Errorf("sqlite: creating timeline event: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("sqlite: reading timeline event id: %w", err)
	}
	event.ID = id
	return id, nil
}

// UpdateTimelineEvent writes the present fields. Timeline rows carry no
// timestamps, so an empty patch issues no statement at all.
func (db *DB) UpdateTimelineEvent(ctx context.Context, id int64, patch model.TimelinePatch) error {
	b := newUpdate("timeline")
	if err := b.apply(patch); err != nil {
		return fmt.Errorf("sqlite: updating timeline event %d: %w", id, err)
	}
	if b.empty() {
		return nil
	}

	query, args := b.where("id = ?", id)
	if _, err := db.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("sqlite: updating timeline event %d: %w", id, err)
	}
	return nil
}

func (db *DB) DeleteTimelineEvent(ctx context.Context, id int64) error {
	if _, err := db.conn.ExecContext(ctx, `DELETE FROM timeline WHERE id = ?`, id); err != nil {
		return fmt.Errorf("sqlite: deleting timeline event %d: %w", id, err)
	}
	return nil
}
