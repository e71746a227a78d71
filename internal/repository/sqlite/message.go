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

var _ repository.MessageRepository = (*DB)(nil)

const messageColumns = `id, content, effective_date, created_at`

func (db *DB) ListMessages(ctx context.Context) ([]model.Message, error) {
	msgs := []model.Message{}
	err := db.conn.SelectContext(ctx, &msgs,
		`SELECT `+messageColumns+` FROM messages ORDER BY effective_date DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing messages: %w", err)
	}
	return msgs, nil
}

func (db *DB) GetMessage(ctx context.Context, id int64) (*model.Message, error) {
	var m model.Message
	err := db.conn.GetContext(ctx, &m,
		`SELECT `+messageColumns+` FROM messages WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("message", id)
		}
		return nil, fmt.Errorf("sqlite: getting message %d: %w", id, err)
	}
	return &m, nil
}

// LatestMessage compares effective_date as text, which is correct for
// zero-padded YYYY-MM-DD dates.
func (db *DB) LatestMessage(ctx context.Context, today string) (*model.Message, error) {
	var m model.Message
	err := db.conn.GetContext(ctx, &m,
		`SELECT `+messageColumns+` FROM messages
		 WHERE effective_date <= ?
		 ORDER BY effective_date DESC, id DESC
		 LIMIT 1`,
		today,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("message effective on", today)
		}
		return nil, fmt.Errorf("sqlite: getting latest message: %w", err)
	}
	return &m, nil
}

// CreateMessage inserts msg. EffectiveDate must already be filled in; the
// service layer defaults it to today's local date.
func (db *DB) CreateMessage(ctx context.Context, msg *model.Message) (int64, error) {
	now := db.now()
	if msg.EffectiveDate == "" {
		msg.EffectiveDate = now.Format(model.DateLayout)
	}

	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO messages (content, effective_date, created_at) VALUES (?, ?, ?)`,
		msg.Content, msg.EffectiveDate, now,
	)
	if err != nil {
		return 0, fmt.Errorf("sqlite: creating message: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("sqlite: reading message id: %w", err)
	}
	msg.ID = id
	msg.CreatedAt = now
	return id, nil
}

func (db *DB) UpdateMessage(ctx context.Context, id int64, patch model.MessagePatch) error {
	b := newUpdate("messages")
	if err := b.apply(patch); err != nil {
		return fmt.Errorf("sqlite: updating message %d: %w", id, err)
	}
	if b.empty() {
		return nil
	}

	query, args := b.where("id = ?", id)
	if _, err := db.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("sqlite: updating message %d: %w", id, err)
	}
	return nil
}

func (db *DB) DeleteMessage(ctx context.Context, id int64) error {
	if _, err := db.conn.ExecContext(ctx, `DELETE FROM messages WHERE id = ?`, id); err != nil {
		return fmt.Errorf("sqlite: deleting message %d: %w", id, err)
	}
	return nil
}
