package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sakif/couple-gallery/internal/apperror"
	"github.com/sakif/couple-gallery/internal/model"
	"github.com/sakif/couple-gallery/internal/repository"
)

// MessageService manages the dated love notes. "Today" is the server's
// local calendar date.
type MessageService struct {
	repo   repository.MessageRepository
	logger *slog.Logger
	now    func() time.Time
}

func NewMessageService(repo repository.MessageRepository, logger *slog.Logger) *MessageService {
	return &MessageService{repo: repo, logger: logger, now: time.Now}
}

func (s *MessageService) today() string {
	return s.now().Format(model.DateLayout)
}

// checkDate rejects anything that is not a model.DateLayout calendar date.
// Listings and the latest-message lookup compare dates as strings, so
// "2024-1-5" would sort wrongly.
func checkDate(field, value string) error {
	if _, err := time.Parse(model.DateLayout, value); err != nil {
		return apperror.ValidationFailed(field, fmt.Sprintf("%s must be a date in YYYY-MM-DD form, got %q", field, value))
	}
	return nil
}

func (s *MessageService) List(ctx context.Context) ([]model.Message, error) {
	msgs, err := s.repo.ListMessages(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	return msgs, nil
}

// Latest returns the message in effect today. ok is false when no message
// is effective yet; the caller then shows model.FallbackMessage. That case
// is never an error.
func (s *MessageService) Latest(ctx context.Context) (msg *model.Message, ok bool, err error) {
	msg, err = s.repo.LatestMessage(ctx, s.today())
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("getting latest message: %w", err)
	}
	return msg, true, nil
}

// Create requires content; effective_date defaults to today.
func (s *MessageService) Create(ctx context.Context, msg *model.Message) (int64, error) {
	if strings.TrimSpace(msg.Content) == "" {
		return 0, apperror.MissingFields("content")
	}
	if strings.TrimSpace(msg.EffectiveDate) == "" {
		msg.EffectiveDate = s.today()
	} else if err := checkDate("effective_date", msg.EffectiveDate); err != nil {
		return 0, err
	}

	id, err := s.repo.CreateMessage(ctx, msg)
	if err != nil {
		s.logger.Error("failed to create message", slog.String("error", err.Error()))
		return 0, fmt.Errorf("creating message: %w", err)
	}

	s.logger.Info("message created",
		slog.Int64("id", id),
		slog.String("effective_date", msg.EffectiveDate),
	)
	return id, nil
}

func (s *MessageService) Update(ctx context.Context, id int64, patch model.MessagePatch) error {
	if _, err := s.repo.GetMessage(ctx, id); err != nil {
		return err
	}
	if patch.Content != nil && strings.TrimSpace(*patch.Content) == "" {
		return apperror.ValidationFailed("content", "content must not be empty")
	}
	if patch.EffectiveDate != nil {
		if err := checkDate("effective_date", *patch.EffectiveDate); err != nil {
			return err
		}
	}
	if err := s.repo.UpdateMessage(ctx, id, patch); err != nil {
		s.logger.Error("failed to update message",
			slog.Int64("id", id),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("updating message: %w", err)
	}
	s.logger.Info("message updated", slog.Int64("id", id))
	return nil
}

func (s *MessageService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetMessage(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteMessage(ctx, id); err != nil {
		return fmt.Errorf("deleting message: %w", err)
	}
	s.logger.Info("message deleted", slog.Int64("id", id))
	return nil
}
