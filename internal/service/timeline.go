package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/couple-gallery/internal/apperror"
	"github.com/sakif/couple-gallery/internal/model"
	"github.com/sakif/couple-gallery/internal/repository"
)

// TimelineService handles timeline events. photo_id is a weak reference and
// is not checked against the photos table.
type TimelineService struct {
	repo   repository.TimelineRepository
	logger *slog.Logger
}

func NewTimelineService(repo repository.TimelineRepository, logger *slog.Logger) *TimelineService {
	return &TimelineService{repo: repo, logger: logger}
}

func (s *TimelineService) List(ctx context.Context) ([]model.TimelineEvent, error) {
	events, err := s.repo.ListTimeline(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing timeline: %w", err)
	}
	return events, nil
}

func (s *TimelineService) Get(ctx context.Context, id int64) (*model.TimelineEvent, error) {
	return s.repo.GetTimelineEvent(ctx, id)
}

// Create requires title and date. An empty icon becomes "heart".
func (s *TimelineService) Create(ctx context.Context, event *model.TimelineEvent) (int64, error) {
	var missing []string
	if strings.TrimSpace(event.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(event.Date) == "" {
		missing = append(missing, "date")
	}
	if len(missing) > 0 {
		return 0, apperror.MissingFields(missing...)
	}
	if err := checkDate("date", event.Date); err != nil {
		return 0, err
	}
	if strings.TrimSpace(event.Icon) == "" {
		event.Icon = model.DefaultTimelineIcon
	}

	id, err := s.repo.CreateTimelineEvent(ctx, event)
	if err != nil {
		s.logger.Error("failed to create timeline event",
			slog.String("title", event.Title),
			slog.String("error", err.Error()),
		)
		return 0, fmt.Errorf("creating timeline event: %w", err)
	}

	s.logger.Info("timeline event created", slog.Int64("id", id))
	return id, nil
}

func (s *TimelineService) Update(ctx context.Context, id int64, patch model.TimelinePatch) error {
	if _, err := s.repo.GetTimelineEvent(ctx, id); err != nil {
		return err
	}
	if patch.Date != nil {
		if err := checkDate("date", *patch.Date); err != nil {
			return err
		}
	}
	if err := s.repo.UpdateTimelineEvent(ctx, id, patch); err != nil {
		s.logger.Error("failed to update timeline event",
			slog.Int64("id", id),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("updating timeline event: %w", err)
	}
	s.logger.Info("timeline event updated", slog.Int64("id", id))
	return nil
}

func (s *TimelineService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetTimelineEvent(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteTimelineEvent(ctx, id); err != nil {
		return fmt.Errorf("deleting timeline event: %w", err)
	}
	s.logger.Info("timeline event deleted", slog.Int64("id", id))
	return nil
}
