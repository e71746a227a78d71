// Package service contains the business rules of the gallery.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (Business layer) → validates, enforces rules, orchestrates
//	Repository (Data layer)  → reads/writes SQLite
//
// Services take repository interfaces, never *sqlite.DB, so the tests in
// this package run against in-memory fakes. They return apperror values
// (ValidationFailed, NotFound, Unauthorized) and never know about HTTP
// status codes; the handler layer does that translation.
//
// EXISTENCE CHECKS:
// Repository Update and Delete are unconditional. Every service mutation
// looks the row up first so a missing id is reported as apperror.ErrNotFound
// instead of silently succeeding.
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

// PhotoService handles business logic for gallery photos.
type PhotoService struct {
	repo   repository.PhotoRepository
	logger *slog.Logger
}

func NewPhotoService(repo repository.PhotoRepository, logger *slog.Logger) *PhotoService {
	return &PhotoService{repo: repo, logger: logger}
}

func (s *PhotoService) List(ctx context.Context) ([]model.Photo, error) {
	photos, err := s.repo.ListPhotos(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing photos: %w", err)
	}
	return photos, nil
}

// Get returns apperror.ErrNotFound if the photo doesn't exist.
func (s *PhotoService) Get(ctx context.Context, id int64) (*model.Photo, error) {
	return s.repo.GetPhoto(ctx, id)
}

// Create validates and saves a new photo. title, image_url and date are
// required; tags default to an empty list.
func (s *PhotoService) Create(ctx context.Context, photo *model.Photo) (int64, error) {
	var missing []string
	if strings.TrimSpace(photo.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(photo.ImageURL) == "" {
		missing = append(missing, "image_url")
	}
	if strings.TrimSpace(photo.Date) == "" {
		missing = append(missing, "date")
	}
	if len(missing) > 0 {
		return 0, apperror.MissingFields(missing...)
	}
	if err := checkDate("date", photo.Date); err != nil {
		return 0, err
	}
	if photo.Tags == nil {
		photo.Tags = model.Tags{}
	}

	id, err := s.repo.CreatePhoto(ctx, photo)
	if err != nil {
		s.logger.Error("failed to create photo",
			slog.String("title", photo.Title),
			slog.String("error", err.Error()),
		)
		return 0, fmt.Errorf("creating photo: %w", err)
	}

	s.logger.Info("photo created", slog.Int64("id", id), slog.String("title", photo.Title))
	return id, nil
}

// Update applies a partial update. Only the fields present in patch change;
// updated_at is always refreshed.
func (s *PhotoService) Update(ctx context.Context, id int64, patch model.PhotoPatch) error {
	if _, err := s.repo.GetPhoto(ctx, id); err != nil {
		return err
	}
	if patch.Date != nil {
		if err := checkDate("date", *patch.Date); err != nil {
			return err
		}
	}

	if err := s.repo.UpdatePhoto(ctx, id, patch); err != nil {
		s.logger.Error("failed to update photo",
			slog.Int64("id", id),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("updating photo: %w", err)
	}

	s.logger.Info("photo updated", slog.Int64("id", id))
	return nil
}

func (s *PhotoService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetPhoto(ctx, id); err != nil {
		return err
	}

	if err := s.repo.DeletePhoto(ctx, id); err != nil {
		return fmt.Errorf("deleting photo: %w", err)
	}

	s.logger.Info("photo deleted", slog.Int64("id", id))
	return nil
}
