package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/sakif/couple-gallery/internal/apperror"
	"github.com/sakif/couple-gallery/internal/model"
	"github.com/sakif/couple-gallery/internal/repository"
)

// ProfileService reads and edits the singleton profile.
type ProfileService struct {
	repo   repository.ProfileRepository
	logger *slog.Logger
	now    func() time.Time
}

func NewProfileService(repo repository.ProfileRepository, logger *slog.Logger) *ProfileService {
	return &ProfileService{repo: repo, logger: logger, now: time.Now}
}

// Get returns the profile with together_days filled in.
func (s *ProfileService) Get(ctx context.Context) (*model.ProfileView, error) {
	p, err := s.repo.GetProfile(ctx)
	if err != nil {
		return nil, err
	}

	days, err := TogetherDays(p.TogetherDate, s.now())
	if err != nil {
		s.logger.Warn("unparseable together_date",
			slog.String("together_date", p.TogetherDate),
			slog.String("error", err.Error()),
		)
	}
	return &model.ProfileView{Profile: *p, TogetherDays: days}, nil
}

func (s *ProfileService) Update(ctx context.Context, patch model.ProfilePatch) error {
	if _, err := s.repo.GetProfile(ctx); err != nil {
		return err
	}
	if patch.TogetherDate != nil {
		if _, err := TogetherDays(*patch.TogetherDate, s.now()); err != nil {
			return apperror.ValidationFailed("together_date", "together_date must be YYYY-MM-DD or an RFC 3339 timestamp")
		}
	}
	if err := s.repo.UpdateProfile(ctx, patch); err != nil {
		s.logger.Error("failed to update profile", slog.String("error", err.Error()))
		return fmt.Errorf("updating profile: %w", err)
	}
	s.logger.Info("profile updated")
	return nil
}

// TogetherDays returns ceil(|now - date| / 24h). date is a calendar date
// ("2024-01-31", taken as UTC midnight) or an RFC 3339 timestamp.
//
//	TogetherDays("2024-01-01", 2024-01-11T00:00Z) = 10
//	TogetherDays("2024-01-01", 2024-01-11T00:00:01Z) = 11
//
// An empty or unparseable date yields 0 and an error.
func TogetherDays(date string, now time.Time) (int64, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return 0, fmt.Errorf("empty date")
	}

	t, err := time.ParseInLocation(model.DateLayout, date, time.UTC)
	if err != nil {
		var rfcErr error
		t, rfcErr = time.Parse(time.RFC3339, date)
		if rfcErr != nil {
			return 0, fmt.Errorf("parsing together_date %q: %w", date, err)
		}
	}

	diff := now.Sub(t)
	if diff < 0 {
		diff = -diff
	}
	return int64(math.Ceil(float64(diff) / float64(24*time.Hour))), nil
}
