// Package repository declares the data-access contracts the service layer
// depends on. The sqlite sub-package is the only implementation; services
// are tested against in-memory fakes.
//
// Contract shared by every entity:
//   - GetByID returns apperror.ErrNotFound when the row does not exist.
//   - Update emits only the fields present in the patch (plus updated_at where
//     the table tracks it) and does not check that the row exists.
//   - Delete is unconditional: deleting a missing id is not an error here.
//     Services that want a 404 look the row up first.
package repository

import (
	"context"

	"github.com/sakif/couple-gallery/internal/model"
)

type PhotoRepository interface {
	ListPhotos(ctx context.Context) ([]model.Photo, error)
	GetPhoto(ctx context.Context, id int64) (*model.Photo, error)
	CreatePhoto(ctx context.Context, photo *model.Photo) (int64, error)
	UpdatePhoto(ctx context.Context, id int64, patch model.PhotoPatch) error
	DeletePhoto(ctx context.Context, id int64) error
}

type ProfileRepository interface {
	GetProfile(ctx context.Context) (*model.Profile, error)
	UpdateProfile(ctx context.Context, patch model.ProfilePatch) error
}

type TimelineRepository interface {
	ListTimeline(ctx context.Context) ([]model.TimelineEvent, error)
	GetTimelineEvent(ctx context.Context, id int64) (*model.TimelineEvent, error)
	CreateTimelineEvent(ctx context.Context, event *model.TimelineEvent) (int64, error)
	UpdateTimelineEvent(ctx context.Context, id int64, patch model.TimelinePatch) error
	DeleteTimelineEvent(ctx context.Context, id int64) error
}

type MessageRepository interface {
	ListMessages(ctx context.Context) ([]model.Message, error)
	GetMessage(ctx context.Context, id int64) (*model.Message, error)
	// LatestMessage returns the message with the greatest effective_date that
	// is <= today (ties broken by greatest id), or ErrNotFound.
	LatestMessage(ctx context.Context, today string) (*model.Message, error)
	CreateMessage(ctx context.Context, msg *model.Message) (int64, error)
	UpdateMessage(ctx context.Context, id int64, patch model.MessagePatch) error
	DeleteMessage(ctx context.Context, id int64) error
}

type SettingRepository interface {
	ListSettings(ctx context.Context) ([]model.Setting, error)
	GetSetting(ctx context.Context, key string) (*model.Setting, error)
	UpsertSetting(ctx context.Context, key, value string) error
}
