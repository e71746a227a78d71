package service

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/sakif/couple-gallery/internal/apperror"
	"github.com/sakif/couple-gallery/internal/model"
	"github.com/sakif/couple-gallery/internal/repository"
)

// =========================================================================
// FAKE REPOSITORY
// =========================================================================
//
// fakeRepo is one in-memory implementation of every repository interface.
// It follows the repository contract (Update/Delete are unconditional) so
// the services' own existence checks are what the tests exercise.
//
// Set failErr to simulate a database failure on every call.

var (
	_ repository.PhotoRepository    = (*fakeRepo)(nil)
	_ repository.ProfileRepository  = (*fakeRepo)(nil)
	_ repository.TimelineRepository = (*fakeRepo)(nil)
	_ repository.MessageRepository  = (*fakeRepo)(nil)
	_ repository.SettingRepository  = (*fakeRepo)(nil)
)

type fakeRepo struct {
	photos   map[int64]model.Photo
	timeline map[int64]model.TimelineEvent
	messages map[int64]model.Message
	settings map[string]string
	profile  *model.Profile
	nextID   int64
	failErr  error

	updates int
	deletes int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		photos:   map[int64]model.Photo{},
		timeline: map[int64]model.TimelineEvent{},
		messages: map[int64]model.Message{},
		settings: map[string]string{},
		profile:  &model.Profile{ID: model.ProfileID, Name1: "Him", Name2: "Her", TogetherDate: "2024-01-01"},
	}
}

func (f *fakeRepo) id() int64 {
	f.nextID++
	return f.nextID
}

// --- photos ---

func (f *fakeRepo) ListPhotos(context.Context) ([]model.Photo, error) {
	if f.failErr != nil {
		return nil, f.failErr
	}
	out := []model.Photo{}
	for _, p := range f.photos {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeRepo) GetPhoto(_ context.Context, id int64) (*model.Photo, error) {
	if f.failErr != nil {
		return nil, f.failErr
	}
	p, ok := f.photos[id]
	if !ok {
		return nil, apperror.NotFound("photo", id)
	}
	return &p, nil
}

func (f *fakeRepo) CreatePhoto(_ context.Context, p *model.Photo) (int64, error) {
	if f.failErr != nil {
		return 0, f.failErr
	}
	p.ID = f.id()
	f.photos[p.ID] = *p
	return p.ID, nil
}

func (f *fakeRepo) UpdatePhoto(_ context.Context, id int64, patch model.PhotoPatch) error {
	f.updates++
	p, ok := f.photos[id]
	if !ok {
		return nil
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Tags != nil {
		p.Tags = *patch.Tags
	}
	f.photos[id] = p
	return nil
}

func (f *fakeRepo) DeletePhoto(_ context.Context, id int64) error {
	f.deletes++
	delete(f.photos, id)
	return nil
}

// --- profile ---

func (f *fakeRepo) GetProfile(context.Context) (*model.Profile, error) {
	if f.failErr != nil {
		return nil, f.failErr
	}
	if f.profile == nil {
		return nil, apperror.NotFound("profile", model.ProfileID)
	}
	p := *f.profile
	return &p, nil
}

func (f *fakeRepo) UpdateProfile(_ context.Context, patch model.ProfilePatch) error {
	f.updates++
	if patch.Name1 != nil {
		f.profile.Name1 = *patch.Name1
	}
	if patch.TogetherDate != nil {
		f.profile.TogetherDate = *patch.TogetherDate
	}
	return nil
}

// --- timeline ---

func (f *fakeRepo) ListTimeline(context.Context) ([]model.TimelineEvent, error) {
	out := []model.TimelineEvent{}
	for _, e := range f.timeline {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeRepo) GetTimelineEvent(_ context.Context, id int64) (*model.TimelineEvent, error) {
	e, ok := f.timeline[id]
	if !ok {
		return nil, apperror.NotFound("timeline event", id)
	}
	return &e, nil
}

func (f *fakeRepo) CreateTimelineEvent(_ context.Context, e *model.TimelineEvent) (int64, error) {
	e.ID = f.id()
	f.timeline[e.ID] = *e
	return e.ID, nil
}

func (f *fakeRepo) UpdateTimelineEvent(_ context.Context, id int64, patch model.TimelinePatch) error {
	f.updates++
	e, ok := f.timeline[id]
	if !ok {
		return nil
	}
	if patch.Title != nil {
		e.Title = *patch.Title
	}
	if patch.PhotoID.Present() {
		e.PhotoID = patch.PhotoID.ID
	}
	f.timeline[id] = e
	return nil
}

func (f *fakeRepo) DeleteTimelineEvent(_ context.Context, id int64) error {
	f.deletes++
	delete(f.timeline, id)
	return nil
}

// --- messages ---

func (f *fakeRepo) ListMessages(context.Context) ([]model.Message, error) {
	out := []model.Message{}
	for _, m := range f.messages {
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeRepo) GetMessage(_ context.Context, id int64) (*model.Message, error) {
	m, ok := f.messages[id]
	if !ok {
		return nil, apperror.NotFound("message", id)
	}
	return &m, nil
}

func (f *fakeRepo) LatestMessage(_ context.Context, today string) (*model.Message, error) {
	if f.failErr != nil {
		return nil, f.failErr
	}
	var best *model.Message
	for _, m := range f.messages {
		if m.EffectiveDate > today {
			continue
		}
		if best == nil || m.EffectiveDate > best.EffectiveDate ||
			(m.EffectiveDate == best.EffectiveDate && m.ID > best.ID) {
			m := m
			best = &m
		}
	}
	if best == nil {
		return nil, apperror.NotFound("message effective on", today)
	}
	return best, nil
}

func (f *fakeRepo) CreateMessage(_ context.Context, m *model.Message) (int64, error) {
	m.ID = f.id()
	f.messages[m.ID] = *m
	return m.ID, nil
}

func (f *fakeRepo) UpdateMessage(_ context.Context, id int64, patch model.MessagePatch) error {
	f.updates++
	m, ok := f.messages[id]
	if !ok {
		return nil
	}
	if patch.Content != nil {
		m.Content = *patch.Content
	}
	if patch.EffectiveDate != nil {
		m.EffectiveDate = *patch.EffectiveDate
	}
	f.messages[id] = m
	return nil
}

func (f *fakeRepo) DeleteMessage(_ context.Context, id int64) error {
	f.deletes++
	delete(f.messages, id)
	return nil
}

// --- settings ---

func (f *fakeRepo) ListSettings(context.Context) ([]model.Setting, error) {
	if f.failErr != nil {
		return nil, f.failErr
	}
	out := []model.Setting{}
	for k, v := range f.settings {
		out = append(out, model.Setting{Key: k, Value: v})
	}
	return out, nil
}

func (f *fakeRepo) GetSetting(_ context.Context, key string) (*model.Setting, error) {
	v, ok := f.settings[key]
	if !ok {
		return nil, apperror.NotFound("setting", key)
	}
	return &model.Setting{Key: key, Value: v}, nil
}

func (f *fakeRepo) UpsertSetting(_ context.Context, key, value string) error {
	if f.failErr != nil {
		return f.failErr
	}
	f.settings[key] = value
	return nil
}

// =========================================================================
// HELPERS
// =========================================================================

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fixedNow(s string) func() time.Time {
	return func() time.Time {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			panic(err)
		}
		return t
	}
}

func ptr[T any](v T) *T { return &v }

func newTestServices(t *testing.T) (*fakeRepo, *PhotoService, *ProfileService, *TimelineService, *MessageService, *SettingService) {
	t.Helper()
	repo := newFakeRepo()
	log := testLogger()
	return repo,
		NewPhotoService(repo, log),
		NewProfileService(repo, log),
		NewTimelineService(repo, log),
		NewMessageService(repo, log),
		NewSettingService(repo, log)
}
