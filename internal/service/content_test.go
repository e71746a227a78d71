package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sakif/couple-gallery/internal/apperror"
	"github.com/sakif/couple-gallery/internal/model"
)

// =========================================================================
// PHOTOS
// =========================================================================

func TestPhotoCreate_Success(t *testing.T) {
	repo, photos, _, _, _, _ := newTestServices(t)

	p := &model.Photo{Title: "Beach", ImageURL: "https://x/y.jpg", Date: "2024-05-01"}
	id, err := photos.Create(context.Background(), p)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if id == 0 {
		t.Error("Create() returned id 0")
	}
	if got := repo.photos[id].Tags; got == nil {
		t.Error("Create() stored nil tags, want empty list")
	}
}

func TestPhotoCreate_MissingFields(t *testing.T) {
	repo, photos, _, _, _, _ := newTestServices(t)

	tests := []struct {
		name      string
		photo     model.Photo
		wantField string
	}{
		{"no image_url", model.Photo{Title: "t", Date: "2024-01-01"}, "image_url"},
		{"no title", model.Photo{ImageURL: "u", Date: "2024-01-01"}, "title"},
		{"blank date", model.Photo{Title: "t", ImageURL: "u", Date: "  "}, "date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.photo
			_, err := photos.Create(context.Background(), &p)
			if !errors.Is(err, apperror.ErrValidation) {
				t.Fatalf("error = %v, want ErrValidation", err)
			}
			var appErr *apperror.AppError
			if errors.As(err, &appErr) && appErr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", appErr.Field, tt.wantField)
			}
		})
	}

	if len(repo.photos) != 0 {
		t.Errorf("invalid creates inserted %d rows", len(repo.photos))
	}
}

func TestPhotoCreate_RepoError(t *testing.T) {
	repo, photos, _, _, _, _ := newTestServices(t)
	repo.failErr = errors.New("disk full")

	_, err := photos.Create(context.Background(), &model.Photo{Title: "t", ImageURL: "u", Date: "2024-01-01"})
	if err == nil || errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("error = %v, want wrapped repository error", err)
	}
}

func TestPhotoUpdate(t *testing.T) {
	repo, photos, _, _, _, _ := newTestServices(t)
	ctx := context.Background()

	id, _ := photos.Create(ctx, &model.Photo{Title: "old", ImageURL: "u", Date: "2024-01-01"})

	if err := photos.Update(ctx, id, model.PhotoPatch{Title: ptr("new")}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got := repo.photos[id].Title; got != "new" {
		t.Errorf("Title = %q, want %q", got, "new")
	}
}

func TestPhotoUpdateDelete_NotFound(t *testing.T) {
	repo, photos, _, _, _, _ := newTestServices(t)
	ctx := context.Background()

	if err := photos.Update(ctx, 42, model.PhotoPatch{}); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
	if err := photos.Delete(ctx, 42); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Delete() error = %v, want ErrNotFound", err)
	}
	if repo.updates != 0 || repo.deletes != 0 {
		t.Error("repository was mutated for a missing id")
	}
}

func TestPhotoDelete(t *testing.T) {
	repo, photos, _, _, _, _ := newTestServices(t)
	ctx := context.Background()

	id, _ := photos.Create(ctx, &model.Photo{Title: "t", ImageURL: "u", Date: "2024-01-01"})
	if err := photos.Delete(ctx, id); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok := repo.photos[id]; ok {
		t.Error("photo still present after Delete()")
	}
}

// =========================================================================
// PROFILE
// =========================================================================

func TestTogetherDays(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		now     string
		want    int64
		wantErr bool
	}{
		{"exact ten days", "2024-01-01", "2024-01-11T00:00:00Z", 10, false},
		{"partial day rounds up", "2024-01-01", "2024-01-11T00:00:01Z", 11, false},
		{"mid day", "2024-01-01", "2024-01-10T12:00:00Z", 10, false},
		{"same instant", "2024-01-01", "2024-01-01T00:00:00Z", 0, false},
		{"future date counts absolute", "2024-01-11", "2024-01-01T00:00:00Z", 10, false},
		{"rfc3339 input", "2024-01-01T12:00:00Z", "2024-01-02T12:00:00Z", 1, false},
		{"garbage", "someday", "2024-01-01T00:00:00Z", 0, true},
		{"empty", "", "2024-01-01T00:00:00Z", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TogetherDays(tt.date, fixedNow(tt.now)())
			if (err != nil) != tt.wantErr {
				t.Fatalf("TogetherDays() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("TogetherDays(%q) = %d, want %d", tt.date, got, tt.want)
			}
		})
	}
}

func TestProfileGet_ComputesDays(t *testing.T) {
	_, _, profiles, _, _, _ := newTestServices(t)
	profiles.now = fixedNow("2024-01-11T00:00:00Z")

	view, err := profiles.Get(context.Background())
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if view.TogetherDays != 10 {
		t.Errorf("TogetherDays = %d, want 10", view.TogetherDays)
	}
	if view.Name1 != "Him" {
		t.Errorf("Name1 = %q, want embedded profile fields", view.Name1)
	}
}

func TestProfileGet_BadDateIsNotAnError(t *testing.T) {
	repo, _, profiles, _, _, _ := newTestServices(t)
	repo.profile.TogetherDate = "not a date"

	view, err := profiles.Get(context.Background())
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if view.TogetherDays != 0 {
		t.Errorf("TogetherDays = %d, want 0", view.TogetherDays)
	}
}

func TestProfileUpdate(t *testing.T) {
	repo, _, profiles, _, _, _ := newTestServices(t)

	if err := profiles.Update(context.Background(), model.ProfilePatch{Name1: ptr("Alex")}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if repo.profile.Name1 != "Alex" {
		t.Errorf("Name1 = %q, want Alex", repo.profile.Name1)
	}
}

// =========================================================================
// TIMELINE
// =========================================================================

func TestTimelineCreate(t *testing.T) {
	repo, _, _, timeline, _, _ := newTestServices(t)

	id, err := timeline.Create(context.Background(), &model.TimelineEvent{Title: "met", Date: "2020-02-14"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if got := repo.timeline[id].Icon; got != model.DefaultTimelineIcon {
		t.Errorf("Icon = %q, want %q", got, model.DefaultTimelineIcon)
	}
}

func TestTimelineCreate_MissingFields(t *testing.T) {
	_, _, _, timeline, _, _ := newTestServices(t)

	_, err := timeline.Create(context.Background(), &model.TimelineEvent{Description: "x"})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("error = %v, want ErrValidation", err)
	}
	if want := "missing required fields: title, date"; !containsMsg(err, want) {
		t.Errorf("error = %q, want it to mention %q", err, want)
	}
}

func TestTimelineUpdate_ClearsPhoto(t *testing.T) {
	repo, _, _, timeline, _, _ := newTestServices(t)
	ctx := context.Background()

	id, _ := timeline.Create(ctx, &model.TimelineEvent{Title: "t", Date: "2024-01-01", PhotoID: ptr(int64(3))})

	if err := timeline.Update(ctx, id, model.TimelinePatch{PhotoID: model.NullID()}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if repo.timeline[id].PhotoID != nil {
		t.Error("PhotoID not cleared")
	}
}

func TestTimelineDelete_NotFound(t *testing.T) {
	_, _, _, timeline, _, _ := newTestServices(t)

	if err := timeline.Delete(context.Background(), 9); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Delete() error = %v, want ErrNotFound", err)
	}
}

// =========================================================================
// MESSAGES
// =========================================================================

func TestMessageCreate_DefaultsToToday(t *testing.T) {
	repo, _, _, _, messages, _ := newTestServices(t)
	messages.now = func() time.Time { return time.Date(2025, 3, 4, 22, 0, 0, 0, time.Local) }

	id, err := messages.Create(context.Background(), &model.Message{Content: "hi"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if got := repo.messages[id].EffectiveDate; got != "2025-03-04" {
		t.Errorf("EffectiveDate = %q, want 2025-03-04", got)
	}
}

func TestMessageCreate_RequiresContent(t *testing.T) {
	_, _, _, _, messages, _ := newTestServices(t)

	_, err := messages.Create(context.Background(), &model.Message{Content: "   "})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("error = %v, want ErrValidation", err)
	}
}

func TestMessageLatest(t *testing.T) {
	repo, _, _, _, messages, _ := newTestServices(t)
	ctx := context.Background()
	messages.now = func() time.Time { return time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local) }

	_, ok, err := messages.Latest(ctx)
	if err != nil || ok {
		t.Fatalf("Latest() on empty = (ok=%v, err=%v), want fallback", ok, err)
	}

	messages.Create(ctx, &model.Message{Content: "a", EffectiveDate: "2024-05-01"})
	second, _ := messages.Create(ctx, &model.Message{Content: "b", EffectiveDate: "2024-05-01"})
	messages.Create(ctx, &model.Message{Content: "future", EffectiveDate: "2024-07-01"})

	msg, ok, err := messages.Latest(ctx)
	if err != nil || !ok {
		t.Fatalf("Latest() = (ok=%v, err=%v)", ok, err)
	}
	if msg.ID != second {
		t.Errorf("Latest() id = %d, want %d (tie broken by id)", msg.ID, second)
	}

	repo.failErr = errors.New("boom")
	if _, _, err := messages.Latest(ctx); err == nil {
		t.Error("Latest() should surface repository failures")
	}
}

func TestMessageUpdate(t *testing.T) {
	repo, _, _, _, messages, _ := newTestServices(t)
	ctx := context.Background()
	id, _ := messages.Create(ctx, &model.Message{Content: "a", EffectiveDate: "2024-01-01"})

	if err := messages.Update(ctx, id, model.MessagePatch{Content: ptr("")}); !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("Update(empty content) error = %v, want ErrValidation", err)
	}
	if err := messages.Update(ctx, id, model.MessagePatch{EffectiveDate: ptr("2024-02-02")}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got := repo.messages[id].EffectiveDate; got != "2024-02-02" {
		t.Errorf("EffectiveDate = %q", got)
	}
	if err := messages.Delete(ctx, 999); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Delete(missing) error = %v, want ErrNotFound", err)
	}
}

// =========================================================================
// DATES
// =========================================================================

func TestDates_RejectNonCalendarValues(t *testing.T) {
	repo, photos, profiles, timeline, messages, _ := newTestServices(t)
	ctx := context.Background()

	photoID, err := photos.Create(ctx, &model.Photo{Title: "t", ImageURL: "u", Date: "2024-01-05"})
	if err != nil {
		t.Fatalf("photos.Create() error = %v", err)
	}
	eventID, err := timeline.Create(ctx, &model.TimelineEvent{Title: "t", Date: "2024-01-05"})
	if err != nil {
		t.Fatalf("timeline.Create() error = %v", err)
	}
	msgID, err := messages.Create(ctx, &model.Message{Content: "c", EffectiveDate: "2024-01-05"})
	if err != nil {
		t.Fatalf("messages.Create() error = %v", err)
	}

	for _, bad := range []string{"2024-1-5", "05/01/2024", "2024-02-30", "tomorrow", ""} {
		t.Run(bad, func(t *testing.T) {
			// Creates get a suffix because an empty effective_date means today.
			calls := map[string]error{}
			_, calls["photo create"] = photos.Create(ctx, &model.Photo{Title: "t", ImageURL: "u", Date: bad + "x"})
			calls["photo update"] = photos.Update(ctx, photoID, model.PhotoPatch{Date: ptr(bad)})
			_, calls["timeline create"] = timeline.Create(ctx, &model.TimelineEvent{Title: "t", Date: bad + "x"})
			calls["timeline update"] = timeline.Update(ctx, eventID, model.TimelinePatch{Date: ptr(bad)})
			_, calls["message create"] = messages.Create(ctx, &model.Message{Content: "c", EffectiveDate: bad + "x"})
			calls["message update"] = messages.Update(ctx, msgID, model.MessagePatch{EffectiveDate: ptr(bad)})
			calls["profile update"] = profiles.Update(ctx, model.ProfilePatch{TogetherDate: ptr(bad)})

			for name, err := range calls {
				if !errors.Is(err, apperror.ErrValidation) {
					t.Errorf("%s: error = %v, want ErrValidation", name, err)
				}
			}
		})
	}

	if len(repo.photos) != 1 || len(repo.timeline) != 1 || len(repo.messages) != 1 {
		t.Errorf("rows = %d/%d/%d, want nothing inserted past the first of each",
			len(repo.photos), len(repo.timeline), len(repo.messages))
	}
	if got := repo.photos[photoID].Date; got != "2024-01-05" {
		t.Errorf("photo date = %q, want unchanged", got)
	}
	if got := repo.timeline[eventID].Date; got != "2024-01-05" {
		t.Errorf("timeline date = %q, want unchanged", got)
	}
	if got := repo.messages[msgID].EffectiveDate; got != "2024-01-05" {
		t.Errorf("effective_date = %q, want unchanged", got)
	}
	if got := repo.profile.TogetherDate; got != "2024-01-01" {
		t.Errorf("together_date = %q, want unchanged", got)
	}
}

// =========================================================================
// SETTINGS
// =========================================================================

func TestSettingPut_Encoding(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"string stored verbatim", `"I love you"`, "I love you"},
		{"object compacted", `{ "a" : [1, 2] }`, `{"a":[1,2]}`},
		{"number", `42`, `42`},
		{"bool", `true`, `true`},
		{"null", `null`, `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, _, _, _, _, settings := newTestServices(t)

			if err := settings.Put(context.Background(), "k", json.RawMessage(tt.value)); err != nil {
				t.Fatalf("Put() error = %v", err)
			}
			if got := repo.settings["k"]; got != tt.want {
				t.Errorf("stored %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSettingPut_Validation(t *testing.T) {
	_, _, _, _, _, settings := newTestServices(t)
	ctx := context.Background()

	if err := settings.Put(ctx, "k", nil); !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("Put(no value) error = %v, want ErrValidation", err)
	}
	if err := settings.Put(ctx, " ", json.RawMessage(`"x"`)); !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("Put(blank key) error = %v, want ErrValidation", err)
	}
	if err := settings.Put(ctx, "k", json.RawMessage(`{broken`)); !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("Put(bad JSON) error = %v, want ErrValidation", err)
	}
}

func TestSettingGet(t *testing.T) {
	repo, _, _, _, _, settings := newTestServices(t)
	ctx := context.Background()
	repo.settings["playlist"] = `[{"id":1}]`
	repo.settings["egg"] = "I will always love you"

	got, err := settings.Get(ctx, "playlist")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if b, _ := json.Marshal(got); string(b) != `[{"id":1}]` {
		t.Errorf("Get(playlist) = %s", b)
	}

	got, err = settings.Get(ctx, "egg")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if b, _ := json.Marshal(got); string(b) != `{"value":"I will always love you"}` {
		t.Errorf("Get(egg) = %s", b)
	}

	if _, err := settings.Get(ctx, "nope"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}
}

func TestSettingAll_DecodesEachValue(t *testing.T) {
	repo, _, _, _, _, settings := newTestServices(t)
	repo.settings["n"] = "7"
	repo.settings["s"] = "plain text"

	all, err := settings.All(context.Background())
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	b, _ := json.Marshal(all)
	if string(b) != `{"n":7,"s":"plain text"}` {
		t.Errorf("All() = %s", b)
	}
}

func containsMsg(err error, want string) bool {
	var appErr *apperror.AppError
	return errors.As(err, &appErr) && appErr.Message == want
}
