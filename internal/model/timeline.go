package model

// DefaultTimelineIcon is used when an event is created without an icon.
const DefaultTimelineIcon = "heart"

// TimelineEvent is a dated milestone. PhotoID is a weak reference to a Photo:
// nothing enforces that the photo exists, and deleting the photo leaves the
// id in place.
type TimelineEvent struct {
	ID          int64  `json:"id"          db:"id"`
	Title       string `json:"title"       db:"title"`
	Description string `json:"description" db:"description"`
	Date        string `json:"date"        db:"date"`
	Icon        string `json:"icon"        db:"icon"`
	PhotoID     *int64 `json:"photo_id"    db:"photo_id"`
}

type TimelinePatch struct {
	Title       *string    `json:"title"       db:"title"`
	Description *string    `json:"description" db:"description"`
	Date        *string    `json:"date"        db:"date"`
	Icon        *string    `json:"icon"        db:"icon"`
	PhotoID     OptionalID `json:"photo_id"    db:"photo_id"`
}
