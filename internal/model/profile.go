package model

import "time"

// ProfileID is the fixed primary key of the singleton profile row.
const ProfileID = 1

// Profile is the couple's profile. There is exactly one row (ProfileID); it
// is seeded on startup and only ever read or updated.
type Profile struct {
	ID           int64     `json:"id"            db:"id"`
	Name1        string    `json:"name1"         db:"name1"`
	Name2        string    `json:"name2"         db:"name2"`
	Avatar1      string    `json:"avatar1"       db:"avatar1"`
	Avatar2      string    `json:"avatar2"       db:"avatar2"`
	TogetherDate string    `json:"together_date" db:"together_date"`
	SiteTitle    string    `json:"site_title"    db:"site_title"`
	Bio          string    `json:"bio"           db:"bio"`
	UpdatedAt    time.Time `json:"updated_at"    db:"updated_at"`
}

// ProfileView is what GET /api/profile returns: the stored row plus the
// number of days since TogetherDate, computed at read time.
type ProfileView struct {
	Profile
	TogetherDays int64 `json:"together_days"`
}

type ProfilePatch struct {
	Name1        *string `json:"name1"         db:"name1"`
	Name2        *string `json:"name2"         db:"name2"`
	Avatar1      *string `json:"avatar1"       db:"avatar1"`
	Avatar2      *string `json:"avatar2"       db:"avatar2"`
	TogetherDate *string `json:"together_date" db:"together_date"`
	SiteTitle    *string `json:"site_title"    db:"site_title"`
	Bio          *string `json:"bio"           db:"bio"`
}
