package model

import "time"

// Photo is one gallery entry.
//
// ID is an SQLite INTEGER PRIMARY KEY (the frontend treats ids as numbers).
// Date is a calendar date string, not a timestamp; listings sort on it.
type Photo struct {
	ID          int64     `json:"id"          db:"id"`
	Title       string    `json:"title"       db:"title"`
	EnTitle     string    `json:"en_title"    db:"en_title"`
	ImageURL    string    `json:"image_url"   db:"image_url"`
	Description string    `json:"description" db:"description"`
	Date        string    `json:"date"        db:"date"`
	Tags        Tags      `json:"tags"        db:"tags"`
	CreatedAt   time.Time `json:"created_at"  db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"  db:"updated_at"`
}

// PhotoPatch is a partial update: nil fields are left untouched.
type PhotoPatch struct {
	Title       *string `json:"title"       db:"title"`
	EnTitle     *string `json:"en_title"    db:"en_title"`
	ImageURL    *string `json:"image_url"   db:"image_url"`
	Description *string `json:"description" db:"description"`
	Date        *string `json:"date"        db:"date"`
	Tags        *Tags   `json:"tags"        db:"tags"`
}
