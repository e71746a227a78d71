// Package model defines the data structures used throughout the application.
//
// Struct tags do double duty: `json:"..."` is the REST wire name and
// `db:"..."` is the SQLite column name (used by sqlx for scanning and by the
// partial-update builder in the sqlite repository).
package model

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
)

// DateLayout is the calendar-date format used for photo, timeline and
// message dates ("2024-01-31").
const DateLayout = "2006-01-02"

// Tags is an ordered list of photo tags. In SQLite it is stored as JSON text
// in a single TEXT column; on the wire it is a plain JSON array.
//
// A nil Tags always serialises as [] (never null), both to the database and
// to clients.
type Tags []string

// Value implements driver.Valuer.
func (t Tags) Value() (driver.Value, error) {
	if t == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(t))
	if err != nil {
		return nil, fmt.Errorf("model: encoding tags: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner. NULL and empty text decode to an empty list.
func (t *Tags) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*t = Tags{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("model: cannot scan %T into Tags", src)
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		*t = Tags{}
		return nil
	}

	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("model: decoding tags: %w", err)
	}
	if out == nil {
		out = []string{}
	}
	*t = out
	return nil
}

func (t Tags) MarshalJSON() ([]byte, error) {
	if t == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(t))
}

// OptionalID is a nullable id that also remembers whether it appeared in a
// JSON payload at all. It lets a partial update tell apart
//
//	{}                 -> leave photo_id alone
//	{"photo_id": null} -> clear photo_id
//	{"photo_id": 3}    -> set photo_id = 3
//
// A zero id is treated like null, matching the create path.
type OptionalID struct {
	Set bool
	ID  *int64
}

// SomeID returns a present, non-null OptionalID.
func SomeID(id int64) OptionalID {
	return OptionalID{Set: true, ID: &id}
}

// NullID returns a present OptionalID that clears the column.
func NullID() OptionalID {
	return OptionalID{Set: true}
}

func (o *OptionalID) UnmarshalJSON(b []byte) error {
	o.Set = true
	o.ID = nil

	s := string(bytes.TrimSpace(b))
	if s == "null" {
		return nil
	}
	// Admin forms sometimes post ids as strings.
	if unq, err := strconv.Unquote(s); err == nil {
		s = unq
		if s == "" {
			return nil
		}
	}

	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("model: invalid id %s", string(b))
	}
	if id != 0 {
		o.ID = &id
	}
	return nil
}

// Present reports whether the field was supplied. The update builder uses it
// to decide whether to emit the column.
func (o OptionalID) Present() bool {
	return o.Set
}

// Value implements driver.Valuer.
func (o OptionalID) Value() (driver.Value, error) {
	if o.ID == nil {
		return nil, nil
	}
	return *o.ID, nil
}
