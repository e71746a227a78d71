package model

import "time"

// Setting is a free-form key/value pair. Value is always stored as text;
// non-string values are stored as their JSON encoding.
type Setting struct {
	Key       string    `json:"key"        db:"key"`
	Value     string    `json:"value"      db:"value"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Known setting keys.
const (
	SettingEasterEggMessage = "easter_egg_message"
	SettingMusicPlaylist    = "music_playlist"
)

// DefaultSettings are inserted when their key is absent. Values are already
// in stored (text) form.
var DefaultSettings = map[string]string{
	SettingEasterEggMessage: "I will always love you ❤️",
	SettingMusicPlaylist: `[{"id":1,"title":"Love Confession","artist":"Jay Chou",` +
		`"url":"https://music.163.com/song/media/outer/url?id=418602084.mp3",` +
		`"cover":"https://p1.music.126.net/6y-UleORITEDbvrOLV0Q8A==/5639395138885805.jpg"}]`,
}
