package model

import "time"

// FallbackMessage is served by GET /api/messages/latest when no message is
// effective yet.
const FallbackMessage = "No new message today, but I still miss you 💕"

// WelcomeMessage is inserted once when the messages table is empty.
const WelcomeMessage = "Welcome to our little world! Tap here for today's love note 💕"

// Message is a short note that becomes visible on EffectiveDate.
type Message struct {
	ID            int64     `json:"id"             db:"id"`
	Content       string    `json:"content"        db:"content"`
	EffectiveDate string    `json:"effective_date" db:"effective_date"`
	CreatedAt     time.Time `json:"created_at"     db:"created_at"`
}

type MessagePatch struct {
	Content       *string `json:"content"        db:"content"`
	EffectiveDate *string `json:"effective_date" db:"effective_date"`
}
