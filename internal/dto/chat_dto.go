package dto

import (
	"time"

	"github.com/google/uuid"
)

// MessageDTO is the wire shape of a single conversation turn. Timestamp is
// optional on input; the service stamps "now" when it is absent.
type MessageDTO struct {
	Text      string     `json:"text"`
	IsUser    bool       `json:"is_user"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

type SessionResponse struct {
	Id        uuid.UUID    `json:"id"`
	Title     string       `json:"title"`
	Messages  []MessageDTO `json:"messages"`
	CreatedAt time.Time    `json:"created_at"`
}

// SaveTranscriptRequest carries the client's complete, reconstructed message
// list; the server replaces the stored list wholesale. IsFirstMessage
// reports whether the session held zero messages before this turn and
// triggers title derivation.
type SaveTranscriptRequest struct {
	Messages       []MessageDTO `json:"messages" validate:"required"`
	IsFirstMessage bool         `json:"is_first_message"`
}

type DeleteSessionResponse struct {
	Id uuid.UUID `json:"id"`
}

type ActivityEventDTO struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data,omitempty"`
	OccurredAt time.Time              `json:"occurred_at"`
}
