package events

import "time"

const (
	TypeSessionCreated  = "SESSION_CREATED"
	TypeTranscriptSaved = "TRANSCRIPT_SAVED"
	TypeSessionDeleted  = "SESSION_DELETED"
)

// BaseEvent is the payload published on the in-process chat activity topic.
type BaseEvent struct {
	Type       string                 `json:"type"`
	UserId     string                 `json:"user_id"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}
