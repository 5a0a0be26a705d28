package entity

import (
	"time"

	"github.com/google/uuid"
)

// Message is a single conversation turn. IsUser discriminates the human
// author from the generated reply; there are no other roles.
type Message struct {
	Text      string
	IsUser    bool
	Timestamp time.Time
}

// ChatSession is an owner-scoped, titled conversation record. Messages is
// always replaced as a whole list; there are no partial patches.
type ChatSession struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Title     string
	Messages  []Message
	CreatedAt time.Time
}
