package syncclient

import (
	"time"

	"github.com/google/uuid"
)

// Message mirrors the server's wire shape of a conversation turn.
type Message struct {
	Text      string    `json:"text"`
	IsUser    bool      `json:"is_user"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is the client's view of a server-side chat session.
type Session struct {
	Id        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"created_at"`
}

// State is an immutable snapshot of the client's session list. Transition
// methods return a fresh snapshot and never mutate the receiver, so
// optimistic updates and reconciliation stay testable without a UI.
//
// Unsynced reports that the active session's local transcript is ahead of
// the server (the last persist failed).
type State struct {
	Sessions []Session
	ActiveId uuid.UUID // uuid.Nil when no session is selected
	Unsynced bool
}

// Active returns a copy of the selected session, if any.
func (s State) Active() (Session, bool) {
	if s.ActiveId == uuid.Nil {
		return Session{}, false
	}
	for _, sess := range s.Sessions {
		if sess.Id == s.ActiveId {
			return cloneSession(sess), true
		}
	}
	return Session{}, false
}

// WithSessions replaces the whole session list, keeping the selection when
// it still exists.
func (s State) WithSessions(sessions []Session) State {
	next := s.clone()
	next.Sessions = cloneSessions(sessions)
	if _, ok := next.Active(); !ok {
		next.ActiveId = uuid.Nil
	}
	return next
}

// Prepend inserts a freshly created session at the front and selects it.
func (s State) Prepend(sess Session) State {
	next := s.clone()
	next.Sessions = append([]Session{cloneSession(sess)}, next.Sessions...)
	next.ActiveId = sess.Id
	next.Unsynced = false
	return next
}

// Select makes the given session active; selecting an unknown id clears the
// selection.
func (s State) Select(id uuid.UUID) State {
	next := s.clone()
	next.ActiveId = uuid.Nil
	for _, sess := range next.Sessions {
		if sess.Id == id {
			next.ActiveId = id
			break
		}
	}
	return next
}

// AppendToActive adds a message to the selected session's transcript.
// No-op when nothing is selected.
func (s State) AppendToActive(msg Message) State {
	next := s.clone()
	for i, sess := range next.Sessions {
		if sess.Id == next.ActiveId {
			next.Sessions[i].Messages = append(next.Sessions[i].Messages, msg)
			break
		}
	}
	return next
}

// ReconcileActive replaces the selected session with the server-confirmed
// copy and clears the unsynced flag.
func (s State) ReconcileActive(confirmed Session) State {
	next := s.clone()
	for i, sess := range next.Sessions {
		if sess.Id == confirmed.Id {
			next.Sessions[i] = cloneSession(confirmed)
			break
		}
	}
	next.Unsynced = false
	return next
}

// Remove drops a session from the list; when it was active, the selection
// and message view are cleared.
func (s State) Remove(id uuid.UUID) State {
	next := s.clone()
	filtered := make([]Session, 0, len(next.Sessions))
	for _, sess := range next.Sessions {
		if sess.Id != id {
			filtered = append(filtered, sess)
		}
	}
	next.Sessions = filtered
	if next.ActiveId == id {
		next.ActiveId = uuid.Nil
	}
	return next
}

// MarkUnsynced flags that local state is ahead of the server.
func (s State) MarkUnsynced() State {
	next := s.clone()
	next.Unsynced = true
	return next
}

func (s State) clone() State {
	return State{
		Sessions: cloneSessions(s.Sessions),
		ActiveId: s.ActiveId,
		Unsynced: s.Unsynced,
	}
}

func cloneSessions(sessions []Session) []Session {
	out := make([]Session, len(sessions))
	for i, sess := range sessions {
		out[i] = cloneSession(sess)
	}
	return out
}

func cloneSession(sess Session) Session {
	messages := make([]Message, len(sess.Messages))
	copy(messages, sess.Messages)
	sess.Messages = messages
	return sess
}
