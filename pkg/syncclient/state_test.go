package syncclient

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeSession(title string, messages ...Message) Session {
	return Session{
		Id:        uuid.New(),
		Title:     title,
		Messages:  messages,
		CreatedAt: time.Now(),
	}
}

func TestState_ActiveEmpty(t *testing.T) {
	var s State
	_, ok := s.Active()
	assert.False(t, ok)
}

func TestState_PrependSelectsNewSession(t *testing.T) {
	old := makeSession("old")
	fresh := makeSession("fresh")

	s := State{}.WithSessions([]Session{old}).Prepend(fresh)

	require.Len(t, s.Sessions, 2)
	assert.Equal(t, fresh.Id, s.Sessions[0].Id)
	assert.Equal(t, fresh.Id, s.ActiveId)
	assert.False(t, s.Unsynced)
}

func TestState_WithSessionsKeepsSelectionWhenPresent(t *testing.T) {
	a := makeSession("a")
	b := makeSession("b")

	s := State{}.WithSessions([]Session{a, b}).Select(b.Id)
	s = s.WithSessions([]Session{b})

	assert.Equal(t, b.Id, s.ActiveId)
}

func TestState_WithSessionsClearsStaleSelection(t *testing.T) {
	a := makeSession("a")
	b := makeSession("b")

	s := State{}.WithSessions([]Session{a}).Select(a.Id)
	s = s.WithSessions([]Session{b})

	assert.Equal(t, uuid.Nil, s.ActiveId)
	_, ok := s.Active()
	assert.False(t, ok)
}

func TestState_SelectUnknownIdClearsSelection(t *testing.T) {
	a := makeSession("a")
	s := State{}.WithSessions([]Session{a}).Select(a.Id)

	s = s.Select(uuid.New())
	assert.Equal(t, uuid.Nil, s.ActiveId)
}

func TestState_AppendToActive(t *testing.T) {
	a := makeSession("a")
	s := State{}.WithSessions([]Session{a}).Select(a.Id)

	s = s.AppendToActive(Message{Text: "hi", IsUser: true})

	active, ok := s.Active()
	require.True(t, ok)
	require.Len(t, active.Messages, 1)
	assert.Equal(t, "hi", active.Messages[0].Text)
}

func TestState_AppendToActiveNoSelectionIsNoop(t *testing.T) {
	a := makeSession("a")
	s := State{}.WithSessions([]Session{a})

	s = s.AppendToActive(Message{Text: "lost", IsUser: true})

	assert.Empty(t, s.Sessions[0].Messages)
}

func TestState_TransitionsDoNotMutateReceiver(t *testing.T) {
	a := makeSession("a", Message{Text: "first", IsUser: true})
	original := State{}.WithSessions([]Session{a}).Select(a.Id)

	_ = original.AppendToActive(Message{Text: "second", IsUser: false})
	_ = original.Remove(a.Id)
	_ = original.MarkUnsynced()

	require.Len(t, original.Sessions, 1)
	assert.Len(t, original.Sessions[0].Messages, 1)
	assert.Equal(t, a.Id, original.ActiveId)
	assert.False(t, original.Unsynced)
}

func TestState_ReconcileActiveReplacesAndClearsUnsynced(t *testing.T) {
	a := makeSession("a", Message{Text: "local", IsUser: true})
	s := State{}.WithSessions([]Session{a}).Select(a.Id).MarkUnsynced()

	confirmed := a
	confirmed.Title = "local"
	confirmed.Messages = []Message{
		{Text: "local", IsUser: true},
		{Text: "server reply", IsUser: false},
	}

	s = s.ReconcileActive(confirmed)

	active, ok := s.Active()
	require.True(t, ok)
	assert.Equal(t, "local", active.Title)
	assert.Len(t, active.Messages, 2)
	assert.False(t, s.Unsynced)
}

func TestState_RemoveActiveClearsSelection(t *testing.T) {
	a := makeSession("a")
	b := makeSession("b")
	s := State{}.WithSessions([]Session{a, b}).Select(a.Id)

	s = s.Remove(a.Id)

	require.Len(t, s.Sessions, 1)
	assert.Equal(t, b.Id, s.Sessions[0].Id)
	assert.Equal(t, uuid.Nil, s.ActiveId)
}

func TestState_RemoveInactiveKeepsSelection(t *testing.T) {
	a := makeSession("a")
	b := makeSession("b")
	s := State{}.WithSessions([]Session{a, b}).Select(a.Id)

	s = s.Remove(b.Id)

	require.Len(t, s.Sessions, 1)
	assert.Equal(t, a.Id, s.ActiveId)
}
