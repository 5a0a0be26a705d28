package syncclient

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Client keeps a local session list consistent with the server across
// mutations, reflecting user input optimistically before confirmation.
// All state transitions go through immutable State snapshots.
type Client struct {
	api          API
	defaultModel string

	mu    sync.Mutex
	state State
}

func New(api API, defaultModel string) *Client {
	return &Client{
		api:          api,
		defaultModel: defaultModel,
	}
}

// State returns the current snapshot.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Bootstrap fetches the full session list and selects the most recent
// session as active. With no stored sessions the client starts empty.
func (c *Client) Bootstrap(ctx context.Context) error {
	sessions, err := c.api.ListSessions(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	next := c.state.WithSessions(sessions)
	if len(sessions) > 0 {
		// Server order is newest-created-first.
		next = next.Select(sessions[0].Id)
	}
	c.state = next
	return nil
}

// NewChat creates a session server-side, prepends it locally and makes it
// active.
func (c *Client) NewChat(ctx context.Context) (Session, error) {
	sess, err := c.api.CreateSession(ctx)
	if err != nil {
		return Session{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = c.state.Prepend(sess)
	return sess, nil
}

// SelectChat switches the active session.
func (c *Client) SelectChat(id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = c.state.Select(id)
}

// Send runs one chat turn: it appends the user's message optimistically,
// asks the backend for a reply, and persists the resulting full transcript.
// With no active session one is created first and the send proceeds in the
// same call.
//
// An inference failure does not abort the turn; the failure text is kept in
// the transcript as a synthesized assistant message. A persist failure keeps
// local state and flags it unsynced.
func (c *Client) Send(ctx context.Context, text string, model string) (State, error) {
	if model == "" {
		model = c.defaultModel
	}

	c.mu.Lock()
	if _, ok := c.state.Active(); !ok {
		c.mu.Unlock()
		if _, err := c.NewChat(ctx); err != nil {
			return c.State(), err
		}
		c.mu.Lock()
	}

	active, _ := c.state.Active()
	isFirstMessage := len(active.Messages) == 0

	// Local apply before the round trips; the user sees their input
	// immediately.
	c.state = c.state.AppendToActive(Message{
		Text:      text,
		IsUser:    true,
		Timestamp: time.Now(),
	})
	c.mu.Unlock()

	reply, err := c.api.Generate(ctx, text, model)
	if err != nil {
		reply = fmt.Sprintf("Error: %v", err)
	}

	c.mu.Lock()
	c.state = c.state.AppendToActive(Message{
		Text:      reply,
		IsUser:    false,
		Timestamp: time.Now(),
	})
	active, _ = c.state.Active()
	c.mu.Unlock()

	confirmed, err := c.api.UpdateSession(ctx, active.Id, active.Messages, isFirstMessage)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state = c.state.MarkUnsynced()
		return c.state.clone(), err
	}
	c.state = c.state.ReconcileActive(confirmed)
	return c.state.clone(), nil
}

// DeleteChat removes the session on the server, then locally. Deleting the
// active session clears the selection and message view.
func (c *Client) DeleteChat(ctx context.Context, id uuid.UUID) error {
	if err := c.api.DeleteSession(ctx, id); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = c.state.Remove(id)
	return nil
}

// Models lists the backend's available model names.
func (c *Client) Models(ctx context.Context) ([]string, error) {
	return c.api.ListModels(ctx)
}
