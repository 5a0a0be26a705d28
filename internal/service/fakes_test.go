package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/repository/contract"
	"ai-chat-be/internal/repository/specification"
	"ai-chat-be/internal/repository/unitofwork"
	"ai-chat-be/pkg/events"

	"github.com/google/uuid"
)

var errStoreDown = errors.New("store down")

// fakeStore holds users and sessions in memory and implements both
// repository contracts, interpreting the specifications the services
// actually use.
type fakeStore struct {
	mu       sync.Mutex
	users    map[uuid.UUID]entity.User
	sessions map[uuid.UUID]entity.ChatSession
	failing  bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[uuid.UUID]entity.User),
		sessions: make(map[uuid.UUID]entity.ChatSession),
	}
}

func (f *fakeStore) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUow{store: f}
}

type fakeUow struct {
	store *fakeStore
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) UserRepository() contract.UserRepository {
	return &fakeUserRepo{store: u.store}
}

func (u *fakeUow) ChatSessionRepository() contract.ChatSessionRepository {
	return &fakeChatRepo{store: u.store}
}

// --- user repository ---

type fakeUserRepo struct {
	store *fakeStore
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failing {
		return errStoreDown
	}
	r.store.users[user.Id] = *user
	return nil
}

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failing {
		return nil, errStoreDown
	}
	for _, u := range r.store.users {
		if matchesUser(u, specs) {
			copied := u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return int64(len(r.store.users)), nil
}

func matchesUser(u entity.User, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByEmail:
			if u.Email != s.Email {
				return false
			}
		case specification.ByID:
			if u.Id != s.ID {
				return false
			}
		}
	}
	return true
}

// --- chat session repository ---

type fakeChatRepo struct {
	store *fakeStore
}

func (r *fakeChatRepo) Create(ctx context.Context, session *entity.ChatSession) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failing {
		return errStoreDown
	}
	r.store.sessions[session.Id] = cloneEntitySession(*session)
	return nil
}

func (r *fakeChatRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failing {
		return nil, errStoreDown
	}
	for _, s := range r.store.sessions {
		if matchesSession(s, specs) {
			copied := cloneEntitySession(s)
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeChatRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failing {
		return nil, errStoreDown
	}

	var result []*entity.ChatSession
	for _, s := range r.store.sessions {
		if matchesSession(s, specs) {
			copied := cloneEntitySession(s)
			result = append(result, &copied)
		}
	}

	for _, spec := range specs {
		if order, ok := spec.(specification.OrderBy); ok && order.Field == "created_at" {
			desc := order.Desc
			sort.SliceStable(result, func(i, j int) bool {
				if desc {
					return result[i].CreatedAt.After(result[j].CreatedAt)
				}
				return result[i].CreatedAt.Before(result[j].CreatedAt)
			})
		}
	}
	return result, nil
}

func (r *fakeChatRepo) UpdateOwned(ctx context.Context, id, ownerId uuid.UUID, messages []entity.Message, title *string) (*entity.ChatSession, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failing {
		return nil, errStoreDown
	}
	s, ok := r.store.sessions[id]
	if !ok || s.UserId != ownerId {
		return nil, nil
	}
	s.Messages = append([]entity.Message(nil), messages...)
	if title != nil {
		s.Title = *title
	}
	r.store.sessions[id] = s
	copied := cloneEntitySession(s)
	return &copied, nil
}

func (r *fakeChatRepo) DeleteOwned(ctx context.Context, id, ownerId uuid.UUID) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failing {
		return false, errStoreDown
	}
	s, ok := r.store.sessions[id]
	if !ok || s.UserId != ownerId {
		return false, nil
	}
	delete(r.store.sessions, id)
	return true, nil
}

func (r *fakeChatRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var count int64
	for _, s := range r.store.sessions {
		if matchesSession(s, specs) {
			count++
		}
	}
	return count, nil
}

func matchesSession(s entity.ChatSession, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch sp := spec.(type) {
		case specification.ByID:
			if s.Id != sp.ID {
				return false
			}
		case specification.UserOwnedBy:
			if s.UserId != sp.UserID {
				return false
			}
		}
	}
	return true
}

func cloneEntitySession(s entity.ChatSession) entity.ChatSession {
	messages := make([]entity.Message, len(s.Messages))
	copy(messages, s.Messages)
	s.Messages = messages
	return s
}

// noopLogger satisfies logger.ILogger for tests that do not assert on logs.
type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

// capturePublisher records published events for assertions.
type capturePublisher struct {
	mu     sync.Mutex
	events []events.BaseEvent
}

func (p *capturePublisher) Publish(ctx context.Context, event events.BaseEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}
