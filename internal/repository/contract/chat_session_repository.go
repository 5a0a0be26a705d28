package contract

import (
	"context"

	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ChatSessionRepository is the durable store for chat sessions. UpdateOwned
// and DeleteOwned match on id AND owner in a single statement; a mismatch on
// either reports not-found (nil / false) rather than a distinct error.
type ChatSessionRepository interface {
	Create(ctx context.Context, session *entity.ChatSession) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error)
	// UpdateOwned replaces the whole message list and, when title is non-nil,
	// the title. Returns the updated session, or nil when no owned row matched.
	UpdateOwned(ctx context.Context, id, ownerId uuid.UUID, messages []entity.Message, title *string) (*entity.ChatSession, error)
	// DeleteOwned permanently removes the session. Returns false when no
	// owned row matched.
	DeleteOwned(ctx context.Context, id, ownerId uuid.UUID) (bool, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
