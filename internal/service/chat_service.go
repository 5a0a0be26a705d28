package service

import (
	"context"
	"time"

	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/pkg/apperror"
	"ai-chat-be/internal/pkg/logger"
	"ai-chat-be/internal/repository/specification"
	"ai-chat-be/internal/repository/unitofwork"
	"ai-chat-be/pkg/events"

	"github.com/google/uuid"
)

const (
	defaultSessionTitle = "New Chat"
	titleMaxRunes       = 30
	titleEllipsis       = "..."
)

// EventPublisher is the slice of the event bus the chat service needs.
type EventPublisher interface {
	Publish(ctx context.Context, event events.BaseEvent) error
}

type IChatService interface {
	CreateSession(ctx context.Context, userId uuid.UUID) (*dto.SessionResponse, error)
	ListSessions(ctx context.Context, userId uuid.UUID) ([]*dto.SessionResponse, error)
	GetSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.SessionResponse, error)
	SaveTranscript(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, req *dto.SaveTranscriptRequest) (*dto.SessionResponse, error)
	DeleteSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.DeleteSessionResponse, error)
}

type chatService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher EventPublisher
	log            logger.ILogger
}

func NewChatService(uowFactory unitofwork.RepositoryFactory, eventPublisher EventPublisher, log logger.ILogger) IChatService {
	return &chatService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		log:            log,
	}
}

// CreateSession creates a new, empty session with the default title. The
// first saved transcript renames it.
func (s *chatService) CreateSession(ctx context.Context, userId uuid.UUID) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session := &entity.ChatSession{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     defaultSessionTitle,
		Messages:  []entity.Message{},
		CreatedAt: time.Now(),
	}

	if err := uow.ChatSessionRepository().Create(ctx, session); err != nil {
		return nil, apperror.Wrap(apperror.KindStorageUnavailable, "failed to save chat", err)
	}

	s.publish(ctx, events.TypeSessionCreated, userId, map[string]interface{}{
		"session_id": session.Id.String(),
	})

	return sessionToDTO(session), nil
}

func (s *chatService) ListSessions(ctx context.Context, userId uuid.UUID) ([]*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindStorageUnavailable, "failed to get chats", err)
	}

	response := make([]*dto.SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		response = append(response, sessionToDTO(session))
	}
	return response, nil
}

func (s *chatService) GetSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindStorageUnavailable, "failed to get chat", err)
	}
	if session == nil {
		return nil, apperror.New(apperror.KindNotFound, "chat not found")
	}

	return sessionToDTO(session), nil
}

// SaveTranscript replaces the stored message list with the client's complete
// reconstruction of the conversation. The client is authoritative for order
// and content at call time; racing saves resolve last-write-wins at the
// store. When this is the session's first message, the title is derived from
// the first user turn.
func (s *chatService) SaveTranscript(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, req *dto.SaveTranscriptRequest) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	messages := messagesFromDTO(req.Messages)

	var title *string
	if req.IsFirstMessage {
		if derived, ok := deriveTitle(messages); ok {
			title = &derived
		}
	}

	session, err := uow.ChatSessionRepository().UpdateOwned(ctx, sessionId, userId, messages, title)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindStorageUnavailable, "failed to update chat", err)
	}
	if session == nil {
		return nil, apperror.New(apperror.KindNotFound, "chat not found")
	}

	s.publish(ctx, events.TypeTranscriptSaved, userId, map[string]interface{}{
		"session_id":    session.Id.String(),
		"message_count": len(session.Messages),
	})

	return sessionToDTO(session), nil
}

func (s *chatService) DeleteSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.DeleteSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	deleted, err := uow.ChatSessionRepository().DeleteOwned(ctx, sessionId, userId)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindStorageUnavailable, "failed to delete chat", err)
	}
	if !deleted {
		return nil, apperror.New(apperror.KindNotFound, "chat not found")
	}

	s.publish(ctx, events.TypeSessionDeleted, userId, map[string]interface{}{
		"session_id": sessionId.String(),
	})

	return &dto.DeleteSessionResponse{Id: sessionId}, nil
}

func (s *chatService) publish(ctx context.Context, eventType string, userId uuid.UUID, data map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	event := events.BaseEvent{
		Type:       eventType,
		UserId:     userId.String(),
		Data:       data,
		OccurredAt: time.Now(),
	}
	if err := s.eventPublisher.Publish(ctx, event); err != nil && s.log != nil {
		s.log.Warn("chat", "failed to publish event", map[string]interface{}{
			"type":  eventType,
			"error": err.Error(),
		})
	}
}

// deriveTitle takes the first user message's text, truncated to 30 runes
// with an ellipsis marker appended only when truncation occurred. Reports
// false when the list holds no user message.
func deriveTitle(messages []entity.Message) (string, bool) {
	for _, msg := range messages {
		if !msg.IsUser {
			continue
		}
		runes := []rune(msg.Text)
		if len(runes) > titleMaxRunes {
			return string(runes[:titleMaxRunes]) + titleEllipsis, true
		}
		return msg.Text, true
	}
	return "", false
}

func messagesFromDTO(in []dto.MessageDTO) []entity.Message {
	now := time.Now()
	out := make([]entity.Message, len(in))
	for i, m := range in {
		ts := now
		if m.Timestamp != nil {
			ts = *m.Timestamp
		}
		out[i] = entity.Message{
			Text:      m.Text,
			IsUser:    m.IsUser,
			Timestamp: ts,
		}
	}
	return out
}

func sessionToDTO(session *entity.ChatSession) *dto.SessionResponse {
	messages := make([]dto.MessageDTO, len(session.Messages))
	for i, m := range session.Messages {
		ts := m.Timestamp
		messages[i] = dto.MessageDTO{
			Text:      m.Text,
			IsUser:    m.IsUser,
			Timestamp: &ts,
		}
	}
	return &dto.SessionResponse{
		Id:        session.Id,
		Title:     session.Title,
		Messages:  messages,
		CreatedAt: session.CreatedAt,
	}
}
