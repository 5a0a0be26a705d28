package mapper

import (
	"encoding/json"
	"time"

	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/model"

	"gorm.io/datatypes"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

// messageDoc is the persisted JSONB shape of a single message. It doubles
// as the wire shape, so a stored transcript round-trips byte-identically.
type messageDoc struct {
	Text      string    `json:"text"`
	IsUser    bool      `json:"is_user"`
	Timestamp time.Time `json:"timestamp"`
}

func (m *ChatMapper) ChatSessionToEntity(s *model.ChatSession) (*entity.ChatSession, error) {
	if s == nil {
		return nil, nil
	}

	var docs []messageDoc
	if len(s.Messages) > 0 {
		if err := json.Unmarshal(s.Messages, &docs); err != nil {
			return nil, err
		}
	}

	messages := make([]entity.Message, len(docs))
	for i, d := range docs {
		messages[i] = entity.Message{
			Text:      d.Text,
			IsUser:    d.IsUser,
			Timestamp: d.Timestamp,
		}
	}

	return &entity.ChatSession{
		Id:        s.Id,
		UserId:    s.UserId,
		Title:     s.Title,
		Messages:  messages,
		CreatedAt: s.CreatedAt,
	}, nil
}

func (m *ChatMapper) ChatSessionToModel(s *entity.ChatSession) (*model.ChatSession, error) {
	if s == nil {
		return nil, nil
	}

	raw, err := m.MessagesToJSON(s.Messages)
	if err != nil {
		return nil, err
	}

	return &model.ChatSession{
		Id:        s.Id,
		UserId:    s.UserId,
		Title:     s.Title,
		Messages:  raw,
		CreatedAt: s.CreatedAt,
	}, nil
}

// MessagesToJSON serializes a whole message list for the JSONB column.
// An empty list marshals as [] rather than null.
func (m *ChatMapper) MessagesToJSON(messages []entity.Message) (datatypes.JSON, error) {
	docs := make([]messageDoc, len(messages))
	for i, msg := range messages {
		docs[i] = messageDoc{
			Text:      msg.Text,
			IsUser:    msg.IsUser,
			Timestamp: msg.Timestamp,
		}
	}
	raw, err := json.Marshal(docs)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
