package implementation

import (
	"context"
	"errors"

	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/mapper"
	"ai-chat-be/internal/model"
	"ai-chat-be/internal/repository/contract"
	"ai-chat-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatSessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewChatSessionRepository(db *gorm.DB) contract.ChatSessionRepository {
	return &ChatSessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *ChatSessionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ChatSessionRepositoryImpl) Create(ctx context.Context, session *entity.ChatSession) error {
	m, err := r.mapper.ChatSessionToModel(session)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	created, err := r.mapper.ChatSessionToEntity(m)
	if err != nil {
		return err
	}
	*session = *created
	return nil
}

func (r *ChatSessionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	var m model.ChatSession
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ChatSessionToEntity(&m)
}

func (r *ChatSessionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error) {
	var models []*model.ChatSession
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.ChatSession, len(models))
	for i, m := range models {
		e, err := r.mapper.ChatSessionToEntity(m)
		if err != nil {
			return nil, err
		}
		entities[i] = e
	}
	return entities, nil
}

// UpdateOwned matches id and user_id in one statement so ownership and
// existence are checked atomically at the storage layer. Racing updates on
// the same session resolve last-write-wins; there is no merge.
func (r *ChatSessionRepositoryImpl) UpdateOwned(ctx context.Context, id, ownerId uuid.UUID, messages []entity.Message, title *string) (*entity.ChatSession, error) {
	raw, err := r.mapper.MessagesToJSON(messages)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"messages": raw}
	if title != nil {
		updates["title"] = *title
	}

	result := r.db.WithContext(ctx).
		Model(&model.ChatSession{}).
		Where("id = ? AND user_id = ?", id, ownerId).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	return r.FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: ownerId},
	)
}

func (r *ChatSessionRepositoryImpl) DeleteOwned(ctx context.Context, id, ownerId uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerId).
		Delete(&model.ChatSession{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *ChatSessionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ChatSession{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
