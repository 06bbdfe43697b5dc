package store

import (
	"context"

	"github.com/Avinash-006/UniChat/internal/models"
	"gorm.io/gorm"
)

type MessageStore struct {
	DB *gorm.DB
}

func NewMessageStore(db *gorm.DB) *MessageStore {
	return &MessageStore{DB: db}
}

func (s *MessageStore) Create(ctx context.Context, message *models.Message) error {
	return s.DB.WithContext(ctx).Create(message).Error
}

func (s *MessageStore) FindByGroupID(ctx context.Context, groupID int64) ([]models.Message, error) {
	messages := []models.Message{}
	if err := s.DB.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("id ASC").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func (s *MessageStore) FindAll(ctx context.Context) ([]models.Message, error) {
	messages := []models.Message{}
	if err := s.DB.WithContext(ctx).Order("id ASC").Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// FindFileMessagesInGroups returns every message of type "file" posted to one
// of groupIDs, in send order.
func (s *MessageStore) FindFileMessagesInGroups(ctx context.Context, groupIDs []int64) ([]models.Message, error) {
	messages := []models.Message{}
	if len(groupIDs) == 0 {
		return messages, nil
	}
	if err := s.DB.WithContext(ctx).
		Where("group_id IN ? AND type = ?", groupIDs, models.MessageTypeFile).
		Order("id ASC").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}
