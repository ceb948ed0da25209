package repository

import (
	"context"

	"skillswap/internal/models"

	"gorm.io/gorm"
)

// MessageRepository persists direct messages.
type MessageRepository interface {
	ListForUser(ctx context.Context, userID uint, limit int) ([]models.Message, error)
	Conversation(ctx context.Context, userA, userB uint, limit int) ([]models.Message, error)
	Create(ctx context.Context, msg *models.Message) error
	MarkRead(ctx context.Context, receiverID, senderID uint) (int64, error)
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

// ListForUser returns messages sent or received by userID, newest first.
func (r *messageRepository) ListForUser(ctx context.Context, userID uint, limit int) ([]models.Message, error) {
	var messages []models.Message
	q := readDB(r.db).WithContext(ctx).
		Preload("Sender").
		Preload("Receiver").
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC").Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&messages).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}

// Conversation returns the latest messages between two users in chronological order.
func (r *messageRepository) Conversation(ctx context.Context, userA, userB uint, limit int) ([]models.Message, error) {
	var messages []models.Message
	q := readDB(r.db).WithContext(ctx).
		Preload("Sender").
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", userA, userB, userB, userA).
		Order("created_at DESC").Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&messages).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	// Fetched newest first so the limit keeps the tail; clients expect oldest first.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func (r *messageRepository) Create(ctx context.Context, msg *models.Message) error {
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// MarkRead flags every unread message from senderID to receiverID as read.
func (r *messageRepository) MarkRead(ctx context.Context, receiverID, senderID uint) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Message{}).
		Where("receiver_id = ? AND sender_id = ? AND read = ?", receiverID, senderID, false).
		Update("read", true)
	if res.Error != nil {
		return 0, models.NewInternalError(res.Error)
	}
	return res.RowsAffected, nil
}
