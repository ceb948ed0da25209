package service

import (
	"context"
	"strings"

	"skillswap/internal/models"
	"skillswap/internal/repository"
	"skillswap/internal/validation"
)

const (
	defaultInboxLimit        = 100
	defaultConversationLimit = 200
)

type MessageService struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
	pusher      Pusher
}

type SendMessageInput struct {
	SenderID   uint
	ReceiverID uint
	Content    string
}

func NewMessageService(messageRepo repository.MessageRepository, userRepo repository.UserRepository, pusher Pusher) *MessageService {
	return &MessageService{messageRepo: messageRepo, userRepo: userRepo, pusher: pusher}
}

// Send persists the message and then pushes it to the receiver's live connections.
func (s *MessageService) Send(ctx context.Context, in SendMessageInput) (*models.Message, error) {
	content := strings.TrimSpace(in.Content)
	if err := validation.ValidateMessage(content, validation.MessageMaxLength); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if in.ReceiverID == 0 {
		return nil, models.NewValidationError("receiverId is required")
	}
	if in.ReceiverID == in.SenderID {
		return nil, models.NewValidationError("You cannot message yourself")
	}

	sender, err := s.userRepo.GetByID(ctx, in.SenderID)
	if err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetByID(ctx, in.ReceiverID); err != nil {
		return nil, err
	}

	msg := &models.Message{
		SenderID:   in.SenderID,
		ReceiverID: in.ReceiverID,
		Content:    content,
	}
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, err
	}

	if s.pusher != nil {
		receiver := msg.ReceiverID
		env := models.ChatEnvelope{
			Type:       models.EnvelopeMessage,
			Content:    msg.Content,
			SenderID:   sender.ID,
			SenderName: sender.Username,
			ReceiverID: &receiver,
			Timestamp:  msg.CreatedAt,
		}
		if err := s.pusher.PushToUser(ctx, receiver, env); err != nil {
			logPushFailure(ctx, receiver, err)
		}
	}
	return msg, nil
}

func (s *MessageService) Inbox(ctx context.Context, userID uint) ([]models.Message, error) {
	return s.messageRepo.ListForUser(ctx, userID, defaultInboxLimit)
}

// Conversation returns the thread in chronological order and marks the
// partner's messages to userID as read.
func (s *MessageService) Conversation(ctx context.Context, userID, partnerID uint) ([]models.Message, error) {
	if _, err := s.userRepo.GetByID(ctx, partnerID); err != nil {
		return nil, err
	}
	msgs, err := s.messageRepo.Conversation(ctx, userID, partnerID, defaultConversationLimit)
	if err != nil {
		return nil, err
	}
	if _, err := s.messageRepo.MarkRead(ctx, userID, partnerID); err != nil {
		return nil, err
	}
	for i := range msgs {
		if msgs[i].ReceiverID == userID {
			msgs[i].Read = true
		}
	}
	return msgs, nil
}
