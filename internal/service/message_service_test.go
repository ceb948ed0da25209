package service

import (
	"context"
	"strings"
	"testing"

	"skillswap/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageServiceSendPushesToReceiver(t *testing.T) {
	t.Parallel()
	pusher := &recordingPusher{}
	svc := NewMessageService(noopMessageRepo(), noopUserRepo(), pusher)

	msg, err := svc.Send(context.Background(), SendMessageInput{SenderID: 4, ReceiverID: 1, Content: "  Hi Alex!  "})
	require.NoError(t, err)
	assert.Equal(t, "Hi Alex!", msg.Content)

	require.Len(t, pusher.calls, 1)
	call := pusher.calls[0]
	assert.Equal(t, uint(1), call.userID)
	assert.Equal(t, models.EnvelopeMessage, call.env.Type)
	assert.Equal(t, uint(4), call.env.SenderID)
	assert.Equal(t, "user4", call.env.SenderName)
	require.NotNil(t, call.env.ReceiverID)
	assert.Equal(t, uint(1), *call.env.ReceiverID)
}

func TestMessageServiceSendValidation(t *testing.T) {
	t.Parallel()
	users := noopUserRepo()
	users.getByIDFn = missingUsers(9)
	svc := NewMessageService(noopMessageRepo(), users, nil)
	ctx := context.Background()

	_, err := svc.Send(ctx, SendMessageInput{SenderID: 1, ReceiverID: 2, Content: "   "})
	assertValidationError(t, err)

	_, err = svc.Send(ctx, SendMessageInput{SenderID: 1, ReceiverID: 2, Content: strings.Repeat("x", 4001)})
	assertValidationError(t, err)

	_, err = svc.Send(ctx, SendMessageInput{SenderID: 1, ReceiverID: 1, Content: "me"})
	assertValidationError(t, err)

	_, err = svc.Send(ctx, SendMessageInput{SenderID: 1, ReceiverID: 9, Content: "hello?"})
	assertErrorCode(t, err, models.CodeNotFound)
}

func TestMessageServiceConversationMarksRead(t *testing.T) {
	t.Parallel()
	repo := noopMessageRepo()
	repo.conversationFn = func(_ context.Context, a, b uint, _ int) ([]models.Message, error) {
		return []models.Message{
			{ID: 1, SenderID: b, ReceiverID: a, Content: "first"},
			{ID: 2, SenderID: a, ReceiverID: b, Content: "second"},
		}, nil
	}
	var marked [2]uint
	repo.markReadFn = func(_ context.Context, receiver, sender uint) (int64, error) {
		marked = [2]uint{receiver, sender}
		return 1, nil
	}
	svc := NewMessageService(repo, noopUserRepo(), nil)

	msgs, err := svc.Conversation(context.Background(), 1, 4)
	require.NoError(t, err)
	assert.Equal(t, [2]uint{1, 4}, marked)
	require.Len(t, msgs, 2)
	assert.True(t, msgs[0].Read)
	assert.False(t, msgs[1].Read)
}
