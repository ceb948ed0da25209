package server

import (
	"net/http"
	"strings"
	"testing"

	"skillswap/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectMessages(t *testing.T) {
	env := newTestEnv(t)
	aliceToken, aliceID := env.register(t, "alice")
	bobToken, bobID := env.register(t, "bob")

	resp := env.do(t, http.MethodPost, "/api/messages", aliceToken, map[string]any{
		"receiverId": bobID,
		"content":    "  Hola Bob!  ",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var sent models.Message
	decode(t, resp, &sent)
	assert.Equal(t, "Hola Bob!", sent.Content)
	assert.Equal(t, aliceID, sent.SenderID)
	assert.False(t, sent.Read)

	resp = env.do(t, http.MethodPost, "/api/messages", bobToken, map[string]any{
		"receiverId": aliceID,
		"content":    "Hi Alice",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/messages/"+itoa(aliceID), bobToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var thread []models.Message
	decode(t, resp, &thread)
	require.Len(t, thread, 2)
	assert.Equal(t, "Hola Bob!", thread[0].Content)
	assert.True(t, thread[0].Read)
	assert.Equal(t, "Hi Alice", thread[1].Content)
	assert.False(t, thread[1].Read)

	var unread int64
	require.NoError(t, env.db.Model(&models.Message{}).
		Where("receiver_id = ? AND read = ?", bobID, false).Count(&unread).Error)
	assert.Zero(t, unread)

	resp = env.do(t, http.MethodGet, "/api/messages", aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var inbox []models.Message
	decode(t, resp, &inbox)
	require.Len(t, inbox, 2)
	assert.Equal(t, "Hi Alice", inbox[0].Content)
}

func TestSendMessage_Validation(t *testing.T) {
	env := newTestEnv(t)
	aliceToken, aliceID := env.register(t, "alice")
	_, bobID := env.register(t, "bob")

	tests := []struct {
		name   string
		body   map[string]any
		status int
	}{
		{"blank content", map[string]any{"receiverId": bobID, "content": "   "}, http.StatusBadRequest},
		{"too long", map[string]any{"receiverId": bobID, "content": strings.Repeat("a", 4001)}, http.StatusBadRequest},
		{"no receiver", map[string]any{"content": "hi"}, http.StatusBadRequest},
		{"to self", map[string]any{"receiverId": aliceID, "content": "hi"}, http.StatusBadRequest},
		{"unknown receiver", map[string]any{"receiverId": 999, "content": "hi"}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := env.do(t, http.MethodPost, "/api/messages", aliceToken, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestGetConversation_UnknownPartner(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "alice")

	resp := env.do(t, http.MethodGet, "/api/messages/999", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/messages/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid user ID", errorBody(t, resp).Error)
}
