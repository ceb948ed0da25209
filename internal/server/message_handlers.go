package server

import (
	"skillswap/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetInbox handles GET /api/messages
// @Summary Recent messages
// @Tags messages
// @Security SessionToken
// @Produce json
// @Success 200 {array} models.Message
// @Router /messages [get]
func (s *Server) GetInbox(c *fiber.Ctx) error {
	msgs, err := s.messageService.Inbox(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(msgs)
}

// GetConversation handles GET /api/messages/:userId
// @Summary Conversation with a user
// @Description Oldest first; incoming messages are marked read
// @Tags messages
// @Security SessionToken
// @Produce json
// @Param userId path int true "Partner user ID"
// @Success 200 {array} models.Message
// @Failure 404 {object} models.ErrorResponse
// @Router /messages/{userId} [get]
func (s *Server) GetConversation(c *fiber.Ctx) error {
	partnerID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}
	msgs, err := s.messageService.Conversation(c.UserContext(), currentUserID(c), partnerID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(msgs)
}

// SendMessage handles POST /api/messages
// @Summary Send a direct message
// @Description Persists the message and pushes it to the receiver's live connections
// @Tags messages
// @Security SessionToken
// @Accept json
// @Produce json
// @Param request body object{receiverId=int,content=string} true "Message"
// @Success 201 {object} models.Message
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /messages [post]
func (s *Server) SendMessage(c *fiber.Ctx) error {
	var req struct {
		ReceiverID uint   `json:"receiverId"`
		Content    string `json:"content"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	msg, err := s.messageService.Send(c.UserContext(), service.SendMessageInput{
		SenderID:   currentUserID(c),
		ReceiverID: req.ReceiverID,
		Content:    req.Content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}
