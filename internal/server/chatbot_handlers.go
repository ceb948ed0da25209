package server

import (
	"skillswap/internal/featureflags"
	"skillswap/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Chatbot handles POST /api/chatbot
// @Summary Ask SkillBot
// @Description The assistant answers with the caller's profile and skills as context
// @Tags chatbot
// @Security SessionToken
// @Accept json
// @Produce json
// @Param request body object{message=string} true "Question"
// @Success 200 {object} object{response=string}
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /chatbot [post]
func (s *Server) Chatbot(c *fiber.Ctx) error {
	userID := currentUserID(c)
	if !s.featureFlags.Enabled(featureflags.Chatbot, userID) {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("SkillBot is not available"))
	}

	var req struct {
		Message string `json:"message"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	reply, err := s.chatbotService.Reply(c.UserContext(), userID, req.Message)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"response": reply})
}

// GetMatchAdvice handles GET /api/users/current/match-advice
// @Summary Match advice
// @Description SkillBot's suggestion of which partners suit the caller's skills
// @Tags chatbot
// @Security SessionToken
// @Produce json
// @Success 200 {object} object{advice=string}
// @Failure 403 {object} models.ErrorResponse
// @Router /users/current/match-advice [get]
func (s *Server) GetMatchAdvice(c *fiber.Ctx) error {
	userID := currentUserID(c)
	if !s.featureFlags.Enabled(featureflags.Chatbot, userID) {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("SkillBot is not available"))
	}

	advice, err := s.chatbotService.MatchAdvice(c.UserContext(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"advice": advice})
}
