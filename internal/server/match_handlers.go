package server

import (
	"skillswap/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMatches handles GET /api/matches
// @Summary My matches
// @Description Matches touching the caller, expressed from the caller's side
// @Tags matches
// @Security SessionToken
// @Produce json
// @Param status query string false "pending, accepted or rejected"
// @Success 200 {array} models.SkillMatchWithUsers
// @Failure 400 {object} models.ErrorResponse
// @Router /matches [get]
func (s *Server) GetMatches(c *fiber.Ctx) error {
	matches, err := s.matchService.ListForUser(c.UserContext(), currentUserID(c), c.Query("status"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(matches)
}

// CreateMatch handles POST /api/matches
// @Summary Propose a match
// @Description Offer one of your teach records in exchange for a learn record
// @Tags matches
// @Security SessionToken
// @Accept json
// @Produce json
// @Param request body object{targetUserId=int,teachSkillId=int,learnSkillId=int} true "Proposal"
// @Success 201 {object} models.Match
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /matches [post]
func (s *Server) CreateMatch(c *fiber.Ctx) error {
	var req struct {
		TargetUserID uint `json:"targetUserId"`
		TeachSkillID uint `json:"teachSkillId"`
		LearnSkillID uint `json:"learnSkillId"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	match, err := s.matchService.Propose(c.UserContext(), service.ProposeMatchInput{
		SourceUserID: currentUserID(c),
		TargetUserID: req.TargetUserID,
		TeachSkillID: req.TeachSkillID,
		LearnSkillID: req.LearnSkillID,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(match)
}

// ConnectMatch handles POST /api/matches/connect/:id
// @Summary Accept a match
// @Tags matches
// @Security SessionToken
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} models.Match
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /matches/connect/{id} [post]
func (s *Server) ConnectMatch(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	match, err := s.matchService.Connect(c.UserContext(), id, currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(match)
}

// RejectMatch handles POST /api/matches/:id/reject
// @Summary Reject a match
// @Tags matches
// @Security SessionToken
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} models.Match
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /matches/{id}/reject [post]
func (s *Server) RejectMatch(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	match, err := s.matchService.Reject(c.UserContext(), id, currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(match)
}
