package server

import (
	"skillswap/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateRating handles POST /api/ratings
// @Summary Rate a partner
// @Tags ratings
// @Security SessionToken
// @Accept json
// @Produce json
// @Param request body object{targetUserId=int,skillId=int,rating=int,comment=string} true "Rating"
// @Success 201 {object} models.Rating
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /ratings [post]
func (s *Server) CreateRating(c *fiber.Ctx) error {
	var req struct {
		TargetUserID uint   `json:"targetUserId"`
		SkillID      uint   `json:"skillId"`
		Rating       int    `json:"rating"`
		Comment      string `json:"comment"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	rating, err := s.ratingService.Create(c.UserContext(), service.CreateRatingInput{
		RaterID:      currentUserID(c),
		TargetUserID: req.TargetUserID,
		SkillID:      req.SkillID,
		Score:        req.Rating,
		Comment:      req.Comment,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(rating)
}

// GetCurrentUserRatings handles GET /api/users/current/ratings
// @Summary Ratings I received
// @Tags ratings
// @Security SessionToken
// @Produce json
// @Success 200 {array} models.Rating
// @Router /users/current/ratings [get]
func (s *Server) GetCurrentUserRatings(c *fiber.Ctx) error {
	ratings, err := s.ratingService.ListForUser(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(ratings)
}
