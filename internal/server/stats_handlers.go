package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetLeaderboard handles GET /api/leaderboard
// @Summary Leaderboard
// @Description Users ranked by points (5 per accepted match, 2 per skill record)
// @Tags stats
// @Produce json
// @Success 200 {array} models.UserWithStats
// @Router /leaderboard [get]
func (s *Server) GetLeaderboard(c *fiber.Ctx) error {
	board, err := s.statsService.Leaderboard(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(board)
}

// GetDashboard handles GET /api/users/current/dashboard
// @Summary Dashboard stats
// @Tags stats
// @Security SessionToken
// @Produce json
// @Success 200 {object} models.UserStats
// @Failure 404 {object} models.ErrorResponse
// @Router /users/current/dashboard [get]
func (s *Server) GetDashboard(c *fiber.Ctx) error {
	stats, err := s.statsService.UserStats(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(stats)
}

// GetCurrentUserStats handles GET /api/users/current/stats
// @Summary Leaderboard with the caller's stats
// @Tags stats
// @Security SessionToken
// @Produce json
// @Success 200 {object} service.Overview
// @Failure 404 {object} models.ErrorResponse
// @Router /users/current/stats [get]
func (s *Server) GetCurrentUserStats(c *fiber.Ctx) error {
	overview, err := s.statsService.Overview(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(overview)
}
