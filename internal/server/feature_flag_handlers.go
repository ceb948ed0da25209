package server

import (
	"skillswap/internal/featureflags"

	"github.com/gofiber/fiber/v2"
)

// GetFeatureFlags handles GET /api/feature-flags
// @Summary Feature flags
// @Description Configured flags, what each known flag controls and its state for the caller
// @Tags meta
// @Security SessionToken
// @Produce json
// @Success 200 {object} object{raw=map[string]string,evaluated=map[string]bool,known=map[string]string}
// @Router /feature-flags [get]
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"raw":       s.featureFlags.Raw(),
		"evaluated": s.featureFlags.Snapshot(currentUserID(c)),
		"known":     featureflags.Known,
	})
}
