package server

import (
	"helenite/internal/models"
	"helenite/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Search handles GET /api/v1/search?query=...&index=Profile|Post. Zero
// matches is a 204, distinct from a 200 with results.
func (s *Server) Search(c *fiber.Ctx) error {
	query := c.Query("query")
	index := c.Query("index", service.IndexProfile)

	result, err := s.searchService.Search(c.UserContext(), currentUserID(c), query, index)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	if result.Empty() {
		return c.SendStatus(fiber.StatusNoContent)
	}

	switch index {
	case service.IndexPost:
		return c.JSON(fiber.Map{
			"results": newPostViews(result.Posts),
		})
	default:
		return c.JSON(fiber.Map{
			"results": newProfileViews(result.Profiles),
		})
	}
}
