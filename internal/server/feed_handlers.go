package server

import (
	"helenite/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetFeed handles GET /api/v1/feed. Own posts plus friends' posts, newest
// first.
func (s *Server) GetFeed(c *fiber.Ctx) error {
	pagination := parsePagination(c, 20)

	posts, err := s.feedService.FeedFor(c.UserContext(), currentUserID(c), pagination.Limit, pagination.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"posts": newPostViews(posts),
	})
}

// GetDiscover handles GET /api/v1/feed/discover. A fresh random sample of
// public posts on every call.
func (s *Server) GetDiscover(c *fiber.Ctx) error {
	posts, err := s.feedService.DiscoverFor(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"posts": newPostViews(posts),
	})
}

// ToggleLike handles POST /api/v1/profile/post/:slug/like
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Post slug is required"))
	}

	liked, count, err := s.feedService.ToggleLike(c.UserContext(), currentUserID(c), slug)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"liked":       liked,
		"likes_count": count,
	})
}
