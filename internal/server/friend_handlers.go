package server

import (
	"helenite/internal/models"

	"github.com/gofiber/fiber/v2"
)

// SendFriendRequest handles POST /api/v1/profile/friend-request/:slug
func (s *Server) SendFriendRequest(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Profile slug is required"))
	}

	request, err := s.friendService.RequestFriendship(c.UserContext(), currentUserID(c), slug)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"request_id": request.RequestID,
	})
}

// AcceptFriendRequest handles POST /api/v1/profile/requests/:requestId/accept
func (s *Server) AcceptFriendRequest(c *fiber.Ctx) error {
	requestID := c.Params("requestId")
	if requestID == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Request id is required"))
	}

	if err := s.friendService.AcceptFriendship(c.UserContext(), currentUserID(c), requestID); err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Friend request accepted",
	})
}

// RejectFriendRequest handles POST /api/v1/profile/requests/:requestId/reject
func (s *Server) RejectFriendRequest(c *fiber.Ctx) error {
	requestID := c.Params("requestId")
	if requestID == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Request id is required"))
	}

	if err := s.friendService.RejectFriendship(c.UserContext(), currentUserID(c), requestID); err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Friend request rejected",
	})
}

// RemoveFriend handles DELETE /api/v1/profile/friends/:slug
func (s *Server) RemoveFriend(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Profile slug is required"))
	}

	if err := s.friendService.RemoveFriend(c.UserContext(), currentUserID(c), slug); err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Friend removed",
	})
}

// GetPendingRequests handles GET /api/v1/profile/requests
func (s *Server) GetPendingRequests(c *fiber.Ctx) error {
	requests, err := s.friendService.PendingRequests(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"requests": newReceivedRequestViews(requests),
	})
}

// GetSentRequests handles GET /api/v1/profile/requests/sent
func (s *Server) GetSentRequests(c *fiber.Ctx) error {
	requests, err := s.friendService.SentRequests(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"requests": newSentRequestViews(requests),
	})
}

// GetFriends handles GET /api/v1/profile/:slug/friends
func (s *Server) GetFriends(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Profile slug is required"))
	}

	friends, err := s.friendService.FriendsOf(c.UserContext(), currentUserID(c), slug)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"friends": newProfileViews(friends),
	})
}
