package server

import (
	"io"

	"helenite/internal/models"
	"helenite/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/v1/profile/post. Accepts JSON for text-only
// posts or multipart form data when an image rides along.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Text string `json:"text" form:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	in := service.CreatePostInput{
		UserID: currentUserID(c),
		Text:   req.Text,
	}

	if file, err := c.FormFile("image"); err == nil && file != nil {
		src, err := file.Open()
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Unable to read uploaded file"))
		}
		content, err := io.ReadAll(src)
		_ = src.Close()
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Unable to read uploaded file"))
		}
		in.ImageFilename = file.Filename
		in.Image = content
	}

	post, err := s.postService.CreatePost(c.UserContext(), in)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"slug":     post.Slug,
		"endpoint": post.Endpoint(),
	})
}

// GetPost handles GET /api/v1/profile/post/:slug. Returns the post together
// with its comments.
func (s *Server) GetPost(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Post slug is required"))
	}

	post, comments, err := s.postService.GetPost(c.UserContext(), currentUserID(c), slug)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"post":     newPostView(post),
		"comments": newCommentViews(comments),
	})
}

// DeletePost handles DELETE /api/v1/profile/post/:slug
func (s *Server) DeletePost(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Post slug is required"))
	}

	if err := s.postService.DeletePost(c.UserContext(), currentUserID(c), slug); err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Post deleted",
	})
}

// CreateComment handles POST /api/v1/profile/post/:slug/comment
func (s *Server) CreateComment(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Post slug is required"))
	}

	var req struct {
		Text string `json:"text" form:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.postService.AddComment(c.UserContext(), currentUserID(c), slug, req.Text)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"text":       comment.Text,
		"created_at": comment.CreatedAt,
	})
}
