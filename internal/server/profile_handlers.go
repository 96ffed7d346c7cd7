package server

import (
	"io"
	"strings"

	"helenite/internal/models"
	"helenite/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetProfile handles GET /api/v1/profile/:slug. Returns the profile
// projection plus the owner's posts.
func (s *Server) GetProfile(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Profile slug is required"))
	}

	pagination := parsePagination(c, 20)
	profile, posts, err := s.profileService.ProfileView(c.UserContext(), currentUserID(c), slug, pagination.Limit, pagination.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"profile": newProfileView(profile),
		"posts":   newPostViews(posts),
	})
}

// GetSettings handles GET /api/v1/settings. Returns the caller's own
// profile, birthday always included.
func (s *Server) GetSettings(c *fiber.Ctx) error {
	profile, err := s.profileRepo.GetByUserID(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"username":      profile.User.Username,
		"email":         profile.User.Email,
		"first_name":    profile.FirstName,
		"last_name":     profile.LastName,
		"birthday":      profile.Birthday,
		"birth_place":   profile.BirthPlace,
		"slug":          profile.Slug,
		"picture":       profile.Picture,
		"private":       profile.Private,
		"show_birthday": profile.ShowBirthday,
	})
}

// UpdateSettings handles PUT /api/v1/settings. Accepts JSON or multipart
// form data; the picture can only come through the latter.
func (s *Server) UpdateSettings(c *fiber.Ctx) error {
	var req struct {
		Private                 *bool  `json:"private" form:"private"`
		ShowBirthday            *bool  `json:"show_birthday" form:"show_birthday"`
		OldPassword             string `json:"old_password" form:"old_password"`
		NewPassword             string `json:"new_password" form:"new_password"`
		NewPasswordConfirmation string `json:"new_password_confirmation" form:"new_password_confirmation"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	in := service.UpdateSettingsInput{
		Private:                 req.Private,
		ShowBirthday:            req.ShowBirthday,
		OldPassword:             req.OldPassword,
		NewPassword:             req.NewPassword,
		NewPasswordConfirmation: req.NewPasswordConfirmation,
	}

	if file, err := c.FormFile("profile_picture"); err == nil && file != nil {
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
		in.PictureFilename = file.Filename
		in.Picture = content
	}

	profile, err := s.profileService.UpdateSettings(c.UserContext(), currentUserID(c), in)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"slug":          profile.Slug,
		"picture":       profile.Picture,
		"private":       profile.Private,
		"show_birthday": profile.ShowBirthday,
	})
}

// GetMedia handles GET /media/*. Serves stored profile pictures and post
// images by their relative reference.
func (s *Server) GetMedia(c *fiber.Ctx) error {
	reference := c.Params("*")
	if reference == "" || strings.Contains(reference, "..") {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid media reference"))
	}

	if err := c.SendFile(s.store.Path(reference)); err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Media", reference))
	}
	return nil
}

// DeleteAccount handles DELETE /api/v1/settings/account. Irreversible.
func (s *Server) DeleteAccount(c *fiber.Ctx) error {
	if err := s.profileService.DeleteAccount(c.UserContext(), currentUserID(c)); err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Account deleted",
	})
}
