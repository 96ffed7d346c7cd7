package server

import (
	"io"
	"time"

	"helenite/internal/models"
	"helenite/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Register handles POST /api/v1/auth/register. Accepts JSON or multipart
// form data; the profile picture can only come through the latter.
func (s *Server) Register(c *fiber.Ctx) error {
	var req struct {
		Username             string `json:"username" form:"username"`
		Email                string `json:"email" form:"email"`
		Password             string `json:"password" form:"password"`
		PasswordConfirmation string `json:"password_confirmation" form:"password_confirmation"`
		FirstName            string `json:"first_name" form:"first_name"`
		LastName             string `json:"last_name" form:"last_name"`
		Birthday             string `json:"birthday" form:"birthday"`
		BirthPlace           string `json:"birth_place" form:"birth_place"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username, email, and password are required"))
	}

	var birthday time.Time
	if req.Birthday != "" {
		parsed, err := time.Parse("2006-01-02", req.Birthday)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Birthday must be in YYYY-MM-DD format"))
		}
		birthday = parsed
	}

	in := service.RegisterInput{
		Username:             req.Username,
		Email:                req.Email,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
		FirstName:            req.FirstName,
		LastName:             req.LastName,
		Birthday:             birthday,
		BirthPlace:           req.BirthPlace,
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

	user, err := s.profileService.Register(c.UserContext(), in)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	token, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token":   token,
		"profile": newProfileView(withUser(user)),
	})
}

// withUser backfills the User reference on a freshly created profile so the
// view can render the username.
func withUser(user *models.User) *models.Profile {
	profile := user.Profile
	profile.User = *user
	return profile
}

// Login handles POST /api/v1/auth/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userRepo.GetByUsername(c.UserContext(), req.Username)
	if err != nil {
		// Do not leak whether the username exists.
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid credentials"))
	}

	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); cmpErr != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid credentials"))
	}

	token, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"token": token,
	})
}

// Logout handles POST /api/v1/auth/logout. The token's jti goes on a Redis
// denylist until the token would have expired anyway. Without Redis the
// token simply runs out its validity.
func (s *Server) Logout(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	tokenString := ""
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		tokenString = authHeader[7:]
	}

	if tokenString != "" && s.redis != nil {
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			return []byte(s.config.JWTSecret), nil
		})
		if err == nil && token.Valid {
			if claims, ok := token.Claims.(jwt.MapClaims); ok {
				jti, _ := claims["jti"].(string)
				ttl := tokenValidity
				if exp, expErr := claims.GetExpirationTime(); expErr == nil && exp != nil {
					ttl = time.Until(exp.Time)
				}
				if jti != "" && ttl > 0 {
					s.redis.Set(c.Context(), "denylist:"+jti, "1", ttl)
				}
			}
		}
	}

	return c.JSON(fiber.Map{
		"message": "Logged out",
	})
}
