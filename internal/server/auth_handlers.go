package server

import (
	"haggle/internal/models"
	"haggle/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateUser handles POST /users
// @Summary Register a new user
// @Description Create a user account and issue its access token
// @Tags users
// @Accept json
// @Produce json
// @Param request body object{name=string,email=string,password=string} true "Registration request"
// @Success 201 {object} object{message=string,userId=int,accessToken=string}
// @Failure 400 {object} object{message=string}
// @Router /users [post]
func (s *Server) CreateUser(c *fiber.Ctx) error {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"errors":  []string{"body must be JSON with name, email and password"},
		})
	}

	user, err := s.userService.CreateUser(c.UserContext(), service.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if models.IsCode(err, models.CodeConflict) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message":   "Email already registered",
				"duplicate": true,
			})
		}
		if models.IsCode(err, models.CodeValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Could not create user",
				"errors":  []string{err.Error()},
			})
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     "User created",
		"userId":      user.ID,
		"accessToken": user.AccessToken,
	})
}

// CreateSession handles POST /sessions
// @Summary Log in
// @Description Exchange email and password for the stored access token
// @Tags users
// @Accept json
// @Produce json
// @Param request body object{email=string,password=string} true "Login credentials"
// @Success 200 {object} object{userId=int,accessToken=string}
// @Failure 404 {object} object{notFound=bool}
// @Router /sessions [post]
func (s *Server) CreateSession(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"notFound": true,
		})
	}

	user, err := s.userService.AuthenticateByPassword(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if models.IsCode(err, models.CodeNotFound) {
			// Unknown email and wrong password are indistinguishable here.
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"notFound": true,
			})
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"userId":      user.ID,
		"accessToken": user.AccessToken,
	})
}

// GetCurrentUser handles GET /users/current
// @Summary Current user profile
// @Description Return the profile of the token's owner
// @Tags users
// @Produce json
// @Param Authorization header string true "Access token"
// @Success 200 {object} object{name=string,email=string}
// @Failure 401 {object} object{authorized=bool}
// @Router /users/current [get]
func (s *Server) GetCurrentUser(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"name":  user.Name,
		"email": user.Email,
	})
}
