package server

import (
	"io"
	"strconv"
	"strings"

	"haggle/internal/models"
	"haggle/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetAdverts handles GET /adverts
// @Summary List adverts
// @Description Return every published advert, newest first
// @Tags adverts
// @Produce json
// @Success 200 {array} models.Advert
// @Router /adverts [get]
func (s *Server) GetAdverts(c *fiber.Ctx) error {
	adverts, err := s.advertService.ListAdverts(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.Status(fiber.StatusOK).JSON(adverts)
}

// GetAdvert handles GET /adverts/:advertId
// @Summary Get one advert
// @Tags adverts
// @Produce json
// @Param advertId path int true "Advert ID"
// @Success 200 {object} models.Advert
// @Failure 400 {object} models.ErrorResponse
// @Router /adverts/{advertId} [get]
func (s *Server) GetAdvert(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("advertId"), 10, 32)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid advert ID"))
	}

	advert, svcErr := s.advertService.GetAdvertByID(c.UserContext(), uint(id))
	if svcErr != nil {
		// Lookup failures surface as 400 regardless of cause.
		return models.RespondWithError(c, fiber.StatusBadRequest, svcErr)
	}
	return c.Status(fiber.StatusOK).JSON(advert)
}

// GetUserAdverts handles GET /users/:id/adverts
// @Summary List a seller's adverts
// @Tags adverts
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {array} models.Advert
// @Failure 400 {object} models.ErrorResponse
// @Router /users/{id}/adverts [get]
func (s *Server) GetUserAdverts(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid user ID"))
	}

	adverts, svcErr := s.advertService.ListBySeller(c.UserContext(), uint(id))
	if svcErr != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, svcErr)
	}
	return c.Status(fiber.StatusOK).JSON(adverts)
}

// PublishAdvert handles POST /adverts
// @Summary Publish an advert
// @Description Upload the image, create the advert and index it under the seller
// @Tags adverts
// @Accept multipart/form-data
// @Produce json
// @Param Authorization header string true "Access token"
// @Param image formData file true "Advert image"
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Param price formData int true "Price"
// @Param condition formData string true "Condition"
// @Param category formData string true "Category"
// @Param delivery formData string true "Delivery options"
// @Success 201 {object} object{message=string,adId=int,created=bool}
// @Failure 400 {object} object{message=string,created=bool}
// @Failure 401 {object} object{authorized=bool}
// @Router /adverts [post]
func (s *Server) PublishAdvert(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return publishFailed(c, "An image is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return publishFailed(c, "Could not read uploaded image")
	}
	defer func() { _ = file.Close() }()
	content, err := io.ReadAll(file)
	if err != nil {
		return publishFailed(c, "Could not read uploaded image")
	}

	price, err := strconv.Atoi(c.FormValue("price"))
	if err != nil {
		return publishFailed(c, "Price must be a number")
	}

	advert, svcErr := s.advertService.Publish(c.UserContext(), service.PublishAdvertInput{
		SellerID:    userID,
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Price:       price,
		Currency:    c.FormValue("currency"),
		Condition:   c.FormValue("condition"),
		Category:    c.FormValue("category"),
		Delivery:    deliveryValues(c),
		Image:       content,
		ImageType:   fileHeader.Header.Get("Content-Type"),
	})
	if svcErr != nil {
		if models.IsCode(svcErr, models.CodeValidation) || models.IsCode(svcErr, models.CodeUploadFailed) {
			return publishFailed(c, svcErr.Error())
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, svcErr)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Advert published",
		"adId":    advert.ID,
		"created": true,
	})
}

// SetAdvertSold handles PATCH /adverts/:advertId/sold
// @Summary Mark an advert sold or unsold
// @Tags adverts
// @Accept json
// @Produce json
// @Param Authorization header string true "Access token"
// @Param advertId path int true "Advert ID"
// @Param request body object{sold=bool} true "Sold flag"
// @Success 200 {object} models.Advert
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /adverts/{advertId}/sold [patch]
func (s *Server) SetAdvertSold(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	id, err := strconv.ParseUint(c.Params("advertId"), 10, 32)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid advert ID"))
	}

	var req struct {
		Sold bool `json:"sold"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	advert, svcErr := s.advertService.MarkSold(c.UserContext(), uint(id), userID, req.Sold)
	if svcErr != nil {
		switch {
		case models.IsCode(svcErr, models.CodeUnauthorized):
			return models.RespondWithError(c, fiber.StatusUnauthorized, svcErr)
		case models.IsCode(svcErr, models.CodeNotFound):
			return models.RespondWithError(c, fiber.StatusBadRequest, svcErr)
		default:
			return models.RespondWithError(c, fiber.StatusInternalServerError, svcErr)
		}
	}
	return c.Status(fiber.StatusOK).JSON(advert)
}

func publishFailed(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": message,
		"created": false,
	})
}

// deliveryValues reads delivery options either as repeated form fields or as
// a single comma-separated value.
func deliveryValues(c *fiber.Ctx) []string {
	if form, err := c.MultipartForm(); err == nil {
		if vals, ok := form.Value["delivery"]; ok && len(vals) > 1 {
			return vals
		}
	}
	raw := c.FormValue("delivery")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
