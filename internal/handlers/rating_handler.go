package handlers

import (
	"log"

	"cinehub/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// RatingHandler handles HTTP requests for ratings.
type RatingHandler struct {
	service  *services.RatingService
	validate *validator.Validate
}

// NewRatingHandler creates a new RatingHandler.
func NewRatingHandler(service *services.RatingService) *RatingHandler {
	return &RatingHandler{
		service:  service,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the rating routes with the Fiber app.
func (h *RatingHandler) RegisterRoutes(router fiber.Router) {
	ratings := router.Group("/ratings")
	ratings.Post("/", h.HandleCreate)
	ratings.Get("/", h.HandleList)
	ratings.Get("/inactive", h.HandleListInactive)
	ratings.Get("/by-comment/:comment", h.HandleGetByComment)
	ratings.Get("/:id", h.HandleGetByID)
	ratings.Put("/:id", h.HandleUpdate)
	ratings.Delete("/:id", h.HandleDelete)
	ratings.Post("/:id/restore", h.HandleRestore)
}

// RatingRequest is the form/JSON body for creating or updating a rating.
// The score range is checked by the service so the response can echo the
// offending value.
type RatingRequest struct {
	UserID  uint    `json:"user_id" form:"user_id" validate:"required"`
	TitleID uint    `json:"title_id" form:"title_id" validate:"required"`
	Score   float64 `json:"score" form:"score"`
	Comment string  `json:"comment" form:"comment"`
	Date    string  `json:"date" form:"date" validate:"required"`
}

// parse decodes and validates the request body. A nil input means the
// error response has already been written; the returned error is only the
// result of that write, so callers must branch on the input.
func (h *RatingHandler) parse(c *fiber.Ctx) (*services.RatingInput, error) {
	var req RatingRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing rating request body: %v", err)
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return nil, validationFailed(c, err, fiber.Map{
			"user_id":  req.UserID,
			"title_id": req.TitleID,
			"comment":  req.Comment,
			"date":     req.Date,
		})
	}
	date, err := parseDate("date", req.Date)
	if err != nil {
		return nil, serviceError(c, err)
	}
	return &services.RatingInput{
		UserID:  req.UserID,
		TitleID: req.TitleID,
		Score:   req.Score,
		Comment: req.Comment,
		Date:    date,
	}, nil
}

// HandleCreate persists a new rating.
func (h *RatingHandler) HandleCreate(c *fiber.Ctx) error {
	input, err := h.parse(c)
	if input == nil {
		return err
	}
	rating, err := h.service.CreateRating(*input)
	if err != nil {
		log.Printf("Error creating rating: %v", err)
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Rating created successfully",
		"rating":  rating,
	})
}

// HandleList retrieves all active ratings.
func (h *RatingHandler) HandleList(c *fiber.Ctx) error {
	ratings, err := h.service.ListRatings()
	if err != nil {
		log.Printf("Error listing ratings: %v", err)
		return serviceError(c, err)
	}
	return c.JSON(ratings)
}

// HandleListInactive retrieves all soft-deleted ratings.
func (h *RatingHandler) HandleListInactive(c *fiber.Ctx) error {
	ratings, err := h.service.ListDeletedRatings()
	if err != nil {
		log.Printf("Error listing inactive ratings: %v", err)
		return serviceError(c, err)
	}
	return c.JSON(ratings)
}

// HandleGetByID retrieves a single active rating.
func (h *RatingHandler) HandleGetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return serviceError(c, err)
	}
	rating, err := h.service.GetRatingByID(id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(rating)
}

// HandleGetByComment retrieves the first active rating with the given
// comment.
func (h *RatingHandler) HandleGetByComment(c *fiber.Ctx) error {
	comment, err := decodeParam("comment", c.Params("comment"))
	if err != nil {
		return serviceError(c, err)
	}
	rating, err := h.service.GetRatingByComment(comment)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(rating)
}

// HandleUpdate updates an active rating.
func (h *RatingHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return serviceError(c, err)
	}
	input, err := h.parse(c)
	if input == nil {
		return err
	}
	rating, err := h.service.UpdateRating(id, *input)
	if err != nil {
		log.Printf("Error updating rating %d: %v", id, err)
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Rating updated successfully",
		"rating":  rating,
	})
}

// HandleDelete soft-deletes a rating.
func (h *RatingHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return serviceError(c, err)
	}
	if err := h.service.DeleteRating(id); err != nil {
		log.Printf("Error deleting rating %d: %v", id, err)
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Rating moved to inactive"})
}

// HandleRestore brings a soft-deleted rating back.
func (h *RatingHandler) HandleRestore(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return serviceError(c, err)
	}
	if err := h.service.RestoreRating(id); err != nil {
		log.Printf("Error restoring rating %d: %v", id, err)
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Rating restored successfully"})
}
