package handlers

import (
	"log"

	"cinehub/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// TitleHandler handles HTTP requests for movies and series.
type TitleHandler struct {
	service  *services.TitleService
	validate *validator.Validate
}

// NewTitleHandler creates a new TitleHandler.
func NewTitleHandler(service *services.TitleService) *TitleHandler {
	return &TitleHandler{
		service:  service,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the title routes with the Fiber app.
func (h *TitleHandler) RegisterRoutes(router fiber.Router) {
	titles := router.Group("/titles")
	titles.Post("/", h.HandleCreate)
	titles.Get("/", h.HandleList)
	titles.Get("/inactive", h.HandleListInactive)
	titles.Get("/by-name/:name", h.HandleGetByName)
	titles.Get("/:id", h.HandleGetByID)
	titles.Put("/:id", h.HandleUpdate)
	titles.Delete("/:id", h.HandleDelete)
	titles.Post("/:id/restore", h.HandleRestore)
}

// TitleRequest is the form/JSON body for creating or updating a title.
// Release year and duration bounds are enforced by the service so the
// response can echo the offending value.
type TitleRequest struct {
	Name        string `json:"title" form:"title" validate:"required,min=1,max=255"`
	Genre       string `json:"genre" form:"genre" validate:"required,max=100"`
	ReleaseYear int    `json:"release_year" form:"release_year"`
	Duration    int    `json:"duration" form:"duration"`
	Description string `json:"description" form:"description"`
}

func (h *TitleHandler) input(req TitleRequest) services.TitleInput {
	return services.TitleInput{
		Name:        req.Name,
		Genre:       req.Genre,
		ReleaseYear: req.ReleaseYear,
		Duration:    req.Duration,
		Description: req.Description,
	}
}

// HandleCreate persists a new title, uploading the optional poster first.
func (h *TitleHandler) HandleCreate(c *fiber.Ctx) error {
	var req TitleRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create title request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err, fiber.Map{"title": req.Name, "genre": req.Genre})
	}

	img, err := formImage(c)
	if err != nil {
		return serviceError(c, err)
	}

	input := h.input(req)
	input.Image = img
	title, err := h.service.CreateTitle(input)
	if err != nil {
		log.Printf("Error creating title: %v", err)
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Title created successfully",
		"title":   title,
	})
}

// HandleList retrieves all active titles.
func (h *TitleHandler) HandleList(c *fiber.Ctx) error {
	titles, err := h.service.ListTitles()
	if err != nil {
		log.Printf("Error listing titles: %v", err)
		return serviceError(c, err)
	}
	return c.JSON(titles)
}

// HandleListInactive retrieves all soft-deleted titles.
func (h *TitleHandler) HandleListInactive(c *fiber.Ctx) error {
	titles, err := h.service.ListDeletedTitles()
	if err != nil {
		log.Printf("Error listing inactive titles: %v", err)
		return serviceError(c, err)
	}
	return c.JSON(titles)
}

// HandleGetByID retrieves a single active title.
func (h *TitleHandler) HandleGetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return serviceError(c, err)
	}
	title, err := h.service.GetTitleByID(id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(title)
}

// HandleGetByName retrieves an active title by its unique name.
func (h *TitleHandler) HandleGetByName(c *fiber.Ctx) error {
	name, err := decodeParam("name", c.Params("name"))
	if err != nil {
		return serviceError(c, err)
	}
	title, err := h.service.GetTitleByName(name)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(title)
}

// HandleUpdate updates an active title.
func (h *TitleHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return serviceError(c, err)
	}

	var req TitleRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update title request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err, fiber.Map{"title": req.Name, "genre": req.Genre})
	}

	img, err := formImage(c)
	if err != nil {
		return serviceError(c, err)
	}

	input := h.input(req)
	input.Image = img
	title, err := h.service.UpdateTitle(id, input)
	if err != nil {
		log.Printf("Error updating title %d: %v", id, err)
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Title updated successfully",
		"title":   title,
	})
}

// HandleDelete soft-deletes a title.
func (h *TitleHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return serviceError(c, err)
	}
	if err := h.service.DeleteTitle(id); err != nil {
		log.Printf("Error deleting title %d: %v", id, err)
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Title moved to inactive"})
}

// HandleRestore brings a soft-deleted title back.
func (h *TitleHandler) HandleRestore(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return serviceError(c, err)
	}
	if err := h.service.RestoreTitle(id); err != nil {
		log.Printf("Error restoring title %d: %v", id, err)
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Title restored successfully"})
}
