package handlers

import (
	"log"

	"cinehub/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// RoutineHandler handles HTTP requests for viewing routines.
type RoutineHandler struct {
	service  *services.RoutineService
	validate *validator.Validate
}

// NewRoutineHandler creates a new RoutineHandler.
func NewRoutineHandler(service *services.RoutineService) *RoutineHandler {
	return &RoutineHandler{
		service:  service,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the routine routes with the Fiber app.
func (h *RoutineHandler) RegisterRoutes(router fiber.Router) {
	routines := router.Group("/routines")
	routines.Post("/", h.HandleCreate)
	routines.Get("/", h.HandleList)
	routines.Get("/inactive", h.HandleListInactive)
	routines.Get("/by-name/:name", h.HandleGetByName)
	routines.Get("/:id", h.HandleGetByID)
	routines.Put("/:id", h.HandleUpdate)
	routines.Delete("/:id", h.HandleDelete)
	routines.Post("/:id/restore", h.HandleRestore)
}

// RoutineRequest is the form/JSON body for creating or updating a routine.
type RoutineRequest struct {
	Name      string `json:"name" form:"name" validate:"required,min=1,max=100,plainname"`
	UserID    uint   `json:"user_id" form:"user_id" validate:"required"`
	TitleID   uint   `json:"title_id" form:"title_id" validate:"required"`
	StartDate string `json:"start_date" form:"start_date" validate:"required"`
	EndDate   string `json:"end_date" form:"end_date" validate:"required"`
}

// parse decodes and validates the request body. A nil input means the
// error response has already been written; the returned error is only the
// result of that write, so callers must branch on the input.
func (h *RoutineHandler) parse(c *fiber.Ctx) (*services.RoutineInput, error) {
	var req RoutineRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing routine request body: %v", err)
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return nil, validationFailed(c, err, fiber.Map{
			"name":       req.Name,
			"user_id":    req.UserID,
			"title_id":   req.TitleID,
			"start_date": req.StartDate,
			"end_date":   req.EndDate,
		})
	}
	start, err := parseDate("start_date", req.StartDate)
	if err != nil {
		return nil, serviceError(c, err)
	}
	end, err := parseDate("end_date", req.EndDate)
	if err != nil {
		return nil, serviceError(c, err)
	}
	return &services.RoutineInput{
		Name:      req.Name,
		UserID:    req.UserID,
		TitleID:   req.TitleID,
		StartDate: start,
		EndDate:   end,
	}, nil
}

// HandleCreate persists a new routine.
func (h *RoutineHandler) HandleCreate(c *fiber.Ctx) error {
	input, err := h.parse(c)
	if input == nil {
		return err
	}
	routine, err := h.service.CreateRoutine(*input)
	if err != nil {
		log.Printf("Error creating routine: %v", err)
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Routine created successfully",
		"routine": routine,
	})
}

// HandleList retrieves all active routines.
func (h *RoutineHandler) HandleList(c *fiber.Ctx) error {
	routines, err := h.service.ListRoutines()
	if err != nil {
		log.Printf("Error listing routines: %v", err)
		return serviceError(c, err)
	}
	return c.JSON(routines)
}

// HandleListInactive retrieves all soft-deleted routines.
func (h *RoutineHandler) HandleListInactive(c *fiber.Ctx) error {
	routines, err := h.service.ListDeletedRoutines()
	if err != nil {
		log.Printf("Error listing inactive routines: %v", err)
		return serviceError(c, err)
	}
	return c.JSON(routines)
}

// HandleGetByID retrieves a single active routine.
func (h *RoutineHandler) HandleGetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return serviceError(c, err)
	}
	routine, err := h.service.GetRoutineByID(id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(routine)
}

// HandleGetByName retrieves the first active routine with the given name.
func (h *RoutineHandler) HandleGetByName(c *fiber.Ctx) error {
	name, err := decodeParam("name", c.Params("name"))
	if err != nil {
		return serviceError(c, err)
	}
	routine, err := h.service.GetRoutineByName(name)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(routine)
}

// HandleUpdate updates an active routine.
func (h *RoutineHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return serviceError(c, err)
	}
	input, err := h.parse(c)
	if input == nil {
		return err
	}
	routine, err := h.service.UpdateRoutine(id, *input)
	if err != nil {
		log.Printf("Error updating routine %d: %v", id, err)
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Routine updated successfully",
		"routine": routine,
	})
}

// HandleDelete soft-deletes a routine.
func (h *RoutineHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return serviceError(c, err)
	}
	if err := h.service.DeleteRoutine(id); err != nil {
		log.Printf("Error deleting routine %d: %v", id, err)
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Routine moved to inactive"})
}

// HandleRestore brings a soft-deleted routine back.
func (h *RoutineHandler) HandleRestore(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return serviceError(c, err)
	}
	if err := h.service.RestoreRoutine(id); err != nil {
		log.Printf("Error restoring routine %d: %v", id, err)
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Routine restored successfully"})
}
