package handlers

import (
	"log"

	"cinehub/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for users.
type UserHandler struct {
	service  *services.UserService
	validate *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{
		service:  service,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the user routes with the Fiber app.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	users := router.Group("/users")
	users.Post("/", h.HandleCreate)
	users.Get("/", h.HandleList)
	users.Get("/inactive", h.HandleListInactive)
	users.Get("/by-email/:email", h.HandleGetByEmail)
	users.Get("/:id", h.HandleGetByID)
	users.Put("/:id", h.HandleUpdate)
	users.Delete("/:id", h.HandleDelete)
	users.Post("/:id/restore", h.HandleRestore)
}

// UserRequest is the form/JSON body for creating a user.
type UserRequest struct {
	Name     string `json:"name" form:"name" validate:"required,min=1,max=100,plainname"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=6"`
}

// UserUpdateRequest is the body for updating a user. An empty password
// keeps the current one.
type UserUpdateRequest struct {
	Name     string `json:"name" form:"name" validate:"required,min=1,max=100,plainname"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"omitempty,min=6"`
}

// HandleCreate registers a new user, uploading the optional avatar first.
func (h *UserHandler) HandleCreate(c *fiber.Ctx) error {
	var req UserRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create user request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err, fiber.Map{"name": req.Name, "email": req.Email})
	}

	img, err := formImage(c)
	if err != nil {
		return serviceError(c, err)
	}

	user, err := h.service.CreateUser(services.UserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Image:    img,
	})
	if err != nil {
		log.Printf("Error creating user: %v", err)
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
		"user":    user,
	})
}

// HandleList retrieves all active users.
func (h *UserHandler) HandleList(c *fiber.Ctx) error {
	users, err := h.service.ListUsers()
	if err != nil {
		log.Printf("Error listing users: %v", err)
		return serviceError(c, err)
	}
	return c.JSON(users)
}

// HandleListInactive retrieves all soft-deleted users.
func (h *UserHandler) HandleListInactive(c *fiber.Ctx) error {
	users, err := h.service.ListDeletedUsers()
	if err != nil {
		log.Printf("Error listing inactive users: %v", err)
		return serviceError(c, err)
	}
	return c.JSON(users)
}

// HandleGetByID retrieves a single active user.
func (h *UserHandler) HandleGetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return serviceError(c, err)
	}
	user, err := h.service.GetUserByID(id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(user)
}

// HandleGetByEmail retrieves an active user by their unique email.
func (h *UserHandler) HandleGetByEmail(c *fiber.Ctx) error {
	user, err := h.service.GetUserByEmail(c.Params("email"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(user)
}

// HandleUpdate updates an active user.
func (h *UserHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return serviceError(c, err)
	}

	var req UserUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update user request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err, fiber.Map{"name": req.Name, "email": req.Email})
	}

	img, err := formImage(c)
	if err != nil {
		return serviceError(c, err)
	}

	user, err := h.service.UpdateUser(id, services.UserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Image:    img,
	})
	if err != nil {
		log.Printf("Error updating user %d: %v", id, err)
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "User updated successfully",
		"user":    user,
	})
}

// HandleDelete soft-deletes a user.
func (h *UserHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return serviceError(c, err)
	}
	if err := h.service.DeleteUser(id); err != nil {
		log.Printf("Error deleting user %d: %v", id, err)
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "User moved to inactive"})
}

// HandleRestore brings a soft-deleted user back.
func (h *UserHandler) HandleRestore(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return serviceError(c, err)
	}
	if err := h.service.RestoreUser(id); err != nil {
		log.Printf("Error restoring user %d: %v", id, err)
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "User restored successfully"})
}
