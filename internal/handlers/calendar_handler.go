package handlers

import (
	"log"

	"cinehub/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CalendarHandler serves the monthly calendar view data.
type CalendarHandler struct {
	service *services.CalendarService
}

// NewCalendarHandler creates a new CalendarHandler.
func NewCalendarHandler(service *services.CalendarService) *CalendarHandler {
	return &CalendarHandler{
		service: service,
	}
}

// RegisterRoutes registers the calendar routes with the Fiber app.
func (h *CalendarHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/calendar", h.HandleMonth)
}

// HandleMonth returns the calendar page for ?year=&month=. Missing or
// invalid values fall back to the current month.
func (h *CalendarHandler) HandleMonth(c *fiber.Ctx) error {
	year := c.QueryInt("year", 0)
	month := c.QueryInt("month", 0)

	page, err := h.service.MonthPage(year, month)
	if err != nil {
		log.Printf("Error building calendar page for %d-%d: %v", year, month, err)
		return serviceError(c, err)
	}
	return c.JSON(page)
}
