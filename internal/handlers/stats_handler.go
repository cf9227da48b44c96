package handlers

import (
	"log"

	"cinehub/internal/services"

	"github.com/gofiber/fiber/v2"
)

// StatsHandler serves the read-only statistics rollups.
type StatsHandler struct {
	service *services.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(service *services.StatsService) *StatsHandler {
	return &StatsHandler{
		service: service,
	}
}

// RegisterRoutes registers the statistics routes with the Fiber app.
func (h *StatsHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/stats", h.HandleOverview)
	router.Get("/stats/titles/:id/average", h.HandleTitleAverage)
}

// HandleOverview returns the full statistics report.
func (h *StatsHandler) HandleOverview(c *fiber.Ctx) error {
	overview, err := h.service.Overview()
	if err != nil {
		log.Printf("Error building statistics overview: %v", err)
		return serviceError(c, err)
	}
	return c.JSON(overview)
}

// HandleTitleAverage returns the rounded average score of one title.
func (h *StatsHandler) HandleTitleAverage(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return serviceError(c, err)
	}
	average, err := h.service.AverageForTitle(id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"title_id": id,
		"average":  average,
	})
}
