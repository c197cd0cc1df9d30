package controller

import (
	"notevault-be/internal/dto"
	"notevault-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IStatsController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
}

type statsController struct {
	statsService service.IStatsService
}

func NewStatsController(statsService service.IStatsService) IStatsController {
	return &statsController{
		statsService: statsService,
	}
}

func (c *statsController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/db")
	h.Get("stats", c.Show)
}

func (c *statsController) Show(ctx *fiber.Ctx) error {
	stats, err := c.statsService.Get(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(dto.StatsResponse{Stats: stats})
}
