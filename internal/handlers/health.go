package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/notary-records/internal/config"
	"github.com/localnerve/notary-records/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// HealthHandler reports store and blacklist reachability
type HealthHandler struct {
	Config *config.Config
	DB     *gorm.DB
	Redis  services.Pinger
	Log    *zap.Logger
}

// Check handles GET /health
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Failure 503 {object} services.HealthCheckResult
// @Router /health [get]
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	result := services.HealthCheck(c.UserContext(), h.Config, h.DB, h.Redis, h.Log)
	if result.Status != "healthy" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(result)
	}
	return c.Status(fiber.StatusOK).JSON(result)
}
