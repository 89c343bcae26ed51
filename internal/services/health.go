package services

import (
	"context"
	"fmt"
	"time"

	"github.com/localnerve/notary-records/internal/config"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Pinger is a dependency that can report its own reachability
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	Redis        string            `json:"redis"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// HealthCheck pings the database and, when configured, the token blacklist.
// A nil redis reports "disabled".
func HealthCheck(ctx context.Context, cfg *config.Config, db *gorm.DB, redis Pinger, log *zap.Logger) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Redis:   "disabled",
		Details: make(map[string]string),
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	// Check database connectivity
	sqlDB, err := db.DB()
	if err != nil {
		result.Status = "unhealthy"
		result.Database = "error"
		result.Details["database_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Database connection error: %v", err)
		log.Warn("Health check failed - database connection", zap.Error(err))
	} else {
		if err := sqlDB.PingContext(ctx); err != nil {
			result.Status = "unhealthy"
			result.Database = "unreachable"
			result.Details["database_ping_error"] = err.Error()
			result.ErrorMessage = fmt.Sprintf("Database ping failed: %v", err)
			log.Warn("Health check failed - database ping", zap.Error(err))
		} else {
			result.Database = "ok"
			result.Details["database_type"] = cfg.DBType
			result.Details["database_name"] = cfg.DBDatabase
		}
	}

	if redis != nil {
		if err := redis.Ping(ctx); err != nil {
			result.Status = "unhealthy"
			result.Redis = "unreachable"
			result.Details["redis_error"] = err.Error()
			if result.ErrorMessage == "" {
				result.ErrorMessage = fmt.Sprintf("Redis ping failed: %v", err)
			} else {
				result.ErrorMessage += fmt.Sprintf("; Redis ping failed: %v", err)
			}
			log.Warn("Health check failed - redis ping", zap.Error(err))
		} else {
			result.Redis = "ok"
			result.Details["redis_addr"] = cfg.RedisAddr
		}
	}

	if result.Status == "healthy" {
		log.Debug("Health check passed - all systems operational")
	}

	return result
}
