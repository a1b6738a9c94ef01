package store

import (
	"context"
	"fmt"
	"log"

	"github.com/parishworks/reportsdb/internal/config"
	"github.com/parishworks/reportsdb/internal/models"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	Templates    string            `json:"templates"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// HealthCheck verifies database connectivity and that the shared templates
// were seeded.
func (s *Store) HealthCheck(ctx context.Context, cfg *config.Config) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}

	sqlDB, err := s.db.DB()
	if err != nil {
		result.Status = "unhealthy"
		result.Database = "error"
		result.Details["database_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Database connection error: %v", err)
		log.Printf("Health check failed - database connection: %v", err)
		return result
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		result.Status = "unhealthy"
		result.Database = "unreachable"
		result.Details["database_ping_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Database ping failed: %v", err)
		log.Printf("Health check failed - database ping: %v", err)
		return result
	}

	result.Database = "ok"
	result.Details["database_type"] = cfg.DBType
	result.Details["database_name"] = cfg.DBDatabase

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Template{}).Count(&count).Error; err != nil {
		result.Status = "unhealthy"
		result.Templates = "error"
		result.Details["template_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Template check failed: %v", err)
		log.Printf("Health check failed - template query: %v", err)
		return result
	}

	if count == 0 {
		result.Status = "unhealthy"
		result.Templates = "missing"
		result.ErrorMessage = "No report templates seeded"
	} else {
		result.Templates = "ok"
		result.Details["template_count"] = fmt.Sprintf("%d", count)
	}

	if result.Status == "healthy" {
		log.Println("Health check passed - all systems operational")
	}

	return result
}
