package handlers

import (
	"github.com/gofiber/fiber/v2"

	"fw-panel/internal/services/monitor"
	"fw-panel/internal/services/orchestrator"
)

// HealthCheck serves the API banner
func HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":       "Firewall Panel API is running",
		"version":      "1.0.0",
		"technologies": []string{"OSM", "OpenFlow", "NETCONF", "REST API"},
	})
}

// GetLogs returns the recent activity log entries
func GetLogs(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"logs":    orchestrator.Logs(),
	})
}

// GetStatistics returns firewall counters plus live host telemetry
func GetStatistics(c *fiber.Ctx) error {
	stats, err := orchestrator.Statistics()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"statistics": stats,
		"host":       monitor.GetHostStats(),
	})
}
