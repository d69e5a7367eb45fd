package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"fw-panel/internal/models"
	"fw-panel/internal/services/orchestrator"
)

// requiredDeployFields must all be present in the deploy payload. Presence is
// checked on the raw JSON so a missing integer is distinguishable from zero.
var requiredDeployFields = []string{"name", "management_ip", "subnet", "vcpu", "ram", "security_policy"}

// GetFirewalls returns all firewall instances
func GetFirewalls(c *fiber.Ctx) error {
	firewalls, err := orchestrator.List()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"success":   true,
		"firewalls": firewalls,
	})
}

// DeployFirewall provisions a new firewall instance
func DeployFirewall(c *fiber.Ctx) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(c.Body(), &raw); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}
	for _, field := range requiredDeployFields {
		if _, ok := raw[field]; !ok {
			return c.Status(400).JSON(fiber.Map{
				"success": false,
				"error":   "Missing required field: " + field,
			})
		}
	}

	var req models.DeployRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	result, err := orchestrator.Deploy(req)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"firewall_id": result.FirewallID,
		"message":     result.Message,
		"details":     result.Details,
	})
}

// StartFirewall starts a stopped instance
func StartFirewall(c *fiber.Ctx) error {
	return lifecycle(c, orchestrator.Start, "Firewall started successfully")
}

// StopFirewall stops a running instance
func StopFirewall(c *fiber.Ctx) error {
	return lifecycle(c, orchestrator.Stop, "Firewall stopped successfully")
}

// ConfigureFirewall updates an instance's security policy
func ConfigureFirewall(c *fiber.Ctx) error {
	type Request struct {
		SecurityPolicy string `json:"security_policy"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	if err := orchestrator.Configure(c.Params("id"), req.SecurityPolicy); err != nil {
		return c.JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Firewall configured successfully",
	})
}

// DeleteFirewall tears an instance down
func DeleteFirewall(c *fiber.Ctx) error {
	return lifecycle(c, orchestrator.Delete, "Firewall deleted successfully")
}

func lifecycle(c *fiber.Ctx, op func(id string) error, message string) error {
	if err := op(c.Params("id")); err != nil {
		return c.JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": message,
	})
}
