package handlers

import (
	"html/template"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"fw-panel/internal/dashboard"
)

var dash *dashboard.Controller

// InitDashboard hands the page handlers their controller. Must run before
// routes are served.
func InitDashboard(c *dashboard.Controller) {
	dash = c
}

// PanelPage renders one dashboard tab as a full page.
func PanelPage(tab dashboard.Tab, title string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fragment, err := dash.SwitchTab(c.UserContext(), tab)
		if err != nil {
			return fiber.ErrNotFound
		}
		return c.Render("pages/panel", fiber.Map{
			"Title":    title + " - Firewall Panel",
			"Active":   string(tab),
			"Fragment": template.HTML(fragment),
			"Toasts":   dash.Notifier().Active(),
		})
	}
}

// SubmitDeploy takes the deploy form post and dispatches it through the
// controller, so form retention and refresh semantics match the in-process
// dashboard exactly.
func SubmitDeploy(c *fiber.Ctx) error {
	vcpu, _ := strconv.Atoi(c.FormValue("vcpu"))
	ram, _ := strconv.Atoi(c.FormValue("ram"))

	dash.SetForm(dashboard.DeployForm{
		Name:           c.FormValue("name"),
		ManagementIP:   c.FormValue("management_ip"),
		Subnet:         c.FormValue("subnet"),
		VCPU:           vcpu,
		RAM:            ram,
		SecurityPolicy: c.FormValue("security_policy"),
		ConfigMethod:   c.FormValue("config_method"),
	})

	if err := dash.DeployFirewall(c.UserContext()); err != nil {
		// form kept, toast raised; show it back to the operator
		return c.Redirect("/dashboard/deploy")
	}
	return c.Redirect("/dashboard/firewalls")
}

// DispatchAction handles a firewall card command post. The browser-side
// confirm already gated delete before the request was issued.
func DispatchAction(c *fiber.Ctx) error {
	kind, err := dashboard.ParseActionKind(c.FormValue("action"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	action := dashboard.Action{Kind: kind, FirewallID: c.FormValue("id")}
	// failures raise their own toast; the redirected page shows it
	_ = dash.HandleAction(c.UserContext(), action)
	return c.Redirect("/dashboard/firewalls")
}
