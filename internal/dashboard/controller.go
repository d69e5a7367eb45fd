// Package dashboard is the panel's presentation layer: tab state, HTML
// fragment rendering and command dispatch. It holds no firewall state of its
// own; every render is a direct projection of the latest fetch from the
// management API.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"fw-panel/internal/client"
	"fw-panel/internal/models"
)

// Tab identifies one of the panel's mutually exclusive views.
type Tab string

const (
	TabDashboard Tab = "dashboard"
	TabFirewalls Tab = "firewalls"
	TabLogs      Tab = "logs"
	TabDeploy    Tab = "deploy"
)

func (t Tab) valid() bool {
	switch t {
	case TabDashboard, TabFirewalls, TabLogs, TabDeploy:
		return true
	}
	return false
}

// ActionKind is the typed command a firewall card control carries. Controls
// are built with their action attached, so dispatch is a direct lookup rather
// than an inference from markup.
type ActionKind int

const (
	ActionStart ActionKind = iota
	ActionStop
	ActionDelete
	ActionConfigure
)

// Action is one lifecycle command aimed at a firewall instance.
type Action struct {
	Kind       ActionKind
	FirewallID string
}

// ParseActionKind maps the action tag a control carries back to its kind.
func ParseActionKind(s string) (ActionKind, error) {
	switch s {
	case "start":
		return ActionStart, nil
	case "stop":
		return ActionStop, nil
	case "delete":
		return ActionDelete, nil
	case "configure":
		return ActionConfigure, nil
	}
	return 0, fmt.Errorf("unknown action %q", s)
}

// DeployForm holds the deploy tab's entered values. It is only cleared after
// a successful deployment; failures keep what the operator typed.
type DeployForm struct {
	Name           string
	ManagementIP   string
	Subnet         string
	VCPU           int
	RAM            int
	SecurityPolicy string
	ConfigMethod   string
}

// API is the slice of the management API the dashboard consumes.
type API interface {
	ListFirewalls(ctx context.Context) ([]models.Firewall, error)
	ListLogs(ctx context.Context) ([]string, error)
	Deploy(ctx context.Context, req models.DeployRequest) (string, error)
	Start(ctx context.Context, id string) error
	Stop(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// Controller owns the dashboard's UI state. The active tab lives here rather
// than in a package-level variable so multiple controllers can coexist. One
// controller serves every request, so the mutable fields sit behind a mutex.
type Controller struct {
	api      API
	notifier *Notifier
	progress *Progress
	confirm  func(prompt string) bool

	mu       sync.Mutex
	policies []string
	current  Tab
	form     DeployForm
}

// New builds a controller over the given API. confirm gates destructive
// actions; a nil confirm declines everything.
func New(api API, confirm func(prompt string) bool) *Controller {
	if confirm == nil {
		confirm = func(string) bool { return false }
	}
	return &Controller{
		api:      api,
		notifier: NewNotifier(),
		progress: NewProgress(),
		confirm:  confirm,
		policies: []string{"default", "web", "database"},
		current:  TabDashboard,
	}
}

func (c *Controller) Notifier() *Notifier { return c.notifier }
func (c *Controller) Progress() *Progress { return c.progress }

// CurrentTab reports the active tab.
func (c *Controller) CurrentTab() Tab {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// SetPolicies replaces the deploy form's policy selector entries.
func (c *Controller) SetPolicies(names []string) {
	if len(names) == 0 {
		return
	}
	c.mu.Lock()
	c.policies = names
	c.mu.Unlock()
}

// Form returns the deploy form's current values.
func (c *Controller) Form() DeployForm {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

// SetForm records the operator's entered values.
func (c *Controller) SetForm(form DeployForm) {
	c.mu.Lock()
	c.form = form
	c.mu.Unlock()
}

// SwitchTab activates the named tab and returns its rendered panel. Each
// switch re-fetches the data the tab needs; nothing is cached between
// renders. Only unregistered tab names are an error — fetch failures are
// handled in place, mirroring a failed background refresh.
func (c *Controller) SwitchTab(ctx context.Context, tab Tab) (string, error) {
	if !tab.valid() {
		return "", fmt.Errorf("unknown tab %q", tab)
	}
	c.mu.Lock()
	c.current = tab
	form, policies := c.form, c.policies
	c.mu.Unlock()

	switch tab {
	case TabDashboard:
		firewalls, ok := c.loadFirewalls(ctx)
		if !ok {
			return RenderDashboardPanel(nil), nil
		}
		return RenderDashboardPanel(firewalls), nil

	case TabFirewalls:
		firewalls, ok := c.loadFirewalls(ctx)
		if !ok {
			return RenderFirewallCards(nil), nil
		}
		return RenderFirewallCards(firewalls), nil

	case TabLogs:
		return RenderLogs(c.loadLogs(ctx)), nil

	default: // TabDeploy, no fetch
		return RenderDeployForm(form, policies), nil
	}
}

// loadFirewalls fetches the firewall list. Failures are surfaced to the
// operator via a toast; the second return reports success.
func (c *Controller) loadFirewalls(ctx context.Context) ([]models.Firewall, bool) {
	firewalls, err := c.api.ListFirewalls(ctx)
	if err != nil {
		log.Printf("Error loading firewalls: %v", err)
		c.notifier.Notify("Failed to load firewalls", KindError)
		return nil, false
	}
	return firewalls, true
}

// loadLogs fetches the activity log. Log refreshes degrade silently: the
// failure is logged but no toast is raised.
func (c *Controller) loadLogs(ctx context.Context) []string {
	logs, err := c.api.ListLogs(ctx)
	if err != nil {
		log.Printf("Error loading logs: %v", err)
		return nil
	}
	return logs
}

// DeployFirewall submits the stored form. On success the form is cleared and
// both the firewall list and the logs are refreshed; on failure the form is
// kept and the server's message (or a generic fallback) is surfaced. The
// progress bar is cosmetic and cleared here regardless of outcome.
func (c *Controller) DeployFirewall(ctx context.Context) error {
	c.progress.Start()
	defer c.progress.Clear()

	form := c.Form()
	req := models.DeployRequest{
		Name:           form.Name,
		ManagementIP:   form.ManagementIP,
		Subnet:         form.Subnet,
		VCPU:           form.VCPU,
		RAM:            form.RAM,
		SecurityPolicy: form.SecurityPolicy,
		ConfigMethod:   form.ConfigMethod,
	}

	if _, err := c.api.Deploy(ctx, req); err != nil {
		log.Printf("Error deploying firewall: %v", err)
		c.notifier.Notify("Deployment failed: "+deployErrorMessage(err), KindError)
		return err
	}

	c.SetForm(DeployForm{})
	c.refresh(ctx)
	c.notifier.Notify("Firewall deployed successfully", KindSuccess)
	return nil
}

func deployErrorMessage(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "unknown error"
}

// HandleAction dispatches one firewall card command. Delete is gated by the
// confirmation callback and issues nothing when declined; configure is a
// placeholder that never reaches the network.
func (c *Controller) HandleAction(ctx context.Context, action Action) error {
	switch action.Kind {
	case ActionStart:
		return c.mutate(ctx, c.api.Start, action.FirewallID, "Firewall started")

	case ActionStop:
		return c.mutate(ctx, c.api.Stop, action.FirewallID, "Firewall stopped")

	case ActionDelete:
		if !c.confirm("Are you sure you want to delete this firewall?") {
			return nil
		}
		return c.mutate(ctx, c.api.Delete, action.FirewallID, "Firewall deleted")

	case ActionConfigure:
		c.notifier.Notify("Configuration editor coming soon", KindInfo)
		return nil
	}
	return fmt.Errorf("unknown action kind %d", action.Kind)
}

func (c *Controller) mutate(ctx context.Context, op func(context.Context, string) error, id, successMsg string) error {
	if err := op(ctx, id); err != nil {
		log.Printf("Error on firewall %s: %v", id, err)
		c.notifier.Notify("Action failed: "+deployErrorMessage(err), KindError)
		return err
	}
	c.refresh(ctx)
	c.notifier.Notify(successMsg, KindSuccess)
	return nil
}

// refresh re-fetches firewalls and logs once each after a mutation.
func (c *Controller) refresh(ctx context.Context) {
	c.loadFirewalls(ctx)
	c.loadLogs(ctx)
}
