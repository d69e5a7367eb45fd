package dashboard

import (
	"fmt"
	"html/template"
	"strings"

	"fw-panel/internal/models"
)

// PanelStats are the counters the dashboard panel shows. They are derived
// synchronously from whatever firewall sequence was last fetched. Running and
// stopped are independent counts; statuses outside the enum only reach Total.
type PanelStats struct {
	Running int
	Stopped int
	Total   int
	Uptime  string // simulated placeholder, never computed
}

// placeholderUptime is a stand-in figure, not telemetry.
const placeholderUptime = "98.7%"

// ComputeStats derives the panel counters from a firewall sequence.
func ComputeStats(firewalls []models.Firewall) PanelStats {
	stats := PanelStats{Total: len(firewalls), Uptime: placeholderUptime}
	for _, fw := range firewalls {
		switch fw.Status {
		case models.StatusRunning:
			stats.Running++
		case models.StatusStopped:
			stats.Stopped++
		}
	}
	return stats
}

// Running filters a firewall sequence down to the running instances.
func Running(firewalls []models.Firewall) []models.Firewall {
	var out []models.Firewall
	for _, fw := range firewalls {
		if fw.Status == models.StatusRunning {
			out = append(out, fw)
		}
	}
	return out
}

// RenderDashboardPanel renders the overview: the statistics row plus a card
// per running firewall.
func RenderDashboardPanel(firewalls []models.Firewall) string {
	var b strings.Builder
	b.WriteString(RenderStats(ComputeStats(firewalls)))
	b.WriteString(`<div class="fw-grid" id="running-firewalls">`)
	for _, fw := range Running(firewalls) {
		writeCard(&b, fw)
	}
	b.WriteString(`</div>`)
	return b.String()
}

// RenderStats renders the statistics row.
func RenderStats(stats PanelStats) string {
	var b strings.Builder
	b.WriteString(`<div class="stats-row">`)
	writeStat(&b, "Running", fmt.Sprintf("%d", stats.Running))
	writeStat(&b, "Stopped", fmt.Sprintf("%d", stats.Stopped))
	writeStat(&b, "Total", fmt.Sprintf("%d", stats.Total))
	writeStat(&b, "Uptime (simulated)", stats.Uptime)
	b.WriteString(`</div>`)
	return b.String()
}

func writeStat(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, `<div class="stat-box"><span class="stat-value">%s</span><span class="stat-label">%s</span></div>`,
		template.HTMLEscapeString(value), template.HTMLEscapeString(label))
}

// RenderFirewallCards renders one card per record, whatever its status.
func RenderFirewallCards(firewalls []models.Firewall) string {
	var b strings.Builder
	b.WriteString(`<div class="fw-grid" id="firewall-list">`)
	if len(firewalls) == 0 {
		b.WriteString(`<p class="empty">No firewalls deployed yet</p>`)
	}
	for _, fw := range firewalls {
		writeCard(&b, fw)
	}
	b.WriteString(`</div>`)
	return b.String()
}

// writeCard emits one firewall card. Each action control carries its command
// in data-action, bound at construction time.
func writeCard(b *strings.Builder, fw models.Firewall) {
	id := template.HTMLEscapeString(fw.ID)

	fmt.Fprintf(b, `<div class="fw-card status-%s" data-id="%s">`,
		template.HTMLEscapeString(fw.Status), id)
	fmt.Fprintf(b, `<h3>%s</h3>`, template.HTMLEscapeString(fw.Name))
	fmt.Fprintf(b, `<span class="badge">%s</span>`, template.HTMLEscapeString(fw.Status))
	fmt.Fprintf(b, `<p class="net">Mgmt IP: %s · Subnet: %s</p>`,
		template.HTMLEscapeString(fw.ManagementIP), template.HTMLEscapeString(fw.Subnet))
	fmt.Fprintf(b, `<p class="res">%d vCPU · %d GB RAM</p>`, fw.VCPU, fw.RAM)
	fmt.Fprintf(b, `<p class="policy">Policy: %s</p>`, template.HTMLEscapeString(fw.SecurityPolicy))

	b.WriteString(`<div class="actions">`)
	switch fw.Status {
	case models.StatusStopped:
		writeActionButton(b, "start", id, "Start")
	case models.StatusRunning:
		writeActionButton(b, "stop", id, "Stop")
	}
	writeActionButton(b, "configure", id, "Configure")
	writeActionButton(b, "delete", id, "Delete")
	b.WriteString(`</div></div>`)
}

func writeActionButton(b *strings.Builder, action, id, label string) {
	fmt.Fprintf(b, `<button class="btn btn-%s" data-action="%s" data-id="%s">%s</button>`,
		action, action, id, label)
}

// RenderLogs renders the activity log, newest entries last, each line styled
// by the severity level parsed from its bracketed prefix.
func RenderLogs(logs []string) string {
	var b strings.Builder
	b.WriteString(`<div class="log-panel" id="log-list">`)
	if len(logs) == 0 {
		b.WriteString(`<p class="empty">No log entries</p>`)
	}
	for _, line := range logs {
		fmt.Fprintf(&b, `<div class="log-line log-%s">%s</div>`,
			logLevelClass(line), template.HTMLEscapeString(line))
	}
	b.WriteString(`</div>`)
	return b.String()
}

// logLevelClass extracts the severity from a "[LEVEL] ..." entry. The entry
// itself is opaque and never rewritten; the level is used for styling only.
func logLevelClass(line string) string {
	if !strings.HasPrefix(line, "[") {
		return "info"
	}
	end := strings.IndexByte(line, ']')
	if end < 0 {
		return "info"
	}
	switch line[1:end] {
	case "ERROR":
		return "error"
	case "WARNING":
		return "warning"
	case "SUCCESS":
		return "success"
	default:
		return "info"
	}
}

// RenderDeployForm renders the deploy tab, pre-filled with whatever the
// operator already entered.
func RenderDeployForm(form DeployForm, policies []string) string {
	var b strings.Builder
	b.WriteString(`<form class="deploy-form" id="deploy-form" method="post" action="/dashboard/deploy">`)
	writeField(&b, "name", "Name", form.Name)
	writeField(&b, "management_ip", "Management IP", form.ManagementIP)
	writeField(&b, "subnet", "Subnet", form.Subnet)
	writeField(&b, "vcpu", "vCPU", intField(form.VCPU))
	writeField(&b, "ram", "RAM (GB)", intField(form.RAM))

	b.WriteString(`<label>Security policy<select name="security_policy">`)
	for _, p := range policies {
		selected := ""
		if p == form.SecurityPolicy {
			selected = ` selected`
		}
		fmt.Fprintf(&b, `<option value="%s"%s>%s</option>`,
			template.HTMLEscapeString(p), selected, template.HTMLEscapeString(p))
	}
	b.WriteString(`</select></label>`)

	b.WriteString(`<label>Config method<select name="config_method">`)
	for _, m := range []string{"netconf", "rest"} {
		selected := ""
		if m == form.ConfigMethod {
			selected = ` selected`
		}
		fmt.Fprintf(&b, `<option value="%s"%s>%s</option>`, m, selected, m)
	}
	b.WriteString(`</select></label>`)

	b.WriteString(`<button type="submit" class="btn btn-deploy">Deploy Firewall</button>`)
	b.WriteString(`</form>`)
	return b.String()
}

func writeField(b *strings.Builder, name, label, value string) {
	fmt.Fprintf(b, `<label>%s<input name="%s" value="%s"></label>`,
		template.HTMLEscapeString(label), name, template.HTMLEscapeString(value))
}

func intField(v int) string {
	if v == 0 {
		return ""
	}
	return fmt.Sprintf("%d", v)
}
