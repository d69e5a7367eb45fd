package models

import (
	"time"
)

// Firewall statuses. Records may carry other transient values while an
// operation is in flight, so counts over these two are not exhaustive.
const (
	StatusRunning   = "running"
	StatusStopped   = "stopped"
	StatusDeploying = "deploying"
)

type Firewall struct {
	ID              string    `json:"id" gorm:"primaryKey;size:40"`
	Name            string    `json:"name" gorm:"not null"`
	ManagementIP    string    `json:"management_ip"`
	Subnet          string    `json:"subnet"`
	VCPU            int       `json:"vcpu"`
	RAM             int       `json:"ram"` // GB
	SecurityPolicy  string    `json:"security_policy"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	TechnologyStack string    `json:"technology_stack"`
	ConfigMethod    string    `json:"config_method"`
}

// DeployRequest is the payload accepted by POST /api/firewalls/deploy.
type DeployRequest struct {
	Name           string `json:"name"`
	ManagementIP   string `json:"management_ip"`
	Subnet         string `json:"subnet"`
	VCPU           int    `json:"vcpu"`
	RAM            int    `json:"ram"`
	SecurityPolicy string `json:"security_policy"`
	ConfigMethod   string `json:"config_method"`
}

// Statistics is the shape returned by GET /api/statistics. Running and
// stopped are counted independently; they need not sum to total.
type Statistics struct {
	TotalFirewalls   int    `json:"total_firewalls"`
	RunningFirewalls int    `json:"running_firewalls"`
	StoppedFirewalls int    `json:"stopped_firewalls"`
	SystemUptime     string `json:"system_uptime"` // simulated, not measured
	TotalLogs        int    `json:"total_logs"`
}
