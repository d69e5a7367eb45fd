// Package orchestrator owns the firewall lifecycle: it simulates the OSM,
// OpenFlow and NETCONF legs of a deployment, persists the resulting records
// and keeps the operator-facing activity log.
package orchestrator

import (
	"errors"
	"fmt"
	"time"

	"fw-panel/internal/config"
	"fw-panel/internal/database"
	"fw-panel/internal/models"
)

var (
	stepDelay          time.Duration
	openflowController string
	netconfPort        string
)

// Init wires the orchestrator to its configuration and loads the security
// policy catalog. Must be called after config.Load and database.Connect.
func Init(cfg *config.Config) error {
	stepDelay = cfg.Orchestrator.StepDelay
	openflowController = cfg.OpenFlow.Controller
	netconfPort = cfg.NETCONF.Port

	if err := loadPolicies(cfg.Orchestrator.PoliciesPath); err != nil {
		return err
	}

	AddLog(LevelInfo, "Firewall Manager initialized")
	return nil
}

type OSMResult struct {
	Status  string `json:"status"`
	VNFID   string `json:"vnf_id"`
	NSID    string `json:"ns_id"`
	Message string `json:"message"`
}

type OpenFlowResult struct {
	Status         string `json:"status"`
	RulesInstalled int    `json:"rules_installed"`
	Controller     string `json:"controller"`
}

type NETCONFResult struct {
	Status             string `json:"status"`
	Method             string `json:"method"`
	Port               string `json:"port"`
	SessionEstablished bool   `json:"session_established"`
}

type DeployDetails struct {
	OSM             OSMResult      `json:"osm"`
	OpenFlow        OpenFlowResult `json:"openflow"`
	NETCONF         NETCONFResult  `json:"netconf"`
	TechnologyStack string         `json:"technology_stack"`
}

type DeployResult struct {
	FirewallID string        `json:"firewall_id"`
	Message    string        `json:"message"`
	Details    DeployDetails `json:"details"`
}

// Deploy provisions a new firewall instance. The record is persisted in the
// deploying state up front so an interrupted run leaves a visible, sweepable
// trace rather than nothing.
func Deploy(req models.DeployRequest) (*DeployResult, error) {
	id := fmt.Sprintf("fw-%d", time.Now().Unix())

	fw := models.Firewall{
		ID:              id,
		Name:            req.Name,
		ManagementIP:    req.ManagementIP,
		Subnet:          req.Subnet,
		VCPU:            req.VCPU,
		RAM:             req.RAM,
		SecurityPolicy:  req.SecurityPolicy,
		Status:          models.StatusDeploying,
		CreatedAt:       time.Now(),
		TechnologyStack: "OSM+OpenFlow+NETCONF",
		ConfigMethod:    req.ConfigMethod,
	}
	if fw.VCPU == 0 {
		fw.VCPU = 1
	}
	if fw.RAM == 0 {
		fw.RAM = 2
	}
	if fw.SecurityPolicy == "" {
		fw.SecurityPolicy = "default"
	}
	if fw.ConfigMethod == "" {
		fw.ConfigMethod = "netconf"
	}

	AddLog(LevelInfo, fmt.Sprintf("Starting deployment of firewall: %s", req.Name))

	if err := database.DB.Create(&fw).Error; err != nil {
		AddLog(LevelError, fmt.Sprintf("Failed to deploy firewall: %v", err))
		return nil, err
	}

	AddLog(LevelInfo, "Step 1: Deploying VNF via OSM")
	osm := deployViaOSM(req.Name)

	AddLog(LevelInfo, "Step 2: Configuring OpenFlow rules")
	openflow := configureOpenFlow(fw.Subnet, fw.SecurityPolicy)

	AddLog(LevelInfo, "Step 3: Configuring via NETCONF")
	netconf := configureViaNETCONF()

	if err := database.DB.Model(&models.Firewall{}).Where("id = ?", id).
		Update("status", models.StatusRunning).Error; err != nil {
		AddLog(LevelError, fmt.Sprintf("Failed to deploy firewall: %v", err))
		return nil, err
	}

	AddLog(LevelSuccess, fmt.Sprintf("Firewall %s deployed successfully", req.Name))

	return &DeployResult{
		FirewallID: id,
		Message:    "Firewall deployed successfully",
		Details: DeployDetails{
			OSM:             osm,
			OpenFlow:        openflow,
			NETCONF:         netconf,
			TechnologyStack: "OSM + OpenFlow + NETCONF/REST",
		},
	}, nil
}

func deployViaOSM(name string) OSMResult {
	// Stands in for the OSM northbound API call.
	time.Sleep(stepDelay)
	return OSMResult{
		Status:  "deployed",
		VNFID:   "vnf-" + name,
		NSID:    "ns-" + name,
		Message: "VNF instantiated successfully via OSM",
	}
}

func configureOpenFlow(subnet, policy string) OpenFlowResult {
	rules := FlowRules(subnet, policy)
	time.Sleep(stepDelay / 2)
	return OpenFlowResult{
		Status:         "configured",
		RulesInstalled: len(rules),
		Controller:     openflowController,
	}
}

func configureViaNETCONF() NETCONFResult {
	time.Sleep(stepDelay / 2)
	return NETCONFResult{
		Status:             "configured",
		Method:             "NETCONF",
		Port:               netconfPort,
		SessionEstablished: true,
	}
}

// Start brings a stopped firewall back up.
func Start(id string) error {
	fw, err := get(id)
	if err != nil {
		return err
	}

	AddLog(LevelInfo, fmt.Sprintf("Starting firewall: %s", fw.Name))
	time.Sleep(stepDelay)

	if err := setStatus(id, models.StatusRunning); err != nil {
		AddLog(LevelError, fmt.Sprintf("Failed to start firewall: %v", err))
		return err
	}

	AddLog(LevelSuccess, fmt.Sprintf("Firewall %s started successfully", fw.Name))
	return nil
}

// Stop shuts a running firewall down without removing it.
func Stop(id string) error {
	fw, err := get(id)
	if err != nil {
		return err
	}

	AddLog(LevelInfo, fmt.Sprintf("Stopping firewall: %s", fw.Name))
	time.Sleep(stepDelay)

	if err := setStatus(id, models.StatusStopped); err != nil {
		AddLog(LevelError, fmt.Sprintf("Failed to stop firewall: %v", err))
		return err
	}

	AddLog(LevelSuccess, fmt.Sprintf("Firewall %s stopped successfully", fw.Name))
	return nil
}

// Configure updates an existing firewall's configuration. Only the security
// policy is reconfigurable today.
func Configure(id string, policy string) error {
	fw, err := get(id)
	if err != nil {
		return err
	}

	AddLog(LevelInfo, fmt.Sprintf("Configuring firewall: %s", fw.Name))

	if policy != "" {
		if err := database.DB.Model(&models.Firewall{}).Where("id = ?", id).
			Update("security_policy", policy).Error; err != nil {
			AddLog(LevelError, fmt.Sprintf("Failed to configure firewall: %v", err))
			return err
		}
		AddLog(LevelInfo, fmt.Sprintf("Updated security policy to: %s", policy))
	}

	AddLog(LevelSuccess, fmt.Sprintf("Firewall %s configured successfully", fw.Name))
	return nil
}

// Delete tears a firewall down and removes its record.
func Delete(id string) error {
	fw, err := get(id)
	if err != nil {
		return err
	}

	AddLog(LevelInfo, fmt.Sprintf("Deleting firewall: %s", fw.Name))
	time.Sleep(stepDelay)

	if err := database.DB.Where("id = ?", id).Delete(&models.Firewall{}).Error; err != nil {
		AddLog(LevelError, fmt.Sprintf("Failed to delete firewall: %v", err))
		return err
	}

	AddLog(LevelSuccess, fmt.Sprintf("Firewall %s deleted successfully", fw.Name))
	return nil
}

// List returns every firewall record, newest first.
func List() ([]models.Firewall, error) {
	var firewalls []models.Firewall
	err := database.DB.Order("created_at desc").Find(&firewalls).Error
	return firewalls, err
}

// Statistics derives the counters the dashboard's statistics panel shows.
// Running and stopped are counted independently on purpose: transient
// statuses contribute to the total only.
func Statistics() (models.Statistics, error) {
	firewalls, err := List()
	if err != nil {
		return models.Statistics{}, err
	}

	stats := models.Statistics{
		TotalFirewalls: len(firewalls),
		SystemUptime:   "99.8%",
		TotalLogs:      LogCount(),
	}
	for _, fw := range firewalls {
		switch fw.Status {
		case models.StatusRunning:
			stats.RunningFirewalls++
		case models.StatusStopped:
			stats.StoppedFirewalls++
		}
	}
	return stats, nil
}

// ErrNotFound carries the exact message the API has always returned for an
// unknown firewall ID, so existing dashboard clients keep matching on it.
var ErrNotFound = errors.New("Firewall not found")

func get(id string) (*models.Firewall, error) {
	var fw models.Firewall
	if err := database.DB.Where("id = ?", id).First(&fw).Error; err != nil {
		return nil, ErrNotFound
	}
	return &fw, nil
}

func setStatus(id, status string) error {
	return database.DB.Model(&models.Firewall{}).Where("id = ?", id).
		Update("status", status).Error
}
