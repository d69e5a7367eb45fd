package orchestrator

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fw-panel/internal/config"
	"fw-panel/internal/database"
	"fw-panel/internal/models"
)

func setup(t *testing.T) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "firewalls.db")
	_, err := database.Connect(dbPath)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(&models.Firewall{}))

	ResetLogs()
	SetLogSink(nil)

	cfg := &config.Config{
		OpenFlow: config.OpenFlowConfig{Controller: "http://localhost:8080"},
		NETCONF:  config.NETCONFConfig{Port: "830", Username: "admin"},
		Orchestrator: config.OrchestratorConfig{
			StepDelay:    0,
			PoliciesPath: filepath.Join(t.TempDir(), "absent.yaml"),
		},
	}
	require.NoError(t, Init(cfg))
}

func TestDeploy(t *testing.T) {
	setup(t)

	result, err := Deploy(models.DeployRequest{
		Name:           "edge",
		ManagementIP:   "10.0.0.2",
		Subnet:         "192.168.10.0/24",
		VCPU:           2,
		RAM:            4,
		SecurityPolicy: "web",
		ConfigMethod:   "netconf",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(result.FirewallID, "fw-"))
	assert.Equal(t, "Firewall deployed successfully", result.Message)
	assert.Equal(t, "deployed", result.Details.OSM.Status)
	assert.Equal(t, "vnf-edge", result.Details.OSM.VNFID)
	assert.Equal(t, 3, result.Details.OpenFlow.RulesInstalled, "web policy installs three rules")
	assert.True(t, result.Details.NETCONF.SessionEstablished)

	firewalls, err := List()
	require.NoError(t, err)
	require.Len(t, firewalls, 1)
	assert.Equal(t, models.StatusRunning, firewalls[0].Status)
	assert.Equal(t, "OSM+OpenFlow+NETCONF", firewalls[0].TechnologyStack)

	logs := Logs()
	assert.Contains(t, strings.Join(logs, "\n"), "Step 1: Deploying VNF via OSM")
	assert.Contains(t, logs[len(logs)-1], "[SUCCESS]")
}

func TestDeploy_Defaults(t *testing.T) {
	setup(t)

	_, err := Deploy(models.DeployRequest{
		Name:         "bare",
		ManagementIP: "10.0.0.9",
		Subnet:       "192.168.20.0/24",
	})
	require.NoError(t, err)

	firewalls, err := List()
	require.NoError(t, err)
	require.Len(t, firewalls, 1)
	assert.Equal(t, 1, firewalls[0].VCPU)
	assert.Equal(t, 2, firewalls[0].RAM)
	assert.Equal(t, "default", firewalls[0].SecurityPolicy)
	assert.Equal(t, "netconf", firewalls[0].ConfigMethod)
}

func TestStartStop(t *testing.T) {
	setup(t)

	result, err := Deploy(models.DeployRequest{Name: "edge", ManagementIP: "10.0.0.2", Subnet: "192.168.10.0/24"})
	require.NoError(t, err)
	id := result.FirewallID

	require.NoError(t, Stop(id))
	firewalls, _ := List()
	assert.Equal(t, models.StatusStopped, firewalls[0].Status)

	require.NoError(t, Start(id))
	firewalls, _ = List()
	assert.Equal(t, models.StatusRunning, firewalls[0].Status)
}

func TestLifecycle_UnknownID(t *testing.T) {
	setup(t)

	for name, op := range map[string]func(string) error{
		"start":  Start,
		"stop":   Stop,
		"delete": Delete,
	} {
		err := op("fw-missing")
		require.Error(t, err, name)
		assert.Equal(t, "Firewall not found", err.Error(), name)
	}
}

func TestConfigure(t *testing.T) {
	setup(t)

	result, err := Deploy(models.DeployRequest{Name: "edge", ManagementIP: "10.0.0.2", Subnet: "192.168.10.0/24"})
	require.NoError(t, err)

	require.NoError(t, Configure(result.FirewallID, "database"))

	firewalls, _ := List()
	assert.Equal(t, "database", firewalls[0].SecurityPolicy)
	assert.Contains(t, strings.Join(Logs(), "\n"), "Updated security policy to: database")
}

func TestDelete(t *testing.T) {
	setup(t)

	result, err := Deploy(models.DeployRequest{Name: "edge", ManagementIP: "10.0.0.2", Subnet: "192.168.10.0/24"})
	require.NoError(t, err)

	require.NoError(t, Delete(result.FirewallID))

	firewalls, err := List()
	require.NoError(t, err)
	assert.Empty(t, firewalls)
}

func TestStatistics_CountsIndependently(t *testing.T) {
	setup(t)

	now := time.Now()
	records := []models.Firewall{
		{ID: "fw-a", Name: "a", Status: models.StatusRunning, CreatedAt: now},
		{ID: "fw-b", Name: "b", Status: models.StatusRunning, CreatedAt: now},
		{ID: "fw-c", Name: "c", Status: models.StatusStopped, CreatedAt: now},
		{ID: "fw-d", Name: "d", Status: models.StatusDeploying, CreatedAt: now},
	}
	for _, r := range records {
		require.NoError(t, database.DB.Create(&r).Error)
	}

	stats, err := Statistics()
	require.NoError(t, err)

	assert.Equal(t, 4, stats.TotalFirewalls)
	assert.Equal(t, 2, stats.RunningFirewalls)
	assert.Equal(t, 1, stats.StoppedFirewalls)
	assert.Equal(t, "99.8%", stats.SystemUptime)
	assert.NotEqual(t, stats.TotalFirewalls, stats.RunningFirewalls+stats.StoppedFirewalls)
}

func TestLogs_RecentWindowAndFormat(t *testing.T) {
	setup(t)
	ResetLogs()

	for i := 0; i < 60; i++ {
		AddLog(LevelInfo, fmt.Sprintf("entry %d", i))
	}

	logs := Logs()
	require.Len(t, logs, 50, "only the most recent entries are returned")
	assert.Contains(t, logs[0], "entry 10")
	assert.Contains(t, logs[49], "entry 59")
	assert.Regexp(t, `^\[INFO\] \d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2} - entry 10$`, logs[0])
	assert.Equal(t, 60, LogCount())
}

func TestLogSink_ReceivesEntries(t *testing.T) {
	setup(t)

	var got []string
	SetLogSink(func(entry string) { got = append(got, entry) })
	defer SetLogSink(nil)

	AddLog(LevelWarning, "sweep found an orphan")

	require.Len(t, got, 1)
	assert.True(t, strings.HasPrefix(got[0], "[WARNING]"))
}
