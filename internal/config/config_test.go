package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "./database/firewalls.db", cfg.Database.Path)
	assert.Equal(t, "http://localhost:5000/api", cfg.API.BaseURL)
	assert.Equal(t, "localhost", cfg.OSM.Host)
	assert.Equal(t, "http://localhost:8080", cfg.OpenFlow.Controller)
	assert.Equal(t, "830", cfg.NETCONF.Port)
	assert.Equal(t, 500*time.Millisecond, cfg.Orchestrator.StepDelay)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 8080
  host: 127.0.0.1
database:
  path: /tmp/fw.db
api:
  base_url: http://manager.internal:5000/api
osm:
  host: osm.internal
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, "/tmp/fw.db", cfg.Database.Path)
	assert.Equal(t, "http://manager.internal:5000/api", cfg.API.BaseURL)
	assert.Equal(t, "osm.internal", cfg.OSM.Host)
	// sections absent from the file keep their defaults
	assert.Equal(t, 500*time.Millisecond, cfg.Orchestrator.StepDelay)
	assert.Equal(t, "http://localhost:8080", cfg.OpenFlow.Controller)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9001")
	t.Setenv("FW_PANEL_API_BASE", "http://remote:5000/api")
	t.Setenv("OSM_HOST", "osm.remote")
	t.Setenv("OPENFLOW_CONTROLLER", "http://sdn:8080")
	t.Setenv("DATABASE_PATH", "/var/lib/fw/firewalls.db")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 9001, cfg.Server.Port)
	assert.Equal(t, "http://remote:5000/api", cfg.API.BaseURL)
	assert.Equal(t, "osm.remote", cfg.OSM.Host)
	assert.Equal(t, "http://sdn:8080", cfg.OpenFlow.Controller)
	assert.Equal(t, "/var/lib/fw/firewalls.db", cfg.Database.Path)
}
