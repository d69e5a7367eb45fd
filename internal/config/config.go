package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Database     DatabaseConfig     `yaml:"database"`
	API          APIConfig          `yaml:"api"`
	OSM          OSMConfig          `yaml:"osm"`
	OpenFlow     OpenFlowConfig     `yaml:"openflow"`
	NETCONF      NETCONFConfig      `yaml:"netconf"`
	Orchestrator OrchestratorConfig `yaml:"orchestrator"`
}

type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// APIConfig points the dashboard at the management API. The dashboard only
// ever talks to the API over HTTP, so this may name a remote manager.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
}

type OSMConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type OpenFlowConfig struct {
	Controller string `yaml:"controller"`
}

type NETCONFConfig struct {
	Port     string `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type OrchestratorConfig struct {
	// StepDelay simulates the latency of one orchestration step.
	StepDelay    time.Duration `yaml:"step_delay"`
	PoliciesPath string        `yaml:"policies_path"`
}

var AppConfig *Config

func Load(path string) (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port: 5000,
			Host: "0.0.0.0",
		},
		Database: DatabaseConfig{
			Path: "./database/firewalls.db",
		},
		API: APIConfig{
			BaseURL: "http://localhost:5000/api",
		},
		OSM: OSMConfig{
			Host:     "localhost",
			Port:     "9999",
			Username: "admin",
			Password: "admin",
		},
		OpenFlow: OpenFlowConfig{
			Controller: "http://localhost:8080",
		},
		NETCONF: NETCONFConfig{
			Port:     "830",
			Username: "admin",
			Password: "admin",
		},
		Orchestrator: OrchestratorConfig{
			StepDelay:    500 * time.Millisecond,
			PoliciesPath: "./policies.yaml",
		},
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnv(config)
			AppConfig = config
			return config, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	applyEnv(config)
	AppConfig = config
	return config, nil
}

// applyEnv keeps the original manager's environment surface working.
func applyEnv(config *Config) {
	if port := os.Getenv("PORT"); port != "" {
		var p int
		if _, err := fmt.Sscanf(port, "%d", &p); err == nil {
			config.Server.Port = p
		}
	}
	if base := os.Getenv("FW_PANEL_API_BASE"); base != "" {
		config.API.BaseURL = base
	}
	if path := os.Getenv("DATABASE_PATH"); path != "" {
		config.Database.Path = path
	}
	if host := os.Getenv("OSM_HOST"); host != "" {
		config.OSM.Host = host
	}
	if port := os.Getenv("OSM_PORT"); port != "" {
		config.OSM.Port = port
	}
	if user := os.Getenv("OSM_USERNAME"); user != "" {
		config.OSM.Username = user
	}
	if pass := os.Getenv("OSM_PASSWORD"); pass != "" {
		config.OSM.Password = pass
	}
	if ctrl := os.Getenv("OPENFLOW_CONTROLLER"); ctrl != "" {
		config.OpenFlow.Controller = ctrl
	}
	if port := os.Getenv("NETCONF_PORT"); port != "" {
		config.NETCONF.Port = port
	}
	if user := os.Getenv("NETCONF_USERNAME"); user != "" {
		config.NETCONF.Username = user
	}
	if pass := os.Getenv("NETCONF_PASSWORD"); pass != "" {
		config.NETCONF.Password = pass
	}
}
