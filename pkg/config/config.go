// Package config handles configuration for the game tester.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Defaults applied when a field is absent from the config file.
const (
	DefaultListenAddr  = ":8000"
	DefaultServerURL   = "http://127.0.0.1:8000"
	DefaultTargetURL   = "https://play.ezygamers.com"
	DefaultReportsDir  = "reports"
	DefaultCandidates  = 20
	DefaultTopK        = 10
	DefaultParallelism = 3
)

// Config represents the workspace configuration (config.yaml).
type Config struct {
	// Server settings
	ListenAddr string `yaml:"listenAddr"` // Address the backend listens on
	ReportsDir string `yaml:"reportsDir"` // Where reports and artifacts are written

	// Workflow defaults
	TargetURL   string `yaml:"targetUrl"`   // Default site under test
	Candidates  int    `yaml:"candidates"`  // Candidates requested from the planner
	TopK        int    `yaml:"topK"`        // Candidates kept by the ranker
	Parallelism int    `yaml:"parallelism"` // Concurrent executors

	// Client settings
	ServerURL string `yaml:"serverUrl"` // Backend URL the CLI client talks to
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- user-provided config file
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// LoadFromDir looks for config.yaml or config.yml in the directory.
func LoadFromDir(dir string) (*Config, error) {
	// Try config.yaml first
	configPath := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(configPath); err == nil {
		return Load(configPath)
	}

	// Try config.yml
	configPath = filepath.Join(dir, "config.yml")
	if _, err := os.Stat(configPath); err == nil {
		return Load(configPath)
	}

	// No config file found, return defaults
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.ListenAddr == "" {
		c.ListenAddr = DefaultListenAddr
	}
	if c.ReportsDir == "" {
		c.ReportsDir = DefaultReportsDir
	}
	if c.TargetURL == "" {
		c.TargetURL = DefaultTargetURL
	}
	if c.Candidates <= 0 {
		c.Candidates = DefaultCandidates
	}
	if c.TopK <= 0 {
		c.TopK = DefaultTopK
	}
	if c.Parallelism <= 0 {
		c.Parallelism = DefaultParallelism
	}
	if c.ServerURL == "" {
		c.ServerURL = DefaultServerURL
	}
}
