// CLAUDE:SUMMARY Defines domdrive config structs and parses YAML configuration files with defaults.
// Package config handles domdrive configuration from YAML files.
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level domdrive configuration.
type Config struct {
	Browser  BrowserConfig  `yaml:"browser"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
	Executor ExecutorConfig `yaml:"executor"`
	HTTP     HTTPConfig     `yaml:"http"`

	// StartURL is opened and activated at startup when set.
	StartURL string `yaml:"start_url"`
}

// BrowserConfig controls Chrome lifecycle.
type BrowserConfig struct {
	Remote           string        `yaml:"remote"`
	MemoryLimit      int64         `yaml:"memory_limit"`
	RecycleInterval  time.Duration `yaml:"recycle_interval"`
	ResourceBlocking []string      `yaml:"resource_blocking"`
	Stealth          string        `yaml:"stealth"` // headless | headful
	XvfbDisplay      string        `yaml:"xvfb_display"`
	XvfbGeometry     string        `yaml:"xvfb_geometry"`
}

// SnapshotConfig controls capture output sizes.
type SnapshotConfig struct {
	SnippetLimit  int `yaml:"snippet_limit"`
	MarkdownLimit int `yaml:"markdown_limit"`
}

// ExecutorConfig controls action execution timing and policy.
type ExecutorConfig struct {
	NavigateSettle    time.Duration `yaml:"navigate_settle"`
	ClickSettle       time.Duration `yaml:"click_settle"`
	TypeSettle        time.Duration `yaml:"type_settle"`
	PollInterval      time.Duration `yaml:"poll_interval"`
	ExtraRiskKeywords []string      `yaml:"extra_risk_keywords"`
}

// HTTPConfig controls the optional HTTP surface.
type HTTPConfig struct {
	Addr string `yaml:"addr"` // empty = HTTP surface disabled
	// AuthPasswordHash is a bcrypt hash; when set, requests need basic
	// auth with a matching password.
	AuthPasswordHash string `yaml:"auth_password_hash"`
	MaxBodyBytes     int64  `yaml:"max_body_bytes"`
}

// LoadFile reads a YAML configuration file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}

// Default returns a configuration with every default applied.
func Default() *Config {
	var cfg Config
	cfg.ApplyDefaults()
	return &cfg
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Browser.MemoryLimit <= 0 {
		c.Browser.MemoryLimit = 1 << 30
	}
	if c.Browser.RecycleInterval <= 0 {
		c.Browser.RecycleInterval = 4 * time.Hour
	}
	if c.Browser.XvfbDisplay == "" {
		c.Browser.XvfbDisplay = ":99"
	}
	if c.Browser.XvfbGeometry == "" {
		c.Browser.XvfbGeometry = "1920x1080x24"
	}
	if c.Browser.Stealth == "" {
		c.Browser.Stealth = "headless"
	}
	if c.Snapshot.SnippetLimit <= 0 {
		c.Snapshot.SnippetLimit = 2000
	}
	if c.Snapshot.MarkdownLimit <= 0 {
		c.Snapshot.MarkdownLimit = 8000
	}
	if c.Executor.NavigateSettle <= 0 {
		c.Executor.NavigateSettle = 5 * time.Second
	}
	if c.Executor.ClickSettle <= 0 {
		c.Executor.ClickSettle = 3 * time.Second
	}
	if c.Executor.TypeSettle <= 0 {
		c.Executor.TypeSettle = time.Second
	}
	if c.Executor.PollInterval <= 0 {
		c.Executor.PollInterval = 200 * time.Millisecond
	}
	if c.HTTP.MaxBodyBytes <= 0 {
		c.HTTP.MaxBodyBytes = 1 << 20 // 1MB
	}
}
