// Package config provides configuration management for the cigate tool.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Built-in defaults for the verification gate.
const (
	DefaultTimeoutSecs = 1800
	DefaultPollSecs    = 20
)

// DefaultRequiredJobs returns the standard gating jobs checked when the
// caller supplies none. Returned as a fresh slice so callers can append
// without sharing state.
func DefaultRequiredJobs() []string {
	return []string{
		"Gates (ubuntu-latest)",
		"Gates (windows-latest)",
		"Security Audit",
		"Clippy (annotated)",
	}
}

// Config holds the application configuration.
type Config struct {
	// Owner and Repo identify the project.
	Owner string
	Repo  string

	// Branch or RunID select the run; exactly one must be set.
	Branch string
	RunID  int64

	// RequiredJobs are the job names that must conclude success.
	RequiredJobs []string

	// TimeoutSecs bounds the total wait for run completion.
	TimeoutSecs int

	// PollSecs is the fixed interval between run snapshots.
	PollSecs int

	// Token authenticates API requests; empty means anonymous.
	Token string

	// BrokerAddrs, when non-empty, enables publishing poll/result events
	// to Redpanda.
	BrokerAddrs []string

	// AuditDSN, when non-empty, enables recording verdicts to Postgres.
	AuditDSN string
}

// FromEnv builds a Config from ambient process state. This is the only
// place environment variables are read; everything downstream receives the
// values explicitly.
func FromEnv() *Config {
	cfg := &Config{
		RequiredJobs: DefaultRequiredJobs(),
		TimeoutSecs:  DefaultTimeoutSecs,
		PollSecs:     DefaultPollSecs,
		Token:        firstEnv("GITHUB_TOKEN", "GH_TOKEN"),
		AuditDSN:     os.Getenv("CIGATE_AUDIT_DSN"),
	}
	if brokers := os.Getenv("REDPANDA_BROKERS"); brokers != "" {
		cfg.BrokerAddrs = strings.Split(brokers, ",")
	}
	return cfg
}

// fileConfig is the YAML shape of an optional config file. Zero values are
// treated as unset and leave the existing config untouched.
type fileConfig struct {
	Owner        string   `yaml:"owner"`
	Repo         string   `yaml:"repo"`
	Branch       string   `yaml:"branch"`
	RequiredJobs []string `yaml:"required_jobs"`
	TimeoutSecs  int      `yaml:"timeout_secs"`
	PollSecs     int      `yaml:"poll_secs"`
}

// ApplyFile merges a YAML config file over the current values. Flags are
// applied after this, so precedence is flags > file > built-ins.
func (c *Config) ApplyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if fc.Owner != "" {
		c.Owner = fc.Owner
	}
	if fc.Repo != "" {
		c.Repo = fc.Repo
	}
	if fc.Branch != "" {
		c.Branch = fc.Branch
	}
	if len(fc.RequiredJobs) > 0 {
		c.RequiredJobs = fc.RequiredJobs
	}
	if fc.TimeoutSecs > 0 {
		c.TimeoutSecs = fc.TimeoutSecs
	}
	if fc.PollSecs > 0 {
		c.PollSecs = fc.PollSecs
	}
	return nil
}

// Validate checks that a runnable configuration was assembled.
func (c *Config) Validate() error {
	if c.Owner == "" || c.Repo == "" {
		return fmt.Errorf("owner and repo are required")
	}
	if c.TimeoutSecs <= 0 {
		return fmt.Errorf("timeout_secs must be positive")
	}
	if c.PollSecs <= 0 {
		return fmt.Errorf("poll_secs must be positive")
	}
	return nil
}

func firstEnv(names ...string) string {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}
