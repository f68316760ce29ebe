// Package config loads the per-user configuration file
// (~/.config/ganttly/config.yaml). Workspace state (tasks, settings)
// lives in the store; this file only carries machine-level knobs like
// tracker credentials and poll intervals.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration makes time.Duration usable in YAML ("45s", "2m").
type Duration time.Duration

func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

type Config struct {
	// Tracker is the external issue tracker this workspace mirrors.
	Tracker TrackerConfig `yaml:"tracker"`

	// StorePollInterval is how often the TUI checks for writes from
	// other processes. SyncPollInterval is how often remote issues are
	// re-fetched; the poll is allowed to race local edits
	// (last-write-wins).
	StorePollInterval Duration `yaml:"storePollInterval"`
	SyncPollInterval  Duration `yaml:"syncPollInterval"`
}

type TrackerConfig struct {
	BaseURL string `yaml:"baseUrl"`
	// Token is the API token; TokenFile points at a file holding it
	// (preferred, keeps the token out of the config file).
	Token     string `yaml:"token,omitempty"`
	TokenFile string `yaml:"tokenFile,omitempty"`
	TeamID    string `yaml:"teamId,omitempty"`
}

func Default() Config {
	return Config{
		StorePollInterval: Duration(750 * time.Millisecond),
		SyncPollInterval:  Duration(30 * time.Second),
	}
}

func Path() (string, error) {
	if v := os.Getenv("GANTTLY_CONFIG"); v != "" {
		return v, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "ganttly", "config.yaml"), nil
}

// Load reads the config file, falling back to defaults when it does not
// exist. A missing file is not an error; a malformed one is.
func Load() (Config, error) {
	p, err := Path()
	if err != nil {
		return Default(), err
	}
	return LoadFile(p)
}

func LoadFile(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Default(), err
	}
	if cfg.StorePollInterval <= 0 {
		cfg.StorePollInterval = Default().StorePollInterval
	}
	if cfg.SyncPollInterval <= 0 {
		cfg.SyncPollInterval = Default().SyncPollInterval
	}
	return cfg, nil
}

// ResolveToken returns the tracker token, preferring the
// GANTTLY_TRACKER_TOKEN environment override, then TokenFile, then the
// inline value.
func (c TrackerConfig) ResolveToken() (string, error) {
	if v := os.Getenv("GANTTLY_TRACKER_TOKEN"); v != "" {
		return v, nil
	}
	if c.TokenFile != "" {
		b, err := os.ReadFile(c.TokenFile)
		if err != nil {
			return "", err
		}
		return trimToken(string(b)), nil
	}
	return c.Token, nil
}

func trimToken(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r' || s[len(s)-1] == ' ') {
		s = s[:len(s)-1]
	}
	return s
}
