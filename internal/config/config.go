// Package config loads the small YAML configuration that controls the
// default shell, Shell Bridge timeout, DFA minimization and CLI colorizing,
// the way the tfctl example repo loads its own YAML configuration, but as a
// typed struct instead of a dotted-key map since this tool's configuration
// surface is small and fixed.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nihei9/cmplgram/internal/log"
)

// Config is the in-memory representation of the loaded configuration.
type Config struct {
	// Shell is the shell the Shell Bridge shells out to: "bash", "fish" or
	// "zsh".
	Shell string `yaml:"shell"`
	// ShellTimeout bounds every Shell Bridge invocation.
	ShellTimeout time.Duration `yaml:"shell_timeout"`
	// Minimize toggles Hopcroft-style DFA minimization after compiling a
	// grammar.
	Minimize bool `yaml:"minimize"`
	// Color toggles lipgloss styling of CLI output. When unset, CLI
	// commands decide based on whether stdout is a terminal.
	Color *bool `yaml:"color"`
}

// rawConfig mirrors Config but keeps ShellTimeout as the duration string the
// YAML file spells it as ("5s", "500ms") and every other field as a pointer,
// so UnmarshalYAML can tell "absent from the file" apart from "the zero
// value" and overlay only what the file actually sets.
type rawConfig struct {
	Shell        *string `yaml:"shell"`
	ShellTimeout *string `yaml:"shell_timeout"`
	Minimize     *bool   `yaml:"minimize"`
	Color        *bool   `yaml:"color"`
}

// UnmarshalYAML overlays the file's fields onto whatever c already holds
// (its Default() values), and parses ShellTimeout with time.ParseDuration
// since yaml.v3 has no built-in support for decoding a duration string into
// a time.Duration field.
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	var raw rawConfig
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if raw.Shell != nil {
		c.Shell = *raw.Shell
	}
	if raw.ShellTimeout != nil {
		d, err := time.ParseDuration(*raw.ShellTimeout)
		if err != nil {
			return fmt.Errorf("invalid shell_timeout %q: %w", *raw.ShellTimeout, err)
		}
		c.ShellTimeout = d
	}
	if raw.Minimize != nil {
		c.Minimize = *raw.Minimize
	}
	if raw.Color != nil {
		c.Color = raw.Color
	}
	return nil
}

// Default returns the configuration applied when no config file is found.
func Default() *Config {
	return &Config{
		Shell:        "bash",
		ShellTimeout: 2 * time.Second,
		Minimize:     true,
	}
}

// Load reads the YAML config file at path and overlays it onto Default().
// A missing file is not an error: the caller gets defaults back. Path
// resolution precedence: an explicit path argument, then the
// CMPLGRAM_CFG_FILE environment variable, then no file (defaults only).
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("CMPLGRAM_CFG_FILE")
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debugf("no config file at %s, using defaults", path)
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	log.Debugf("loaded config from %s", path)
	return cfg, nil
}

// ColorEnabled reports whether CLI output should be styled, given whether
// stdout is actually a terminal. An explicit Color setting always wins;
// otherwise the terminal check decides.
func (c *Config) ColorEnabled(isTerminal bool) bool {
	if c.Color != nil {
		return *c.Color
	}
	return isTerminal
}
