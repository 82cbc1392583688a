package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	EnvServerHost = "PALMER_SERVER_HOST"
	EnvServerPort = "PALMER_SERVER_PORT"
)

// ServerConfig holds the HTTP listener settings. Timeouts are Go duration
// strings and are overridden by PALMER_SERVER_<NAME> variables, e.g.
// PALMER_SERVER_IDLE_TIMEOUT. Draining on shutdown is bounded by the root
// shutdown_timeout.
type ServerConfig struct {
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	ReadTimeout  string `toml:"read_timeout"`
	WriteTimeout string `toml:"write_timeout"`
	IdleTimeout  string `toml:"idle_timeout"`
}

var serverTimeoutDefaults = map[string]string{
	"read_timeout":  "15s",
	"write_timeout": "30s",
	"idle_timeout":  "120s",
}

// Addr returns the listen address. IPv6 hosts are bracketed.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c *ServerConfig) ReadTimeoutDuration() time.Duration {
	return mustDuration(c.ReadTimeout)
}

func (c *ServerConfig) WriteTimeoutDuration() time.Duration {
	return mustDuration(c.WriteTimeout)
}

func (c *ServerConfig) IdleTimeoutDuration() time.Duration {
	return mustDuration(c.IdleTimeout)
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *ServerConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *ServerConfig) Merge(overlay *ServerConfig) {
	if overlay.Host != "" {
		c.Host = overlay.Host
	}
	if overlay.Port != 0 {
		c.Port = overlay.Port
	}

	theirs := overlay.timeouts()
	for name, dst := range c.timeouts() {
		if v := *theirs[name]; v != "" {
			*dst = v
		}
	}
}

// timeouts addresses the duration fields by their TOML names.
func (c *ServerConfig) timeouts() map[string]*string {
	return map[string]*string{
		"read_timeout":  &c.ReadTimeout,
		"write_timeout": &c.WriteTimeout,
		"idle_timeout":  &c.IdleTimeout,
	}
}

func (c *ServerConfig) loadDefaults() {
	if c.Host == "" {
		c.Host = "0.0.0.0"
	}
	if c.Port == 0 {
		c.Port = 5001
	}
	for name, dst := range c.timeouts() {
		if *dst == "" {
			*dst = serverTimeoutDefaults[name]
		}
	}
}

func (c *ServerConfig) loadEnv() {
	if v := os.Getenv(EnvServerHost); v != "" {
		c.Host = v
	}
	if v := os.Getenv(EnvServerPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
	for name, dst := range c.timeouts() {
		if v := os.Getenv("PALMER_SERVER_" + strings.ToUpper(name)); v != "" {
			*dst = v
		}
	}
}

func (c *ServerConfig) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	for name, v := range c.timeouts() {
		d, err := time.ParseDuration(*v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
		if d <= 0 {
			return fmt.Errorf("%s must be positive: %s", name, *v)
		}
	}
	return nil
}

// mustDuration parses a duration that validate has already accepted.
func mustDuration(s string) time.Duration {
	d, _ := time.ParseDuration(s)
	return d
}
