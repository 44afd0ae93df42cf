package config

import "fmt"

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Address string `json:"address"`
	// Token enables bearer authentication on /api routes when set.
	Token        string `json:"token"`
	MaxBodyBytes int64  `json:"max_body_bytes"`
	// TimeoutSeconds bounds one pipeline run triggered over HTTP.
	TimeoutSeconds int `json:"timeout_seconds"`
}

// SetDefaults applies sane defaults.
func (c *ServerConfig) SetDefaults() {
	if c.Address == "" {
		c.Address = ":8080"
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = 1 << 20
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 600
	}
}

// Validate checks mandatory fields.
func (c ServerConfig) Validate() error {
	if c.Address == "" {
		return fmt.Errorf("address is required")
	}
	return nil
}
