package config

import (
	"errors"
	"fmt"
	"strings"
)

// Defaults used when a key is absent from the persisted record.
const (
	DefaultHost = "192.168.1.101"
	DefaultPort = "8080"
)

// ErrValidation is matched by every error Validate and Save return for
// missing fields.
var ErrValidation = errors.New("validation error")

// Config is the persisted sender configuration.
// Field tags are the record keys; they are shared with older installs and
// must not change.
type Config struct {
	Host         string `yaml:"pc_ip"`                 // Receiver address
	Port         string `yaml:"pc_port"`               // Receiver port, kept as text
	DebugEnabled bool   `yaml:"debug_enabled"`         // Shows and records the debug log
	DeviceName   string `yaml:"device_name,omitempty"` // Overrides the platform device name
}

// ValidationError reports a missing field.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s must not be empty", e.Field)
}

// Is lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Default returns a Config holding the documented defaults.
func Default() *Config {
	return &Config{
		Host: DefaultHost,
		Port: DefaultPort,
	}
}

// Normalize trims surrounding whitespace from host and port.
func (c *Config) Normalize() {
	c.Host = strings.TrimSpace(c.Host)
	c.Port = strings.TrimSpace(c.Port)
}

// Validate checks that host and port are usable for a network call.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Host) == "" {
		return &ValidationError{Field: "host"}
	}
	if strings.TrimSpace(c.Port) == "" {
		return &ValidationError{Field: "port"}
	}
	return nil
}

// Address returns host:port.
func (c *Config) Address() string {
	return strings.TrimSpace(c.Host) + ":" + strings.TrimSpace(c.Port)
}

// Clone returns an independent copy.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
