package robot

import (
	"encoding/json"
	"os"
	"time"
)

const DefaultConfigFile = "teachmover.json"

// Defaults applied by normalize.
const (
	DefaultBaud  = 9600
	DefaultSpeed = 220
)

// Config holds the connection settings for one arm.
type Config struct {
	Port           string    `json:"port"`
	Baud           int       `json:"baud,omitempty"`
	Speed          int       `json:"speed,omitempty"`
	ReplyTimeoutMS int       `json:"reply_timeout_ms,omitempty"`
	Geometry       *Geometry `json:"geometry,omitempty"`
}

// normalize fills unset fields with defaults.
func (c *Config) normalize() {
	if c.Baud <= 0 {
		c.Baud = DefaultBaud
	}
	if c.Speed <= 0 {
		c.Speed = DefaultSpeed
	}
}

func (c *Config) replyTimeout() time.Duration {
	if c.ReplyTimeoutMS <= 0 {
		return DefaultReplyTimeout
	}
	return time.Duration(c.ReplyTimeoutMS) * time.Millisecond
}

func (c *Config) geometry() Geometry {
	if c.Geometry != nil {
		return *c.Geometry
	}
	return DefaultGeometry()
}

// LoadConfig loads configuration from the default config file.
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(DefaultConfigFile)
}

// LoadConfigFrom loads configuration from a specific file.
func LoadConfigFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.normalize()
	return &cfg, nil
}

// Save saves configuration to the default config file.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigFile)
}

// SaveTo saves configuration to a specific file.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ConfigExists returns true if the default config file exists.
func ConfigExists() bool {
	_, err := os.Stat(DefaultConfigFile)
	return err == nil
}
