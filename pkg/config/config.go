package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FieldsFlag collects repeated -field flags into an ordered list of
// S-parameter field names.
type FieldsFlag []string

func (f *FieldsFlag) String() string {
	return "FieldsFlag"
}

func (f *FieldsFlag) Set(value string) error {
	if value == "" {
		return fmt.Errorf("empty field name")
	}
	*f = append(*f, value)
	return nil
}

// Config holds the analysis settings shared by the CLI and the HTTP
// service.
type Config struct {
	File         string   `yaml:"-"`
	Fields       []string `yaml:"fields"`
	RefImpedance float64  `yaml:"refImpedance"`
	Attenuation  float64  `yaml:"attenuation"`
	Points       int      `yaml:"points"`
	Quiet        bool     `yaml:"quiet"`
	HTTPServer   bool     `yaml:"httpServer"`
}

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	Port            string `yaml:"port"`
	WorkerCount     int    `yaml:"workerCount"`
	WebhookURL      string `yaml:"webhookURL"`
	EnableMetrics   bool   `yaml:"enableMetrics"`
	EnableProfiling bool   `yaml:"enableProfiling"`
	ProfilingPort   string `yaml:"profilingPort"`
}

// File is the on-disk YAML layout.
type File struct {
	Analysis Config       `yaml:"analysis"`
	Server   ServerConfig `yaml:"server"`
}

// DefaultConfig returns analysis settings with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Fields:       []string{"11", "21"},
		RefImpedance: 50,
		Attenuation:  0,
		Points:       0, // keep the measured grid
		Quiet:        false,
		HTTPServer:   false,
	}
}

// DefaultServerConfig returns server configuration with sensible
// defaults.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:            "8080",
		WorkerCount:     5,
		WebhookURL:      "http://webplot:3001/webhook",
		EnableMetrics:   true,
		EnableProfiling: false,
		ProfilingPort:   "6060",
	}
}

// Load reads a YAML config file and overlays it on the defaults.
func Load(path string) (*Config, *ServerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	file := File{
		Analysis: *DefaultConfig(),
		Server:   *DefaultServerConfig(),
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if len(file.Analysis.Fields) == 0 {
		file.Analysis.Fields = DefaultConfig().Fields
	}
	return &file.Analysis, &file.Server, nil
}
