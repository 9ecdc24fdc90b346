package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig is the optional YAML config file shape. Every field is also
// settable through the environment; the file only provides defaults.
type fileConfig struct {
	ListenPort string `yaml:"listen_port"`
	LogLevel   string `yaml:"log_level"`

	Upstreams struct {
		BlockchainURL string `yaml:"blockchain_url"`
		ECBURL        string `yaml:"ecb_url"`
	} `yaml:"upstreams"`

	Redis struct {
		Addr string `yaml:"addr"`
		User string `yaml:"user"`
		DB   int    `yaml:"db"`
	} `yaml:"redis"`
}

// loadFile reads and parses the config file at path. An empty path yields a
// zero fileConfig; a missing or malformed file is an error, since a path was
// explicitly configured.
func loadFile(path string) (*fileConfig, error) {
	fc := &fileConfig{}
	if path == "" {
		return fc, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, fc); err != nil {
		return nil, fmt.Errorf("failed to parse config yaml: %w", err)
	}
	return fc, nil
}

// str returns v unless it is empty, in which case def is returned.
func (f *fileConfig) str(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
