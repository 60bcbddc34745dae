package main

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// defaultConfigFilePath mirrors projectdiscovery-alterx's
// internal/runner/config.go convention of an optional per-tool YAML
// defaults file under the user's config directory.
var defaultConfigFilePath = filepath.Join(getUserHomeDir(), ".config/hpm/config.yaml")

// fileDefaults holds the subset of Options that may be preset from the
// optional defaults file, applied before flag parsing so that explicit
// command-line flags still win.
type fileDefaults struct {
	Mode    string `yaml:"mode"`
	Output  string `yaml:"output"`
	Verbose bool   `yaml:"verbose"`
}

// loadDefaults reads path if it exists, returning a zero fileDefaults
// (not an error) when the file is simply absent.
func loadDefaults(path string) (fileDefaults, error) {
	var cfg fileDefaults
	bin, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(bin, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func getUserHomeDir() string {
	dir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return dir
}
