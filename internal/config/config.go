package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Role constants
const (
	RoleAnnotator = "annotator"
	RoleEvaluator = "evaluator"
	RoleAdmin     = "admin"
)

// Config represents the flat Lakra workspace configuration. It binds a
// working directory to an actor identity so commands don't need --actor
// on every call.
type Config struct {
	Version string `json:"version"`
	ActorID string `json:"actor_id,omitempty"` // USER-XXX
	Role    string `json:"role,omitempty"`
}

// LoadConfig reads .lakra/config.json from the specified directory.
// Resolution order: cwd only (no home fallback).
// Returns error if no config found - caller should handle accordingly.
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, ".lakra", "config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// SaveConfig writes config.json to directory
func SaveConfig(dir string, cfg *Config) error {
	cfgDir := filepath.Join(dir, ".lakra")
	if err := os.MkdirAll(cfgDir, 0755); err != nil {
		return fmt.Errorf("failed to create .lakra dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(cfgDir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// ValidRole reports whether the role is one the workspace understands.
func ValidRole(role string) bool {
	switch role {
	case RoleAnnotator, RoleEvaluator, RoleAdmin:
		return true
	}
	return false
}
