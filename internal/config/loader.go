package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = "arcade.yaml"

// Load loads the arcade configuration.
// Search order: customPath -> ~/.arcade/configs/arcade.yaml -> ./configs/arcade.yaml -> embedded default.
// Files only need to set the keys they change; the rest keep their defaults.
func Load(customPath string) (ArcadeConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return ArcadeConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return ArcadeConfig{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(configFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", configFile)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultArcadeYAML)
	if err != nil {
		return DefaultArcadeConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML on top of the hardcoded defaults and validates the result.
func Parse(data []byte) (ArcadeConfig, error) {
	cfg := DefaultArcadeConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ArcadeConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return ArcadeConfig{}, err
	}
	return cfg, nil
}

// Validate reports values no component can run with.
func (c ArcadeConfig) Validate() error {
	var errs []error
	if c.Sorting.CountdownSteps < 0 {
		errs = append(errs, errors.New("sorting.countdown_steps must not be negative"))
	}
	if c.Sorting.CountdownInterval <= 0 || c.Sorting.TickInterval <= 0 {
		errs = append(errs, errors.New("sorting intervals must be positive"))
	}
	if c.Sorting.CompletionDelay < 0 || c.Sorting.FeedbackWindow < 0 {
		errs = append(errs, errors.New("sorting delays must not be negative"))
	}
	if c.Bridge.SettleDelay < 0 {
		errs = append(errs, errors.New("bridge.settle_delay must not be negative"))
	}
	if c.Bridge.ScorePerQuestion <= 0 {
		errs = append(errs, errors.New("bridge.score_per_question must be positive"))
	}
	if c.Web.TickInterval <= 0 {
		errs = append(errs, errors.New("web.tick_interval must be positive"))
	}
	if c.TUI.TickRate <= 0 {
		errs = append(errs, errors.New("tui.tick_rate must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
