package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/arcade.yaml
var defaultArcadeYAML []byte

// DefaultArcadeConfig returns the hardcoded configuration, used when no YAML
// source is readable.
func DefaultArcadeConfig() ArcadeConfig {
	return ArcadeConfig{
		Sorting: SortingConfig{
			CountdownSteps:    3,
			CountdownInterval: time.Second,
			TickInterval:      time.Second,
			CompletionDelay:   300 * time.Millisecond,
			FeedbackWindow:    600 * time.Millisecond,
		},
		Bridge: BridgeConfig{
			SettleDelay:      time.Second,
			ScorePerQuestion: 10,
		},
		Web: WebConfig{
			Address:        ":8080",
			RuntimeDir:     "./runtime",
			TickInterval:   50 * time.Millisecond,
			OutboxSize:     16,
			MaxMessageSize: 64 << 10,
		},
		SSH: SSHConfig{
			Address:     ":23234",
			IdleTimeout: 30 * time.Minute,
		},
		Storage: StorageConfig{
			Path: "~/.arcade/scores.db",
		},
		Content: ContentConfig{
			SortingDir: "./content/sorting",
			MazeDir:    "./content/maze",
		},
		TUI: TUIConfig{
			TickRate: 20,
			LogFile:  "~/.arcade/arcade.log",
			LogLevel: "info",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultArcadeYAML
}
