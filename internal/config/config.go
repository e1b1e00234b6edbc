// Package config provides YAML-based configuration loading for the arcade.
package config

import "time"

// ArcadeConfig contains all configuration for the arcade.
type ArcadeConfig struct {
	Sorting SortingConfig `yaml:"sorting"`
	Bridge  BridgeConfig  `yaml:"bridge"`
	Web     WebConfig     `yaml:"web"`
	SSH     SSHConfig     `yaml:"ssh"`
	Storage StorageConfig `yaml:"storage"`
	Content ContentConfig `yaml:"content"`
	TUI     TUIConfig     `yaml:"tui"`
}

// SortingConfig defines the pacing of Speed Sorting.
type SortingConfig struct {
	CountdownSteps    int           `yaml:"countdown_steps"`
	CountdownInterval time.Duration `yaml:"countdown_interval"`
	TickInterval      time.Duration `yaml:"tick_interval"`
	CompletionDelay   time.Duration `yaml:"completion_delay"` // Correct drop to word completion
	FeedbackWindow    time.Duration `yaml:"feedback_window"`
}

// BridgeConfig defines runtime bridge parameters.
type BridgeConfig struct {
	SettleDelay      time.Duration `yaml:"settle_delay"`
	ScorePerQuestion int           `yaml:"score_per_question"` // Used when the game sets none
}

// WebConfig defines the web host for the embedded runtime.
type WebConfig struct {
	Address        string        `yaml:"address"`
	RuntimeDir     string        `yaml:"runtime_dir"`
	TickInterval   time.Duration `yaml:"tick_interval"`
	OutboxSize     int           `yaml:"outbox_size"`
	MaxMessageSize int64         `yaml:"max_message_size"`
}

// SSHConfig defines the SSH server.
type SSHConfig struct {
	Address     string        `yaml:"address"`
	HostKeyPath string        `yaml:"host_key_path"` // Empty means ~/.arcade/host_key
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// StorageConfig defines result persistence.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// ContentConfig defines where game descriptors are found.
type ContentConfig struct {
	SortingDir string `yaml:"sorting_dir"`
	MazeDir    string `yaml:"maze_dir"`
}

// TUIConfig defines terminal shell parameters.
type TUIConfig struct {
	TickRate int    `yaml:"tick_rate"` // Frames per second
	LogFile  string `yaml:"log_file"`
	LogLevel string `yaml:"log_level"` // debug, info, warn, error
}
