package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Seat configures one player in a match file.
type Seat struct {
	Name       string `yaml:"name"`
	Difficulty string `yaml:"difficulty"`
}

// Config holds application configuration loaded from environment variables,
// optionally overlaid with a YAML match file.
type Config struct {
	ModelPath     string `yaml:"model_path"`
	EnginePath    string `yaml:"engine_path"` // settlers engine for the "external" difficulty
	VictoryTarget int    `yaml:"victory_target"`
	MaxTurns      int    `yaml:"max_turns"`
	Players       string `yaml:"players"` // seat config like "0=medium,*=easy"
	Seed          int64  `yaml:"seed"`
	Seats         []Seat `yaml:"seats"`
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		ModelPath:     envOrDefault("GONNX_MODEL_PATH", "models"),
		EnginePath:    os.Getenv("SETTLERS_ENGINE"),
		VictoryTarget: envIntOrDefault("CATAN_VP_TARGET", 10),
		MaxTurns:      envIntOrDefault("CATAN_MAX_TURNS", 500),
		Players:       envOrDefault("CATAN_PLAYERS", "*=easy"),
		Seed:          int64(envIntOrDefault("CATAN_SEED", 0)),
	}
}

// LoadFile reads the environment config and overlays the YAML file at path.
// Fields the file leaves out keep their environment values.
func LoadFile(path string) (*Config, error) {
	cfg := Load()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the seat list and numeric limits.
func (c *Config) Validate() error {
	if n := len(c.Seats); n != 0 && (n < 3 || n > 4) {
		return fmt.Errorf("need 3-4 seats, got %d", n)
	}
	for i, s := range c.Seats {
		if s.Difficulty == "" {
			return fmt.Errorf("seat %d has no difficulty", i)
		}
	}
	if c.VictoryTarget < 0 || c.MaxTurns < 0 {
		return fmt.Errorf("victory_target and max_turns must not be negative")
	}
	return nil
}

// SeatDifficulties returns the difficulty of each configured seat, or nil
// when the seats come from Players instead.
func (c *Config) SeatDifficulties() []string {
	if len(c.Seats) == 0 {
		return nil
	}
	out := make([]string, len(c.Seats))
	for i, s := range c.Seats {
		out[i] = s.Difficulty
	}
	return out
}

// SeatNames returns the configured seat names, or nil if any seat is unnamed.
func (c *Config) SeatNames() []string {
	if len(c.Seats) == 0 {
		return nil
	}
	out := make([]string, len(c.Seats))
	for i, s := range c.Seats {
		if s.Name == "" {
			return nil
		}
		out[i] = s.Name
	}
	return out
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOrDefault(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
