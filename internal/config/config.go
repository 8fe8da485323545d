package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Questions struct {
		TTL      string `yaml:"ttl"`
		BankFile string `yaml:"bankFile"`
	} `yaml:"questions"`
	Game struct {
		TimerSeconds      int    `yaml:"timerSeconds"`
		PresentationDelay string `yaml:"presentationDelay"`
		QuickThreshold    string `yaml:"quickThreshold"`
		AutoAdvance       bool   `yaml:"autoAdvance"`
		Shuffle           bool   `yaml:"shuffle"`
	} `yaml:"game"`
	Leaderboard struct {
		Capacity int `yaml:"capacity"`
	} `yaml:"leaderboard"`
	Log struct {
		Level       string `yaml:"level"`
		Development bool   `yaml:"development"`
	} `yaml:"log"`
}

// Load reads YAML config from path.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}

// LeaderboardCapacity returns the configured capacity, defaulting to 10.
func (c Config) LeaderboardCapacity() int {
	if c.Leaderboard.Capacity <= 0 {
		return 10
	}
	return c.Leaderboard.Capacity
}
