package geohoard

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config is the process configuration. Game constants are fixed for the
// process lifetime; nothing here is runtime-editable.
type Config struct {
	Log    LogConfig    `toml:"log"`
	Server ServerConfig `toml:"server"`
	Game   GameConfig   `toml:"game"`
}

type LogConfig struct {
	Level slog.Level `toml:"level"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

// GameConfig carries the economy and scheduling constants. Intervals are in
// seconds, matching the game's time unit.
type GameConfig struct {
	DataFile       string  `toml:"data_file"`
	ClickReward    int64   `toml:"click_reward"`
	BaseCostUnit   float64 `toml:"base_cost_unit"`
	BaseIncomeUnit float64 `toml:"base_income_unit"`

	StockIntervalSecs   int `toml:"stock_interval_secs"`
	StockAmount         int `toml:"stock_amount"`
	AccrualIntervalSecs int `toml:"accrual_interval_secs"`

	MeteorIntervalMinSecs  int     `toml:"meteor_interval_min_secs"`
	MeteorIntervalMaxSecs  int     `toml:"meteor_interval_max_secs"`
	MeteorActiveWindowSecs int     `toml:"meteor_active_window_secs"`
	MeteorChance           float64 `toml:"meteor_chance"`

	// RarityOverrides pins regions to a tier by display name. When empty
	// the built-in defaults apply.
	RarityOverrides map[string]string `toml:"rarity_overrides"`
}

func (g GameConfig) StockInterval() time.Duration {
	return time.Duration(g.StockIntervalSecs) * time.Second
}

func (g GameConfig) AccrualInterval() time.Duration {
	return time.Duration(g.AccrualIntervalSecs) * time.Second
}

func (g GameConfig) MeteorIntervalMin() time.Duration {
	return time.Duration(g.MeteorIntervalMinSecs) * time.Second
}

func (g GameConfig) MeteorIntervalMax() time.Duration {
	return time.Duration(g.MeteorIntervalMaxSecs) * time.Second
}

func (g GameConfig) MeteorActiveWindow() time.Duration {
	return time.Duration(g.MeteorActiveWindowSecs) * time.Second
}

// DefaultConfig returns the original game balance.
func DefaultConfig() *Config {
	return &Config{
		Log:    LogConfig{Level: slog.LevelInfo},
		Server: ServerConfig{Addr: ":8080"},
		Game: GameConfig{
			DataFile:               "countries.geo.json",
			ClickReward:            10,
			BaseCostUnit:           50,
			BaseIncomeUnit:         5,
			StockIntervalSecs:      90,
			StockAmount:            30,
			AccrualIntervalSecs:    1,
			MeteorIntervalMinSecs:  300,
			MeteorIntervalMaxSecs:  300,
			MeteorActiveWindowSecs: 5,
			MeteorChance:           0.03,
		},
	}
}

// LoadConfig reads a TOML config file over the defaults, so a partial file
// only overrides what it mentions.
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	cfg := DefaultConfig()
	if err = toml.NewDecoder(file).Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	g := c.Game
	if g.StockIntervalSecs <= 0 || g.AccrualIntervalSecs <= 0 {
		return fmt.Errorf("intervals must be positive")
	}
	if g.MeteorIntervalMinSecs <= 0 || g.MeteorIntervalMaxSecs < g.MeteorIntervalMinSecs {
		return fmt.Errorf("meteor interval range is invalid")
	}
	if g.MeteorChance < 0 || g.MeteorChance > 1 {
		return fmt.Errorf("meteor_chance must be within [0, 1]")
	}
	if g.StockAmount < 0 {
		return fmt.Errorf("stock_amount must not be negative")
	}
	return nil
}
