package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Window  WindowConfig  `mapstructure:"window"`
	Surface SurfaceConfig `mapstructure:"surface"`
	Log     LogConfig     `mapstructure:"log"`
	Replay  ReplayConfig  `mapstructure:"replay"`
}

// WindowConfig holds settings for the interactive window.
type WindowConfig struct {
	Title         string  `mapstructure:"title" validate:"required"`
	Width         int     `mapstructure:"width" validate:"gte=64,lte=8192"`
	Height        int     `mapstructure:"height" validate:"gte=64,lte=8192"`
	Overlay       bool    `mapstructure:"overlay"`
	ScrollSeconds float32 `mapstructure:"scroll_seconds" validate:"gte=0,lte=5"`
	ScreenshotDir string  `mapstructure:"screenshot_dir" validate:"required"`
}

// SurfaceConfig holds settings shared by the window and headless snapshots.
type SurfaceConfig struct {
	PixelScale int  `mapstructure:"pixel_scale" validate:"gte=1,lte=64"`
	Border     bool `mapstructure:"border"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
}

// ReplayConfig holds headless replay settings.
type ReplayConfig struct {
	Out       string `mapstructure:"out" validate:"required"`
	Width     int    `mapstructure:"width" validate:"gte=1,lte=4096"`
	Height    int    `mapstructure:"height" validate:"gte=1,lte=4096"`
	MaxFrames int    `mapstructure:"max_frames" validate:"gte=1"`
}

var configValidate = validator.New()

// Validate checks field ranges.
func (c Config) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("window.title", "nestbox")
	v.SetDefault("window.width", 800)
	v.SetDefault("window.height", 600)
	v.SetDefault("window.overlay", false)
	v.SetDefault("window.scroll_seconds", 0.35)
	v.SetDefault("window.screenshot_dir", "screenshots")
	v.SetDefault("surface.pixel_scale", 8)
	v.SetDefault("surface.border", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("replay.out", "replays")
	v.SetDefault("replay.width", 128)
	v.SetDefault("replay.height", 96)
	v.SetDefault("replay.max_frames", 60*60)
}

// defaultConfigPath returns $NESTBOX_CONFIG or ~/.config/nestbox/config.toml.
func defaultConfigPath() string {
	if p := os.Getenv("NESTBOX_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "nestbox", "config.toml")
}

// LoadConfig reads configuration from defaults, an optional TOML file and
// the environment. Env var overrides use prefix NESTBOX_. A missing file at
// the default location is not an error; an explicit path must exist.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
	}
	v.SetConfigFile(path)

	v.SetEnvPrefix("NESTBOX")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(path); explicit || statErr == nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// newLogger builds a text logger at the configured level.
func newLogger(w io.Writer, level string) *slog.Logger {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l}))
}
