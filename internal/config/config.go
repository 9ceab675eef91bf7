package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Garsondee/Pong/internal/pong"
	"github.com/joho/godotenv"
)

// DefaultPath is read when Load is given an empty path.
const DefaultPath = "config.json"

// ErrInvalidConfig is the same sentinel the match uses, so callers can check
// one error for both window and match settings.
var ErrInvalidConfig = pong.ErrInvalidConfig

// Config is everything the windowed game reads at startup.
type Config struct {
	LogLevel    int     `json:"logLevel"` // slog level: -4 debug, 0 info, 4 warn, 8 error
	Title       string  `json:"title"`
	WindowScale float64 `json:"windowScale"`
	Muted       bool    `json:"muted"`

	Match pong.Config `json:"match"`
}

// Default returns a 640x480 window at scale 1 with the classic match rules.
func Default() Config {
	return Config{
		LogLevel:    int(slog.LevelInfo),
		Title:       "Pong",
		WindowScale: 1,
		Match:       pong.DefaultConfig(),
	}
}

// Load reads path (DefaultPath when empty) over the defaults, applies
// overrides from the given .env files, and validates the result. A missing
// config file is not an error. A missing .env file is skipped as well.
func Load(path string, envFiles ...string) (Config, error) {
	c := Default()
	if path == "" {
		path = DefaultPath
	}

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		slog.Info("no config file, using defaults", "path", path)
	case err != nil:
		return c, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := json.Unmarshal(raw, &c); err != nil {
			return c, fmt.Errorf("%w: parse %s: %v", ErrInvalidConfig, path, err)
		}
	}

	for _, f := range envFiles {
		env, err := godotenv.Read(f)
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("no env file", "path", f)
			continue
		}
		if err != nil {
			return c, fmt.Errorf("read env %s: %w", f, err)
		}
		if err := c.ApplyEnv(env); err != nil {
			return c, err
		}
	}

	return c, c.Validate()
}

// ApplyEnv overrides fields from PONG_* keys. Unknown keys are ignored.
func (c *Config) ApplyEnv(env map[string]string) error {
	for key, val := range env {
		val = strings.TrimSpace(val)
		var err error
		switch key {
		case "PONG_WIDTH":
			c.Match.Width, err = strconv.ParseFloat(val, 64)
		case "PONG_HEIGHT":
			c.Match.Height, err = strconv.ParseFloat(val, 64)
		case "PONG_SCORE_TO_WIN":
			c.Match.ScoreToWin, err = strconv.Atoi(val)
		case "PONG_SERVE_DELAY":
			c.Match.ServeDelay, err = time.ParseDuration(val)
		case "PONG_PADDLE_SCALE":
			c.Match.PaddleScale, err = strconv.ParseFloat(val, 64)
		case "PONG_LOG_LEVEL":
			c.LogLevel, err = parseLevel(val)
		case "PONG_MUTED":
			c.Muted, err = strconv.ParseBool(val)
		case "PONG_WINDOW_SCALE":
			c.WindowScale, err = strconv.ParseFloat(val, 64)
		case "PONG_TITLE":
			c.Title = val
		default:
			continue
		}
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, key, val, err)
		}
	}
	return nil
}

// parseLevel accepts either a number or a level name such as "debug".
func parseLevel(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, err
	}
	return int(l), nil
}

// Validate checks the window settings and then the match rules.
func (c Config) Validate() error {
	if !(c.WindowScale > 0) {
		return fmt.Errorf("%w: window scale %g", ErrInvalidConfig, c.WindowScale)
	}
	return c.Match.Validate()
}

// Level is LogLevel as an slog.Level.
func (c Config) Level() slog.Level {
	return slog.Level(c.LogLevel)
}

// WindowSize is the outer window size in pixels.
func (c Config) WindowSize() (int, int) {
	return int(c.Match.Width * c.WindowScale), int(c.Match.Height * c.WindowScale)
}
