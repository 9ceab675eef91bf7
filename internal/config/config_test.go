package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Garsondee/Pong/internal/pong"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	c, err := Load(filepath.Join(dir, "nope.json"), filepath.Join(dir, ".env"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Match.Width != 640 || c.Match.ScoreToWin != 11 || c.Title != "Pong" {
		t.Fatalf("expected defaults, got %+v", c)
	}
}

func TestLoad_JSONOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "config.json", `{"title":"Table","logLevel":-4,"match":{"scoreToWin":5,"width":800}}`)
	c, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Title != "Table" || c.Level() != slog.LevelDebug {
		t.Fatalf("title=%q level=%s", c.Title, c.Level())
	}
	if c.Match.ScoreToWin != 5 || c.Match.Width != 800 {
		t.Fatalf("match overrides not applied: %+v", c.Match)
	}
	if c.Match.Height != 480 || c.Match.SegmentsMax != 4 {
		t.Fatal("fields absent from the file should keep their defaults")
	}
}

func TestLoad_EnvOverridesJSON(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "config.json", `{"match":{"scoreToWin":5}}`)
	env := writeFile(t, dir, ".env", "PONG_SCORE_TO_WIN=3\nPONG_SERVE_DELAY=500ms\nPONG_MUTED=true\nPONG_LOG_LEVEL=warn\nOTHER=x\n")
	c, err := Load(p, env)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Match.ScoreToWin != 3 {
		t.Fatalf("score to win %d, want 3", c.Match.ScoreToWin)
	}
	if c.Match.ServeDelay != 500*time.Millisecond {
		t.Fatalf("serve delay %s, want 500ms", c.Match.ServeDelay)
	}
	if !c.Muted || c.Level() != slog.LevelWarn {
		t.Fatalf("muted=%v level=%s", c.Muted, c.Level())
	}
}

func TestLoad_ServeDelayForms(t *testing.T) {
	cases := map[string]time.Duration{
		`1.5`:     1500 * time.Millisecond,
		`0`:       0,
		`"750ms"`: 750 * time.Millisecond,
		`"3s"`:    3 * time.Second,
		`null`:    2 * time.Second,
	}
	for raw, want := range cases {
		p := writeFile(t, t.TempDir(), "config.json", `{"match":{"serveDelay":`+raw+`,"scoreToWin":7}}`)
		c, err := Load(p)
		if err != nil {
			t.Fatalf("serveDelay %s: %v", raw, err)
		}
		if c.Match.ServeDelay != want {
			t.Fatalf("serveDelay %s read as %s, want %s", raw, c.Match.ServeDelay, want)
		}
		if c.Match.ScoreToWin != 7 || c.Match.Width != 640 {
			t.Fatalf("serveDelay %s disturbed the other fields: %+v", raw, c.Match)
		}
	}
}

func TestLoad_ServeDelayRejected(t *testing.T) {
	for _, raw := range []string{`"soon"`, `true`, `[1]`, `-1`} {
		p := writeFile(t, t.TempDir(), "config.json", `{"match":{"serveDelay":`+raw+`}}`)
		if _, err := Load(p); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("serveDelay %s: expected ErrInvalidConfig, got %v", raw, err)
		}
	}
}

func TestLoad_BadJSON(t *testing.T) {
	p := writeFile(t, t.TempDir(), "config.json", `{"match":`)
	if _, err := Load(p); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoad_InvalidFieldIsReported(t *testing.T) {
	dir := t.TempDir()
	env := writeFile(t, dir, ".env", "PONG_WIDTH=0\n")
	_, err := Load(filepath.Join(dir, "missing.json"), env)
	if !errors.Is(err, pong.ErrInvalidField) {
		t.Fatalf("expected ErrInvalidField, got %v", err)
	}
}

func TestApplyEnv_BadValue(t *testing.T) {
	c := Default()
	err := c.ApplyEnv(map[string]string{"PONG_HEIGHT": "tall"})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestValidate_WindowScale(t *testing.T) {
	c := Default()
	c.WindowScale = 0
	if err := c.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestWindowSize(t *testing.T) {
	c := Default()
	c.WindowScale = 1.5
	w, h := c.WindowSize()
	if w != 960 || h != 720 {
		t.Fatalf("window %dx%d, want 960x720", w, h)
	}
}
