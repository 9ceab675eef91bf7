package pong

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidField is returned when the playing area cannot be built from a Config.
var ErrInvalidField = errors.New("invalid field")

// ErrInvalidConfig is returned for tunables that would break the simulation.
var ErrInvalidConfig = errors.New("invalid match config")

// Config holds every tunable of a match. Speeds are expressed as ratios of the
// field size so the feel of the game does not depend on the window resolution.
type Config struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	PaddleInset  float64 `json:"paddleInset"`  // distance from each side edge to the paddle centre
	TopGap       float64 `json:"topGap"`       // header strip paddles may not enter
	DashSize     float64 `json:"dashSize"`     // centre line dash length (gap is the same)
	PaddleWidth  float64 `json:"paddleWidth"`  // before PaddleScale
	PaddleHeight float64 `json:"paddleHeight"` // before PaddleScale
	PaddleScale  float64 `json:"paddleScale"`
	BallSize     float64 `json:"ballSize"`

	PaddleSpeedRatio    float64 `json:"paddleSpeedRatio"`    // px/s per px of field height
	BallSpeedRatio      float64 `json:"ballSpeedRatio"`      // px/s per px of field width
	SpeedIncrementRatio float64 `json:"speedIncrementRatio"` // px/s per px of field width

	ServeDelay time.Duration `json:"serveDelay"` // JSON: seconds, or a duration string such as "750ms"

	SegmentsMax         int     `json:"segmentsMax"`
	SegmentHeight       float64 `json:"segmentHeight"`
	SegmentAngle        float64 `json:"segmentAngle"` // degrees per segment
	ReturnsPerIncrement int     `json:"returnsPerIncrement"`
	ScoreToWin          int     `json:"scoreToWin"`

	// Serve angles in degrees, 0 = straight right, positive = downward.
	// ServeAnglesLeft sends the ball toward the left side.
	ServeAnglesLeft  []float64 `json:"serveAnglesLeft"`
	ServeAnglesRight []float64 `json:"serveAnglesRight"`
}

// DefaultConfig returns the classic 640x480 setup.
func DefaultConfig() Config {
	return Config{
		Width:  640,
		Height: 480,

		PaddleInset:  50,
		TopGap:       22,
		DashSize:     5,
		PaddleWidth:  8,
		PaddleHeight: 48,
		PaddleScale:  1,
		BallSize:     8,

		PaddleSpeedRatio:    1.25,      // 600 px/s at 480
		BallSpeedRatio:      0.78125,   // 500 px/s at 640
		SpeedIncrementRatio: 0.0390625, // 25 px/s at 640

		ServeDelay: 2 * time.Second,

		SegmentsMax:         4,
		SegmentHeight:       4,
		SegmentAngle:        15,
		ReturnsPerIncrement: 4,
		ScoreToWin:          11,

		ServeAnglesLeft:  []float64{-120, 120},
		ServeAnglesRight: []float64{-60, 60},
	}
}

type configJSON Config

// UnmarshalJSON reads serveDelay as a number of seconds or a duration string.
// Fields absent from the input keep their current values.
func (c *Config) UnmarshalJSON(data []byte) error {
	aux := struct {
		*configJSON
		ServeDelay json.RawMessage `json:"serveDelay,omitempty"`
	}{configJSON: (*configJSON)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	raw := bytes.TrimSpace(aux.ServeDelay)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	d, err := parseServeDelay(raw)
	if err != nil {
		return err
	}
	c.ServeDelay = d
	return nil
}

// MarshalJSON writes serveDelay in seconds so the output loads back unchanged.
func (c Config) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		configJSON
		ServeDelay float64 `json:"serveDelay"`
	}{configJSON: configJSON(c), ServeDelay: c.ServeDelay.Seconds()})
}

func parseServeDelay(raw []byte) (time.Duration, error) {
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, fmt.Errorf("%w: serveDelay: %v", ErrInvalidConfig, err)
		}
		d, err := time.ParseDuration(s)
		if err != nil {
			return 0, fmt.Errorf("%w: serveDelay %q: %v", ErrInvalidConfig, s, err)
		}
		return d, nil
	}
	var sec float64
	if err := json.Unmarshal(raw, &sec); err != nil {
		return 0, fmt.Errorf("%w: serveDelay must be seconds or a duration string, got %s", ErrInvalidConfig, raw)
	}
	if math.IsNaN(sec) || math.IsInf(sec, 0) || math.Abs(sec) > math.MaxInt64/float64(time.Second) {
		return 0, fmt.Errorf("%w: serveDelay %g out of range", ErrInvalidConfig, sec)
	}
	return time.Duration(sec * float64(time.Second)), nil
}

// Validate reports the first problem that would make NewField or NewMatch fail.
func (c Config) Validate() error {
	if !positive(c.Width) || !positive(c.Height) {
		return fmt.Errorf("%w: size %gx%g", ErrInvalidField, c.Width, c.Height)
	}
	if c.PaddleInset < 0 || c.PaddleInset >= c.Width/2 {
		return fmt.Errorf("%w: paddle inset %g must be in [0, %g)", ErrInvalidField, c.PaddleInset, c.Width/2)
	}
	if c.TopGap < 0 || c.TopGap >= c.Height {
		return fmt.Errorf("%w: top gap %g must be in [0, %g)", ErrInvalidField, c.TopGap, c.Height)
	}
	switch {
	case !positive(c.PaddleWidth), !positive(c.PaddleHeight), !positive(c.PaddleScale), !positive(c.BallSize):
		return fmt.Errorf("%w: paddle and ball sizes must be positive", ErrInvalidConfig)
	case c.PaddleSpeedRatio < 0, c.BallSpeedRatio <= 0, c.SpeedIncrementRatio < 0:
		return fmt.Errorf("%w: speed ratios out of range", ErrInvalidConfig)
	case c.ServeDelay < 0:
		return fmt.Errorf("%w: negative serve delay %s", ErrInvalidConfig, c.ServeDelay)
	case c.SegmentsMax < 1, !positive(c.SegmentHeight):
		return fmt.Errorf("%w: segments max %d, height %g", ErrInvalidConfig, c.SegmentsMax, c.SegmentHeight)
	case c.ReturnsPerIncrement < 1:
		return fmt.Errorf("%w: returns per increment %d", ErrInvalidConfig, c.ReturnsPerIncrement)
	case c.ScoreToWin < 1:
		return fmt.Errorf("%w: score to win %d", ErrInvalidConfig, c.ScoreToWin)
	case len(c.ServeAnglesLeft) == 0, len(c.ServeAnglesRight) == 0:
		return fmt.Errorf("%w: serve angle lists must not be empty", ErrInvalidConfig)
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

// Field is the fixed geometry of one match, derived once from a Config.
type Field struct {
	Width  float64
	Height float64

	PaddleLeftX  float64
	PaddleRightX float64
	TopGap       float64
	DashSize     float64

	PaddleWidth  float64
	PaddleHeight float64
	BallSize     float64

	PaddleSpeed    float64 // px/s
	BallSpeed      float64 // px/s at serve
	SpeedIncrement float64 // px/s added every ReturnsPerIncrement hits
}

// NewField builds the playing area. A malformed size is fatal for the caller.
func NewField(cfg Config) (Field, error) {
	if err := cfg.Validate(); err != nil {
		return Field{}, err
	}
	return Field{
		Width:          cfg.Width,
		Height:         cfg.Height,
		PaddleLeftX:    cfg.PaddleInset,
		PaddleRightX:   cfg.Width - cfg.PaddleInset,
		TopGap:         cfg.TopGap,
		DashSize:       cfg.DashSize,
		PaddleWidth:    cfg.PaddleWidth * cfg.PaddleScale,
		PaddleHeight:   cfg.PaddleHeight * cfg.PaddleScale,
		BallSize:       cfg.BallSize,
		PaddleSpeed:    cfg.PaddleSpeedRatio * cfg.Height,
		BallSpeed:      cfg.BallSpeedRatio * cfg.Width,
		SpeedIncrement: cfg.SpeedIncrementRatio * cfg.Width,
	}, nil
}

// CenterX is the x of the dotted separator line.
func (f Field) CenterX() float64 { return f.Width / 2 }

// CenterY is the vertical centre of the field.
func (f Field) CenterY() float64 { return f.Height / 2 }

// Dash is one visible segment of the centre line.
type Dash struct {
	X, Y0, Y1 float64
}

// CenterLine returns the dashes of the dotted separator. Presentation only:
// the ball never collides with it.
func (f Field) CenterLine() []Dash {
	if f.DashSize <= 0 || f.Height <= 0 {
		return nil
	}
	var dashes []Dash
	for y := 0.0; y < f.Height; y += f.DashSize * 2 {
		dashes = append(dashes, Dash{X: f.CenterX(), Y0: y, Y1: math.Min(y+f.DashSize, f.Height)})
	}
	return dashes
}
