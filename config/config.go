package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/termfolio/tween"
)

// ErrInvalid reports a config value outside its accepted range
var ErrInvalid = errors.New("invalid config")

// Config is the complete runtime configuration
type Config struct {
	Frame    Frame    `yaml:"frame"`
	Carousel Carousel `yaml:"carousel"`
	Overlay  Overlay  `yaml:"overlay"`
	Audio    Audio    `yaml:"audio"`
	Content  Content  `yaml:"content"`
	Log      Log      `yaml:"log"`
}

// Frame tunes the render loop
type Frame struct {
	FPS int `yaml:"fps"`
}

// Carousel tunes the project carousel and its scroll container
type Carousel struct {
	Stagger          float64       `yaml:"stagger"`
	Duration         float64       `yaml:"duration"`
	Settle           time.Duration `yaml:"settle"`
	SettleEase       string        `yaml:"settle_ease"`
	DragScale        float64       `yaml:"drag_scale"`
	ScrollExtent     float64       `yaml:"scroll_extent"`
	WheelStep        float64       `yaml:"wheel_step"`
	ScrollEndDelay   time.Duration `yaml:"scroll_end_delay"`
	ScrollToDuration time.Duration `yaml:"scroll_to_duration"`
	DefaultDirection int           `yaml:"default_direction"`
}

// Overlay tunes the metaball background
type Overlay struct {
	Enabled bool `yaml:"enabled"`
	Blobs   int  `yaml:"blobs"`
}

// Audio tunes interface sounds
type Audio struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
}

// Content locates the page content
type Content struct {
	Path  string `yaml:"path"`
	Watch bool   `yaml:"watch"`
}

// Log locates the debug log
type Log struct {
	Dir     string `yaml:"dir"`
	MaxSize int64  `yaml:"max_size"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Frame: Frame{FPS: 60},
		Carousel: Carousel{
			Stagger:          0.25,
			Duration:         1,
			Settle:           250 * time.Millisecond,
			SettleEase:       "power3.out",
			DragScale:        0.01,
			ScrollExtent:     2000,
			WheelStep:        50,
			ScrollEndDelay:   150 * time.Millisecond,
			ScrollToDuration: 300 * time.Millisecond,
			DefaultDirection: 1,
		},
		Overlay: Overlay{Enabled: true, Blobs: 3},
		Audio:   Audio{Enabled: true, Volume: 0.6},
		Content: Content{Watch: true},
		Log:     Log{Dir: "logs", MaxSize: 10 * 1024 * 1024},
	}
}

// Load reads path over the defaults; an empty path returns the defaults
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := cfg.Decode(data); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode merges YAML into cfg and validates the result
func (c *Config) Decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return c.Validate()
}

// Marshal encodes the effective configuration
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// ApplyEnv overrides selected values from TERMFOLIO_* variables
// Unparseable values are ignored
func (c *Config) ApplyEnv(getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := getenv("TERMFOLIO_AUDIO_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Audio.Enabled = b
		}
	}
	// Master volume as 0-100
	if v := getenv("TERMFOLIO_MASTER_VOLUME"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Audio.Volume = min(max(float64(n)/100, 0), 1)
		}
	}
	if v := getenv("TERMFOLIO_OVERLAY"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Overlay.Enabled = b
		}
	}
	if v := getenv("TERMFOLIO_FPS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Frame.FPS = n
		}
	}
	if v := getenv("TERMFOLIO_CONTENT"); v != "" {
		c.Content.Path = v
	}
}

// Validate rejects values the runtime cannot honour
func (c *Config) Validate() error {
	cr := c.Carousel
	switch {
	case c.Frame.FPS < 1 || c.Frame.FPS > 240:
		return fmt.Errorf("%w: frame.fps %d not in [1, 240]", ErrInvalid, c.Frame.FPS)
	case !(cr.Stagger > 0):
		return fmt.Errorf("%w: carousel.stagger must be positive", ErrInvalid)
	case !(cr.Duration > 0):
		return fmt.Errorf("%w: carousel.duration must be positive", ErrInvalid)
	case cr.Settle < 0:
		return fmt.Errorf("%w: carousel.settle is negative", ErrInvalid)
	case !(cr.DragScale > 0):
		return fmt.Errorf("%w: carousel.drag_scale must be positive", ErrInvalid)
	case !(cr.ScrollExtent > 2):
		return fmt.Errorf("%w: carousel.scroll_extent must exceed 2", ErrInvalid)
	case !(cr.WheelStep > 0):
		return fmt.Errorf("%w: carousel.wheel_step must be positive", ErrInvalid)
	case cr.ScrollEndDelay <= 0 || cr.ScrollToDuration <= 0:
		return fmt.Errorf("%w: carousel scroll timings must be positive", ErrInvalid)
	case cr.DefaultDirection != 1 && cr.DefaultDirection != -1:
		return fmt.Errorf("%w: carousel.default_direction must be 1 or -1", ErrInvalid)
	case c.Overlay.Blobs < 1 || c.Overlay.Blobs > 8:
		return fmt.Errorf("%w: overlay.blobs %d not in [1, 8]", ErrInvalid, c.Overlay.Blobs)
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return fmt.Errorf("%w: audio.volume %v not in [0, 1]", ErrInvalid, c.Audio.Volume)
	case c.Log.MaxSize <= 0:
		return fmt.Errorf("%w: log.max_size must be positive", ErrInvalid)
	}
	if _, err := cr.Ease(); err != nil {
		return err
	}
	return nil
}

// Ease resolves the configured settle ease
func (c *Carousel) Ease() (tween.Ease, error) {
	e, err := tween.ByName(c.SettleEase)
	if err != nil {
		return nil, fmt.Errorf("%w: carousel.settle_ease: %v", ErrInvalid, err)
	}
	return e, nil
}
