package panzoom

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config tunes the camera animations and the atlas. Zero fields take the
// value from DefaultConfig.
type Config struct {
	// ZoomSensitivity scales how far one wheel step zooms.
	ZoomSensitivity float64 `yaml:"zoom_sensitivity"`
	// MinZoom and MaxZoom bound every zoom target.
	MinZoom float64 `yaml:"min_zoom"`
	MaxZoom float64 `yaml:"max_zoom"`
	// ZoomAnimationTime is the zoom easing time constant in seconds.
	ZoomAnimationTime float64 `yaml:"zoom_animation_time"`
	// ZoomMaxVelocity caps the wheel acceleration counter.
	ZoomMaxVelocity int `yaml:"zoom_max_velocity"`
	// ZoomVelocityWindow is the longest gap between wheel events that still
	// accelerates the zoom.
	ZoomVelocityWindow time.Duration `yaml:"zoom_velocity_window"`
	// DragAnimationTime is the drag easing time constant in seconds.
	DragAnimationTime float64 `yaml:"drag_animation_time"`
	// MinFrameDelta is the smallest frame delta fed to the animations, in
	// seconds.
	MinFrameDelta float64 `yaml:"min_frame_delta"`
	// PageSize is the side length of a regular atlas page.
	PageSize int `yaml:"page_size"`
	// CullEnabled skips objects entirely outside the viewport.
	CullEnabled bool `yaml:"cull_enabled"`
	// Debug enables debug logging to stderr.
	Debug bool `yaml:"debug"`
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		ZoomSensitivity:    1,
		MinZoom:            0.01,
		MaxZoom:            10,
		ZoomAnimationTime:  0.5,
		ZoomMaxVelocity:    10,
		ZoomVelocityWindow: 500 * time.Millisecond,
		DragAnimationTime:  0.6,
		MinFrameDelta:      1.0 / 60,
		PageSize:           DefaultPageSize,
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.ZoomSensitivity == 0 {
		c.ZoomSensitivity = d.ZoomSensitivity
	}
	if c.MinZoom == 0 {
		c.MinZoom = d.MinZoom
	}
	if c.MaxZoom == 0 {
		c.MaxZoom = d.MaxZoom
	}
	if c.ZoomAnimationTime == 0 {
		c.ZoomAnimationTime = d.ZoomAnimationTime
	}
	if c.ZoomMaxVelocity == 0 {
		c.ZoomMaxVelocity = d.ZoomMaxVelocity
	}
	if c.ZoomVelocityWindow == 0 {
		c.ZoomVelocityWindow = d.ZoomVelocityWindow
	}
	if c.DragAnimationTime == 0 {
		c.DragAnimationTime = d.DragAnimationTime
	}
	if c.MinFrameDelta == 0 {
		c.MinFrameDelta = d.MinFrameDelta
	}
	if c.PageSize == 0 {
		c.PageSize = d.PageSize
	}
	return c
}

// Validate reports the first inconsistent setting.
func (c Config) Validate() error {
	switch {
	case c.MinZoom <= 0:
		return fmt.Errorf("panzoom: min_zoom must be positive, got %g", c.MinZoom)
	case c.MaxZoom < c.MinZoom:
		return fmt.Errorf("panzoom: max_zoom %g is below min_zoom %g", c.MaxZoom, c.MinZoom)
	case c.ZoomSensitivity <= 0:
		return fmt.Errorf("panzoom: zoom_sensitivity must be positive, got %g", c.ZoomSensitivity)
	case c.MinFrameDelta <= 0:
		return fmt.Errorf("panzoom: min_frame_delta must be positive, got %g", c.MinFrameDelta)
	case c.ZoomAnimationTime < 0 || c.DragAnimationTime < 0:
		return fmt.Errorf("panzoom: animation times must not be negative")
	case c.ZoomMaxVelocity < 0:
		return fmt.Errorf("panzoom: zoom_max_velocity must not be negative, got %d", c.ZoomMaxVelocity)
	case c.ZoomVelocityWindow < 0:
		return fmt.Errorf("panzoom: zoom_velocity_window must not be negative, got %v", c.ZoomVelocityWindow)
	case c.PageSize < 0:
		return fmt.Errorf("panzoom: page_size must not be negative, got %d", c.PageSize)
	}
	return nil
}

// ParseConfig decodes YAML config data, fills defaults, and validates it.
func ParseConfig(data []byte) (Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("panzoom: parse config: %w", err)
	}
	c = c.withDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("panzoom: load config %s: %w", path, err)
	}
	return ParseConfig(data)
}
