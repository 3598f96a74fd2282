// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/scenegraph/pkg/math"
)

// Config holds all viewer settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Camera  CameraConfig  `yaml:"camera"`
	Scene   SceneConfig   `yaml:"scene"`
	Render  RenderConfig  `yaml:"render"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// CameraConfig holds the initial camera placement and projection.
type CameraConfig struct {
	FoV    float32    `yaml:"fov"` // vertical, degrees
	Near   float32    `yaml:"near"`
	Far    float32    `yaml:"far"`
	Eye    [3]float32 `yaml:"eye,flow"`
	Target [3]float32 `yaml:"target,flow"`
	Up     [3]float32 `yaml:"up,flow"`
}

// SceneConfig selects the model and how it is imported and animated.
type SceneConfig struct {
	File           string     `yaml:"file"` // empty renders a cube
	LeftHanded     bool       `yaml:"left_handed"`
	SmoothingAngle float32    `yaml:"smoothing_angle"` // degrees
	SpinSpeed      float32    `yaml:"spin_degrees_per_second"`
	SpinAxis       [3]float32 `yaml:"spin_axis,flow"`
}

// RenderConfig holds rendering settings.
type RenderConfig struct {
	ClearColor [4]float32 `yaml:"clear_color,flow"`
	ShowLights bool       `yaml:"show_lights"`

	// ScreenshotDir receives the PNG files written by F12.
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "Scene Graph",
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Camera: CameraConfig{
			FoV:    45,
			Near:   0.1,
			Far:    100,
			Eye:    [3]float32{0, 0, -10},
			Target: [3]float32{0, 0, 0},
			Up:     [3]float32{0, 1, 0},
		},
		Scene: SceneConfig{
			LeftHanded:     true,
			SmoothingAngle: 80,
			SpinSpeed:      45,
			SpinAxis:       [3]float32{0, 1, 1},
		},
		Render: RenderConfig{
			ClearColor:    [4]float32{0.4, 0.6, 0.9, 1},
			ShowLights:    true,
			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports settings the viewer cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Camera.FoV <= 0 || c.Camera.FoV >= 180 {
		errs = append(errs, fmt.Errorf("camera fov %g must be in (0, 180)", c.Camera.FoV))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("camera clip planes %g..%g must satisfy 0 < near < far", c.Camera.Near, c.Camera.Far))
	}
	if c.EyePosition() == c.TargetPosition() {
		errs = append(errs, errors.New("camera eye and target coincide"))
	}
	return errors.Join(errs...)
}

func vec3(v [3]float32) math.Vec3 {
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

// EyePosition returns the camera eye as a vector.
func (c *Config) EyePosition() math.Vec3 { return vec3(c.Camera.Eye) }

// TargetPosition returns the camera target as a vector.
func (c *Config) TargetPosition() math.Vec3 { return vec3(c.Camera.Target) }

// UpVector returns the camera up vector.
func (c *Config) UpVector() math.Vec3 { return vec3(c.Camera.Up) }

// SpinAxis returns the normalized spin axis, or +Y if it is zero.
func (c *Config) SpinAxis() math.Vec3 {
	axis := vec3(c.Scene.SpinAxis).Normalize()
	if axis == (math.Vec3{}) {
		return math.Vec3{Y: 1}
	}
	return axis
}

// ClearColor returns the background color.
func (c *Config) ClearColor() math.Vec4 {
	cc := c.Render.ClearColor
	return math.Vec4{X: cc[0], Y: cc[1], Z: cc[2], W: cc[3]}
}
