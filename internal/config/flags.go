package config

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
)

// Flags holds command-line overrides. Zero values leave the loaded
// configuration alone.
type Flags struct {
	ConfigFile string
	Debug      bool

	// Window
	Fullscreen bool
	Windowed   bool
	Width      int
	Height     int

	// Scene and camera
	Scene       string
	RightHanded bool
	NoSpin      bool
	FoV         float64
	Eye         *[3]float32
	Target      *[3]float32
}

// RegisterFlags defines the viewer flags on fs and returns where their
// values land after fs.Parse.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.ConfigFile, "config", "", "Path to config file (default: $SCENEGRAPH_CONFIG, ./config.yaml, then the user config dir)")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")

	fs.BoolVar(&f.Fullscreen, "fullscreen", false, "Run in fullscreen mode")
	fs.BoolVar(&f.Windowed, "windowed", false, "Run in windowed mode")
	fs.IntVar(&f.Width, "width", 0, "Window width")
	fs.IntVar(&f.Height, "height", 0, "Window height")

	fs.StringVar(&f.Scene, "scene", "", "Model file to load; empty shows a cube")
	fs.BoolVar(&f.RightHanded, "rh", false, "Import the model as right-handed, without mirroring Z")
	fs.BoolVar(&f.NoSpin, "no-spin", false, "Keep the model still")
	fs.Float64Var(&f.FoV, "fov", 0, "Vertical field of view in degrees")
	fs.Func("eye", "Camera position as x,y,z", vec3Flag(&f.Eye))
	fs.Func("target", "Camera target as x,y,z", vec3Flag(&f.Target))
	return f
}

func vec3Flag(dst **[3]float32) func(string) error {
	return func(s string) error {
		parts := strings.Split(s, ",")
		if len(parts) != 3 {
			return fmt.Errorf("want x,y,z, got %q", s)
		}
		var v [3]float32
		for i, p := range parts {
			c, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
			if err != nil {
				return fmt.Errorf("component %d: %w", i, err)
			}
			v[i] = float32(c)
		}
		*dst = &v
		return nil
	}
}

// apply writes the overrides into cfg. Fullscreen beats windowed when both
// are given.
func (f *Flags) apply(cfg *Config) {
	if f.Debug {
		cfg.Logging.Level = "debug"
	}

	switch {
	case f.Fullscreen:
		cfg.Window.Fullscreen = true
	case f.Windowed:
		cfg.Window.Fullscreen = false
	}
	if f.Width > 0 {
		cfg.Window.Width = f.Width
	}
	if f.Height > 0 {
		cfg.Window.Height = f.Height
	}

	if f.Scene != "" {
		cfg.Scene.File = f.Scene
	}
	if f.RightHanded {
		cfg.Scene.LeftHanded = false
	}
	if f.NoSpin {
		cfg.Scene.SpinSpeed = 0
	}
	if f.FoV > 0 {
		cfg.Camera.FoV = float32(f.FoV)
	}
	if f.Eye != nil {
		cfg.Camera.Eye = *f.Eye
	}
	if f.Target != nil {
		cfg.Camera.Target = *f.Target
	}
}
