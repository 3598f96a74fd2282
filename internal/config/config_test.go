package config

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/scenegraph/pkg/math"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Window.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Window.Height)
	}
	if cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Window.VSync {
		t.Error("expected vsync to be true by default")
	}

	if cfg.Camera.FoV != 45 {
		t.Errorf("expected fov 45, got %g", cfg.Camera.FoV)
	}
	if cfg.Camera.Near != 0.1 || cfg.Camera.Far != 100 {
		t.Errorf("expected clip planes 0.1..100, got %g..%g", cfg.Camera.Near, cfg.Camera.Far)
	}
	if got := cfg.EyePosition(); got != (math.Vec3{Z: -10}) {
		t.Errorf("expected eye (0,0,-10), got %v", got)
	}

	if cfg.Scene.File != "" {
		t.Errorf("expected no scene file, got %s", cfg.Scene.File)
	}
	if !cfg.Scene.LeftHanded {
		t.Error("expected left-handed import by default")
	}
	if cfg.Scene.SpinSpeed != 45 {
		t.Errorf("expected spin 45 deg/s, got %g", cfg.Scene.SpinSpeed)
	}

	if cfg.Render.ScreenshotDir != "screenshots" {
		t.Errorf("expected screenshot dir 'screenshots', got %s", cfg.Render.ScreenshotDir)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  title: "Crate"
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false

camera:
  fov: 60
  near: 0.5
  far: 500
  eye: [0, 5, -20]
  target: [0, 1, 0]

scene:
  file: "models/crate.obj"
  left_handed: false
  spin_degrees_per_second: 0
  spin_axis: [1, 0, 0]

render:
  clear_color: [0, 0, 0, 1]
  show_lights: false

logging:
  level: "debug"
  log_file: "viewer.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Title != "Crate" {
		t.Errorf("expected title Crate, got %s", cfg.Window.Title)
	}
	if cfg.Window.Width != 1920 || cfg.Window.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if !cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Window.VSync {
		t.Error("expected vsync to be false")
	}

	if cfg.Camera.FoV != 60 {
		t.Errorf("expected fov 60, got %g", cfg.Camera.FoV)
	}
	if got := cfg.EyePosition(); got != (math.Vec3{Y: 5, Z: -20}) {
		t.Errorf("expected eye (0,5,-20), got %v", got)
	}
	if got := cfg.TargetPosition(); got != (math.Vec3{Y: 1}) {
		t.Errorf("expected target (0,1,0), got %v", got)
	}
	// Keys missing from the file keep their defaults.
	if got := cfg.UpVector(); got != (math.Vec3{Y: 1}) {
		t.Errorf("expected default up (0,1,0), got %v", got)
	}

	if cfg.Scene.File != "models/crate.obj" {
		t.Errorf("expected scene file models/crate.obj, got %s", cfg.Scene.File)
	}
	if cfg.Scene.LeftHanded {
		t.Error("expected left_handed to be false")
	}
	if cfg.Scene.SpinSpeed != 0 {
		t.Errorf("expected spin 0, got %g", cfg.Scene.SpinSpeed)
	}
	if got := cfg.SpinAxis(); got != (math.Vec3{X: 1}) {
		t.Errorf("expected spin axis (1,0,0), got %v", got)
	}

	if got := cfg.ClearColor(); got != (math.Vec4{W: 1}) {
		t.Errorf("expected black clear color, got %v", got)
	}
	if cfg.Render.ShowLights {
		t.Error("expected show_lights to be false")
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "viewer.log" {
		t.Errorf("expected log file 'viewer.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "window:\n  width: not a number\n  invalid syntax here\n"},
		{"short vector", "camera:\n  eye: [1, 2]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(tmpDir, tt.name+".yaml")
			if err := os.WriteFile(configPath, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}

			cfg := Default()
			if err := loadFromFile(cfg, configPath); err == nil {
				t.Error("expected error loading invalid YAML, got nil")
			}
		})
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }, "window size"},
		{"fov too wide", func(c *Config) { c.Camera.FoV = 180 }, "fov"},
		{"near behind far", func(c *Config) { c.Camera.Near = 200 }, "clip planes"},
		{"negative near", func(c *Config) { c.Camera.Near = -1 }, "clip planes"},
		{"eye on target", func(c *Config) { c.Camera.Eye = c.Camera.Target }, "coincide"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestSpinAxis(t *testing.T) {
	cfg := Default()
	axis := cfg.SpinAxis()
	if d := axis.Length() - 1; d > 1e-6 || d < -1e-6 {
		t.Errorf("expected unit spin axis, got %v", axis)
	}
	if axis.X != 0 || axis.Y != axis.Z {
		t.Errorf("expected normalized (0,1,1), got %v", axis)
	}

	cfg.Scene.SpinAxis = [3]float32{}
	if got := cfg.SpinAxis(); got != (math.Vec3{Y: 1}) {
		t.Errorf("expected +Y fallback for zero axis, got %v", got)
	}
}

func TestConfigDir(t *testing.T) {
	xdg := filepath.Join(t.TempDir(), "xdg")
	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Setenv("AppData", xdg)
	t.Setenv("HOME", t.TempDir())

	dir := ConfigDir()
	if dir == "" {
		t.Fatal("ConfigDir returned empty string")
	}
	if filepath.Base(dir) != "scenegraph" {
		t.Errorf("expected a scenegraph directory, got %s", dir)
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestLocate(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	t.Setenv(EnvConfigFile, "")
	os.Chdir(tmpDir)

	// No config file exists - should return empty
	if path := locate(""); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	userPath := filepath.Join(tmpDir, "xdg", "scenegraph", "config.yaml")
	if err := os.MkdirAll(filepath.Dir(userPath), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(userPath, []byte("window:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path := locate(""); path != userPath {
		t.Errorf("expected user config %s, got %s", userPath, path)
	}

	// The working directory wins over the user directory.
	if err := os.WriteFile("config.yaml", []byte("window:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path := locate(""); path != filepath.Join(".", "config.yaml") {
		t.Errorf("expected ./config.yaml, got %s", path)
	}

	// The environment beats the search, and an explicit path beats both,
	// even when it does not exist.
	t.Setenv(EnvConfigFile, "env.yaml")
	if path := locate(""); path != "env.yaml" {
		t.Errorf("expected env.yaml from %s, got %s", EnvConfigFile, path)
	}
	if path := locate("missing.yaml"); path != "missing.yaml" {
		t.Errorf("expected explicit path, got %s", path)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Scene.File = "teapot.obj"
	cfg.Camera.Eye = [3]float32{1, 2, 3}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if loaded.Scene.File != "teapot.obj" {
		t.Errorf("expected scene file teapot.obj, got %s", loaded.Scene.File)
	}
	if loaded.Camera.Eye != cfg.Camera.Eye {
		t.Errorf("expected eye %v, got %v", cfg.Camera.Eye, loaded.Camera.Eye)
	}
}

func parseFlags(t *testing.T, args ...string) *Flags {
	t.Helper()
	fs := flag.NewFlagSet("viewer", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse %v: %v", args, err)
	}
	return f
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		verify func(*testing.T, *Config)
	}{
		{
			name: "no flags",
			verify: func(t *testing.T, cfg *Config) {
				want := Default()
				if cfg.Window != want.Window || cfg.Camera != want.Camera || cfg.Scene != want.Scene {
					t.Errorf("expected defaults, got %+v", cfg)
				}
			},
		},
		{
			name: "debug flag",
			args: []string{"-debug"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
		},
		{
			name: "window flags",
			args: []string{"-fullscreen", "-width", "2560", "-height", "1440"},
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
				if cfg.Window.Width != 2560 || cfg.Window.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Window.Width, cfg.Window.Height)
				}
			},
		},
		{
			name: "fullscreen beats windowed",
			args: []string{"-windowed", "-fullscreen"},
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Window.Fullscreen {
					t.Error("expected fullscreen when both flags are given")
				}
			},
		},
		{
			name: "scene flags",
			args: []string{"-scene", "models/house.obj", "-rh", "-no-spin"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Scene.File != "models/house.obj" {
					t.Errorf("expected scene models/house.obj, got %s", cfg.Scene.File)
				}
				if cfg.Scene.LeftHanded {
					t.Error("expected right-handed import with -rh")
				}
				if cfg.Scene.SpinSpeed != 0 {
					t.Errorf("expected no spin, got %g", cfg.Scene.SpinSpeed)
				}
			},
		},
		{
			name: "camera flags",
			args: []string{"-fov", "60", "-eye", "1, 2,-3", "-target", "0,1,0"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Camera.FoV != 60 {
					t.Errorf("expected fov 60, got %g", cfg.Camera.FoV)
				}
				if got := cfg.EyePosition(); got != (math.Vec3{X: 1, Y: 2, Z: -3}) {
					t.Errorf("expected eye (1,2,-3), got %v", got)
				}
				if got := cfg.TargetPosition(); got != (math.Vec3{Y: 1}) {
					t.Errorf("expected target (0,1,0), got %v", got)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			parseFlags(t, tt.args...).apply(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestVectorFlagErrors(t *testing.T) {
	for _, arg := range []string{"1,2", "1,2,3,4", "1,x,3"} {
		fs := flag.NewFlagSet("viewer", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		RegisterFlags(fs)
		if err := fs.Parse([]string{"-eye", arg}); err == nil {
			t.Errorf("expected -eye %q to be rejected", arg)
		}
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1600
  height: 900
scene:
  file: "from_file.obj"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	f := parseFlags(t, "-config", configPath, "-width", "1920", "-scene", "from_flag.obj")
	cfg, err := Load(f)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width should be from flag (1920), not file (1600)
	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Window.Width)
	}
	// Height should be from file (900) since no flag override
	if cfg.Window.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Window.Height)
	}
	if cfg.Scene.File != "from_flag.obj" {
		t.Errorf("expected scene from flag, got %s", cfg.Scene.File)
	}
	// Untouched sections keep their defaults
	if cfg.Camera.FoV != 45 {
		t.Errorf("expected default fov 45, got %g", cfg.Camera.FoV)
	}
}

func TestLoadFromEnv(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "viewer.yaml")
	if err := os.WriteFile(configPath, []byte("window:\n  title: from env\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	t.Setenv(EnvConfigFile, configPath)

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Window.Title != "from env" {
		t.Errorf("expected title from env file, got %s", cfg.Window.Title)
	}
}

func TestLoadErrors(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name    string
		content string
		args    []string
		want    string
	}{
		{"invalid clip planes", "camera:\n  near: 10\n  far: 1\n", nil, "clip planes"},
		{"invalid after flags", "", []string{"-eye", "0,0,0"}, "coincide"},
		{"unknown key", "window:\n  widht: 800\n", nil, "widht"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(tmpDir, strings.ReplaceAll(tt.name, " ", "_")+".yaml")
			if err := os.WriteFile(configPath, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}

			f := parseFlags(t, append([]string{"-config", configPath}, tt.args...)...)
			_, err := Load(f)
			if err == nil {
				t.Fatal("expected an error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error mentioning %q, got %v", tt.want, err)
			}
			if !strings.Contains(err.Error(), configPath) {
				t.Errorf("expected error to name %s, got %v", configPath, err)
			}
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	f := parseFlags(t, "-config", filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := Load(f); err == nil {
		t.Error("expected a missing -config file to be an error")
	}
}
