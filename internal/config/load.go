package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EnvConfigFile names a config file when -config is not given.
const EnvConfigFile = "SCENEGRAPH_CONFIG"

const fileName = "config.yaml"

// Load builds the configuration from defaults, then the config file, then
// flags. A nil f means no flags. The merged result must pass Validate; the
// error names the file it came from.
func Load(f *Flags) (*Config, error) {
	if f == nil {
		f = &Flags{}
	}

	cfg := Default()
	source := "defaults"
	if path := locate(f.ConfigFile); path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
		source = path
	}

	f.apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config (%s with flags): %w", source, err)
	}
	return cfg, nil
}

// locate picks the config file: an explicit path, then $SCENEGRAPH_CONFIG,
// then the first existing search path. Explicit paths are returned even if
// missing so that loading reports the error.
func locate(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv(EnvConfigFile); env != "" {
		return env
	}
	for _, path := range searchPaths() {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func searchPaths() []string {
	paths := []string{filepath.Join(".", fileName)}
	if dir := ConfigDir(); dir != "" {
		paths = append(paths, filepath.Join(dir, fileName))
	}
	return paths
}

// ConfigDir returns the per-user directory for viewer settings, or "" when
// the OS reports none.
func ConfigDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "scenegraph")
}

// loadFromFile merges the YAML file at path over cfg. Unknown keys are
// errors so that typos do not pass silently.
func loadFromFile(cfg *Config, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	dec := yaml.NewDecoder(file)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
