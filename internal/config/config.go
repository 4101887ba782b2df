package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/coreman2200/easelab/internal/curve"
)

// Debugger configures the websocket debugger.
type Debugger struct {
	Addr string `yaml:"addr"`
	FPS  int    `yaml:"fps"`
}

// Config is the on-disk configuration shared by the commands.
type Config struct {
	LogLevel string `yaml:"log_level"` // zerolog level name

	Debugger Debugger `yaml:"debugger"`

	Samples         int    `yaml:"samples"`           // points per sampled curve
	BezierTableSize int    `yaml:"bezier_table_size"` // x samples per Bezier curve
	ProfilesPath    string `yaml:"profiles_path,omitempty"`
	ProgramPath     string `yaml:"program_path,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		LogLevel:        "info",
		Debugger:        Debugger{Addr: ":8080", FPS: 60},
		Samples:         200,
		BezierTableSize: curve.DefaultBezierTableSize,
	}
}

// Load reads path over the defaults, so a partial file is fine.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Save writes c to path as YAML.
func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
