package config

import (
	"os"

	"github.com/goccy/go-yaml"
	"github.com/habiliai/memorybank/errors"
)

type Config struct {
	Log    *LogConfig    `json:"log" yaml:"log"`
	Memory *MemoryConfig `json:"memory" yaml:"memory"`
	Model  *ModelConfig  `json:"model" yaml:"model"`
	Server *ServerConfig `json:"server" yaml:"server"`
}

func NewConfig() *Config {
	return &Config{
		Log:    NewLogConfig(),
		Memory: NewMemoryConfig(),
		Model:  NewModelConfig(),
		Server: NewServerConfig(),
	}
}

// LoadFromFile overlays values from a YAML config file onto the defaults.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read config file: %s", path)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return errors.Wrapf(err, "failed to unmarshal config file: %s", path)
	}

	return nil
}
