package cli

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the optional YAML configuration of intervalctl. Flags given on
// the command line win over the file.
type Config struct {
	// Domain is the element domain: int, float, string, time or ip.
	Domain string `yaml:"domain"`
	// LogLevel is a logrus level name.
	LogLevel string `yaml:"logLevel"`
	// Sets are named sets in set notation, referenced as @name.
	Sets map[string]string `yaml:"sets"`
}

func defaultConfig() *Config {
	return &Config{
		Domain:   "int",
		LogLevel: "warn",
		Sets:     map[string]string{},
	}
}

// LoadConfig reads the YAML file at path over the defaults. An empty path
// returns the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	if _, ok := domains[cfg.Domain]; !ok {
		return nil, errors.Errorf("config %s: unknown domain %q", path, cfg.Domain)
	}
	if cfg.Sets == nil {
		cfg.Sets = map[string]string{}
	}
	return cfg, nil
}
