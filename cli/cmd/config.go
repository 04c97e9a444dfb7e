package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFilename = "protocode.yaml"

type Config struct {
	Exclude     []string `yaml:"exclude"`
	Concurrency int      `yaml:"concurrency"`
	Format      string   `yaml:"format"`
}

// LoadConfig reads protocode.yaml from dir. The file is optional; without
// it the zero Config is returned.
func LoadConfig(dir string) (Config, error) {
	var result Config

	yamlFile, err := os.ReadFile(filepath.Join(dir, configFilename))
	if errors.Is(err, os.ErrNotExist) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(yamlFile, &result); err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", configFilename, err)
	}
	if result.Format != "" && !isKnownFormat(result.Format) {
		return Config{}, fmt.Errorf("invalid %s: unknown format %q", configFilename, result.Format)
	}
	if result.Concurrency < 0 {
		return Config{}, fmt.Errorf("invalid %s: concurrency must be positive", configFilename)
	}
	return result, nil
}
