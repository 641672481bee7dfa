// Package config holds the file-based configuration for tools embedding
// the openings library.
package config

import (
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

type S3Config struct {
	Bucket string `yaml:"bucket"`
	Region string `yaml:"region"`
}

type Config struct {
	// OpeningsLogPath is the storage key (or path, for the disk source)
	// of the openings log.
	OpeningsLogPath string `yaml:"openings_log_path"`
	// Timezone is the IANA zone name log timestamps are localized to.
	Timezone string `yaml:"timezone"`
	// RecoveryMinutes is the default recovery window after an opening.
	RecoveryMinutes int `yaml:"recovery_minutes"`
	// Strict fails a load on the first malformed line instead of
	// skipping it.
	Strict bool     `yaml:"strict"`
	Source string   `yaml:"source"` // disk, s3 or memory
	S3     S3Config `yaml:"s3"`
}

func Default() Config {
	return Config{
		OpeningsLogPath: "openings.txt",
		Timezone:        "CET",
		RecoveryMinutes: 60,
		Source:          "disk",
	}
}

// Load reads a YAML config file, filling unset fields with defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "can not read config %s", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "can not parse config %s", path)
	}
	if _, err := cfg.Location(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Location resolves the configured timezone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, errors.Wrapf(err, "unknown timezone %q", c.Timezone)
	}
	return loc, nil
}

// Recovery returns the configured recovery window as a duration.
func (c Config) Recovery() time.Duration {
	return time.Duration(c.RecoveryMinutes) * time.Minute
}
