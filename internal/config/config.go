// Package config loads busybox settings from an optional YAML file.
//
// Files are decoded over Default(), so a file only needs the keys it
// changes, then checked against the embedded CUE schema:
//
//	database: ./busybox.db
//	namespace: cntrPrefs
//	locale: de-DE
//	timezone: Europe/Berlin
//	shake:
//	  debounce_ms: 100
//	  threshold: 800
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"
	_ "time/tzdata" // timezone names resolve without system zoneinfo

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/roach88/busybox/internal/motion"
	"github.com/roach88/busybox/internal/prefs"
)

//go:embed schema.cue
var schemaCUE string

// DefaultDatabase is the database path used when none is configured.
const DefaultDatabase = "busybox.db"

// Config is the full set of user settings.
type Config struct {
	Database  string `yaml:"database" json:"database"`
	Namespace string `yaml:"namespace" json:"namespace"`
	Locale    string `yaml:"locale" json:"locale"`
	Timezone  string `yaml:"timezone" json:"timezone"`
	Shake     Shake  `yaml:"shake" json:"shake"`
}

// Shake tunes the shake detector.
type Shake struct {
	DebounceMS int     `yaml:"debounce_ms" json:"debounce_ms"`
	Threshold  float64 `yaml:"threshold" json:"threshold"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Database:  DefaultDatabase,
		Namespace: prefs.DefaultNamespace,
		Locale:    "en",
		Timezone:  "UTC",
		Shake: Shake{
			DebounceMS: int(motion.DefaultDebounce / time.Millisecond),
			Threshold:  motion.DefaultThreshold,
		},
	}
}

// Load reads the YAML file at path over Default() and validates the result.
// An empty path returns Default().
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks cfg against the CUE schema, then checks that the timezone
// resolves.
func (c Config) Validate() error {
	cuectx := cuecontext.New()
	schema := cuectx.CompileString(schemaCUE).LookupPath(cue.ParsePath("#Config"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}

	v := schema.Unify(cuectx.Encode(c))
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves Timezone. An empty timezone is UTC.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Motion returns the detector tuning.
func (c Config) Motion() motion.Config {
	return motion.Config{
		Debounce:  time.Duration(c.Shake.DebounceMS) * time.Millisecond,
		Threshold: c.Shake.Threshold,
	}
}
