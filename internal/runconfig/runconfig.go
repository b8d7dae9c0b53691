// Package runconfig loads the YAML configuration shared by the cmd/
// drivers (fibonacci, quicksort, selectdemo), following the same
// read-file/unmarshal/validate shape as a teacher HTTP service's config
// loader.
package runconfig

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/example/uconc/internal/xlog"
)

// Driver holds the settings common to every example driver: logging and a
// generic worker-count/pacing knob. Drivers embed this alongside their own
// fields.
type Driver struct {
	Logging xlog.Config `yaml:"logging"`
	Workers int         `yaml:"workers"`
	// RatePerSecond paces producer sends through internal/pacer. ApplyDefaults
	// replaces a value of 0 or below with 50, so pacing cannot be disabled.
	RatePerSecond float64       `yaml:"rate_per_second"`
	Burst         int           `yaml:"burst"`
	Timeout       time.Duration `yaml:"timeout"`
}

// Load reads and parses the YAML file at path into cfg. It applies no
// defaults; callers call ApplyDefaults afterwards.
func Load(path string, cfg any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("runconfig: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("runconfig: parse %s: %w", path, err)
	}
	return nil
}

// ApplyDefaults fills in zero-valued Driver fields with sane
// standalone defaults, so a minimal YAML file (or none at all) still runs.
func (d *Driver) ApplyDefaults() {
	if d.Logging.Level == "" {
		d.Logging.Level = "info"
	}
	if d.Logging.Format == "" {
		d.Logging.Format = "console"
	}
	if d.Workers <= 0 {
		d.Workers = 8
	}
	if d.RatePerSecond <= 0 {
		d.RatePerSecond = 50
	}
	if d.Burst <= 0 {
		d.Burst = d.Workers
	}
	if d.Timeout <= 0 {
		d.Timeout = 30 * time.Second
	}
}
