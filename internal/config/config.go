// Package config handles the optional chip8vm.toml configuration file.
package config

import (
	"os"
	"strings"
	"time"

	"chip8vm/internal/display"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// DefaultFile is read from the working directory when no file is named.
const DefaultFile = "chip8vm.toml"

// Backend names.
const (
	BackendPixel    = "pixel"
	BackendSDL      = "sdl"
	BackendTerminal = "terminal"
)

// Config represents a chip8vm.toml file.
type Config struct {
	Display Display `toml:"display"`
	Timing  Timing  `toml:"timing"`
	Quirks  Quirks  `toml:"quirks"`
	Random  Random  `toml:"random"`
}

// Display configures the plane and how it is shown.
type Display struct {
	Geometry string `toml:"geometry"`
	Backend  string `toml:"backend"`
	Scale    int    `toml:"scale"`
}

// Timing configures the instruction clock.
type Timing struct {
	// TickMicros is the instruction clock period in microseconds.
	TickMicros int  `toml:"tick_us"`
	Sleep      bool `toml:"sleep"`
}

// Quirks selects between historically divergent instruction behaviours.
type Quirks struct {
	ShiftInPlace bool `toml:"shift_in_place"`
}

// Random configures the CXNN source. Zero seeds from the clock.
type Random struct {
	Seed int64 `toml:"seed"`
}

// Default returns the configuration of the classic interpreter.
func Default() Config {
	return Config{
		Display: Display{
			Geometry: display.Standard.String(),
			Backend:  BackendPixel,
			Scale:    10,
		},
		Timing: Timing{
			TickMicros: 1428,
		},
	}
}

// Load parses the file at path on top of the defaults. An empty path loads
// DefaultFile if it exists and returns the defaults otherwise. The result is
// not validated, command line overrides are applied first.
func Load(path string) (Config, error) {
	cfg := Default()

	optional := path == ""
	if optional {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if optional && os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrapf(err, "cannot read %s", path)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse error in %s", path)
	}

	return cfg, nil
}

// Validate checks the values that cannot be used as they are.
func (c *Config) Validate() error {
	if _, err := display.ParseGeometry(c.Display.Geometry); err != nil {
		return err
	}

	c.Display.Backend = strings.ToLower(c.Display.Backend)
	switch c.Display.Backend {
	case BackendPixel, BackendSDL, BackendTerminal:
	default:
		return errors.Errorf("unsupported backend %q, valid options: %s, %s, %s",
			c.Display.Backend, BackendPixel, BackendSDL, BackendTerminal)
	}

	if c.Display.Scale <= 0 {
		return errors.Errorf("display scale must be positive, got %d", c.Display.Scale)
	}
	if c.Timing.TickMicros <= 0 {
		return errors.Errorf("tick_us must be positive, got %d", c.Timing.TickMicros)
	}
	return nil
}

// Geometry returns the parsed display geometry. Call Validate first.
func (c Config) Geometry() display.Geometry {
	g, _ := display.ParseGeometry(c.Display.Geometry)
	return g
}

// Tick returns the instruction clock period.
func (c Config) Tick() time.Duration {
	return time.Duration(c.Timing.TickMicros) * time.Microsecond
}
