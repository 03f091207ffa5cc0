package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"chip8vm/internal/config"

	"github.com/retroenv/retrogolib/assert"
)

func TestParseFlags(t *testing.T) {
	var out bytes.Buffer
	opts, err := ParseFlags("chip8vm", []string{"-geometry", "extended", "-tick", "2000", "-shift-in-place", "-trace", "pong.ch8"}, &out)
	assert.NoError(t, err)
	assert.Equal(t, "pong.ch8", opts.Program)
	assert.True(t, opts.Trace)

	cfg := config.Default()
	cfg.Display.Backend = config.BackendSDL
	opts.Apply(&cfg)

	assert.Equal(t, "extended", cfg.Display.Geometry)
	assert.Equal(t, 2000, cfg.Timing.TickMicros)
	assert.True(t, cfg.Quirks.ShiftInPlace)
	// flags that were not given leave the configuration alone
	assert.Equal(t, config.BackendSDL, cfg.Display.Backend)
	assert.Equal(t, 10, cfg.Display.Scale)
}

func TestFlagsOverrideInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chip8vm.toml")
	content := "[display]\nbackend = \"x11\"\ngeometry = \"vga\"\n"
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	var out bytes.Buffer
	opts, err := ParseFlags("chip8vm", []string{"-config", path, "-backend", "sdl", "-geometry", "standard", "pong.ch8"}, &out)
	assert.NoError(t, err)

	cfg, err := config.Load(opts.Config)
	assert.NoError(t, err)
	assert.Error(t, cfg.Validate())

	cfg, err = config.Load(opts.Config)
	assert.NoError(t, err)
	opts.Apply(&cfg)
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, config.BackendSDL, cfg.Display.Backend)
}

func TestParseFlagsUsage(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no program", []string{"-debug"}},
		{"unknown flag", []string{"-bogus", "pong.ch8"}},
		{"flag after program", []string{"pong.ch8", "-debug"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			_, err := ParseFlags("chip8vm", tt.args, &out)
			assert.Error(t, err)

			var usageErr *UsageError
			assert.True(t, errors.As(err, &usageErr))

			out.Reset()
			usageErr.ShowUsage()
			assert.Contains(t, out.String(), "usage: chip8vm [options] <program file>")
			assert.Contains(t, out.String(), "-shift-in-place")
		})
	}
}
