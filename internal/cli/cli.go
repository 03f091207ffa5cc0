// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"io"

	"chip8vm/internal/config"
)

// Options are the parsed command line options. Values of configuration flags
// only override the configuration file when the flag was given.
type Options struct {
	Program string
	Config  string

	Debug bool
	Quiet bool
	Trace bool

	geometry     string
	backend      string
	scale        int
	tick         int
	sleep        bool
	shiftInPlace bool
	seed         int64

	set map[string]bool
}

// ParseFlags parses the arguments following the program name.
func ParseFlags(name string, args []string, output io.Writer) (Options, error) {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(output)

	var opts Options
	readOptionFlags(flags, &opts)

	err := flags.Parse(args)
	if err != nil {
		return opts, &UsageError{flags: flags, output: output, msg: err.Error()}
	}

	rest := flags.Args()
	switch {
	case len(rest) == 0:
		return opts, &UsageError{flags: flags, output: output, msg: "no program file given"}
	case len(rest) > 1:
		return opts, &UsageError{flags: flags, output: output,
			msg: fmt.Sprintf("unexpected argument %s, options must precede the program file", rest[1])}
	}
	opts.Program = rest[0]

	opts.set = make(map[string]bool)
	flags.Visit(func(f *flag.Flag) {
		opts.set[f.Name] = true
	})

	return opts, nil
}

// Apply copies the given configuration flags onto cfg.
func (o Options) Apply(cfg *config.Config) {
	if o.set["geometry"] {
		cfg.Display.Geometry = o.geometry
	}
	if o.set["backend"] {
		cfg.Display.Backend = o.backend
	}
	if o.set["scale"] {
		cfg.Display.Scale = o.scale
	}
	if o.set["tick"] {
		cfg.Timing.TickMicros = o.tick
	}
	if o.set["sleep"] {
		cfg.Timing.Sleep = o.sleep
	}
	if o.set["shift-in-place"] {
		cfg.Quirks.ShiftInPlace = o.shiftInPlace
	}
	if o.set["seed"] {
		cfg.Random.Seed = o.seed
	}
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags  *flag.FlagSet
	output io.Writer
	msg    string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Fprintf(e.output, "usage: %s [options] <program file>\n\n", e.flags.Name())
	e.flags.PrintDefaults()
	fmt.Fprintln(e.output)
}

func readOptionFlags(flags *flag.FlagSet, opts *Options) {
	flags.StringVar(&opts.Config, "config", "", "configuration file, "+config.DefaultFile+" is used if present")
	flags.StringVar(&opts.geometry, "geometry", "", "display geometry (standard/extended)")
	flags.StringVar(&opts.backend, "backend", "", "presentation backend (pixel/sdl/terminal)")
	flags.IntVar(&opts.scale, "scale", 0, "window pixels per display pixel")
	flags.IntVar(&opts.tick, "tick", 0, "instruction clock period in microseconds")
	flags.BoolVar(&opts.sleep, "sleep", false, "sleep between clock deadlines instead of spinning")
	flags.BoolVar(&opts.shiftInPlace, "shift-in-place", false, "shift VX in place for 8XY6 and 8XYE instead of copying VY first")
	flags.Int64Var(&opts.seed, "seed", 0, "seed of the random number source, 0 seeds from the clock")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debug logging")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, implies -debug")
	flags.BoolVar(&opts.Quiet, "q", false, "only log errors")
}
