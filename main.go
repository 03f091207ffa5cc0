// Package main implements the chip8vm interpreter command.
package main

import (
	"context"
	"math/rand"
	"os"

	"chip8vm/internal/backend/pixelui"
	"chip8vm/internal/backend/sdlui"
	"chip8vm/internal/backend/termui"
	"chip8vm/internal/chip8"
	"chip8vm/internal/cli"
	"chip8vm/internal/clock"
	"chip8vm/internal/config"
	"chip8vm/internal/display"
	"chip8vm/internal/keypad"

	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

// host is a presentation backend that also provides the keypad.
type host interface {
	clock.Backend
	keypad.Keypad
	Close()
}

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags(os.Args[0], os.Args[1:], os.Stderr)
	if err != nil {
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			usageErr.ShowUsage()
		}
		logger := config.CreateLogger(false, false)
		logger.Error("Invalid arguments", log.Err(err))
		os.Exit(2)
	}

	logger := config.CreateLogger(opts.Debug || opts.Trace, opts.Quiet)

	cfg, err := config.Load(opts.Config)
	if err != nil {
		logger.Fatal(err.Error())
	}
	opts.Apply(&cfg)
	if err := cfg.Validate(); err != nil {
		logger.Fatal(err.Error())
	}

	program, err := os.ReadFile(opts.Program)
	if err != nil {
		logger.Fatal(errors.Wrap(err, "reading program").Error())
	}

	// the terminal backend shares the terminal with the log output
	if cfg.Display.Backend == config.BackendTerminal && !opts.Debug && !opts.Trace {
		logger = config.CreateLogger(false, true)
	}

	logger.Info("Starting interpreter",
		log.String("program", opts.Program),
		log.Int("size", len(program)),
		log.String("geometry", cfg.Geometry().String()),
		log.String("backend", cfg.Display.Backend),
		log.String("tick", cfg.Tick().String()))

	run := func() {
		err = runProgram(ctx, logger, cfg, opts.Trace, program)
	}
	if cfg.Display.Backend == config.BackendPixel {
		pixelui.Run(run)
	} else {
		run()
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Execution failed", log.Err(err))
		os.Exit(1)
	}
}

// runProgram loads program into a new interpreter and runs it until it
// faults or the user quits.
func runProgram(ctx context.Context, logger *log.Logger, cfg config.Config, trace bool, program []byte) error {
	plane := display.NewPlane(cfg.Geometry())

	h, err := openHost(cfg)
	if err != nil {
		return err
	}
	defer h.Close()

	var rng *rand.Rand
	if cfg.Random.Seed != 0 {
		rng = rand.New(rand.NewSource(cfg.Random.Seed))
	}

	cpu := chip8.New(chip8.Config{
		ShiftInPlace: cfg.Quirks.ShiftInPlace,
		Rand:         rng,
		Logger:       logger,
		Trace:        trace,
	}, plane, h)

	if err := cpu.LoadProgram(program); err != nil {
		return err
	}

	coordinator := clock.New(clock.Config{
		Tick:   cfg.Tick(),
		Sleep:  cfg.Timing.Sleep,
		Logger: logger,
	}, cpu, h)

	err = coordinator.Run(ctx)
	logger.Debug("Interpreter stopped",
		log.Int("instructions", int(coordinator.Instructions())),
		log.Int("frames", int(coordinator.Frames())))
	return err
}

func openHost(cfg config.Config) (host, error) {
	var (
		h   host
		err error
	)
	switch cfg.Display.Backend {
	case config.BackendSDL:
		h, err = sdlui.New(cfg.Geometry(), cfg.Display.Scale)
	case config.BackendTerminal:
		h, err = termui.New()
	default:
		h, err = pixelui.New(cfg.Geometry(), cfg.Display.Scale)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s backend", cfg.Display.Backend)
	}
	return h, nil
}
