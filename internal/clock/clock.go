// Package clock drives the interpreter from two independent cadences: the
// instruction clock, which runs one instruction per configurable period, and
// the frame clock, which runs at 60 Hz to decrement the timers and present
// the display when it changed.
//
// Both clocks are checked on every iteration of a single loop. Neither
// clock's rate affects the other.
package clock

import (
	"context"
	"time"

	"chip8vm/internal/display"

	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/log"
)

const (
	// FramePeriod is the period of the 60 Hz frame clock.
	FramePeriod = 16666 * time.Microsecond

	// DefaultTick runs roughly 700 instructions per second.
	DefaultTick = 1428 * time.Microsecond

	// maxLag is the number of periods a clock may fall behind before it is
	// resynchronised instead of catching up.
	maxLag = 4
)

// Machine is the interpreter being driven.
type Machine interface {
	Step() error
	TickTimers()
	Plane() *display.Plane
}

// Backend presents the display and pumps host events.
type Backend interface {
	// Present shows the plane. It is only called when the plane is dirty.
	Present(plane *display.Plane) error
	// Poll processes pending host events. It returns false once the user
	// asked to quit.
	Poll() bool
}

// Config of the coordinator. Zero values select the defaults.
type Config struct {
	Tick  time.Duration
	Frame time.Duration

	// Sleep waits for the next deadline instead of spinning.
	Sleep bool

	Now      func() time.Time
	SleepFor func(time.Duration)

	Logger *log.Logger
}

// Coordinator runs a Machine against a Backend.
type Coordinator struct {
	tick  time.Duration
	frame time.Duration
	sleep bool

	now      func() time.Time
	sleepFor func(time.Duration)

	machine Machine
	backend Backend
	logger  *log.Logger

	instructions uint64
	frames       uint64
}

// New returns a coordinator for machine and backend.
func New(cfg Config, machine Machine, backend Backend) *Coordinator {
	c := &Coordinator{
		tick:     cfg.Tick,
		frame:    cfg.Frame,
		sleep:    cfg.Sleep,
		now:      cfg.Now,
		sleepFor: cfg.SleepFor,
		machine:  machine,
		backend:  backend,
		logger:   cfg.Logger,
	}
	if c.tick <= 0 {
		c.tick = DefaultTick
	}
	if c.frame <= 0 {
		c.frame = FramePeriod
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.sleepFor == nil {
		c.sleepFor = time.Sleep
	}
	return c
}

// Instructions returns the number of instruction clock ticks so far.
func (c *Coordinator) Instructions() uint64 { return c.instructions }

// Frames returns the number of frame clock ticks so far.
func (c *Coordinator) Frames() uint64 { return c.frames }

// Run loops until the context is cancelled, the backend asks to quit or the
// machine faults. A fault halts both clocks and is returned.
func (c *Coordinator) Run(ctx context.Context) error {
	if c.logger != nil {
		c.logger.Debug("Starting clocks",
			log.String("tick", c.tick.String()),
			log.String("frame", c.frame.String()),
			log.String("wait", c.waitMode()))
	}

	done := ctx.Done()
	start := c.now()
	lastTick, lastFrame := start, start

	for {
		select {
		case <-done:
			return ctx.Err()
		default:
		}

		now := c.now()

		if now.Sub(lastFrame) >= c.frame {
			lastFrame = advanceClock(lastFrame, now, c.frame)
			if err := c.onFrame(); err != nil {
				return err
			}
			if !c.backend.Poll() {
				return nil
			}
		}

		if now.Sub(lastTick) >= c.tick {
			lastTick = advanceClock(lastTick, now, c.tick)
			c.instructions++
			if err := c.machine.Step(); err != nil {
				if c.logger != nil {
					c.logger.Error("Interpreter halted", log.Err(err))
				}
				return err
			}
		}

		if c.sleep {
			c.wait(now, lastTick.Add(c.tick), lastFrame.Add(c.frame))
		}
	}
}

// onFrame decrements the timers and presents the plane if it changed.
func (c *Coordinator) onFrame() error {
	c.frames++
	c.machine.TickTimers()

	plane := c.machine.Plane()
	if !plane.Dirty() {
		return nil
	}
	if err := c.backend.Present(plane); err != nil {
		return errors.Wrap(err, "presenting display")
	}
	plane.ClearDirty()
	return nil
}

// wait sleeps until the earlier of the two deadlines.
func (c *Coordinator) wait(now, nextTick, nextFrame time.Time) {
	next := nextTick
	if nextFrame.Before(next) {
		next = nextFrame
	}
	if d := next.Sub(now); d > 0 {
		c.sleepFor(d)
	}
}

func (c *Coordinator) waitMode() string {
	if c.sleep {
		return "sleep"
	}
	return "spin"
}

// advanceClock moves a clock forward by one whole period so that rounding
// never accumulates. A clock that fell too far behind restarts from now.
func advanceClock(last, now time.Time, period time.Duration) time.Time {
	next := last.Add(period)
	if now.Sub(next) > maxLag*period {
		return now
	}
	return next
}
