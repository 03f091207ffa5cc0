package clock

import (
	"context"
	"testing"
	"time"

	"chip8vm/internal/chip8"
	"chip8vm/internal/display"
	"chip8vm/internal/keypad"

	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// fakeClock advances by step on every reading and cancels the run once limit
// has elapsed.
type fakeClock struct {
	origin time.Time
	now    time.Time
	step   time.Duration
	limit  time.Duration
	cancel context.CancelFunc
}

func newFakeClock(step, limit time.Duration, cancel context.CancelFunc) *fakeClock {
	origin := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	return &fakeClock{origin: origin, now: origin, step: step, limit: limit, cancel: cancel}
}

func (f *fakeClock) Now() time.Time {
	f.now = f.now.Add(f.step)
	if f.now.Sub(f.origin) > f.limit {
		f.cancel()
	}
	return f.now
}

func (f *fakeClock) Sleep(d time.Duration) {
	f.now = f.now.Add(d)
}

type fakeMachine struct {
	plane  *display.Plane
	steps  int
	timers int
	drawAt int
	failAt int
}

var errBoom = errors.New("boom")

func (m *fakeMachine) Step() error {
	m.steps++
	if m.steps == m.drawAt {
		m.plane.Draw([]byte{0x80}, 0, 0)
	}
	if m.steps == m.failAt {
		return errBoom
	}
	return nil
}

func (m *fakeMachine) TickTimers()           { m.timers++ }
func (m *fakeMachine) Plane() *display.Plane { return m.plane }

type recorder struct {
	presents  int
	polls     int
	quitAfter int
}

func (r *recorder) Present(*display.Plane) error {
	r.presents++
	return nil
}

func (r *recorder) Poll() bool {
	r.polls++
	return r.quitAfter == 0 || r.polls < r.quitAfter
}

func runFor(t *testing.T, cfg Config, m Machine, b Backend, limit time.Duration) (*Coordinator, error) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fc := newFakeClock(50*time.Microsecond, limit, cancel)
	cfg.Now = fc.Now
	cfg.SleepFor = fc.Sleep
	cfg.Logger = log.NewTestLogger(t)

	c := New(cfg, m, b)
	return c, c.Run(ctx)
}

func TestFrameClockIndependentOfTick(t *testing.T) {
	m := &fakeMachine{plane: display.NewPlane(display.Standard)}

	c, err := runFor(t, Config{Tick: time.Second}, m, &recorder{}, time.Second)
	assert.True(t, errors.Is(err, context.Canceled))

	assert.True(t, c.Frames() >= 59 && c.Frames() <= 61)
	assert.Equal(t, int(c.Frames()), m.timers)
	assert.True(t, m.steps <= 1)
}

func TestInstructionRate(t *testing.T) {
	m := &fakeMachine{plane: display.NewPlane(display.Standard)}

	c, _ := runFor(t, Config{Tick: DefaultTick}, m, &recorder{}, time.Second)

	assert.True(t, m.steps >= 698 && m.steps <= 702)
	assert.Equal(t, int(c.Instructions()), m.steps)
	assert.True(t, c.Frames() >= 59 && c.Frames() <= 61)
}

func TestSleepMode(t *testing.T) {
	m := &fakeMachine{plane: display.NewPlane(display.Standard)}

	c, _ := runFor(t, Config{Tick: 10 * time.Millisecond, Sleep: true}, m, &recorder{}, time.Second)

	assert.True(t, m.steps >= 99 && m.steps <= 101)
	assert.True(t, c.Frames() >= 59 && c.Frames() <= 61)
}

func TestPresentOnlyWhenDirty(t *testing.T) {
	m := &fakeMachine{plane: display.NewPlane(display.Standard), drawAt: 3}
	b := &recorder{}

	c, _ := runFor(t, Config{}, m, b, 500*time.Millisecond)

	assert.True(t, c.Frames() > 10)
	assert.Equal(t, 1, b.presents)
	assert.False(t, m.plane.Dirty())
}

func TestFaultHalts(t *testing.T) {
	m := &fakeMachine{plane: display.NewPlane(display.Standard), failAt: 100}

	c, err := runFor(t, Config{}, m, &recorder{}, time.Second)

	assert.True(t, errors.Is(err, errBoom))
	assert.Equal(t, 100, m.steps)
	assert.Equal(t, uint64(100), c.Instructions())
}

func TestBackendQuit(t *testing.T) {
	m := &fakeMachine{plane: display.NewPlane(display.Standard)}
	b := &recorder{quitAfter: 5}

	c, err := runFor(t, Config{}, m, b, time.Second)

	assert.NoError(t, err)
	assert.Equal(t, uint64(5), c.Frames())
}

func TestKeyWaitKeepsFramesRunning(t *testing.T) {
	keys := &keypad.State{}
	plane := display.NewPlane(display.Standard)
	cpu := chip8.New(chip8.Config{}, plane, keys)
	// LD V0, K then JP 202
	assert.NoError(t, cpu.LoadProgram([]byte{0xF0, 0x0A, 0x12, 0x02}))
	cpu.DT = 100

	c, _ := runFor(t, Config{}, cpu, &recorder{}, 500*time.Millisecond)

	assert.Equal(t, uint16(0x200), cpu.PC)
	assert.True(t, c.Instructions() > 300)
	assert.Equal(t, uint8(100-c.Frames()), cpu.DT)
}

func TestAdvanceClock(t *testing.T) {
	base := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	period := 10 * time.Millisecond

	next := advanceClock(base, base.Add(12*time.Millisecond), period)
	assert.Equal(t, base.Add(period), next)

	now := base.Add(time.Second)
	assert.Equal(t, now, advanceClock(base, now, period))
}
