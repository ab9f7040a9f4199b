package engine

import (
	"log/slog"
	"time"

	"github.com/tartampluch/nepal-clock/internal/config"
)

// SchedulerState is the lifecycle state of a TickScheduler.
type SchedulerState int

const (
	// Idle means no timer is armed.
	Idle SchedulerState = iota
	// Running means a single-shot timer is armed for the next tick.
	Running
)

func (s SchedulerState) String() string {
	if s == Running {
		return "running"
	}
	return "idle"
}

// Timer is the handle of an armed single-shot timer.
type Timer interface {
	Stop() bool
}

// AfterFunc arms a single-shot timer calling f after d.
// Production code must deliver f on the UI thread.
type AfterFunc func(d time.Duration, f func()) Timer

// TickHandler is invoked on every tick with the new status phase.
// A returned error is logged and the tick is skipped; the cadence continues.
type TickHandler func(phase bool) error

// TickScheduler fires a handler once per interval using a self-rescheduling
// single-shot timer. The next delay is measured from the end of the current
// fire, so a late fire shifts every later one (drift-tolerant, not corrected).
type TickScheduler struct {
	interval time.Duration
	after    AfterFunc
	handler  TickHandler

	state SchedulerState
	timer Timer
	phase bool
	ticks uint64

	// generation invalidates fires armed before the latest Stop.
	generation uint64
}

// NewTickScheduler creates an Idle scheduler.
func NewTickScheduler(interval time.Duration, after AfterFunc, handler TickHandler) *TickScheduler {
	return &TickScheduler{
		interval: interval,
		after:    after,
		handler:  handler,
	}
}

// Start moves Idle to Running and fires the first tick immediately.
func (s *TickScheduler) Start() {
	if s.state == Running {
		return
	}
	s.state = Running
	s.generation++

	slog.Debug(config.MsgSchedulerStart,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyInterval, s.interval)

	s.fire(s.generation)
}

// Stop moves Running to Idle and cancels the pending timer.
func (s *TickScheduler) Stop() {
	if s.state == Idle {
		return
	}
	s.state = Idle
	s.generation++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}

	slog.Debug(config.MsgSchedulerStop,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyTick, s.ticks)
}

// State returns the current lifecycle state.
func (s *TickScheduler) State() SchedulerState {
	return s.state
}

// Phase returns the status phase of the last tick.
func (s *TickScheduler) Phase() bool {
	return s.phase
}

// Ticks returns the number of ticks fired since creation.
func (s *TickScheduler) Ticks() uint64 {
	return s.ticks
}

func (s *TickScheduler) fire(generation uint64) {
	if s.state != Running || generation != s.generation {
		return
	}

	s.ticks++
	s.phase = !s.phase

	if s.handler != nil {
		if err := s.handler(s.phase); err != nil {
			slog.Warn(config.MsgTickSkipped,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyTick, s.ticks,
				config.LogKeyError, err)
		}
	}

	// The handler may have stopped the scheduler (close from a tick).
	if s.state != Running || generation != s.generation {
		return
	}
	s.timer = s.after(s.interval, func() { s.fire(generation) })
}
