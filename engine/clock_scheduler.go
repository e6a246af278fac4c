package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/vi-blaster/core"
	"github.com/lixenwraith/vi-blaster/parameter"
	"github.com/lixenwraith/vi-blaster/status"
)

// Ticker is advanced by the clock; Scene implements it
type Ticker interface {
	Tick(step float64)
}

// ClockScheduler drives a Ticker at a fixed cadence
// Each tick passes the elapsed time in tick units, so a stall is caught up in one scaled step
type ClockScheduler struct {
	target Ticker
	clock  TimeSource
	logger zerolog.Logger

	// Tick configuration
	tickInterval     time.Duration
	maxStep          float64
	fixedStep        bool
	lastTickTime     time.Time
	nextTickDeadline time.Time

	tickCount atomic.Uint64
	mu        sync.Mutex

	// Control channels
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool

	// Signals a completed tick to the renderer
	updateDone chan struct{}

	statStep *status.AtomicFloat
	statPeak *status.AtomicFloat
}

// NewClockScheduler creates a clock for target; returns the tick-completed signal channel
// maxStep <= 0 uses the default catch-up cap
func NewClockScheduler(target Ticker, clock TimeSource, tickInterval time.Duration, maxStep float64, reg *status.Registry, logger zerolog.Logger) (*ClockScheduler, <-chan struct{}) {
	if clock == nil {
		clock = SystemTime{}
	}
	if tickInterval <= 0 {
		tickInterval = parameter.TickInterval
	}
	if maxStep <= 0 {
		maxStep = parameter.MaxStepsPerTick
	}
	if reg == nil {
		reg = status.NewRegistry()
	}

	updateDone := make(chan struct{}, 1)
	cs := &ClockScheduler{
		target:       target,
		clock:        clock,
		logger:       logger,
		tickInterval: tickInterval,
		maxStep:      maxStep,
		lastTickTime: clock.Now(),
		stopChan:     make(chan struct{}),
		updateDone:   updateDone,
		statStep:     reg.Floats.Get(status.KeyStepScale),
		statPeak:     reg.Floats.Get(status.KeyPeakStep),
	}
	return cs, updateDone
}

// SetFixedStep makes every tick advance exactly one step regardless of elapsed time
// Must be called before Start()
func (cs *ClockScheduler) SetFixedStep(fixed bool) {
	cs.fixedStep = fixed
}

// Start begins the scheduler loop
func (cs *ClockScheduler) Start() {
	if cs.running.CompareAndSwap(false, true) {
		cs.wg.Add(1)
		// Use core.Go for safe execution with centralized crash handling
		core.Go(cs.schedulerLoop)
	}
}

// Stop halts the scheduler loop and waits for the running tick to finish
func (cs *ClockScheduler) Stop() {
	cs.stopOnce.Do(func() {
		if cs.running.CompareAndSwap(true, false) {
			close(cs.stopChan)
			cs.wg.Wait()
		}
	})
}

// TickCount returns ticks executed since creation
func (cs *ClockScheduler) TickCount() uint64 {
	return cs.tickCount.Load()
}

// RunTick executes one tick as of now and returns the step passed to the target
func (cs *ClockScheduler) RunTick(now time.Time) float64 {
	cs.mu.Lock()
	step := 1.0
	if !cs.fixedStep {
		step = float64(now.Sub(cs.lastTickTime)) / float64(cs.tickInterval)
		if step > cs.maxStep {
			cs.logger.Debug().Float64("step", step).Float64("max", cs.maxStep).Msg("tick step clamped")
			step = cs.maxStep
		}
	}
	cs.lastTickTime = now
	cs.mu.Unlock()

	if step <= 0 {
		return 0
	}

	cs.target.Tick(step)
	cs.tickCount.Add(1)
	cs.statStep.Set(step)
	cs.statPeak.Max(step)

	select {
	case cs.updateDone <- struct{}{}:
	default:
	}
	return step
}

// schedulerLoop sleeps until each deadline, correcting drift
func (cs *ClockScheduler) schedulerLoop() {
	defer cs.wg.Done()

	cs.mu.Lock()
	cs.lastTickTime = cs.clock.Now()
	cs.nextTickDeadline = cs.lastTickTime.Add(cs.tickInterval)
	cs.mu.Unlock()

	timer := time.NewTimer(0)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	defer timer.Stop()

	for {
		select {
		case <-cs.stopChan:
			return
		default:
		}

		now := cs.clock.Now()

		cs.mu.Lock()
		deadline := cs.nextTickDeadline
		cs.mu.Unlock()

		var sleepDuration time.Duration
		if !now.Before(deadline) {
			cs.RunTick(now)

			cs.mu.Lock()
			cs.nextTickDeadline = cs.nextTickDeadline.Add(cs.tickInterval)
			maxBehind := cs.tickInterval * 2
			if now.Sub(cs.nextTickDeadline) > maxBehind {
				cs.nextTickDeadline = now.Add(cs.tickInterval)
			}
			deadline = cs.nextTickDeadline
			cs.mu.Unlock()

			sleepDuration = deadline.Sub(cs.clock.Now())
		} else {
			sleepDuration = deadline.Sub(now)
		}

		if sleepDuration > 0 {
			timer.Reset(sleepDuration)
			select {
			case <-timer.C:
			case <-cs.stopChan:
				return
			}
		}
	}
}
