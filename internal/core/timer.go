package core

import "time"

// FixedStep helps run simulation updates at a steady ticks-per-second rate and
// hands out the matching fixed delta and accumulated simulation time.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	ticks       int64

	now func() time.Time
}

// NewFixedStep constructs a FixedStep controller targeting the given TPS.
func NewFixedStep(tps int) *FixedStep {
	fs := &FixedStep{now: time.Now}
	fs.SetTPS(tps)
	fs.accumulator = fs.step
	return fs
}

// SetTPS changes the tick rate. It is safe to call from the main loop.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// Interval returns the fixed tick length.
func (f *FixedStep) Interval() time.Duration { return f.step }

// Delta returns the fixed tick length in seconds.
func (f *FixedStep) Delta() float64 { return f.step.Seconds() }

// Ticks reports how many steps ShouldStep has granted.
func (f *FixedStep) Ticks() int64 { return f.ticks }

// Elapsed returns the simulated time covered by the granted steps.
func (f *FixedStep) Elapsed() float64 {
	return float64(f.ticks) * f.step.Seconds()
}

// ShouldStep reports whether the simulation should advance by one tick.
func (f *FixedStep) ShouldStep() bool {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	delta := now.Sub(f.last)
	f.last = now
	f.accumulator += delta
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		f.ticks++
		return true
	}
	return false
}
