package core

import "time"

// maxBurst caps the frames owed after a stall.
const maxBurst = 4

// FixedStep converts elapsed wall-clock time into whole simulation frames at
// a steady ticks-per-second rate.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time
}

// NewFixedStep constructs a FixedStep targeting tps. The first call to Due
// always owes one frame.
func NewFixedStep(tps int) *FixedStep {
	fs := &FixedStep{now: time.Now}
	fs.SetTPS(tps)
	fs.accumulator = fs.step
	return fs
}

// SetTPS changes the tick rate. Non-positive rates fall back to 60.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// TPS reports the current tick rate.
func (f *FixedStep) TPS() int { return int(time.Second / f.step) }

// Due returns the number of frames owed since the previous call, at most
// maxBurst. Backlog beyond the cap is dropped.
func (f *FixedStep) Due() int {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	f.accumulator += now.Sub(f.last)
	f.last = now

	n := int(f.accumulator / f.step)
	f.accumulator -= time.Duration(n) * f.step
	if n > maxBurst {
		n = maxBurst
		f.accumulator = 0
	}
	return n
}

// ShouldStep reports whether at least one frame is owed.
func (f *FixedStep) ShouldStep() bool { return f.Due() > 0 }
