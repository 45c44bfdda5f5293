package engine

import "time"

// Clock reports seconds since the simulation started.
type Clock interface {
	Elapsed() float64
}

// WallClock measures real time from its creation.
type WallClock struct {
	start time.Time
}

func NewWallClock() *WallClock {
	return &WallClock{start: time.Now()}
}

func (c *WallClock) Elapsed() float64 {
	return time.Since(c.start).Seconds()
}

// StepClock advances a fixed amount every time it is read. Headless runs use
// it to get reproducible animation.
type StepClock struct {
	Step float64
	now  float64
}

func NewStepClock(step float64) *StepClock {
	return &StepClock{Step: step}
}

func (c *StepClock) Elapsed() float64 {
	now := c.now
	c.now += c.Step
	return now
}

// Frames is a headless input source that requests N frames, then asks to close.
type Frames struct {
	N int
}

func (f *Frames) Poll() []Event {
	if f.N <= 0 {
		return []Event{Close()}
	}
	f.N--
	return []Event{FrameReady()}
}
