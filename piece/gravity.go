package piece

// BaseInterval is the drop interval in seconds at speed 1.
const BaseInterval = 2.0

// Interval returns the seconds between gravity steps at speed.
func Interval(speed float64) float64 {
	return (BaseInterval * 1000 / speed) / 1000
}

// Gravity tracks when the piece last dropped on the simulation clock.
type Gravity struct {
	LastDrop float64
}

// Due reports whether a drop is owed at time now and, if so, records it.
// A non-positive speed stops gravity.
func (g *Gravity) Due(now, speed float64) bool {
	if speed <= 0 {
		return false
	}
	if now-g.LastDrop < Interval(speed) {
		return false
	}
	g.LastDrop = now
	return true
}
