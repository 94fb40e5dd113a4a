package game

import "time"

// Speed multiplier bounds for interactive runs.
const (
	MinSpeed = 1
	MaxSpeed = 10
)

// Pacer converts wall-clock time into turns for interactive front-ends.
// At speed s one turn is due every interval/s.
type Pacer struct {
	interval time.Duration
	speed    int
	acc      time.Duration
	last     time.Time
}

// NewPacer creates a pacer at speed 1.
func NewPacer(interval time.Duration) *Pacer {
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	return &Pacer{interval: interval, speed: MinSpeed}
}

// Speed returns the current multiplier.
func (p *Pacer) Speed() int { return p.speed }

// SetSpeed clamps s to [MinSpeed, MaxSpeed].
func (p *Pacer) SetSpeed(s int) {
	p.speed = min(max(s, MinSpeed), MaxSpeed)
}

// Interval returns the wall-clock time per turn at the current speed.
func (p *Pacer) Interval() time.Duration {
	return p.interval / time.Duration(p.speed)
}

// Due returns how many turns have come due since the previous call.
// The first call only starts the clock. At most MaxSpeed turns are returned at
// once so a stalled frame does not trigger a burst.
func (p *Pacer) Due(now time.Time) int {
	if p.last.IsZero() {
		p.last = now
		return 0
	}
	p.acc += now.Sub(p.last)
	p.last = now

	step := p.Interval()
	n := int(p.acc / step)
	p.acc -= time.Duration(n) * step
	if n > MaxSpeed {
		n = MaxSpeed
		p.acc = 0
	}
	return n
}

// Reset restarts the clock, dropping any accumulated time.
func (p *Pacer) Reset() {
	p.acc = 0
	p.last = time.Time{}
}
