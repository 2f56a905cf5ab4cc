package bodysync

import (
	"time"
)

// DefaultTPS matches ebiten's default tick rate.
const DefaultTPS = 60

// Clock reports the seconds elapsed since the previous frame. It never
// returns a negative value.
type Clock interface {
	Delta() float32
}

// FixedClock returns the same delta every frame. Ebiten calls Update at a
// fixed tick rate, so this is the default.
type FixedClock struct {
	delta float32
}

func NewFixedClock(tps int) FixedClock {
	if tps <= 0 {
		tps = DefaultTPS
	}
	return FixedClock{delta: 1 / float32(tps)}
}

func (c FixedClock) Delta() float32 {
	return c.delta
}

// WallClock measures real time between calls. The first call returns 0.
type WallClock struct {
	now  func() time.Time
	last time.Time
}

func NewWallClock() *WallClock {
	return &WallClock{now: time.Now}
}

func (c *WallClock) Delta() float32 {
	t := c.now()
	if c.last.IsZero() {
		c.last = t
		return 0
	}
	d := t.Sub(c.last)
	c.last = t
	if d < 0 {
		return 0
	}
	return float32(d.Seconds())
}
