package ledger

import (
	"sync/atomic"
	"time"
)

// Clock выдаёт монотонно возрастающий счётчик высоты.
// Высота используется для проверки дедлайнов, а не для измерения времени.
type Clock interface {
	Height() uint64
}

// HeightClock считает высоту от момента генезиса с фиксированным интервалом.
type HeightClock struct {
	genesis  time.Time
	interval time.Duration
}

// NewHeightClock создаёт часы высоты.
func NewHeightClock(genesis time.Time, interval time.Duration) *HeightClock {
	if interval <= 0 {
		interval = time.Second
	}
	return &HeightClock{genesis: genesis, interval: interval}
}

// Height возвращает текущую высоту.
func (c *HeightClock) Height() uint64 {
	elapsed := time.Since(c.genesis)
	if elapsed < 0 {
		return 0
	}
	return uint64(elapsed / c.interval)
}

// ManualClock — часы с ручным управлением для тестов.
type ManualClock struct {
	height atomic.Uint64
}

// NewManualClock создаёт ручные часы с начальной высотой.
func NewManualClock(height uint64) *ManualClock {
	c := &ManualClock{}
	c.height.Store(height)
	return c
}

// Height возвращает текущую высоту.
func (c *ManualClock) Height() uint64 {
	return c.height.Load()
}

// SetHeight устанавливает высоту. Высота не должна уменьшаться.
func (c *ManualClock) SetHeight(h uint64) {
	c.height.Store(h)
}

// Advance увеличивает высоту на delta.
func (c *ManualClock) Advance(delta uint64) {
	c.height.Add(delta)
}
