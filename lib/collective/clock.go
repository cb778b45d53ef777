package collective

import "sync/atomic"

// Clock is the logical time of the host; the motion end is counted in block
// heights.
type Clock interface {
	BlockHeight() uint64
}

type ManualClock struct {
	height uint64
}

func NewManualClock(height uint64) *ManualClock {
	return &ManualClock{height: height}
}

func (c *ManualClock) BlockHeight() uint64 {
	return atomic.LoadUint64(&c.height)
}

func (c *ManualClock) SetBlockHeight(height uint64) {
	atomic.StoreUint64(&c.height, height)
}

func (c *ManualClock) Advance(n uint64) uint64 {
	return atomic.AddUint64(&c.height, n)
}
