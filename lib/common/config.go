package common

import (
	"boscoin.io/council/lib/errors"
)

const (
	// DefaultMotionDuration is the number of blocks a motion stays open.
	DefaultMotionDuration uint64 = 14400

	// DefaultMaxProposals is the maximum number of pending proposals in a
	// room.
	DefaultMaxProposals uint32 = 100
)

// Config has the per-instance constants of the collective. The same Config
// is applied to every room.
type Config struct {
	MotionDuration uint64
	MaxProposals   uint32
}

func NewConfig() Config {
	p := Config{}

	p.MotionDuration = DefaultMotionDuration
	p.MaxProposals = DefaultMaxProposals

	return p
}

func (c Config) Validate() error {
	if c.MotionDuration < 1 {
		return errors.InvalidConfig.Clone().SetData("field", "MotionDuration")
	}
	if c.MaxProposals < 1 {
		return errors.InvalidConfig.Clone().SetData("field", "MaxProposals")
	}

	return nil
}
