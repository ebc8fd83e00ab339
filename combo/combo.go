// Package combo sequences melee attacks and resets the chain after a pause.
package combo

import (
	"time"

	"github.com/milk9111/locomotion/anim"
	"github.com/milk9111/locomotion/sim"
	"go.uber.org/zap"
)

// MaxIndex is the last step of the chain; the next punch wraps to 1.
const MaxIndex = 3

// Controller tracks the combo index, whether a swing is in progress and the
// pending reset. Every punch bumps the generation so a reset scheduled for an
// earlier swing can never clear a newer chain.
type Controller struct {
	clock    *sim.Clock
	interval time.Duration
	emit     *anim.Emitter
	log      *zap.Logger

	index      int
	punching   bool
	generation uint64
	reset      sim.Timer
}

func New(clock *sim.Clock, interval time.Duration, emit *anim.Emitter, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		clock:    clock,
		interval: interval,
		emit:     emit,
		log:      log.With(zap.String("component", "combo")),
	}
}

func (c *Controller) Index() int     { return c.index }
func (c *Controller) Punching() bool { return c.punching }

// ResetPending reports whether a reset timer is scheduled.
func (c *Controller) ResetPending() bool {
	return c.reset != 0 && c.clock != nil && c.clock.Pending(c.reset)
}

// Punch starts the next swing. It is a no-op while a swing is in progress.
func (c *Controller) Punch() bool {
	if c.punching {
		return false
	}
	c.punching = true
	c.generation++
	c.cancelReset()
	if c.index < MaxIndex {
		c.index++
	} else {
		c.index = 1
	}
	c.emit.Combo(c.index)
	c.emit.Trigger(anim.Punch)
	c.log.Debug("punch", zap.Int("combo", c.index), zap.Uint64("generation", c.generation))
	return true
}

// Resolve ends the current swing and schedules the chain reset.
func (c *Controller) Resolve() {
	if !c.punching {
		return
	}
	c.punching = false
	c.cancelReset()
	if c.clock == nil {
		return
	}
	gen := c.generation
	c.reset = c.clock.After(c.interval, func() {
		c.reset = 0
		if gen != c.generation {
			return
		}
		c.index = 0
		c.emit.Combo(0)
		c.log.Debug("combo reset", zap.Uint64("generation", gen))
	})
}

// Close cancels any pending reset.
func (c *Controller) Close() {
	c.generation++
	c.cancelReset()
}

func (c *Controller) cancelReset() {
	if c.reset != 0 && c.clock != nil {
		c.clock.Cancel(c.reset)
	}
	c.reset = 0
}
