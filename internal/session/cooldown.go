package session

import (
	"sync"
	"time"

	"github.com/Sk3pz/angler-bot-v2/internal/fish"
)

// Cooldown rate limits a command per key with a jittered interval between
// min and max.
type Cooldown struct {
	mu   sync.Mutex
	next map[string]time.Time
	min  time.Duration
	max  time.Duration
	clk  Clock
	src  fish.Source
}

func NewCooldown(min, max time.Duration, clk Clock, src fish.Source) *Cooldown {
	if clk == nil {
		clk = RealClock{}
	}
	if src == nil {
		src = fish.NewSource()
	}
	if max < min {
		max = min
	}
	return &Cooldown{
		next: make(map[string]time.Time),
		min:  min,
		max:  max,
		clk:  clk,
		src:  src,
	}
}

// Try reports whether key may run now. When it may not, it also returns how
// long until it can.
func (c *Cooldown) Try(key string) (bool, time.Duration) {
	now := c.clk.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if until, ok := c.next[key]; ok && now.Before(until) {
		return false, until.Sub(now)
	}

	c.next[key] = now.Add(c.interval())
	return true, 0
}

func (c *Cooldown) interval() time.Duration {
	if c.min == c.max {
		return c.min
	}
	span := float64(c.max - c.min)
	return c.min + time.Duration(c.src.Float64()*span)
}

func (c *Cooldown) Reset(key string) {
	c.mu.Lock()
	delete(c.next, key)
	c.mu.Unlock()
}
