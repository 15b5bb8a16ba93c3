package media

import (
	"sync"
	"time"
)

// Clock is an offline playback collaborator: a manually driven media
// clock for previewing a document without a real player. It satisfies
// the editor's Playback interface.
type Clock struct {
	mu      sync.Mutex
	now     time.Duration
	playing bool

	// OnTick fires on every position change.
	OnTick func(t time.Duration)
}

func NewClock() *Clock {
	return &Clock{}
}

func (c *Clock) CurrentTime() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playing = true
}

func (c *Clock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playing = false
}

func (c *Clock) Seek(t time.Duration) {
	if t < 0 {
		t = 0
	}
	c.mu.Lock()
	c.now = t
	tick := c.OnTick
	c.mu.Unlock()
	if tick != nil {
		tick(t)
	}
}

// Advance moves the clock forward while playing; paused clocks ignore
// the call.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	if !c.playing {
		c.mu.Unlock()
		return
	}
	c.now += d
	t := c.now
	tick := c.OnTick
	c.mu.Unlock()
	if tick != nil {
		tick(t)
	}
}

func (c *Clock) IsPlaying() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playing
}
