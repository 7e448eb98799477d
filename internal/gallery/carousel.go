package gallery

import (
	"sync"
	"time"
)

const (
	AdvanceInterval = 5 * time.Second
	ResumeDelay     = 10 * time.Second
)

// Carousel rotates through a list of items. It advances on its own every
// AdvanceInterval while autoplay is on; any manual navigation turns autoplay
// off until ResumeDelay passes without further navigation.
type Carousel struct {
	mu      sync.Mutex
	clock   Clock
	stopped bool

	count    int
	index    int
	autoplay bool

	// Generations guard against timer callbacks that were already running
	// when their timer got cancelled.
	advance    Timer
	advanceGen uint64
	resume     Timer
	resumeGen  uint64
}

func NewCarousel(clock Clock, count int) *Carousel {
	if clock == nil {
		clock = RealClock{}
	}
	if count < 0 {
		count = 0
	}

	c := &Carousel{clock: clock, count: count, autoplay: true}

	c.mu.Lock()
	c.armAdvance()
	c.mu.Unlock()

	return c
}

func (c *Carousel) Next() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped || c.count <= 1 {
		return
	}
	c.index = (c.index + 1) % c.count
	c.pause()
}

func (c *Carousel) Previous() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped || c.count <= 1 {
		return
	}
	c.index = (c.index - 1 + c.count) % c.count
	c.pause()
}

// Select jumps to item i, as the indicator dots do.
func (c *Carousel) Select(i int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped || c.count <= 1 || i < 0 || i >= c.count {
		return
	}
	c.index = i
	c.pause()
}

// SetItems replaces the number of items, e.g. after the recommended list is
// refetched.
func (c *Carousel) SetItems(count int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if count < 0 {
		count = 0
	}
	c.count = count
	if c.index >= count {
		c.index = 0
	}
	c.armAdvance()
}

// Stop cancels both timers. The carousel ignores everything afterwards.
func (c *Carousel) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopped = true
	c.cancelAdvance()
	c.cancelResume()
}

func (c *Carousel) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

func (c *Carousel) Autoplay() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.autoplay
}

// ShowControls reports whether arrows and indicators are rendered.
func (c *Carousel) ShowControls() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count > 1
}

func (c *Carousel) pause() {
	c.autoplay = false
	c.cancelAdvance()
	c.cancelResume()

	gen := c.resumeGen
	c.resume = c.clock.AfterFunc(ResumeDelay, func() { c.onResume(gen) })
}

func (c *Carousel) onResume(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped || gen != c.resumeGen {
		return
	}
	c.resume = nil
	c.autoplay = true
	c.armAdvance()
}

func (c *Carousel) armAdvance() {
	c.cancelAdvance()
	if c.stopped || !c.autoplay || c.count <= 1 {
		return
	}

	gen := c.advanceGen
	c.advance = c.clock.AfterFunc(AdvanceInterval, func() { c.onAdvance(gen) })
}

func (c *Carousel) onAdvance(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped || gen != c.advanceGen || !c.autoplay || c.count <= 1 {
		return
	}
	c.index = (c.index + 1) % c.count
	c.armAdvance()
}

func (c *Carousel) cancelAdvance() {
	if c.advance != nil {
		c.advance.Stop()
		c.advance = nil
	}
	c.advanceGen++
}

func (c *Carousel) cancelResume() {
	if c.resume != nil {
		c.resume.Stop()
		c.resume = nil
	}
	c.resumeGen++
}
