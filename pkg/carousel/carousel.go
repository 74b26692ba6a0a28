// Package carousel cycles a visual index through a fixed set of slides.
package carousel

import (
	"context"
	"sync"
	"time"
)

const (
	DefaultCount  = 3
	DefaultPeriod = 4 * time.Second
)

// Slides applies the visual transition for a given index.
type Slides interface {
	Hide(i int)
	Show(i int)
}

type Carousel struct {
	slides Slides
	count  int

	mu  sync.Mutex
	idx int
}

// New returns a carousel over count slides starting at index 0. A count
// below 1 falls back to DefaultCount.
func New(slides Slides, count int) *Carousel {
	if count < 1 {
		count = DefaultCount
	}
	return &Carousel{slides: slides, count: count}
}

func (c *Carousel) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.idx
}

// Step hides the current slide, advances with wrap-around and shows the next.
func (c *Carousel) Step() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.slides.Hide(c.idx)
	c.idx = (c.idx + 1) % c.count
	c.slides.Show(c.idx)
	return c.idx
}

// Run steps every period until ctx is done.
func (c *Carousel) Run(ctx context.Context, period time.Duration) {
	if period <= 0 {
		period = DefaultPeriod
	}
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Step()
		}
	}
}
