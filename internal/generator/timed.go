package generator

import (
	"context"
	"sync"
	"time"

	"github.com/VividCortex/ewma"

	"github.com/willibrandon/quill/internal/editor"
)

// Timed wraps a generator and tracks how long requests take.
type Timed struct {
	next editor.Generator

	mu      sync.Mutex
	avg     ewma.MovingAverage
	last    time.Duration
	samples int
}

// NewTimed wraps g.
func NewTimed(g editor.Generator) *Timed {
	return &Timed{
		next: g,
		avg:  ewma.NewMovingAverage(),
	}
}

// Generate calls the wrapped generator and records the elapsed time.
func (t *Timed) Generate(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	text, err := t.next.Generate(ctx, prompt)
	elapsed := time.Since(start)

	t.mu.Lock()
	t.avg.Add(float64(elapsed))
	t.last = elapsed
	t.samples++
	t.mu.Unlock()

	return text, err
}

// Average returns the moving average duration, or 0 before the first request.
func (t *Timed) Average() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.samples == 0 {
		return 0
	}
	return time.Duration(t.avg.Value())
}

// Last returns the duration of the most recent request.
func (t *Timed) Last() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last
}

// Samples returns how many requests have been timed.
func (t *Timed) Samples() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.samples
}
