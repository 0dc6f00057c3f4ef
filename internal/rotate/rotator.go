package rotate

import (
	"fmt"
	"sync"
	"time"
)

// DefaultInterval is how long each entry stays on screen
const DefaultInterval = 4 * time.Second

// Rotator cycles through a fixed sequence of strings on a timer.
// It is owned by one submission: started once the insight list arrives,
// stopped when the slow path resolves or the owner tears down. Stop is
// idempotent and releases the underlying ticker; the index never
// advances after Stop returns.
type Rotator struct {
	items    []string
	interval time.Duration

	mu       sync.Mutex
	index    int
	ticker   *time.Ticker
	ticks    chan string
	done     chan struct{}
	stopOnce sync.Once
	started  bool
}

// New creates a rotator over a non-empty sequence
func New(items []string, interval time.Duration) (*Rotator, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("rotator requires at least one item")
	}
	if interval <= 0 {
		interval = DefaultInterval
	}

	return &Rotator{
		items:    items,
		interval: interval,
		ticks:    make(chan string, 1),
		done:     make(chan struct{}),
	}, nil
}

// Start begins cycling. Calling Start twice is a no-op.
func (r *Rotator) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started {
		return
	}
	select {
	case <-r.done:
		// Already stopped, nothing to start
		return
	default:
	}
	r.started = true
	r.ticker = time.NewTicker(r.interval)

	go func() {
		for {
			select {
			case <-r.done:
				return
			case <-r.ticker.C:
				r.advance()
			}
		}
	}()
}

// Stop halts rotation and releases the ticker. Safe to call multiple
// times and safe to call before Start.
func (r *Rotator) Stop() {
	r.stopOnce.Do(func() {
		close(r.done)
		r.mu.Lock()
		if r.ticker != nil {
			r.ticker.Stop()
		}
		r.mu.Unlock()
	})
}

// Current returns the item at the current index
func (r *Rotator) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[r.index]
}

// Ticks delivers the entry that became current after each advance.
// Displays driven from this channel stay in phase with the rotation;
// a consumer that falls behind misses entries rather than stalling it.
func (r *Rotator) Ticks() <-chan string {
	return r.ticks
}

// Index returns the current index, always in [0, len(items))
func (r *Rotator) Index() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.index
}

// Len returns the sequence length
func (r *Rotator) Len() int {
	return len(r.items)
}

func (r *Rotator) advance() {
	r.mu.Lock()
	defer r.mu.Unlock()

	select {
	case <-r.done:
		// Stopped between tick delivery and advance
		return
	default:
	}

	r.index = (r.index + 1) % len(r.items)

	select {
	case r.ticks <- r.items[r.index]:
	default:
	}
}
