// Package clock provides the logical clock that sequences the verification
// bench.
//
// The clock advances in discrete edges. Within one edge it services its
// subscribers in a fixed phase order: sample taps first (observers read the
// pin state as it was before the edge), then the edge callbacks (the
// component's synchronous state update), then drive taps (drivers set up the
// pin state for the next edge). The clock waits for every tap to finish its
// slot before moving on, so all pin access is serialized without locks.
package clock

import (
	"context"
	"sync"
)

// Phase identifies where within one edge a tap is serviced.
type Phase int

const (
	// PhaseSample taps run before the edge callbacks and see pre-edge state.
	PhaseSample Phase = iota
	// PhaseDrive taps run after the edge callbacks and prepare the next edge.
	PhaseDrive

	numPhases
)

// Clock is a cooperative logical clock. Subscribers attach with Tap and are
// woken once per edge in their phase; edge callbacks registered with OnEdge
// run between the two phases.
type Clock struct {
	mu     sync.Mutex
	taps   [numPhases][]*Tap
	onEdge []func(cycle uint64)
	cycle  uint64
}

// New creates a stopped clock with no subscribers.
func New() *Clock {
	return &Clock{}
}

// OnEdge registers fn to run on every edge, between the sample and drive
// phases. Callbacks run on the clock goroutine and must not block.
func (c *Clock) OnEdge(fn func(cycle uint64)) {
	c.mu.Lock()
	c.onEdge = append(c.onEdge, fn)
	c.mu.Unlock()
}

// Tap subscribes to the given phase of every edge. The returned Tap must be
// serviced on every edge once the clock is running: a tap that is never
// waited on stalls the clock.
func (c *Clock) Tap(p Phase) *Tap {
	t := &Tap{
		edge: make(chan uint64),
		done: make(chan struct{}, 1),
	}

	c.mu.Lock()
	c.taps[p] = append(c.taps[p], t)
	c.mu.Unlock()

	return t
}

// Run advances edges until ctx is cancelled. It always returns a non-nil
// error (the context's error).
func (c *Clock) Run(ctx context.Context) error {
	for {
		if err := c.step(ctx); err != nil {
			return err
		}
	}
}

// Cycles returns the number of edges started so far.
func (c *Clock) Cycles() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cycle
}

func (c *Clock) step(ctx context.Context) error {
	c.mu.Lock()
	c.cycle++
	cycle := c.cycle
	sample := c.taps[PhaseSample]
	drive := c.taps[PhaseDrive]
	callbacks := c.onEdge
	c.mu.Unlock()

	for _, t := range sample {
		if err := t.service(ctx, cycle); err != nil {
			return err
		}
	}

	for _, fn := range callbacks {
		fn(cycle)
	}

	for _, t := range drive {
		if err := t.service(ctx, cycle); err != nil {
			return err
		}
	}

	return nil
}

// Tap is one subscriber's handle on the clock. The owning goroutine calls
// Wait to block until its slot in the current edge, does its work, and calls
// Done to release the clock.
type Tap struct {
	edge chan uint64
	done chan struct{}
}

// Wait blocks until the clock reaches this tap's slot. It returns the edge
// number and true, or false if ctx was cancelled first.
func (t *Tap) Wait(ctx context.Context) (uint64, bool) {
	select {
	case cycle := <-t.edge:
		return cycle, true
	case <-ctx.Done():
		return 0, false
	}
}

// Done releases the clock to continue the current edge. The done channel is
// buffered so Done never blocks, even if the clock gave up on a cancelled
// edge.
func (t *Tap) Done() {
	t.done <- struct{}{}
}

func (t *Tap) service(ctx context.Context, cycle uint64) error {
	select {
	case t.edge <- cycle:
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-t.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
