package gate

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// Gate caps the number of trials running at once. Waiters are admitted in
// arrival order, so no caller starves while later arrivals are served.
type Gate struct {
	capacity int64
	sem      *semaphore.Weighted
	// granted counts slots handed out and not yet released; it never exceeds
	// the number of semaphore grants, so Available stays within [0, capacity].
	granted atomic.Int64
}

// New creates a gate with capacity slots.
func New(capacity int) (*Gate, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}
	return &Gate{
		capacity: int64(capacity),
		sem:      semaphore.NewWeighted(int64(capacity)),
	}, nil
}

// Acquire blocks until a slot is free or ctx is done. On error no slot is held.
func (g *Gate) Acquire(ctx context.Context) error {
	if err := g.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	// A grant racing with cancellation is handed back.
	if err := ctx.Err(); err != nil {
		g.sem.Release(1)
		return err
	}
	g.granted.Add(1)
	return nil
}

// Release returns a slot and wakes the oldest waiter. Releasing more slots
// than were acquired returns ErrNotAcquired and leaves the gate unchanged.
func (g *Gate) Release() error {
	for {
		current := g.granted.Load()
		if current <= 0 {
			return ErrNotAcquired
		}
		if g.granted.CompareAndSwap(current, current-1) {
			break
		}
	}
	g.sem.Release(1)
	return nil
}

// Available returns the number of free slots.
func (g *Gate) Available() int {
	return int(g.capacity - g.granted.Load())
}

// Capacity returns the fixed number of slots.
func (g *Gate) Capacity() int {
	return int(g.capacity)
}
