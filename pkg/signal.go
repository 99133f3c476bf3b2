package wifiscand

import (
	"context"
	"sync/atomic"
)

// PressFlag remembers at most one press between observations.
type PressFlag struct {
	pending atomic.Bool
}

// Set may be called from any goroutine. Presses while already pending
// are coalesced.
func (t *PressFlag) Set() {
	t.pending.Store(true)
}

// Take clears the flag and reports whether it was set.
func (t *PressFlag) Take() bool {
	return t.pending.CompareAndSwap(true, false)
}

func (t *PressFlag) Pending() bool {
	return t.pending.Load()
}

// CompletionSignal is a single slot wake-up from the result sink to the
// orchestrator. Notify never blocks, and a notify that lands before Wait
// is still observed. Two notifies before a Wait wake it once.
type CompletionSignal struct {
	ch chan struct{}
}

func NewCompletionSignal() *CompletionSignal {
	return &CompletionSignal{ch: make(chan struct{}, 1)}
}

func (t *CompletionSignal) Notify() {
	select {
	case t.ch <- struct{}{}:
	default:
	}
}

// Wait blocks until a notification arrives or ctx is done.
func (t *CompletionSignal) Wait(ctx context.Context) error {
	select {
	case <-t.ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Drain discards a notification left over from an earlier scan.
func (t *CompletionSignal) Drain() bool {
	select {
	case <-t.ch:
		return true
	default:
		return false
	}
}
