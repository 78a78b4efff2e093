package signals

import "sync"

// pendingInvocation is one queued deferred call. run invokes the slot with
// its emit-time arguments already captured by value; alive re-checks, at
// drain time, whether the subscription that enqueued this closure is still
// connected, so a disconnect issued between Emit and
// EvaluateDeferredConnections suppresses the call instead of running it.
type pendingInvocation struct {
	run   func()
	alive func() bool
}

// ConnectionEvaluator is a thread-safe FIFO queue of deferred invocations,
// shared by any number of Signals through a single pointer. Its lifetime is
// whatever the longest-lived holder keeps it alive for; there is nothing to
// close explicitly.
//
// Enqueue is safe from any goroutine. EvaluateDeferredConnections is safe to
// call concurrently with Enqueue and with itself — concurrent drains take
// their batches one at a time under the evaluator's mutex, so each queued
// closure is taken, and run, by exactly one drain, and a drain that comes
// second sees an empty queue or only work enqueued since. The mutex is not
// held while closures run, so closures taken by two concurrent drains may
// run at the same time.
type ConnectionEvaluator struct {
	mu      sync.Mutex
	pending []pendingInvocation
}

// NewConnectionEvaluator creates an empty evaluator.
func NewConnectionEvaluator() *ConnectionEvaluator {
	return &ConnectionEvaluator{}
}

func (e *ConnectionEvaluator) enqueue(p pendingInvocation) {
	e.mu.Lock()
	e.pending = append(e.pending, p)
	e.mu.Unlock()
}

// Pending reports how many invocations are currently queued. It is a
// point-in-time snapshot only; useful for tests and metrics, not for
// synchronization.
func (e *ConnectionEvaluator) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.pending)
}

// EvaluateDeferredConnections drains the queue and invokes each closure, in
// enqueue order, on the calling goroutine. The pending queue is swapped out
// under the mutex before any closure runs, and the mutex is not held across
// invocation, so a closure may enqueue further work on this same evaluator
// without deadlocking.
//
// If a closure panics, draining stops at that point: the panic propagates
// to the caller unwrapped, and every closure still pending in this batch is
// re-queued, ahead of anything enqueued in the meantime, for the next call
// to EvaluateDeferredConnections.
func (e *ConnectionEvaluator) EvaluateDeferredConnections() {
	e.mu.Lock()
	batch := e.pending
	e.pending = nil
	e.mu.Unlock()

	for i := range batch {
		p := batch[i]
		if !p.alive() {
			continue
		}
		e.runOne(p, batch, i)
	}
}

func (e *ConnectionEvaluator) runOne(p pendingInvocation, batch []pendingInvocation, i int) {
	defer func() {
		if r := recover(); r != nil {
			e.requeueRemaining(batch[i+1:])
			panic(r)
		}
	}()
	p.run()
}

func (e *ConnectionEvaluator) requeueRemaining(remaining []pendingInvocation) {
	if len(remaining) == 0 {
		return
	}
	e.mu.Lock()
	e.pending = append(append([]pendingInvocation{}, remaining...), e.pending...)
	e.mu.Unlock()
}

// ConnectionBlocker blocks a connection for a bounded scope and restores the
// block state it observed on construction when Release is called — so an
// already-blocked connection stays blocked afterward, and a previously
// unblocked one is unblocked again. Construction fails with ErrUnknownHandle
// if the handle does not address a live subscription; a caller that gets an
// error has nothing to release.
type ConnectionBlocker struct {
	handle  ConnectionHandle
	prev    bool
	release sync.Once
}

// NewConnectionBlocker blocks h's connection immediately and records the
// blocked state from before this call so Release can restore it.
func NewConnectionBlocker(h ConnectionHandle) (*ConnectionBlocker, error) {
	prev, err := h.Block(true)
	if err != nil {
		return nil, err
	}
	return &ConnectionBlocker{handle: h, prev: prev}, nil
}

// Release restores the connection's block state to what it was immediately
// before NewConnectionBlocker was called. Safe to call more than once and
// safe to call via defer on every exit path; only the first call has an
// effect.
func (b *ConnectionBlocker) Release() {
	b.release.Do(func() {
		_, _ = b.handle.Block(b.prev)
	})
}
