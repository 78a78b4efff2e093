// Package signals implements a typed signal/slot dispatch core: objects
// broadcast typed events to a dynamically managed set of subscribers with
// well-defined lifetime, identity, and concurrency semantics.
//
// A Signal holds an ordered list of subscribers ("slots") and broadcasts to
// them on Emit, either inline on the emitting goroutine or, for a deferred
// subscription, as a closure enqueued on a shared ConnectionEvaluator and run
// later by whichever goroutine calls EvaluateDeferredConnections.
//
// Connecting a slot returns a ConnectionHandle: a small, copyable value that
// stays valid across the owning signal being moved (Adopt) and observes
// IsActive()==false, rather than panicking, once the owning signal is
// closed. A handle keeps the signal's internal state reachable, so a signal
// that is dropped without Close leaves its outstanding handles active.
package signals
