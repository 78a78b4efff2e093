package signals

import "sync"

// Signal1 is a typed multicast emitter that broadcasts a single argument of
// type A to its subscribers. The zero value is ready to use.
type Signal1[A any] struct {
	c    *core
	once sync.Once
	opts *SignalOptions
}

// NewSignal1 creates a ready-to-use signal.
func NewSignal1[A any]() *Signal1[A] { return &Signal1[A]{} }

// NewSignal1WithOptions creates a signal that pre-allocates and grows its
// subscriber storage as described by opts.
func NewSignal1WithOptions[A any](opts *SignalOptions) *Signal1[A] {
	return &Signal1[A]{opts: opts}
}

func (s *Signal1[A]) ensureCore() *core {
	s.once.Do(func() {
		if s.c == nil {
			s.c = newCore(s.opts)
		}
	})
	return s.c
}

// Identity returns the comparable token for this signal instance.
func (s *Signal1[A]) Identity() SignalIdentity { return SignalIdentity{block: s.ensureCore().block} }

// Connect subscribes fn to run inline, with the emitted argument, on every
// future Emit.
func (s *Signal1[A]) Connect(fn func(A)) ConnectionHandle {
	if fn == nil {
		panic(ErrNilListener)
	}
	return s.ensureCore().connect(func(a A) { fn(a) }, nil)
}

// ConnectTruncated subscribes fn, which discards the emitted argument, to
// run inline on every future Emit. This is the one-argument analogue of
// excess-trailing-argument discard for a signal whose own arity is 1.
func (s *Signal1[A]) ConnectTruncated(fn func()) ConnectionHandle {
	if fn == nil {
		panic(ErrNilListener)
	}
	return s.ensureCore().connect(func(A) { fn() }, nil)
}

// ConnectDeferred subscribes fn to run later, on whatever goroutine next
// calls ev.EvaluateDeferredConnections, instead of inline during Emit.
func (s *Signal1[A]) ConnectDeferred(ev *ConnectionEvaluator, fn func(A)) ConnectionHandle {
	if fn == nil {
		panic(ErrNilListener)
	}
	if ev == nil {
		panic(ErrNilEvaluator)
	}
	return s.ensureCore().connect(func(a A) { fn(a) }, ev)
}

// ConnectDeferredTruncated is the deferred counterpart of ConnectTruncated.
func (s *Signal1[A]) ConnectDeferredTruncated(ev *ConnectionEvaluator, fn func()) ConnectionHandle {
	if fn == nil {
		panic(ErrNilListener)
	}
	if ev == nil {
		panic(ErrNilEvaluator)
	}
	return s.ensureCore().connect(func(A) { fn() }, ev)
}

// Disconnect marks h's subscription disconnected. Idempotent.
func (s *Signal1[A]) Disconnect(h ConnectionHandle) { h.Disconnect() }

// DisconnectAll marks every currently-connected subscription disconnected.
func (s *Signal1[A]) DisconnectAll() { s.ensureCore().disconnectAll() }

// BlockConnection sets h's blocked flag and returns its previous value.
func (s *Signal1[A]) BlockConnection(h ConnectionHandle, block bool) (bool, error) {
	return h.Block(block)
}

// IsConnectionBlocked reports h's current blocked flag.
func (s *Signal1[A]) IsConnectionBlocked(h ConnectionHandle) (bool, error) { return h.IsBlocked() }

// Len reports the number of currently-connected subscriptions.
func (s *Signal1[A]) Len() int { return s.ensureCore().len() }

// IsEmpty reports whether the signal has no connected subscribers.
func (s *Signal1[A]) IsEmpty() bool { return s.Len() == 0 }

// Emit synchronously broadcasts a to every listener connected before this
// call, in connect order. A subscriber disconnected or blocked by the time
// its turn comes is skipped; listeners added during this Emit are not
// invoked by it. Immediate listeners run inline; deferred listeners have a
// nullary closure, capturing a by value, enqueued on their evaluator and run
// later.
func (s *Signal1[A]) Emit(a A) {
	c := s.ensureCore()
	c.beginEmit()
	defer c.endEmit()

	snap := c.snapshotSlots()
	defer releaseSlotSlice(snap)

	for i := range snap {
		sl := &snap[i]
		blocked, disconnected := c.liveFlags(sl.id)
		if disconnected || blocked {
			continue
		}
		fn := sl.invoke.(func(A))
		if sl.evaluator != nil {
			id, owner, va := sl.id, c, a
			sl.evaluator.enqueue(pendingInvocation{
				run:   func() { fn(va) },
				alive: func() bool { return owner.isActive(id) },
			})
			continue
		}
		fn(a)
	}
}

// Adopt transfers src's entire subscriber list and identity into s; src is
// left with a fresh, empty identity. See Signal0.Adopt for the full
// rationale — the same move-semantics translation applies to every arity.
func (s *Signal1[A]) Adopt(src *Signal1[A]) {
	srcCore := src.ensureCore()
	if s.c != nil {
		s.c.block.retire()
	}
	s.c = srcCore
	src.c = newCore(src.opts)
}

// Close retires the signal's identity: every outstanding ConnectionHandle
// observes IsActive()==false afterward.
func (s *Signal1[A]) Close() { s.ensureCore().block.retire() }
