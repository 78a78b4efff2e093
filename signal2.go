package signals

import "sync"

// Signal2 is a typed multicast emitter that broadcasts two arguments, of
// types A and B, to its subscribers. The zero value is ready to use.
type Signal2[A, B any] struct {
	c    *core
	once sync.Once
	opts *SignalOptions
}

// NewSignal2 creates a ready-to-use signal.
func NewSignal2[A, B any]() *Signal2[A, B] { return &Signal2[A, B]{} }

// NewSignal2WithOptions creates a signal that pre-allocates and grows its
// subscriber storage as described by opts.
func NewSignal2WithOptions[A, B any](opts *SignalOptions) *Signal2[A, B] {
	return &Signal2[A, B]{opts: opts}
}

func (s *Signal2[A, B]) ensureCore() *core {
	s.once.Do(func() {
		if s.c == nil {
			s.c = newCore(s.opts)
		}
	})
	return s.c
}

// Identity returns the comparable token for this signal instance.
func (s *Signal2[A, B]) Identity() SignalIdentity {
	return SignalIdentity{block: s.ensureCore().block}
}

// Connect subscribes fn to run inline, with both emitted arguments, on
// every future Emit.
func (s *Signal2[A, B]) Connect(fn func(A, B)) ConnectionHandle {
	if fn == nil {
		panic(ErrNilListener)
	}
	return s.ensureCore().connect(func(a A, b B) { fn(a, b) }, nil)
}

// ConnectFirst subscribes fn, which only takes the first emitted argument;
// the second is silently discarded at call time.
func (s *Signal2[A, B]) ConnectFirst(fn func(A)) ConnectionHandle {
	if fn == nil {
		panic(ErrNilListener)
	}
	return s.ensureCore().connect(func(a A, _ B) { fn(a) }, nil)
}

// ConnectTruncated subscribes fn, which takes neither emitted argument.
func (s *Signal2[A, B]) ConnectTruncated(fn func()) ConnectionHandle {
	if fn == nil {
		panic(ErrNilListener)
	}
	return s.ensureCore().connect(func(A, B) { fn() }, nil)
}

// ConnectDeferred subscribes fn to run later, on whatever goroutine next
// calls ev.EvaluateDeferredConnections, instead of inline during Emit.
func (s *Signal2[A, B]) ConnectDeferred(ev *ConnectionEvaluator, fn func(A, B)) ConnectionHandle {
	if fn == nil {
		panic(ErrNilListener)
	}
	if ev == nil {
		panic(ErrNilEvaluator)
	}
	return s.ensureCore().connect(func(a A, b B) { fn(a, b) }, ev)
}

// ConnectDeferredFirst is the deferred counterpart of ConnectFirst.
func (s *Signal2[A, B]) ConnectDeferredFirst(ev *ConnectionEvaluator, fn func(A)) ConnectionHandle {
	if fn == nil {
		panic(ErrNilListener)
	}
	if ev == nil {
		panic(ErrNilEvaluator)
	}
	return s.ensureCore().connect(func(a A, _ B) { fn(a) }, ev)
}

// Disconnect marks h's subscription disconnected. Idempotent.
func (s *Signal2[A, B]) Disconnect(h ConnectionHandle) { h.Disconnect() }

// DisconnectAll marks every currently-connected subscription disconnected.
func (s *Signal2[A, B]) DisconnectAll() { s.ensureCore().disconnectAll() }

// BlockConnection sets h's blocked flag and returns its previous value.
func (s *Signal2[A, B]) BlockConnection(h ConnectionHandle, block bool) (bool, error) {
	return h.Block(block)
}

// IsConnectionBlocked reports h's current blocked flag.
func (s *Signal2[A, B]) IsConnectionBlocked(h ConnectionHandle) (bool, error) {
	return h.IsBlocked()
}

// Len reports the number of currently-connected subscriptions.
func (s *Signal2[A, B]) Len() int { return s.ensureCore().len() }

// IsEmpty reports whether the signal has no connected subscribers.
func (s *Signal2[A, B]) IsEmpty() bool { return s.Len() == 0 }

// Emit synchronously broadcasts a and b to every listener connected before
// this call, in connect order. A subscriber disconnected or blocked by the
// time its turn comes is skipped; listeners added during this Emit are not
// invoked by it. Immediate listeners run inline; deferred listeners have a
// nullary closure, capturing a and b by value, enqueued on their evaluator
// and run later.
func (s *Signal2[A, B]) Emit(a A, b B) {
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
		fn := sl.invoke.(func(A, B))
		if sl.evaluator != nil {
			id, owner, va, vb := sl.id, c, a, b
			sl.evaluator.enqueue(pendingInvocation{
				run:   func() { fn(va, vb) },
				alive: func() bool { return owner.isActive(id) },
			})
			continue
		}
		fn(a, b)
	}
}

// Adopt transfers src's entire subscriber list and identity into s; src is
// left with a fresh, empty identity. See Signal0.Adopt for the full
// rationale — the same move-semantics translation applies to every arity.
func (s *Signal2[A, B]) Adopt(src *Signal2[A, B]) {
	srcCore := src.ensureCore()
	if s.c != nil {
		s.c.block.retire()
	}
	s.c = srcCore
	src.c = newCore(src.opts)
}

// Close retires the signal's identity: every outstanding ConnectionHandle
// observes IsActive()==false afterward.
func (s *Signal2[A, B]) Close() { s.ensureCore().block.retire() }
