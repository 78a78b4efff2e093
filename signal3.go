package signals

import "sync"

// Signal3 is a typed multicast emitter that broadcasts three arguments, of
// types A, B, and C, to its subscribers. The zero value is ready to use.
//
// Signal3 offers full-arity Connect and ConnectDeferred plus an immediate
// one-argument ConnectFirst. There is no deferred one-argument form and no
// two- or zero-argument truncation; callers who need one can always write
// Connect(func(a A, b B, c C) { fn(a, b) }) directly.
type Signal3[A, B, C any] struct {
	c    *core
	once sync.Once
	opts *SignalOptions
}

// NewSignal3 creates a ready-to-use signal.
func NewSignal3[A, B, C any]() *Signal3[A, B, C] { return &Signal3[A, B, C]{} }

// NewSignal3WithOptions creates a signal that pre-allocates and grows its
// subscriber storage as described by opts.
func NewSignal3WithOptions[A, B, C any](opts *SignalOptions) *Signal3[A, B, C] {
	return &Signal3[A, B, C]{opts: opts}
}

func (s *Signal3[A, B, C]) ensureCore() *core {
	s.once.Do(func() {
		if s.c == nil {
			s.c = newCore(s.opts)
		}
	})
	return s.c
}

// Identity returns the comparable token for this signal instance.
func (s *Signal3[A, B, C]) Identity() SignalIdentity {
	return SignalIdentity{block: s.ensureCore().block}
}

// Connect subscribes fn to run inline, with all three emitted arguments, on
// every future Emit.
func (s *Signal3[A, B, C]) Connect(fn func(A, B, C)) ConnectionHandle {
	if fn == nil {
		panic(ErrNilListener)
	}
	return s.ensureCore().connect(func(a A, b B, c C) { fn(a, b, c) }, nil)
}

// ConnectFirst subscribes fn, which only takes the first emitted argument;
// the remaining two are silently discarded at call time.
func (s *Signal3[A, B, C]) ConnectFirst(fn func(A)) ConnectionHandle {
	if fn == nil {
		panic(ErrNilListener)
	}
	return s.ensureCore().connect(func(a A, _ B, _ C) { fn(a) }, nil)
}

// ConnectDeferred subscribes fn to run later, on whatever goroutine next
// calls ev.EvaluateDeferredConnections, instead of inline during Emit.
func (s *Signal3[A, B, C]) ConnectDeferred(ev *ConnectionEvaluator, fn func(A, B, C)) ConnectionHandle {
	if fn == nil {
		panic(ErrNilListener)
	}
	if ev == nil {
		panic(ErrNilEvaluator)
	}
	return s.ensureCore().connect(func(a A, b B, c C) { fn(a, b, c) }, ev)
}

// Disconnect marks h's subscription disconnected. Idempotent.
func (s *Signal3[A, B, C]) Disconnect(h ConnectionHandle) { h.Disconnect() }

// DisconnectAll marks every currently-connected subscription disconnected.
func (s *Signal3[A, B, C]) DisconnectAll() { s.ensureCore().disconnectAll() }

// BlockConnection sets h's blocked flag and returns its previous value.
func (s *Signal3[A, B, C]) BlockConnection(h ConnectionHandle, block bool) (bool, error) {
	return h.Block(block)
}

// IsConnectionBlocked reports h's current blocked flag.
func (s *Signal3[A, B, C]) IsConnectionBlocked(h ConnectionHandle) (bool, error) {
	return h.IsBlocked()
}

// Len reports the number of currently-connected subscriptions.
func (s *Signal3[A, B, C]) Len() int { return s.ensureCore().len() }

// IsEmpty reports whether the signal has no connected subscribers.
func (s *Signal3[A, B, C]) IsEmpty() bool { return s.Len() == 0 }

// Emit synchronously broadcasts a, b, and c to every listener connected
// before this call, in connect order.
func (s *Signal3[A, B, C]) Emit(a A, b B, c C) {
	cr := s.ensureCore()
	cr.beginEmit()
	defer cr.endEmit()

	snap := cr.snapshotSlots()
	defer releaseSlotSlice(snap)

	for i := range snap {
		sl := &snap[i]
		blocked, disconnected := cr.liveFlags(sl.id)
		if disconnected || blocked {
			continue
		}
		fn := sl.invoke.(func(A, B, C))
		if sl.evaluator != nil {
			id, owner, va, vb, vc := sl.id, cr, a, b, c
			sl.evaluator.enqueue(pendingInvocation{
				run:   func() { fn(va, vb, vc) },
				alive: func() bool { return owner.isActive(id) },
			})
			continue
		}
		fn(a, b, c)
	}
}

// Adopt transfers src's entire subscriber list and identity into s; src is
// left with a fresh, empty identity. See Signal0.Adopt for the full
// rationale — the same move-semantics translation applies to every arity.
func (s *Signal3[A, B, C]) Adopt(src *Signal3[A, B, C]) {
	srcCore := src.ensureCore()
	if s.c != nil {
		s.c.block.retire()
	}
	s.c = srcCore
	src.c = newCore(src.opts)
}

// Close retires the signal's identity: every outstanding ConnectionHandle
// observes IsActive()==false afterward.
func (s *Signal3[A, B, C]) Close() { s.ensureCore().block.retire() }
