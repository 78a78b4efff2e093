package signals

import "sync"

// Signal0 is a typed multicast emitter that carries no payload — a pure
// notification. The zero value is ready to use.
type Signal0 struct {
	c    *core
	once sync.Once
	opts *SignalOptions
}

// NewSignal0 creates a ready-to-use signal. Equivalent to the zero value;
// provided for symmetry with NewSignal0WithOptions.
func NewSignal0() *Signal0 { return &Signal0{} }

// NewSignal0WithOptions creates a signal that pre-allocates and grows its
// subscriber storage as described by opts.
func NewSignal0WithOptions(opts *SignalOptions) *Signal0 { return &Signal0{opts: opts} }

func (s *Signal0) ensureCore() *core {
	s.once.Do(func() {
		if s.c == nil {
			s.c = newCore(s.opts)
		}
	})
	return s.c
}

// Identity returns the comparable token for this signal instance.
func (s *Signal0) Identity() SignalIdentity { return SignalIdentity{block: s.ensureCore().block} }

// Connect subscribes fn to run inline on every future Emit.
func (s *Signal0) Connect(fn func()) ConnectionHandle {
	if fn == nil {
		panic(ErrNilListener)
	}
	return s.ensureCore().connect(fn, nil)
}

// ConnectDeferred subscribes fn to run later, on whatever goroutine next
// calls ev.EvaluateDeferredConnections, instead of inline during Emit.
func (s *Signal0) ConnectDeferred(ev *ConnectionEvaluator, fn func()) ConnectionHandle {
	if fn == nil {
		panic(ErrNilListener)
	}
	if ev == nil {
		panic(ErrNilEvaluator)
	}
	return s.ensureCore().connect(fn, ev)
}

// Disconnect marks h's subscription disconnected. Idempotent.
func (s *Signal0) Disconnect(h ConnectionHandle) { h.Disconnect() }

// DisconnectAll marks every currently-connected subscription disconnected.
func (s *Signal0) DisconnectAll() { s.ensureCore().disconnectAll() }

// BlockConnection sets h's blocked flag and returns its previous value.
func (s *Signal0) BlockConnection(h ConnectionHandle, block bool) (bool, error) {
	return h.Block(block)
}

// IsConnectionBlocked reports h's current blocked flag.
func (s *Signal0) IsConnectionBlocked(h ConnectionHandle) (bool, error) { return h.IsBlocked() }

// Len reports the number of currently-connected (non-disconnected)
// subscriptions.
func (s *Signal0) Len() int { return s.ensureCore().len() }

// IsEmpty reports whether the signal has no connected subscribers.
func (s *Signal0) IsEmpty() bool { return s.Len() == 0 }

// Emit broadcasts to every listener connected before this call, in connect
// order. A subscriber disconnected or blocked by the time its turn comes
// (including by a preceding listener in this same emission) is skipped.
// Listeners added during this Emit are not invoked by it. Immediate
// listeners run inline and their panics propagate out of Emit unrecovered;
// deferred listeners are enqueued on their evaluator and run later.
func (s *Signal0) Emit() {
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
		fn := sl.invoke.(func())
		if sl.evaluator != nil {
			id, owner := sl.id, c
			sl.evaluator.enqueue(pendingInvocation{
				run:   fn,
				alive: func() bool { return owner.isActive(id) },
			})
			continue
		}
		fn()
	}
}

// Adopt transfers src's entire subscriber list and identity into s; src is
// left with a fresh, empty identity. Handles issued by src before the call
// continue to resolve against s afterward. This is the idiomatic stand-in
// for C++ move-construction/move-assignment: Go has neither destructors nor
// implicit moves, so the transfer of identity is made explicit instead of
// happening implicitly via copying struct bytes. If s already had its own
// identity with outstanding handles, those handles are invalidated by the
// adoption, matching move-assignment's documented effect on the
// destination's prior handles.
func (s *Signal0) Adopt(src *Signal0) {
	srcCore := src.ensureCore()
	if s.c != nil {
		s.c.block.retire()
	}
	s.c = srcCore
	src.c = newCore(src.opts)
}

// Close retires the signal's identity: every outstanding ConnectionHandle
// observes IsActive()==false afterward, without panicking. Pending deferred
// invocations already enqueued on an evaluator are unaffected and still run.
func (s *Signal0) Close() { s.ensureCore().block.retire() }
