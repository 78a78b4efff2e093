package signals

import "sync"

// resolver is implemented by core. ConnectionHandle only ever talks to a
// signal through this interface, so a handle never needs to know the
// argument arity of the signal that issued it.
type resolver interface {
	disconnect(id uint64)
	setBlocked(id uint64, blocked bool) (bool, error)
	isBlocked(id uint64) (bool, error)
	isActive(id uint64) bool
}

// controlBlock is the shared, heap-allocated identity of one signal. Every
// ConnectionHandle issued by a signal holds a pointer to its controlBlock
// instead of to the signal value itself. That indirection is what makes a
// handle keep resolving correctly regardless of which Go variable ends up
// holding the signal (see SignalN.Adopt) and lets a handle observe a dead
// signal safely once the block is retired, instead of dereferencing freed
// state.
type controlBlock struct {
	mu    sync.Mutex
	alive bool
	res   resolver
}

func (b *controlBlock) retire() {
	b.mu.Lock()
	b.alive = false
	b.mu.Unlock()
}

func (b *controlBlock) snapshot() (bool, resolver) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.alive, b.res
}

// SignalIdentity is a comparable token naming one signal instance. Compare
// it against ConnectionHandle.BelongsTo to check whether a handle addresses
// a particular signal. The zero value never equals any real signal's
// identity.
type SignalIdentity struct {
	block *controlBlock
}
