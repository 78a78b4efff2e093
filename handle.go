package signals

// ConnectionHandle is an opaque, copyable reference to one subscription. It
// holds a weak link to its signal's control block plus the subscription's
// slot id; multiple copies of a handle address the same subscription, so
// disconnecting through one copy makes every copy observe IsActive()==false.
//
// The zero value is a valid, permanently inactive handle: IsActive and
// BelongsTo both report false, Disconnect is a no-op, and Block/IsBlocked
// return ErrUnknownHandle.
type ConnectionHandle struct {
	block *controlBlock
	id    uint64
}

// IsActive reports whether the handle's signal is still alive and the
// subscription it addresses has not been disconnected.
func (h ConnectionHandle) IsActive() bool {
	if h.block == nil {
		return false
	}
	alive, res := h.block.snapshot()
	if !alive {
		return false
	}
	return res.isActive(h.id)
}

// BelongsTo reports whether h was issued by the signal identified by id. A
// default-constructed handle never belongs to any signal, including one
// whose identity has not yet been established.
func (h ConnectionHandle) BelongsTo(id SignalIdentity) bool {
	return h.block != nil && h.block == id.block
}

// Disconnect marks the addressed subscription disconnected. It is a no-op
// on an inactive handle (dead signal, already-disconnected subscription, or
// the zero value) rather than an error, matching the idempotent-disconnect
// invariant.
func (h ConnectionHandle) Disconnect() {
	if h.block == nil {
		return
	}
	alive, res := h.block.snapshot()
	if !alive {
		return
	}
	res.disconnect(h.id)
}

// Block sets the subscription's blocked flag and returns the value it held
// before the call. It fails with ErrUnknownHandle if the handle does not
// address a live subscription.
func (h ConnectionHandle) Block(shouldBlock bool) (bool, error) {
	if h.block == nil {
		return false, ErrUnknownHandle
	}
	alive, res := h.block.snapshot()
	if !alive {
		return false, ErrUnknownHandle
	}
	return res.setBlocked(h.id, shouldBlock)
}

// IsBlocked reports the subscription's current blocked flag. It fails with
// ErrUnknownHandle if the handle does not address a live subscription.
func (h ConnectionHandle) IsBlocked() (bool, error) {
	if h.block == nil {
		return false, ErrUnknownHandle
	}
	alive, res := h.block.snapshot()
	if !alive {
		return false, ErrUnknownHandle
	}
	return res.isBlocked(h.id)
}
