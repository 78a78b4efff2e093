package signals

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// slot is the bookkeeping record for one subscription, independent of the
// owning signal's argument arity. invoke is always the concrete adapter
// closure the owning SignalN built at connect time (e.g. func(A, B) for a
// Signal2[A, B]); the owning SignalN is the only code that ever type-asserts
// it back, so the assertion can never fail.
type slot struct {
	id           uint64
	invoke       any
	blocked      bool
	disconnected bool
	evaluator    *ConnectionEvaluator
}

// core holds the subscriber list, slot-id allocator, and control block
// shared by every SignalN implementation. It knows nothing about argument
// types, which is what lets ConnectionHandle and ConnectionEvaluator stay
// generic-free.
type core struct {
	mu        sync.RWMutex
	block     *controlBlock
	slots     []slot
	index     map[uint64]int
	nextID    uint64
	emitDepth int32
	growth    func(currentCap int) int
}

func newCore(opts *SignalOptions) *core {
	c := &core{index: make(map[uint64]int)}
	c.block = &controlBlock{alive: true, res: c}
	if opts != nil {
		if opts.InitialCapacity > 0 {
			c.slots = make([]slot, 0, opts.InitialCapacity)
		}
		c.growth = opts.GrowthFunc
	}
	runtime.SetFinalizer(c, func(c *core) { c.block.retire() })
	return c
}

func (c *core) ensureCapacity(n int) {
	if c.growth == nil {
		return
	}
	cur := cap(c.slots)
	need := len(c.slots) + n
	if need <= cur {
		return
	}
	newCap := c.growth(cur)
	if newCap < need {
		newCap = need
	}
	grown := make([]slot, len(c.slots), newCap)
	copy(grown, c.slots)
	c.slots = grown
}

// connect appends a new subscription and returns the handle addressing it.
// A nil evaluator marks an immediate subscription; a non-nil one marks a
// deferred subscription against that evaluator.
func (c *core) connect(invoke any, evaluator *ConnectionEvaluator) ConnectionHandle {
	c.mu.Lock()
	c.ensureCapacity(1)
	id := c.nextID
	c.nextID++
	c.index[id] = len(c.slots)
	c.slots = append(c.slots, slot{id: id, invoke: invoke, evaluator: evaluator})
	c.mu.Unlock()
	return ConnectionHandle{block: c.block, id: id}
}

func (c *core) disconnect(id uint64) {
	c.mu.Lock()
	if idx, ok := c.index[id]; ok {
		c.slots[idx].disconnected = true
	}
	c.mu.Unlock()
	c.compactIfQuiescent()
}

func (c *core) disconnectAll() {
	c.mu.Lock()
	for i := range c.slots {
		c.slots[i].disconnected = true
	}
	c.mu.Unlock()
	c.compactIfQuiescent()
}

func (c *core) setBlocked(id uint64, blocked bool) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx, ok := c.index[id]
	if !ok || c.slots[idx].disconnected {
		return false, ErrUnknownHandle
	}
	prev := c.slots[idx].blocked
	c.slots[idx].blocked = blocked
	return prev, nil
}

func (c *core) isBlocked(id uint64) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	idx, ok := c.index[id]
	if !ok || c.slots[idx].disconnected {
		return false, ErrUnknownHandle
	}
	return c.slots[idx].blocked, nil
}

// isActive reports whether id still addresses a non-disconnected
// subscription. A blocked subscription is still active: blocking suppresses
// invocation, not identity.
func (c *core) isActive(id uint64) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	idx, ok := c.index[id]
	if !ok {
		return false
	}
	return !c.slots[idx].disconnected
}

// liveFlags re-checks a slot's blocked/disconnected state at the moment a
// snapshot entry is about to be dereferenced, rather than trusting the
// snapshot copy taken at Emit's entry. This is what makes a disconnect
// issued by an earlier slot in the same emission take effect on a later
// slot in that same emission, even though both were present in the
// snapshot — the flags are re-checked immediately before invocation, not
// once up front. A slot id no longer present (already compacted away) is
// reported disconnected.
func (c *core) liveFlags(id uint64) (blocked, disconnected bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	idx, ok := c.index[id]
	if !ok {
		return false, true
	}
	sl := c.slots[idx]
	return sl.blocked, sl.disconnected
}

func (c *core) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for i := range c.slots {
		if !c.slots[i].disconnected {
			n++
		}
	}
	return n
}

// beginEmit/endEmit bracket one Emit call. Physical erasure of disconnected
// slots only happens once the last overlapping (possibly reentrant) Emit on
// this signal has returned, per spec: disconnect during emission tombstones,
// it never mutates the slice a snapshot is being read from.
func (c *core) beginEmit() { atomic.AddInt32(&c.emitDepth, 1) }

func (c *core) endEmit() {
	if atomic.AddInt32(&c.emitDepth, -1) == 0 {
		c.compact()
	}
}

func (c *core) compactIfQuiescent() {
	if atomic.LoadInt32(&c.emitDepth) == 0 {
		c.compact()
	}
}

func (c *core) compact() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.slots) == 0 {
		return
	}
	kept := c.slots[:0]
	for _, sl := range c.slots {
		if sl.disconnected {
			continue
		}
		kept = append(kept, sl)
	}
	c.slots = kept
	for k := range c.index {
		delete(c.index, k)
	}
	for i, sl := range c.slots {
		c.index[sl.id] = i
	}
}

// snapshotSlots returns a copy of the current slot list, including
// disconnected slots not yet compacted away, suitable for Emit to iterate
// without holding core.mu while invoking slots. The
// returned slice is borrowed from a pool; callers must release it with
// releaseSlotSlice.
func (c *core) snapshotSlots() []slot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.slots) == 0 {
		return nil
	}
	snap := acquireSlotSlice()
	snap = append(snap, c.slots...)
	return snap
}

var slotSlicePool = sync.Pool{
	New: func() any { return make([]slot, 0, 8) },
}

func acquireSlotSlice() []slot {
	return slotSlicePool.Get().([]slot)[:0]
}

func releaseSlotSlice(s []slot) {
	if s == nil {
		return
	}
	for i := range s {
		s[i] = slot{}
	}
	slotSlicePool.Put(s[:0])
}
