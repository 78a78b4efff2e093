package signals_test

import (
	"testing"

	"github.com/kdbindings/go-signals"
)

func TestSignal1_ListenerOrderPreserved(t *testing.T) {
	sig := signals.NewSignal1[int]()

	order := make([]int, 0, 3)
	sig.Connect(func(int) { order = append(order, 1) })
	sig.Connect(func(int) { order = append(order, 2) })
	sig.Connect(func(int) { order = append(order, 3) })

	sig.Emit(1)

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Fatalf("expected listener order [1 2 3], got %v", order)
	}
}

func TestSignal1_OrderPreservedAfterDisconnect(t *testing.T) {
	sig := signals.NewSignal1[int]()

	order := make([]int, 0, 3)
	sig.Connect(func(int) { order = append(order, 1) })
	h2 := sig.Connect(func(int) { order = append(order, 2) })
	sig.Connect(func(int) { order = append(order, 3) })

	h2.Disconnect()
	sig.Emit(1)

	if len(order) != 2 || order[0] != 1 || order[1] != 3 {
		t.Fatalf("expected listener order [1 3] after disconnect, got %v", order)
	}
}

// TestSignal1_ReentrantEmitUsesOuterSnapshot exercises emit's reentrancy: a
// slot may itself trigger another Emit on the same signal, and a slot
// connected during an emission is invisible to that same emission.
func TestSignal1_ReentrantEmitUsesOuterSnapshot(t *testing.T) {
	sig := signals.NewSignal1[int]()

	var innerOrder []string
	var added bool

	sig.Connect(func(v int) {
		innerOrder = append(innerOrder, "outer-first")
		if !added {
			added = true
			sig.Connect(func(int) { innerOrder = append(innerOrder, "added-during-emission") })
			sig.Emit(v + 1)
		}
	})
	sig.Connect(func(int) { innerOrder = append(innerOrder, "outer-second") })

	sig.Emit(1)

	want := []string{"outer-first", "outer-first", "outer-second", "added-during-emission", "outer-second"}
	if len(innerOrder) != len(want) {
		t.Fatalf("expected %v, got %v", want, innerOrder)
	}
	for i := range want {
		if innerOrder[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, innerOrder)
		}
	}
}

// TestSignal1_AddDuringEmitInvisibleToThatEmission pins down the simpler,
// non-reentrant half of the same invariant.
func TestSignal1_AddDuringEmitInvisibleToThatEmission(t *testing.T) {
	sig := signals.NewSignal1[int]()

	calls := 0
	sig.Connect(func(int) {
		calls++
		sig.Connect(func(int) { calls++ })
	})

	sig.Emit(1)
	if calls != 1 {
		t.Fatalf("expected the listener added mid-emission to be skipped this emission, got %d calls", calls)
	}

	sig.Emit(1)
	if calls != 3 {
		t.Fatalf("expected both listeners to fire on the next emission, got %d calls", calls)
	}
}
