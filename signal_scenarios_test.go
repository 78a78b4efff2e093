package signals_test

import (
	"sync"
	"testing"

	signals "github.com/kdbindings/go-signals"
)

func TestSignal_ConnectAndEmitInvokesListener(t *testing.T) {
	s := signals.NewSignal2[string, int]()
	called := false
	s.Connect(func(string, int) { called = true })
	s.Emit("The answer:", 42)
	if !called {
		t.Fatal("expected listener to be called")
	}
}

// Two signals share one evaluator; their deferred work only lands once
// EvaluateDeferredConnections runs, and a disconnect issued after emit but
// before evaluate suppresses that slot's contribution.
func TestSignal_DeferredWorkAggregatesAcrossSignalsOnSharedEvaluator(t *testing.T) {
	ev := signals.NewConnectionEvaluator()
	s1 := signals.NewSignal1[int]()
	s2 := signals.NewSignal2[int, int]()
	v := 4

	h := s1.ConnectDeferred(ev, func(x int) { v += x })
	s2.ConnectDeferred(ev, func(a, b int) { v += a + b })

	s1.Emit(4)
	s2.Emit(3, 2)
	if v != 4 {
		t.Fatalf("v changed before evaluate: got %d, want 4", v)
	}

	h.Disconnect()
	ev.EvaluateDeferredConnections()
	if v != 9 {
		t.Fatalf("v after evaluate: got %d, want 9", v)
	}
}

// Different signals emitting from different goroutines, sharing one
// evaluator, still only apply their deferred work when evaluate runs.
func TestSignal_DeferredEmitFromConcurrentGoroutinesAppliesOnEvaluate(t *testing.T) {
	ev := signals.NewConnectionEvaluator()
	s1 := signals.NewSignal1[int]()
	s2 := signals.NewSignal1[int]()
	v1, v2 := 4, 4

	s1.ConnectDeferred(ev, func(x int) { v1 += x })
	s2.ConnectDeferred(ev, func(x int) { v2 += x })

	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); s1.Emit(2) }()
	go func() { defer wg.Done(); s2.Emit(3) }()
	wg.Wait()

	if v1 != 4 || v2 != 4 {
		t.Fatalf("values changed before evaluate: v1=%d v2=%d, want 4,4", v1, v2)
	}

	ev.EvaluateDeferredConnections()
	if v1 != 6 || v2 != 7 {
		t.Fatalf("values after evaluate: v1=%d v2=%d, want 6,7", v1, v2)
	}
}

// A slot taking a prefix of the emitted arguments still receives the
// leading one, regardless of what is emitted after it.
func TestSignal_ListenerTakingArgumentPrefixReceivesLeadingArgument(t *testing.T) {
	s := signals.NewSignal2[bool, int]()
	var flag bool
	s.ConnectFirst(func(b bool) { flag = b })

	s.Emit(true, 5)
	if !flag {
		t.Fatal("expected flag==true")
	}
	s.Emit(false, 5)
	if flag {
		t.Fatal("expected flag==false")
	}
}

// A bound-argument connect prepends the bound value ahead of the emitted
// argument(s) the slot actually takes.
func TestSignal_BoundArgumentPrependedToTruncatedEmit(t *testing.T) {
	s := signals.NewSignal2[int, bool]()
	var bound, signalled int
	signals.ConnectBound2First(s, func(a, b int) {
		bound = a
		signalled = b
	}, 5)

	s.Emit(10, false)
	if bound != 5 || signalled != 10 {
		t.Fatalf("got bound=%d signalled=%d, want 5,10", bound, signalled)
	}
}
