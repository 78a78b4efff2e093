package signals_test

import (
	"sync/atomic"
	"testing"

	"github.com/kdbindings/go-signals"
)

func TestSignalOptionsGrowthFuncIsUsed(t *testing.T) {
	var called int32
	opts := &signals.SignalOptions{
		InitialCapacity: 1,
		GrowthFunc: func(currentCap int) int {
			atomic.AddInt32(&called, 1)
			return currentCap + 1
		},
	}

	sig := signals.NewSignal1WithOptions[int](opts)
	sig.Connect(func(int) {})
	sig.Connect(func(int) {})

	if atomic.LoadInt32(&called) == 0 {
		t.Fatal("expected GrowthFunc to be called when capacity grows")
	}
}

func TestSignalOptionsNilOptionsUseDefaultGrowth(t *testing.T) {
	sig := signals.NewSignal1[int]()

	for i := 0; i < 50; i++ {
		sig.Connect(func(int) {})
	}

	if got := sig.Len(); got != 50 {
		t.Fatalf("expected 50 listeners, got %d", got)
	}
}

func TestSignalOptionsInitialCapacityPreallocates(t *testing.T) {
	opts := &signals.SignalOptions{InitialCapacity: 4}
	sig := signals.NewSignal2WithOptions[int, bool](opts)

	if !sig.IsEmpty() {
		t.Fatal("expected a freshly constructed signal to be empty")
	}

	sig.Connect(func(int, bool) {})
	if sig.Len() != 1 {
		t.Fatalf("expected Len 1, got %d", sig.Len())
	}
}
