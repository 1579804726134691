package testkit

import (
	"sync"
	"testing"
	"time"
)

var (
	scaleFn    = func(n int) int { return n * 2 }
	seamTarget = "live"
)

func TestSwap_FunctionAndRestore(t *testing.T) {
	// swap inside a subtest so Cleanup fires before the restoration check
	t.Run("swapped", func(t *testing.T) {
		if got := scaleFn(3); got != 6 {
			t.Fatalf("precondition failed, scaleFn(3)=%d want 6", got)
		}
		Swap(t, &scaleFn, func(int) int { return -1 })
		if got := scaleFn(3); got != -1 {
			t.Fatalf("swap did not take effect, got %d want -1", got)
		}
	})

	if got := scaleFn(3); got != 6 {
		t.Fatalf("swap did not restore original, got %d want 6", got)
	}
}

func TestSwap_NonFunctionType(t *testing.T) {
	t.Parallel()

	t.Run("string", func(t *testing.T) {
		if seamTarget != "live" {
			t.Fatalf("precondition failed, got %q", seamTarget)
		}
		Swap(t, &seamTarget, "stubbed")
		if seamTarget != "stubbed" {
			t.Fatalf("swap failed, got %q", seamTarget)
		}
	})
	if seamTarget != "live" {
		t.Fatalf("swap did not restore original, got %q", seamTarget)
	}
}

func TestSerial_GuardsConcurrentSubtests(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var seq []string

	mark := func(s string) {
		mu.Lock()
		seq = append(seq, s)
		mu.Unlock()
	}

	t.Run("first", func(t *testing.T) {
		t.Parallel()
		Serial(t)
		mark("first-in")
		time.Sleep(50 * time.Millisecond)
		mark("first-out")
	})

	t.Run("second", func(t *testing.T) {
		t.Parallel()
		Serial(t)
		mark("second-in")
		time.Sleep(50 * time.Millisecond)
		mark("second-out")
	})

	t.Cleanup(func() {
		// either subtest may run first, but they must not interleave
		mu.Lock()
		defer mu.Unlock()
		if len(seq) != 4 {
			t.Fatalf("unexpected sequence length %d, seq=%v", len(seq), seq)
		}
		pos := map[string]int{}
		for i, s := range seq {
			pos[s] = i
		}
		firstGrouped := pos["first-in"] < pos["first-out"] && pos["first-out"] < pos["second-in"]
		secondGrouped := pos["second-in"] < pos["second-out"] && pos["second-out"] < pos["first-in"]
		if !firstGrouped && !secondGrouped {
			t.Fatalf("expected grouped execution, got seq=%v", seq)
		}
	})
}
