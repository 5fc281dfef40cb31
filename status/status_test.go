package status

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestAtomicFloatAdd(t *testing.T) {
	var f AtomicFloat
	if f.Load() != 0 {
		t.Errorf("Expected zero value 0, got %v", f.Load())
	}

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f.Add(0.5)
		}()
	}
	wg.Wait()

	if f.Load() != 50 {
		t.Errorf("Expected 50, got %v", f.Load())
	}
}

func TestAtomicStringTruncates(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"Short", "connected", "connected"},
		{"Exact", "abcdefghijklmnopqrstuvwx", "abcdefghijklmnopqrstuvwx"},
		{"Long", "abcdefghijklmnopqrstuvwxyz", "abcdefghijklmnopqrstuvwx"},
		{"Multibyte boundary", "abcdefghijklmnopqrstuvwé", "abcdefghijklmnopqrstuvw"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s AtomicString
			s.Store(tt.in)
			if got := s.Load(); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestMetricMapCachesPointer(t *testing.T) {
	m := NewMetricMap[AtomicFloat]()
	a := m.Get("x")
	if b := m.Get("x"); a != b {
		t.Error("Expected the same cell for the same key")
	}
	if m.Get("y") == a {
		t.Error("Expected distinct cells for distinct keys")
	}
}

func TestMetricMapConcurrentFirstGet(t *testing.T) {
	m := NewMetricMap[atomic.Int64]()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Get(KeyArrived).Add(1)
		}()
	}
	wg.Wait()

	if got := m.Get(KeyArrived).Load(); got != 50 {
		t.Errorf("Expected 50 increments on one cell, got %d", got)
	}
}

func TestMetricMapRangeSorted(t *testing.T) {
	m := NewMetricMap[atomic.Int64]()
	for _, k := range []string{"c", "a", "b"} {
		m.Get(k)
	}

	var keys []string
	m.Range(func(k string, _ *atomic.Int64) { keys = append(keys, k) })
	if len(keys) != 3 || keys[0] != "a" || keys[1] != "b" || keys[2] != "c" {
		t.Errorf("Expected [a b c], got %v", keys)
	}
}

func TestRegistrySnapshotSorted(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get(KeyPlaced).Store(7)
	r.Floats.Get(KeyFrameDelta).Store(0.0166666)
	r.Strings.Get(KeySource).Store("connected")
	r.Ints.Get(KeyArrived).Store(9)

	snap := r.Snapshot()
	want := []Metric{
		{KeyFrameDelta, "0.017"},
		{KeyArrived, "9"},
		{KeyPlaced, "7"},
		{KeySource, "connected"},
	}
	if len(snap) != len(want) {
		t.Fatalf("Expected %d metrics, got %d", len(want), len(snap))
	}
	for i := range want {
		if snap[i] != want[i] {
			t.Errorf("Expected %v at %d, got %v", want[i], i, snap[i])
		}
	}
}
