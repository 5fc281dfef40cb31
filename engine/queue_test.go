package engine

import (
	"testing"
	"time"

	"github.com/lixenwraith/danmaku/components"
	"github.com/lixenwraith/danmaku/config"
)

func newItems(payloads ...string) []*components.Item {
	out := make([]*components.Item, len(payloads))
	for i, p := range payloads {
		out[i] = components.NewItem(p, time.Unix(int64(i), 0), 5)
	}
	return out
}

func payloads(items []*components.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Payload
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestQueuePreservesArrivalOrder(t *testing.T) {
	q := NewMessageQueue()
	for _, it := range newItems("a", "b", "c") {
		if _, ok := q.Push(it, 0, config.PolicyDropOldest); !ok {
			t.Fatal("Expected unbounded push to succeed")
		}
	}
	if got := payloads(q.Items()); !equalStrings(got, []string{"a", "b", "c"}) {
		t.Errorf("Expected [a b c], got %v", got)
	}
	if q.Backlog() != 3 || q.Active() != 0 {
		t.Errorf("Expected backlog 3 active 0, got %d/%d", q.Backlog(), q.Active())
	}
}

func TestQueueBacklogPolicies(t *testing.T) {
	tests := []struct {
		name        string
		policy      config.Policy
		wantKept    []string
		wantDropped []string
	}{
		{"Drop oldest", config.PolicyDropOldest, []string{"c", "d"}, []string{"a", "b"}},
		{"Drop newest", config.PolicyDropNewest, []string{"a", "b"}, []string{"c", "d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewMessageQueue()
			var dropped []string
			for _, it := range newItems("a", "b", "c", "d") {
				d, _ := q.Push(it, 2, tt.policy)
				dropped = append(dropped, payloads(d)...)
			}
			if got := payloads(q.Items()); !equalStrings(got, tt.wantKept) {
				t.Errorf("Expected kept %v, got %v", tt.wantKept, got)
			}
			if !equalStrings(dropped, tt.wantDropped) {
				t.Errorf("Expected dropped %v, got %v", tt.wantDropped, dropped)
			}
		})
	}
}

func TestQueueBacklogIgnoresPlacedItems(t *testing.T) {
	q := NewMessageQueue()
	items := newItems("a", "b", "c")
	items[0].Place(0, 10, 10, 100, 0)

	for _, it := range items {
		q.Push(it, 2, config.PolicyDropOldest)
	}
	if q.Len() != 3 {
		t.Errorf("Expected placed item to not count against the backlog, got len %d", q.Len())
	}
	if q.Backlog() != 2 || q.Active() != 1 {
		t.Errorf("Expected backlog 2 active 1, got %d/%d", q.Backlog(), q.Active())
	}
}

func TestQueueDropNewestRejectsArrival(t *testing.T) {
	q := NewMessageQueue()
	items := newItems("a", "b")
	q.Push(items[0], 1, config.PolicyDropNewest)

	dropped, ok := q.Push(items[1], 1, config.PolicyDropNewest)
	if ok {
		t.Error("Expected arrival to be refused")
	}
	if len(dropped) != 1 || dropped[0] != items[1] {
		t.Error("Expected the refused arrival to be reported as dropped")
	}
}

func TestQueueEnforceAfterShrink(t *testing.T) {
	q := NewMessageQueue()
	for _, it := range newItems("a", "b", "c", "d") {
		q.Push(it, 0, config.PolicyDropOldest)
	}
	dropped := q.Enforce(1, config.PolicyDropOldest)
	if len(dropped) != 3 {
		t.Errorf("Expected 3 dropped, got %d", len(dropped))
	}
	if got := payloads(q.Items()); !equalStrings(got, []string{"d"}) {
		t.Errorf("Expected [d], got %v", got)
	}
}

func TestQueueSweepAndClear(t *testing.T) {
	q := NewMessageQueue()
	for _, it := range newItems("a", "b", "c") {
		q.Push(it, 0, config.PolicyDropOldest)
	}

	removed := q.Sweep(func(it *components.Item) bool { return it.Payload == "b" })
	if len(removed) != 1 || removed[0].Payload != "b" {
		t.Errorf("Expected b removed, got %v", payloads(removed))
	}
	if got := payloads(q.Items()); !equalStrings(got, []string{"a", "c"}) {
		t.Errorf("Expected [a c], got %v", got)
	}

	if n := len(q.Clear()); n != 2 {
		t.Errorf("Expected 2 cleared, got %d", n)
	}
	if q.Len() != 0 {
		t.Error("Expected empty queue after Clear")
	}
}
