package engine

import (
	"github.com/lixenwraith/danmaku/components"
	"github.com/lixenwraith/danmaku/config"
)

// MessageQueue holds items in arrival order until they retire
// Not safe for concurrent use; the Scheduler serialises access
type MessageQueue struct {
	items []*components.Item
}

// NewMessageQueue returns an empty queue
func NewMessageQueue() *MessageQueue {
	return &MessageQueue{}
}

// Push appends an arrival subject to the backlog cap on unplaced items
// With drop-newest and a full backlog the arrival itself is refused and returned as dropped
// With drop-oldest the oldest unplaced item is evicted to make room
func (q *MessageQueue) Push(item *components.Item, max int, policy config.Policy) (dropped []*components.Item, accepted bool) {
	if max > 0 && policy == config.PolicyDropNewest && q.Backlog() >= max {
		return []*components.Item{item}, false
	}
	q.items = append(q.items, item)
	return q.Enforce(max, policy), true
}

// Enforce evicts unplaced items until the backlog is within max and returns them
// A max of 0 or less means unbounded
func (q *MessageQueue) Enforce(max int, policy config.Policy) []*components.Item {
	if max <= 0 {
		return nil
	}
	excess := q.Backlog() - max
	if excess <= 0 {
		return nil
	}

	evict := make(map[*components.Item]struct{}, excess)
	if policy == config.PolicyDropNewest {
		for i := len(q.items) - 1; i >= 0 && len(evict) < excess; i-- {
			if q.items[i].State() == components.ItemUnplaced {
				evict[q.items[i]] = struct{}{}
			}
		}
	} else {
		for i := 0; i < len(q.items) && len(evict) < excess; i++ {
			if q.items[i].State() == components.ItemUnplaced {
				evict[q.items[i]] = struct{}{}
			}
		}
	}

	return q.Sweep(func(it *components.Item) bool {
		_, ok := evict[it]
		return ok
	})
}

// Sweep removes every item matching remove, preserving order, and returns the removed items
func (q *MessageQueue) Sweep(remove func(*components.Item) bool) []*components.Item {
	var removed []*components.Item
	kept := q.items[:0]
	for _, it := range q.items {
		if remove(it) {
			removed = append(removed, it)
			continue
		}
		kept = append(kept, it)
	}
	clear(q.items[len(kept):])
	q.items = kept
	return removed
}

// Each visits items in arrival order
func (q *MessageQueue) Each(fn func(*components.Item)) {
	for _, it := range q.items {
		fn(it)
	}
}

// Items returns a copy of the queue in arrival order
func (q *MessageQueue) Items() []*components.Item {
	out := make([]*components.Item, len(q.items))
	copy(out, q.items)
	return out
}

// Len counts every item held, placed or waiting
func (q *MessageQueue) Len() int {
	return len(q.items)
}

// Backlog counts items still waiting for a lane
func (q *MessageQueue) Backlog() int {
	n := 0
	for _, it := range q.items {
		if it.State() == components.ItemUnplaced {
			n++
		}
	}
	return n
}

// Active counts items currently moving
func (q *MessageQueue) Active() int {
	n := 0
	for _, it := range q.items {
		if it.Placed() {
			n++
		}
	}
	return n
}

// Clear drops every item and returns them
func (q *MessageQueue) Clear() []*components.Item {
	out := q.items
	q.items = nil
	return out
}
