package status

import (
	"slices"
	"sync"
)

// MetricMap is a keyed set of metric cells of type T
// Cells are created on first Get and never removed; callers cache the pointer
type MetricMap[T any] struct {
	cells sync.Map // string -> *T
}

// NewMetricMap returns an empty map
func NewMetricMap[T any]() *MetricMap[T] {
	return &MetricMap[T]{}
}

// Get returns the cell for key, creating it on first use
// Concurrent first calls for one key all receive the same cell
func (m *MetricMap[T]) Get(key string) *T {
	if v, ok := m.cells.Load(key); ok {
		return v.(*T)
	}
	v, _ := m.cells.LoadOrStore(key, new(T))
	return v.(*T)
}

// Range visits cells in key order
func (m *MetricMap[T]) Range(fn func(key string, cell *T)) {
	var keys []string
	m.cells.Range(func(k, _ any) bool {
		keys = append(keys, k.(string))
		return true
	})
	slices.Sort(keys)

	for _, k := range keys {
		v, _ := m.cells.Load(k)
		fn(k, v.(*T))
	}
}
