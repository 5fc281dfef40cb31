// Package status collects live counters from the scheduler and sources
// for the status bar and the exit summary.
package status

import (
	"fmt"
	"sort"
	"strconv"
	"sync/atomic"
)

// Metric keys written by the scheduler and sources
const (
	KeyArrived    = "items.arrived"
	KeyPlaced     = "items.placed"
	KeyRetired    = "items.retired"
	KeyDropped    = "items.dropped"
	KeyRejected   = "items.rejected"
	KeyActive     = "items.active"
	KeyBacklog    = "items.backlog"
	KeyLanes      = "lanes.count"
	KeyRebuilds   = "lanes.rebuilds"
	KeyFrames     = "frame.count"
	KeyFrameDelta = "frame.dt"
	KeyFPS        = "frame.fps"
	KeySource     = "source.state"
	KeyReconnects = "source.reconnects"
)

// Registry groups metric maps by value type
type Registry struct {
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry returns a registry with empty maps
func NewRegistry() *Registry {
	return &Registry{
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// Metric is one formatted reading
type Metric struct {
	Key   string
	Value string
}

// Snapshot returns every metric formatted and sorted by key
func (r *Registry) Snapshot() []Metric {
	var out []Metric
	r.Ints.Range(func(k string, v *atomic.Int64) {
		out = append(out, Metric{Key: k, Value: strconv.FormatInt(v.Load(), 10)})
	})
	r.Floats.Range(func(k string, v *AtomicFloat) {
		out = append(out, Metric{Key: k, Value: fmt.Sprintf("%.3f", v.Load())})
	})
	r.Strings.Range(func(k string, v *AtomicString) {
		out = append(out, Metric{Key: k, Value: v.Load()})
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
