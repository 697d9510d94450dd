// Package status holds lock-free counters shared between the game loop and
// its observers. Callers cache the pointer returned by Get during setup and
// write to the atomic directly afterwards
package status

import "sync/atomic"

// Registry is the central metrics facade
type Registry struct {
	Bools *MetricMap[atomic.Bool]
	Ints  *MetricMap[atomic.Int64]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools: NewMetricMap[atomic.Bool](),
		Ints:  NewMetricMap[atomic.Int64](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count()
}

// Export flattens all metrics into a map for serialization
func (r *Registry) Export() map[string]any {
	out := make(map[string]any, r.TotalCount())
	r.Ints.Range(func(key string, ptr *atomic.Int64) {
		out[key] = ptr.Load()
	})
	r.Bools.Range(func(key string, ptr *atomic.Bool) {
		out[key] = ptr.Load()
	})
	return out
}
