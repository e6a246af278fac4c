package status

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Simulation metric keys
const (
	KeyTicks       = "sim.ticks"
	KeyShots       = "sim.shots"
	KeyDropped     = "sim.shots_dropped"
	KeyHits        = "sim.hits"
	KeyRespawns    = "sim.respawns"
	KeyProjectiles = "sim.projectiles"
	KeyExpired     = "sim.expired"
	KeyStepScale   = "clock.step"
	KeyPeakStep    = "clock.peak_step"
	KeyAssets      = "assets"
	KeyAudio       = "audio"
)

// Registry is the central metrics facade
// Components cache pointers during init; tick code writes directly to atomics
type Registry struct {
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Fields returns every metric value keyed by name, for structured log summaries
func (r *Registry) Fields() map[string]any {
	out := make(map[string]any, r.TotalCount())
	r.Ints.Range(func(k string, v *atomic.Int64) { out[k] = v.Load() })
	r.Floats.Range(func(k string, v *AtomicFloat) { out[k] = v.Get() })
	r.Strings.Range(func(k string, v *AtomicString) { out[k] = v.Load() })
	return out
}

// Line formats the listed keys as "key=value" pairs for a status bar
// Unregistered keys are skipped
func (r *Registry) Line(keys ...string) string {
	var b strings.Builder
	for _, k := range keys {
		var v string
		switch {
		case r.Ints.Has(k):
			v = fmt.Sprintf("%d", r.Ints.Get(k).Load())
		case r.Floats.Has(k):
			v = fmt.Sprintf("%.2f", r.Floats.Get(k).Get())
		case r.Strings.Has(k):
			v = r.Strings.Get(k).Load()
		default:
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(k[strings.LastIndexByte(k, '.')+1:])
		b.WriteByte('=')
		b.WriteString(v)
	}
	return b.String()
}
