package status

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricMapGetReturnsCachedPointer(t *testing.T) {
	r := NewRegistry()
	a := r.Ints.Get(KeyShots)
	b := r.Ints.Get(KeyShots)
	assert.Same(t, a, b)
	assert.Equal(t, 1, r.TotalCount())
}

func TestMetricMapConcurrentRegistration(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Ints.Get(KeyHits).Add(1)
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(16), r.Ints.Get(KeyHits).Load())
}

func TestRegistryLine(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get(KeyTicks).Store(120)
	r.Floats.Get(KeyStepScale).Set(1)
	r.Strings.Get(KeyAssets).Store("ready")

	got := r.Line(KeyTicks, KeyHits, KeyStepScale, KeyAssets)
	assert.Equal(t, "ticks=120 step=1.00 assets=ready", got)
}

func TestRegistryFields(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get(KeyShots).Store(3)
	r.Floats.Get(KeyPeakStep).Max(2.5)
	r.Strings.Get(KeyAudio).Store("fire")

	assert.Equal(t, map[string]any{
		KeyShots:    int64(3),
		KeyPeakStep: 2.5,
		KeyAudio:    "fire",
	}, r.Fields())
}

func TestAtomicStringTruncates(t *testing.T) {
	var s AtomicString
	assert.Equal(t, "", s.Load())
	s.Store("0123456789012345678901234567890")
	assert.Len(t, s.Load(), MaxStringLen)

	// Multi-byte runes are never split
	s.Store("ééééééééééééééé")
	assert.Equal(t, "éééééééé", s.Load())
}

func TestAtomicFloatMax(t *testing.T) {
	var f AtomicFloat
	assert.Equal(t, 1.5, f.Max(1.5))
	assert.Equal(t, 1.5, f.Max(0.5))
	assert.Equal(t, 1.5, f.Get())
	f.Set(0.25)
	assert.Equal(t, 0.25, f.Get())
}

func TestMetricMapKeysSorted(t *testing.T) {
	m := NewMetricMap[AtomicFloat]()
	m.Get("b")
	m.Get("a")
	assert.Equal(t, []string{"a", "b"}, m.Keys())
}
