package asset

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/vi-blaster/core"
)

// spawn starts the completion watcher under the crash handler
var spawn = core.Go

// Library load states
const (
	StateIdle    = "idle"
	StateLoading = "loading"
	StateReady   = "ready"
	StateFailed  = "failed"
)

// Library holds prepared templates and per-kind readiness
// Loading runs on a worker pool; readers never block on it
type Library struct {
	mu        sync.RWMutex
	templates map[Kind]Template
	ready     map[Kind]*atomic.Bool

	state  atomic.Value // string
	pool   *ants.Pool
	logger zerolog.Logger
}

// NewLibrary creates an empty library backed by a pool of workers
func NewLibrary(workers int, logger zerolog.Logger) (*Library, error) {
	if workers <= 0 {
		workers = 1
	}
	pool, err := ants.NewPool(
		workers,
		ants.WithPreAlloc(true),
		ants.WithPanicHandler(func(p any) {
			logger.Error().Interface("panic", p).Msg("asset worker panic")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create asset pool: %w", err)
	}

	l := newLibrary(logger)
	l.pool = pool
	return l, nil
}

// NewStaticLibrary returns a library with the given templates already ready
func NewStaticLibrary(templates ...Template) *Library {
	l := newLibrary(zerolog.Nop())
	for _, t := range templates {
		l.store(t)
	}
	l.state.Store(StateReady)
	return l
}

func newLibrary(logger zerolog.Logger) *Library {
	l := &Library{
		templates: make(map[Kind]Template),
		ready:     make(map[Kind]*atomic.Bool, len(Kinds)),
		logger:    logger,
	}
	for _, k := range Kinds {
		l.ready[k] = &atomic.Bool{}
	}
	l.state.Store(StateIdle)
	return l
}

// LoadFile reads the manifest at path, or DefaultManifest when path is empty, and loads it in background
func (l *Library) LoadFile(ctx context.Context, path string) <-chan error {
	data := []byte(DefaultManifest)
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return l.fail(fmt.Errorf("read manifest %s: %w", path, err))
		}
		data = b
	}
	return l.Load(ctx, data)
}

// Load parses a manifest and prepares each template on the pool
// The returned channel receives the first error (or nil) once every entry is processed
func (l *Library) Load(ctx context.Context, data []byte) <-chan error {
	m, err := ParseManifest(data)
	if err != nil {
		return l.fail(err)
	}
	if l.pool == nil {
		return l.fail(fmt.Errorf("load manifest: library has no worker pool"))
	}

	l.state.Store(StateLoading)
	done := make(chan error, 1)

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	setErr := func(err error) {
		errOnce.Do(func() { firstErr = err })
	}

	for _, entry := range m.Templates {
		wg.Add(1)
		submitErr := l.pool.Submit(func() {
			defer wg.Done()
			if ctx.Err() != nil {
				setErr(ctx.Err())
				return
			}
			t, err := entry.Prepare()
			if err != nil {
				setErr(err)
				return
			}
			l.store(t)
			l.logger.Debug().Str("name", t.Name).Str("kind", string(t.Kind)).Str("id", t.ID.String()).Msg("template ready")
		})
		if submitErr != nil {
			wg.Done()
			setErr(fmt.Errorf("submit %q: %w", entry.Name, submitErr))
		}
	}

	spawn(func() {
		wg.Wait()
		if firstErr == nil {
			for _, k := range Kinds {
				if !l.Ready(k) {
					l.logger.Warn().Str("kind", string(k)).Msg("manifest has no template for kind")
				}
			}
			l.state.Store(StateReady)
		} else {
			l.state.Store(StateFailed)
			l.logger.Error().Err(firstErr).Msg("asset load failed")
		}
		done <- firstErr
		close(done)
	})

	return done
}

func (l *Library) fail(err error) <-chan error {
	l.state.Store(StateFailed)
	done := make(chan error, 1)
	done <- err
	close(done)
	return done
}

func (l *Library) store(t Template) {
	l.mu.Lock()
	l.templates[t.Kind] = t
	l.mu.Unlock()
	if r, ok := l.ready[t.Kind]; ok {
		r.Store(true)
	}
}

// Ready reports whether a template for kind has been prepared
func (l *Library) Ready(kind Kind) bool {
	r, ok := l.ready[kind]
	return ok && r.Load()
}

// Template returns the prepared template for kind
func (l *Library) Template(kind Kind) (Template, bool) {
	if !l.Ready(kind) {
		return Template{}, false
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	t, ok := l.templates[kind]
	return t, ok
}

// Lookup is Template with an error for unsupported kinds
func (l *Library) Lookup(kind Kind) (Template, error) {
	if !kind.Valid() {
		return Template{}, fmt.Errorf("lookup %q: %w", kind, ErrUnknownKind)
	}
	t, ok := l.Template(kind)
	if !ok {
		return Template{}, fmt.Errorf("lookup %q: not loaded", kind)
	}
	return t, nil
}

// State returns the load state name
func (l *Library) State() string {
	return l.state.Load().(string)
}

// Release stops the worker pool
func (l *Library) Release() {
	if l.pool != nil {
		l.pool.Release()
	}
}
