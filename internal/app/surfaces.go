package app

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/sahanarao-sps/sps-team30-project/internal/adapter/metrics"
	"github.com/sahanarao-sps/sps-team30-project/internal/animation"
	"github.com/sahanarao-sps/sps-team30-project/internal/domain"
	"github.com/sahanarao-sps/sps-team30-project/internal/sentiment"
	"github.com/sahanarao-sps/sps-team30-project/internal/surface"
)

// SurfaceDecorator wraps the in-memory surface of a new entry, e.g. to also
// push every mutation to websocket subscribers.
type SurfaceDecorator func(id uuid.UUID, inner domain.Surface) domain.Surface

// RegistryConfig configures a SurfaceRegistry.
type RegistryConfig struct {
	MaxSurfaces   int
	IdleTTL       time.Duration
	AnimationTick time.Duration
	Decorate      SurfaceDecorator         // optional
	Random        sentiment.RandomSource   // optional, defaults to sentiment.DefaultSource
	Metrics       *metrics.AnalysisMetrics // nil disables metrics
}

type surfaceEntry struct {
	id        uuid.UUID
	memory    *surface.Memory
	presenter *Presenter
	lastUsed  time.Time
}

// SurfaceRegistry holds the live display surfaces, each with its own
// presenter and animator. Entries idle for longer than the TTL are evicted
// by the janitor unless their bar is still animating.
type SurfaceRegistry struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]*surfaceEntry
	clock   clockwork.Clock
	cfg     RegistryConfig
}

func NewSurfaceRegistry(cfg RegistryConfig, clock clockwork.Clock) *SurfaceRegistry {
	if cfg.Random == nil {
		cfg.Random = sentiment.DefaultSource
	}
	return &SurfaceRegistry{
		entries: make(map[uuid.UUID]*surfaceEntry),
		clock:   clock,
		cfg:     cfg,
	}
}

// Create registers a new surface and returns its id.
func (r *SurfaceRegistry) Create() (uuid.UUID, error) {
	id := uuid.New()
	mem := surface.NewMemory()

	var target domain.Surface = mem
	if r.cfg.Decorate != nil {
		target = r.cfg.Decorate(id, mem)
	}
	animator := animation.NewAnimator(r.clock, r.cfg.AnimationTick, r.cfg.Metrics)

	entry := &surfaceEntry{
		id:        id,
		memory:    mem,
		presenter: NewPresenter(target, animator, r.cfg.Random, r.cfg.Metrics),
		lastUsed:  r.clock.Now(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cfg.MaxSurfaces > 0 && len(r.entries) >= r.cfg.MaxSurfaces {
		entry.presenter.Close()
		return uuid.Nil, fmt.Errorf("create surface: %w", domain.ErrSurfaceLimit)
	}
	r.entries[id] = entry
	r.updateGauge()

	return id, nil
}

// lookup returns the entry and marks it as used.
func (r *SurfaceRegistry) lookup(id uuid.UUID) (*surfaceEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[id]
	if !ok {
		return nil, fmt.Errorf("surface %s: %w", id, domain.ErrSurfaceNotFound)
	}
	entry.lastUsed = r.clock.Now()
	return entry, nil
}

// Snapshot returns the current content of a surface.
func (r *SurfaceRegistry) Snapshot(id uuid.UUID) (surface.Snapshot, error) {
	entry, err := r.lookup(id)
	if err != nil {
		return surface.Snapshot{}, err
	}
	return entry.memory.Snapshot(), nil
}

// Exists reports whether the surface is registered, without touching it.
func (r *SurfaceRegistry) Exists(id uuid.UUID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[id]
	return ok
}

// Size returns the number of registered surfaces.
func (r *SurfaceRegistry) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Remove stops the surface's animation and forgets it.
func (r *SurfaceRegistry) Remove(id uuid.UUID) bool {
	r.mu.Lock()
	entry, ok := r.entries[id]
	if ok {
		delete(r.entries, id)
		r.updateGauge()
	}
	r.mu.Unlock()

	if ok {
		entry.presenter.Close()
	}
	return ok
}

// EvictIdle removes surfaces idle for longer than the TTL and returns the
// count evicted. Surfaces with a running animation are kept.
func (r *SurfaceRegistry) EvictIdle() int {
	r.mu.Lock()
	now := r.clock.Now()
	var evicted []*surfaceEntry
	for id, entry := range r.entries {
		if now.Sub(entry.lastUsed) > r.cfg.IdleTTL && !entry.presenter.Animating() {
			delete(r.entries, id)
			evicted = append(evicted, entry)
		}
	}
	r.updateGauge()
	r.mu.Unlock()

	for _, entry := range evicted {
		entry.presenter.Close()
	}
	return len(evicted)
}

// StartEvictionTimer starts a background goroutine that periodically evicts
// idle surfaces. Returns a stop function that should be called to clean up
// the goroutine.
func (r *SurfaceRegistry) StartEvictionTimer(interval time.Duration) func() {
	ticker := r.clock.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.Chan():
				if evicted := r.EvictIdle(); evicted > 0 {
					slog.Debug("Evicted idle surfaces",
						"count", evicted,
						"remaining", r.Size(),
					)
				}
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
	}
}

// Close stops every animation and empties the registry.
func (r *SurfaceRegistry) Close() {
	r.mu.Lock()
	entries := r.entries
	r.entries = make(map[uuid.UUID]*surfaceEntry)
	r.updateGauge()
	r.mu.Unlock()

	for _, entry := range entries {
		entry.presenter.Close()
	}
}

// updateGauge must be called with mu held.
func (r *SurfaceRegistry) updateGauge() {
	if r.cfg.Metrics != nil {
		r.cfg.Metrics.ActiveSurfaces.Set(float64(len(r.entries)))
	}
}
