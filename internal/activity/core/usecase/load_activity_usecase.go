package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"activity-dashboard-service/internal/activity/core/domain"
	"activity-dashboard-service/internal/activity/core/ports"
	"activity-dashboard-service/internal/platform/observability"
)

// CacheKey is the single key under which the whole-table load is cached.
const CacheKey = "none"

// LoadError wraps any failure to read the activity source.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load activity from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

type cacheEntry struct {
	table    *domain.Table
	storedAt time.Time
}

// LoadActivityUseCase returns the activity table, serving it from an
// in-process cache until the TTL elapses or Invalidate is called. A zero
// TTL keeps the entry until invalidation.
type LoadActivityUseCase struct {
	source ports.ActivitySourcePort
	ttl    time.Duration
	logger zerolog.Logger
	now    func() time.Time

	mu      sync.Mutex
	entries map[string]cacheEntry
	gen     uint64 // bumped by Invalidate
	flight  singleflight.Group
}

func NewLoadActivityUseCase(source ports.ActivitySourcePort, ttl time.Duration, logger zerolog.Logger) *LoadActivityUseCase {
	return &LoadActivityUseCase{
		source:  source,
		ttl:     ttl,
		logger:  logger,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

// WithClock replaces the clock used for TTL checks.
func (uc *LoadActivityUseCase) WithClock(now func() time.Time) *LoadActivityUseCase {
	uc.now = now
	return uc
}

// Execute returns the cached table or loads it from the source.
func (uc *LoadActivityUseCase) Execute(ctx context.Context) (*domain.Table, error) {
	if t, ok := uc.cached(); ok {
		observability.RecordCacheHit()
		return t, nil
	}
	observability.RecordCacheMiss()

	v, err, _ := uc.flight.Do(CacheKey, func() (any, error) {
		// another caller may have filled the entry while we waited
		if t, ok := uc.cached(); ok {
			return t, nil
		}
		return uc.load(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Table), nil
}

// Invalidate drops the cached table so the next Execute reloads it.
func (uc *LoadActivityUseCase) Invalidate() {
	uc.mu.Lock()
	delete(uc.entries, CacheKey)
	uc.gen++
	uc.mu.Unlock()
	uc.flight.Forget(CacheKey)
	uc.logger.Info().Str("source", uc.source.Name()).Msg("activity cache invalidated")
}

func (uc *LoadActivityUseCase) cached() (*domain.Table, bool) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	e, ok := uc.entries[CacheKey]
	if !ok {
		return nil, false
	}
	if uc.ttl > 0 && uc.now().Sub(e.storedAt) >= uc.ttl {
		delete(uc.entries, CacheKey)
		return nil, false
	}
	return e.table, true
}

func (uc *LoadActivityUseCase) load(ctx context.Context) (*domain.Table, error) {
	uc.mu.Lock()
	gen := uc.gen
	uc.mu.Unlock()

	start := time.Now()
	t, err := uc.source.LoadActivity(ctx)
	took := time.Since(start)

	if err != nil {
		observability.RecordLoad(uc.source.Name(), 0, took, err)
		uc.logger.Error().Err(err).Str("source", uc.source.Name()).Dur("took", took).Msg("activity load failed")
		return nil, &LoadError{Source: uc.source.Name(), Err: err}
	}

	observability.RecordLoad(uc.source.Name(), len(t.Rows), took, nil)
	uc.logger.Info().
		Str("source", uc.source.Name()).
		Int("rows", len(t.Rows)).
		Int("columns", len(t.Columns)).
		Dur("took", took).
		Msg("activity table loaded")

	now := uc.now()
	if t.LoadedAt.IsZero() {
		t.LoadedAt = now
	}

	uc.mu.Lock()
	// an Invalidate during the read makes this table stale
	if uc.gen == gen {
		uc.entries[CacheKey] = cacheEntry{table: t, storedAt: now}
	}
	uc.mu.Unlock()

	return t, nil
}
