package catalog

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Store publishes catalog snapshots. Readers call Snapshot and never block;
// Refresh builds a complete new Index and swaps it in atomically, so a
// reader sees either the old snapshot or the new one, never a mix.
type Store struct {
	source    Source
	logger    *slog.Logger
	current   atomic.Pointer[Index]
	loadedAt  atomic.Int64
	refreshMu sync.Mutex
}

// NewStore creates a store backed by source, starting from an empty snapshot.
// Call Refresh to load the catalog.
func NewStore(source Source, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{source: source, logger: logger}
	s.current.Store(EmptyIndex())
	return s
}

// NewStaticStore creates a store that serves a fixed index and has no source.
func NewStaticStore(idx *Index) *Store {
	s := NewStore(nil, nil)
	s.Swap(idx)
	return s
}

// Snapshot returns the current index. The returned index is immutable.
func (s *Store) Snapshot() *Index {
	return s.current.Load()
}

// LoadedAt returns when the current snapshot was published (zero if never).
func (s *Store) LoadedAt() time.Time {
	ns := s.loadedAt.Load()
	if ns == 0 {
		return time.Time{}
	}
	return time.Unix(0, ns)
}

// Swap publishes idx as the current snapshot.
func (s *Store) Swap(idx *Index) {
	if idx == nil {
		idx = EmptyIndex()
	}
	s.current.Store(idx)
	s.loadedAt.Store(time.Now().UnixNano())
}

// Refresh loads the full catalog from the source and publishes it. On any
// error the previous snapshot stays in place. Concurrent refreshes are serialized.
func (s *Store) Refresh(ctx context.Context) error {
	if s.source == nil {
		return ErrNoSource
	}

	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	start := time.Now()
	entries, err := s.source.LoadCatalog(ctx)
	if err != nil {
		return &LoadError{Message: "source failed", Cause: err}
	}

	idx, err := NewIndex(entries)
	if err != nil {
		return err
	}

	s.Swap(idx)
	if idx.Len() == 0 {
		s.logger.Warn("catalog refreshed with zero entries; lexical matching will abstain")
	}
	s.logger.Info("catalog refreshed",
		"entries", idx.Len(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// Run refreshes the catalog every interval until ctx is done. Failures are
// logged and the previous snapshot keeps serving.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 || s.source == nil {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Refresh(ctx); err != nil {
				s.logger.Error("catalog refresh failed", "error", err)
			}
		}
	}
}
