package store

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/matzehuels/stepwise/pkg/step"
)

// MemoryStore keeps traces in a map. Traces are stored as JSON so readers
// see the same shape a persistent store would return.
type MemoryStore struct {
	mu     sync.RWMutex
	traces map[string][]byte
	infos  map[string]TraceInfo
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		traces: make(map[string][]byte),
		infos:  make(map[string]TraceInfo),
	}
}

func (s *MemoryStore) SaveTrace(ctx context.Context, t *step.Trace) error {
	if err := validate(t); err != nil {
		return err
	}
	data, err := step.MarshalTrace(t)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.traces[t.ID] = data
	s.infos[t.ID] = Info(t)
	return nil
}

func (s *MemoryStore) GetTrace(ctx context.Context, id string) (*step.Trace, error) {
	s.mu.RLock()
	data, ok := s.traces[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return step.UnmarshalTrace(data)
}

func (s *MemoryStore) ListTraces(ctx context.Context, algorithm string, limit int) ([]TraceInfo, error) {
	s.mu.RLock()
	out := make([]TraceInfo, 0, len(s.infos))
	for _, info := range s.infos {
		if algorithm == "" || info.Algorithm == algorithm {
			out = append(out, info)
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b TraceInfo) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	if n := clampLimit(limit); len(out) > n {
		out = out[:n]
	}
	return out, nil
}

func (s *MemoryStore) Close(ctx context.Context) error { return nil }

var _ Store = (*MemoryStore)(nil)
