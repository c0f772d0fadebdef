package store

import (
	"context"
	"sync"
	"time"

	"github.com/matzehuels/tilegrid/pkg/board"
)

// MemoryStore keeps boards in memory. Boards are cloned on the way in and
// out so callers never share state with the store.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]record)}
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*board.Board, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.records[id]
	if !ok {
		return nil, notFound(id)
	}
	return r.Board.Clone(), nil
}

func (s *MemoryStore) Put(ctx context.Context, b *board.Board) error {
	if err := checkPut(b); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[b.ID] = record{Board: b.Clone(), UpdatedAt: time.Now().UTC()}
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return notFound(id)
	}
	delete(s.records, id)
	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Summary, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r.summary())
	}
	sortSummaries(out)
	return out, nil
}

func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
