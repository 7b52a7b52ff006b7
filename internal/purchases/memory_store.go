package purchases

import (
	"context"
	"sync"
)

// MemoryStore: потокобезопасное хранилище в памяти (тесты, локальный запуск).
type MemoryStore struct {
	mu      sync.RWMutex
	records []Purchase
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: []Purchase{}}
}

func (s *MemoryStore) ReplaceAll(_ context.Context, records []Purchase) error {
	cp := make([]Purchase, len(records))
	copy(cp, records)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = cp
	return nil
}

func (s *MemoryStore) ReadAll(_ context.Context) ([]Purchase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Purchase, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *MemoryStore) TopPurchasers(_ context.Context) ([]PurchaserSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return GroupByPurchaser(s.records), nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) Close(context.Context) error { return nil }
