package store

import (
	"fmt"
	"sync"

	"rhcatalog/internal/model"
)

// Store is the ASIN-keyed record backend the serving side reads from.
// Backends must be safe for concurrent readers; the only writer is the
// snapshot load, which replaces contents wholesale via LoadAll.
type Store interface {
	Put(rec *model.ProductRecord) error
	Get(asin string) (*model.ProductRecord, bool)
	Range(fn func(rec *model.ProductRecord) error) error
	LoadAll(recs []*model.ProductRecord)
	Len() int
}

// MemoryStore is a simple thread-safe map store.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]*model.ProductRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]*model.ProductRecord)}
}

func (s *MemoryStore) Put(rec *model.ProductRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[rec.ASIN] = rec
	return nil
}

func (s *MemoryStore) Get(asin string) (*model.ProductRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.data[asin]
	return rec, ok
}

func (s *MemoryStore) Range(fn func(rec *model.ProductRecord) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.data {
		if err := fn(rec); err != nil {
			return fmt.Errorf("range callback failed: %w", err)
		}
	}
	return nil
}

// LoadAll replaces the store contents with one catalog's product list.
func (s *MemoryStore) LoadAll(recs []*model.ProductRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[string]*model.ProductRecord, len(recs))
	for _, rec := range recs {
		s.data[rec.ASIN] = rec
	}
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
