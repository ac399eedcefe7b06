package catalog

import (
	"fmt"
	"math"
	"sync"
)

type MemStore struct {
	mu       sync.RWMutex
	products []Product
}

func NewMemStore() *MemStore {
	return NewMemStoreWith(DefaultSeed()...)
}

// NewMemStoreWith builds a store holding seed in the given order. Seed ids are
// kept as-is; it panics on an id that is not positive or leaves no room for
// the next id.
func NewMemStoreWith(seed ...Product) *MemStore {
	for _, p := range seed {
		if p.ID <= 0 || p.ID == math.MaxInt64 {
			panic(fmt.Sprintf("catalog: seed product id %d out of range", p.ID))
		}
	}

	s := &MemStore{products: make([]Product, 0, len(seed))}
	s.products = append(s.products, seed...)
	return s
}

func (s *MemStore) List() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *MemStore) Get(id int64) (Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

func (s *MemStore) Add(p Product) Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := p.withID(s.maxID() + 1)
	s.products = append(s.products, stored)
	return stored
}

func (s *MemStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}

// maxID must be called with mu held.
func (s *MemStore) maxID() int64 {
	var top int64
	for _, p := range s.products {
		if p.ID > top {
			top = p.ID
		}
	}
	return top
}
