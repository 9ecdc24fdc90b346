package website

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepository is an in-memory Repository. It backs tests and local
// development runs where no Redis is available.
type MemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]*Record
	idByURL map[string]string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[string]*Record),
		idByURL: make(map[string]string),
	}
}

func (r *MemoryRepository) FindByURL(_ context.Context, url string) (*Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.idByURL[url]
	if !ok {
		return nil, nil
	}
	rec := *r.byID[id]
	return &rec, nil
}

func (r *MemoryRepository) FindByID(_ context.Context, id string) (*Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (r *MemoryRepository) List(_ context.Context) ([]*Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]*Record, 0, len(r.byID))
	for _, rec := range r.byID {
		cp := *rec
		records = append(records, &cp)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}

func (r *MemoryRepository) Insert(_ context.Context, rec *Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Keep the one-record-per-URL invariant even under concurrent inserts.
	if _, ok := r.idByURL[rec.URL]; ok {
		return ErrURLExists
	}

	cp := *rec
	r.byID[rec.ID] = &cp
	r.idByURL[rec.URL] = rec.ID
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	delete(r.idByURL, rec.URL)
	return nil
}
