package library

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"screenplay-worker/domain/models"
	"screenplay-worker/domain/ports"
)

// MemoryStore - in-process library for the one-shot CLI and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*models.LibraryEntry
}

var _ ports.LibraryPort = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]*models.LibraryEntry)}
}

func (s *MemoryStore) Put(_ context.Context, entry *models.LibraryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *entry
	s.entries[entry.ID] = &clone
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*models.LibraryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[id]
	if !ok {
		return nil, fmt.Errorf("library entry not found: %s", id)
	}
	clone := *entry
	return &clone, nil
}

func (s *MemoryStore) GetAll(_ context.Context) ([]*models.LibraryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make([]*models.LibraryEntry, 0, len(s.entries))
	for _, entry := range s.entries {
		clone := *entry
		entries = append(entries, &clone)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt > entries[j].CreatedAt
	})
	return entries, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]*models.LibraryEntry)
	return nil
}
