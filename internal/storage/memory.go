// internal/storage/memory.go
package storage

import (
	"go-tower-siege/internal/defs"
	"go-tower-siege/internal/interfaces"
	"sync"
)

// MemoryStore keeps encoded records in memory. Headless runs use it when no
// database path is given.
type MemoryStore struct {
	mu      sync.Mutex
	records map[defs.Mode][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[defs.Mode][]byte)}
}

func (s *MemoryStore) SaveProgress(mode defs.Mode, p interfaces.Progress) error {
	data, err := EncodeProgress(p)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[mode] = data
	return nil
}

func (s *MemoryStore) LoadProgress(mode defs.Mode) (interfaces.Progress, bool, error) {
	s.mu.Lock()
	data, ok := s.records[mode]
	s.mu.Unlock()
	if !ok {
		return interfaces.Progress{}, false, nil
	}
	p, err := DecodeProgress(data)
	if err != nil {
		return interfaces.Progress{}, false, err
	}
	return p, true, nil
}
