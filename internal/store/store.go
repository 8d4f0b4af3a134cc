package store

import (
	"sync"

	"sales-insights-go/internal/types"
)

// Store holds the single in-memory snapshot of the last parsed workbook.
// A new upload replaces the whole snapshot atomically; derived views are
// always recomputed from the snapshot, never updated incrementally.
type Store struct {
	mu       sync.RWMutex
	fileName string
	tables   types.Tables
	loaded   bool
}

func New() *Store { return &Store{} }

func (s *Store) Replace(fileName string, t types.Tables) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fileName = fileName
	s.tables = t
	s.loaded = true
}

// Snapshot returns the current tables and whether any upload succeeded yet.
func (s *Store) Snapshot() (string, types.Tables, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fileName, s.tables, s.loaded
}

// Reset drops all parsed data, as after a failed ingestion.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fileName = ""
	s.tables = types.Tables{}
	s.loaded = false
}
