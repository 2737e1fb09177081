package profile

import (
	"sort"
	"sync"

	"github.com/hupe1980/memtrail/core"
)

// InMemoryStore is a volatile core.ProfileStore keeping per-subject profiles
// in a process local map. It is safe for concurrent access and hands out the
// live profile: the profile's own locking plus the agent's per-subject
// serialization guard all mutations.
type InMemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]*core.Profile
}

var _ core.ProfileStore = (*InMemoryStore)(nil)

// NewInMemoryStore constructs an empty in-memory profile store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{profiles: make(map[string]*core.Profile)}
}

// Get returns the live profile for the subject, creating an empty one lazily.
func (s *InMemoryStore) Get(subjectID string) (*core.Profile, error) {
	s.mu.RLock()
	if p, ok := s.profiles[subjectID]; ok {
		s.mu.RUnlock()
		return p, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.profiles[subjectID]; ok {
		return p, nil
	}
	p := core.NewProfile()
	s.profiles[subjectID] = p
	return p, nil
}

// Subjects lists the subject ids with an existing profile, sorted.
func (s *InMemoryStore) Subjects() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.profiles))
	for id := range s.profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
