package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	data      Data
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory. It is meant for single-instance
// development setups without Redis.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memoryEntry
	byUser   map[int64]map[string]struct{}
	now      func() time.Time
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memoryEntry),
		byUser:   make(map[int64]map[string]struct{}),
		now:      time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Data, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}
	if !s.now().Before(entry.expiresAt) {
		s.deleteLocked(id)
		return nil, nil
	}
	data := entry.data
	return &data, nil
}

func (s *MemoryStore) Save(_ context.Context, id string, data *Data, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.sessions[id]; ok && old.data.UserID != data.UserID {
		s.unindexLocked(old.data.UserID, id)
	}
	s.sessions[id] = memoryEntry{data: *data, expiresAt: s.now().Add(ttl)}
	if data.UserID != 0 {
		ids, ok := s.byUser[data.UserID]
		if !ok {
			ids = make(map[string]struct{})
			s.byUser[data.UserID] = ids
		}
		ids[id] = struct{}{}
	}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deleteLocked(id)
	return nil
}

func (s *MemoryStore) DeleteUser(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id := range s.byUser[userID] {
		delete(s.sessions, id)
	}
	delete(s.byUser, userID)
	return nil
}

// PurgeExpired drops expired sessions. Redis expires keys on its own; memory needs a sweep.
func (s *MemoryStore) PurgeExpired(context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var n int64
	for id, entry := range s.sessions {
		if !now.Before(entry.expiresAt) {
			s.deleteLocked(id)
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) Ping(context.Context) error {
	return nil
}

func (s *MemoryStore) deleteLocked(id string) {
	entry, ok := s.sessions[id]
	if !ok {
		return
	}
	delete(s.sessions, id)
	s.unindexLocked(entry.data.UserID, id)
}

func (s *MemoryStore) unindexLocked(userID int64, id string) {
	ids, ok := s.byUser[userID]
	if !ok {
		return
	}
	delete(ids, id)
	if len(ids) == 0 {
		delete(s.byUser, userID)
	}
}
