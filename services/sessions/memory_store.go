package sessions

import (
	"context"
	"sort"
	"sync"
	"time"
)

/*
 * 'MemoryStore' is an in-memory SessionStore with the same conditional
 * update semantics as the Postgres one. It backs the test suites and can
 * run the API without a database during local development.
 */
type MemoryStore struct {
	mu     sync.Mutex
	rows   map[uint]Session
	nextID uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rows: make(map[uint]Session), nextID: 1}
}

func (m *MemoryStore) FindFuture(_ context.Context, now time.Time, skip, limit int) ([]Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var future []Session
	for _, s := range m.rows {
		if s.DateStart.After(now) {
			future = append(future, copySession(s))
		}
	}
	sort.Slice(future, func(i, j int) bool {
		if !future[i].DateStart.Equal(future[j].DateStart) {
			return future[i].DateStart.Before(future[j].DateStart)
		}
		return future[i].ID < future[j].ID
	})
	if skip >= len(future) {
		return nil, nil
	}
	future = future[skip:]
	if limit > 0 && len(future) > limit {
		future = future[:limit]
	}
	return future, nil
}

func (m *MemoryStore) FindByID(_ context.Context, id uint) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.rows[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	cp := copySession(s)
	return &cp, nil
}

func (m *MemoryStore) Insert(_ context.Context, s *Session) (uint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++
	cp := copySession(*s)
	cp.ID = id
	m.rows[id] = cp
	return id, nil
}

func (m *MemoryStore) UpdateDetails(_ context.Context, id uint, version int, places *int, address, comment *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.match(id, version)
	if err != nil {
		return err
	}
	if places != nil {
		v := *places
		s.Places = &v
	}
	if address != nil {
		v := *address
		s.Address = &v
	}
	if comment != nil {
		v := *comment
		s.Comment = &v
	}
	s.Version++
	m.rows[id] = *s
	return nil
}

func (m *MemoryStore) UpdateParticipants(_ context.Context, id uint, version int, participants []User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.match(id, version)
	if err != nil {
		return err
	}
	s.Participants = append([]User{}, participants...)
	s.Version++
	m.rows[id] = *s
	return nil
}

func (m *MemoryStore) UpdateHost(_ context.Context, id uint, version int, host User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.match(id, version)
	if err != nil {
		return err
	}
	s.Host = host
	s.Version++
	m.rows[id] = *s
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.rows[id]; !ok {
		return ErrSessionNotFound
	}
	delete(m.rows, id)
	return nil
}

// match is the in-memory equivalent of "WHERE id = ? AND version = ?".
// Callers must hold the mutex.
func (m *MemoryStore) match(id uint, version int) (*Session, error) {
	s, ok := m.rows[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if s.Version != version {
		return nil, ErrConcurrentModification
	}
	return &s, nil
}

func copySession(s Session) Session {
	cp := s
	cp.Participants = append([]User{}, s.Participants...)
	return cp
}
