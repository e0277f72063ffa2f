package core

import (
	"sync"

	"github.com/google/uuid"
)

// Store owns every live room, keyed by id. Room records are created and
// destroyed here and nowhere else. The map is guarded because the REST
// surface reads it off the hub goroutine; room internals stay hub-only.
type Store struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

// NewStore constructs an empty room store.
func NewStore() *Store {
	return &Store{rooms: make(map[string]*Room)}
}

// CreateRoom allocates a room with a fresh id. An empty password makes
// the room public. Always succeeds.
func (s *Store) CreateRoom(name, password string) *Room {
	room := newRoom(uuid.NewString(), name, password)

	s.mu.Lock()
	s.rooms[room.ID] = room
	s.mu.Unlock()

	return room
}

// Describe is the pre-join lookup: it reveals whether the room exists,
// its display name, and whether a password is required. Never the
// password itself or the membership.
func (s *Store) Describe(id string) (name string, hasPassword bool, ok bool) {
	room, ok := s.Get(id)
	if !ok {
		return "", false, false
	}
	return room.Name, room.HasPassword(), true
}

// Get returns the room with the given id, if it is still alive.
func (s *Store) Get(id string) (*Room, bool) {
	s.mu.RLock()
	room, ok := s.rooms[id]
	s.mu.RUnlock()
	return room, ok
}

// Destroy removes a room entirely. Destroying an unknown id is a no-op;
// a destroyed id is never reused.
func (s *Store) Destroy(id string) {
	s.mu.Lock()
	delete(s.rooms, id)
	s.mu.Unlock()
}

// Len returns the number of live rooms.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}
