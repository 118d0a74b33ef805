package conversation

import (
	"context"
	"sync"
)

// MemoryStore keeps conversations in a process-local map. State does not
// survive a restart, which matches the bot's semantics: an interrupted
// conversation simply starts over.
type MemoryStore struct {
	mu            sync.RWMutex
	conversations map[string]*State
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		conversations: make(map[string]*State),
	}
}

// GetOrCreate returns the conversation for customerID, creating an idle one
// on first contact.
func (s *MemoryStore) GetOrCreate(ctx context.Context, customerID string) (*State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.conversations[customerID]
	if !ok {
		state = NewState()
		s.conversations[customerID] = state
	}
	return state, nil
}

// Save stores the state for customerID.
func (s *MemoryStore) Save(ctx context.Context, customerID string, state *State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conversations[customerID] = state
	return nil
}

// Delete forgets the conversation for customerID.
func (s *MemoryStore) Delete(ctx context.Context, customerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.conversations, customerID)
	return nil
}

// Len reports the number of live conversations.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.conversations)
}
