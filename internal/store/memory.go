package store

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps rounds in process memory. Used by tests and when
// DATABASE_URL is not configured.
type MemoryStore struct {
	mu      sync.Mutex
	nextID  uint
	current uint
	rounds  map[uint]*memoryRound
}

type memoryRound struct {
	round  Round
	buzzes []BuzzEvent
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID: 1,
		rounds: make(map[uint]*memoryRound),
	}
}

func (s *MemoryStore) CurrentRound(ctx context.Context) (Round, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == 0 {
		return s.createRoundLocked(), nil
	}
	return s.rounds[s.current].round, nil
}

func (s *MemoryStore) CreateRound(ctx context.Context) (Round, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createRoundLocked(), nil
}

func (s *MemoryStore) createRoundLocked() Round {
	round := Round{
		ID:        s.nextID,
		Status:    StatusOpen,
		CreatedAt: time.Now().UTC(),
	}
	s.nextID++
	s.rounds[round.ID] = &memoryRound{round: round}
	s.current = round.ID
	return round
}

func (s *MemoryStore) AppendBuzz(ctx context.Context, roundID uint, name string, at time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.rounds[roundID]
	if !ok {
		return 0, ErrRoundNotFound
	}
	seq := len(entry.buzzes) + 1
	entry.buzzes = append(entry.buzzes, BuzzEvent{
		RoundID:         roundID,
		SequenceNumber:  seq,
		ParticipantName: name,
		BuzzedAt:        at,
	})
	if seq == 1 {
		entry.round.Status = StatusLocked
	}
	return seq, nil
}

func (s *MemoryStore) ListBuzzes(ctx context.Context, roundID uint) ([]BuzzEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.rounds[roundID]
	if !ok {
		return nil, ErrRoundNotFound
	}
	buzzes := make([]BuzzEvent, len(entry.buzzes))
	copy(buzzes, entry.buzzes)
	return buzzes, nil
}
