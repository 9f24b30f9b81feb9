package store

import (
	"context"
	"errors"
	"time"
)

const (
	StatusOpen   = "open"
	StatusLocked = "locked"
)

var (
	// ErrRoundNotFound is returned when a round id does not exist, including
	// the window where a caller holds a round id that a reset just replaced.
	ErrRoundNotFound = errors.New("round not found")
	// ErrRoundLocked may be returned by AppendBuzz implementations that
	// refuse late attempts outright instead of recording them.
	ErrRoundLocked = errors.New("round is locked")
)

type Round struct {
	ID        uint
	Status    string
	CreatedAt time.Time
}

type BuzzEvent struct {
	RoundID         uint
	SequenceNumber  int
	ParticipantName string
	BuzzedAt        time.Time
}

// RoundStore is the persistence boundary for rounds and their buzz events.
// All arbitration-relevant mutation goes through AppendBuzz and CreateRound;
// both must be atomic with respect to concurrent callers.
type RoundStore interface {
	// CurrentRound returns the most recent round, creating an initial open
	// round on first use.
	CurrentRound(ctx context.Context) (Round, error)

	// CreateRound inserts a fresh open round and makes it current. The prior
	// round keeps its events as immutable history.
	CreateRound(ctx context.Context) (Round, error)

	// AppendBuzz atomically assigns the next sequence number for the round,
	// inserts the event, and locks the round when the assigned sequence
	// number is 1. Late attempts against a locked round are still recorded
	// with their sequence numbers for the audit trail; only sequence 1 wins.
	// Returns the assigned sequence number, or ErrRoundNotFound.
	AppendBuzz(ctx context.Context, roundID uint, name string, at time.Time) (int, error)

	// ListBuzzes returns the round's events ordered by sequence number.
	ListBuzzes(ctx context.Context, roundID uint) ([]BuzzEvent, error)
}
