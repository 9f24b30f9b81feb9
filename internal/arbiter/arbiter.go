// Package arbiter resolves which participant buzzed first in the current
// round. All shared mutable state lives behind the RoundStore; the arbiter
// itself only sequences store calls and maps their results to outcomes.
package arbiter

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"buzzer/internal/store"
)

type Outcome string

const (
	OutcomeWinner      Outcome = "winner"
	OutcomeTooLate     Outcome = "too_late"
	OutcomeRetry       Outcome = "retry"
	OutcomeInvalidName Outcome = "invalid_name"
)

type BuzzResult struct {
	Outcome    Outcome
	RoundID    uint
	Sequence   int
	WinnerName string
}

type RoundStatus struct {
	RoundID uint
	Status  string
	Winner  *store.BuzzEvent
	Buzzes  []store.BuzzEvent
}

type ResetResult struct {
	Authorized bool
	RoundID    uint
}

type Arbiter struct {
	store store.RoundStore
	pin   string
	now   func() time.Time
}

func New(st store.RoundStore, adminPIN string) *Arbiter {
	return &Arbiter{
		store: st,
		pin:   adminPIN,
		now:   time.Now,
	}
}

// Buzz records one attempt by name against the current round. Sequence 1 wins
// the round; later attempts are kept for the audit trail and reported as too
// late. A reset racing the append is absorbed by re-reading the current round
// and retrying once.
func (a *Arbiter) Buzz(ctx context.Context, name string) (BuzzResult, error) {
	trimmed := normalizeName(name)
	if trimmed == "" {
		return BuzzResult{Outcome: OutcomeInvalidName}, nil
	}

	round, err := a.store.CurrentRound(ctx)
	if err != nil {
		return BuzzResult{}, fmt.Errorf("load current round: %w", err)
	}
	for attempt := 0; attempt < 2; attempt++ {
		seq, err := a.store.AppendBuzz(ctx, round.ID, trimmed, a.now().UTC())
		switch {
		case err == nil:
			if seq == 1 {
				return BuzzResult{
					Outcome:    OutcomeWinner,
					RoundID:    round.ID,
					Sequence:   seq,
					WinnerName: trimmed,
				}, nil
			}
			return a.tooLate(ctx, round.ID, seq)
		case errors.Is(err, store.ErrRoundLocked):
			return a.tooLate(ctx, round.ID, 0)
		case errors.Is(err, store.ErrRoundNotFound):
			round, err = a.store.CurrentRound(ctx)
			if err != nil {
				return BuzzResult{}, fmt.Errorf("reload current round: %w", err)
			}
		default:
			return BuzzResult{}, err
		}
	}
	return BuzzResult{Outcome: OutcomeRetry, RoundID: round.ID}, nil
}

func (a *Arbiter) tooLate(ctx context.Context, roundID uint, seq int) (BuzzResult, error) {
	result := BuzzResult{
		Outcome:  OutcomeTooLate,
		RoundID:  roundID,
		Sequence: seq,
	}
	buzzes, err := a.store.ListBuzzes(ctx, roundID)
	if err != nil {
		if seq > 0 {
			// The buzz itself is already durable; report it even when the
			// winner lookup fails.
			return result, nil
		}
		return BuzzResult{}, fmt.Errorf("load winner: %w", err)
	}
	if len(buzzes) > 0 {
		result.WinnerName = buzzes[0].ParticipantName
	}
	return result, nil
}

// Status reports the current round and its ordered buzz list. Read-only and
// safe to poll.
func (a *Arbiter) Status(ctx context.Context) (RoundStatus, error) {
	round, err := a.store.CurrentRound(ctx)
	if err != nil {
		return RoundStatus{}, fmt.Errorf("load current round: %w", err)
	}
	buzzes, err := a.store.ListBuzzes(ctx, round.ID)
	if err != nil {
		return RoundStatus{}, fmt.Errorf("list buzzes: %w", err)
	}
	status := RoundStatus{
		RoundID: round.ID,
		Status:  round.Status,
		Buzzes:  buzzes,
	}
	// The round row and its events are read separately, so a buzz can commit
	// in between. A round is locked iff it has at least one event; derive the
	// reported status from the list so the snapshot stays consistent.
	if len(buzzes) > 0 {
		status.Status = store.StatusLocked
		status.Winner = &buzzes[0]
	}
	return status, nil
}

// Reset starts a fresh open round when the supplied PIN matches the
// configured operator secret. The PIN value is never logged.
func (a *Arbiter) Reset(ctx context.Context, pin string) (ResetResult, error) {
	provided := strings.TrimSpace(pin)
	if subtle.ConstantTimeCompare([]byte(provided), []byte(a.pin)) != 1 {
		return ResetResult{}, nil
	}
	round, err := a.store.CreateRound(ctx)
	if err != nil {
		return ResetResult{}, fmt.Errorf("create round: %w", err)
	}
	return ResetResult{Authorized: true, RoundID: round.ID}, nil
}

func normalizeName(name string) string {
	fields := strings.Fields(strings.TrimSpace(name))
	return strings.Join(fields, " ")
}
