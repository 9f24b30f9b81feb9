package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"buzzer/internal/db"

	"github.com/jackc/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore persists rounds and buzz events in Postgres. Sequence assignment
// is serialized with a row lock on the owning round, so concurrent appends
// against the same round observe distinct, gapless sequence numbers.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(conn *gorm.DB) *GormStore {
	return &GormStore{db: conn}
}

type eventPayload struct {
	RoundID         uint   `json:"round_id,omitempty"`
	PreviousRoundID uint   `json:"previous_round_id,omitempty"`
	ParticipantName string `json:"participant,omitempty"`
	SequenceNumber  int    `json:"sequence,omitempty"`
}

// roundEventType distinguishes the first bootstrap round from an operator
// reset that supersedes a prior round.
func roundEventType(prevRoundID uint) string {
	if prevRoundID != 0 {
		return "round_reset"
	}
	return "round_created"
}

func (s *GormStore) CurrentRound(ctx context.Context) (Round, error) {
	var record db.Round
	err := s.db.WithContext(ctx).Order("id DESC").First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Two first-run callers can race here and both insert a bootstrap
		// round; current is the highest id, so the extra open row is inert.
		return s.CreateRound(ctx)
	}
	if err != nil {
		return Round{}, fmt.Errorf("load current round: %w", err)
	}
	return roundFromRecord(record), nil
}

func (s *GormStore) CreateRound(ctx context.Context) (Round, error) {
	var record db.Round
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the latest round so two concurrent resets serialize and the
		// new round's id is unambiguously the highest.
		var prev db.Round
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Order("id DESC").First(&prev).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		record = db.Round{Status: StatusOpen, CreatedAt: time.Now().UTC()}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		return appendAuditEvent(tx, roundEventType(prev.ID), eventPayload{
			RoundID:         record.ID,
			PreviousRoundID: prev.ID,
		})
	})
	if err != nil {
		return Round{}, fmt.Errorf("create round: %w", err)
	}
	return roundFromRecord(record), nil
}

func (s *GormStore) AppendBuzz(ctx context.Context, roundID uint, name string, at time.Time) (int, error) {
	seq, err := s.appendBuzz(ctx, roundID, name, at)
	if isUniqueViolation(err) {
		// A concurrent writer claimed the same sequence slot. The row lock
		// prevents this on Postgres proper; retry once regardless.
		seq, err = s.appendBuzz(ctx, roundID, name, at)
	}
	return seq, err
}

func (s *GormStore) appendBuzz(ctx context.Context, roundID uint, name string, at time.Time) (int, error) {
	var seq int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var round db.Round
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&round, roundID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoundNotFound
			}
			return err
		}
		var count int64
		if err := tx.Model(&db.BuzzEvent{}).Where("round_id = ?", roundID).Count(&count).Error; err != nil {
			return err
		}
		seq = int(count) + 1
		event := db.BuzzEvent{
			RoundID:         roundID,
			SequenceNumber:  seq,
			ParticipantName: name,
			BuzzedAt:        at,
		}
		if err := tx.Create(&event).Error; err != nil {
			return err
		}
		if seq == 1 {
			result := tx.Model(&db.Round{}).
				Where("id = ? AND status = ?", roundID, StatusOpen).
				Update("status", StatusLocked)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return errors.New("round already locked with no events")
			}
		}
		return appendAuditEvent(tx, "buzz_accepted", eventPayload{
			RoundID:         roundID,
			ParticipantName: name,
			SequenceNumber:  seq,
		})
	})
	if err != nil {
		if errors.Is(err, ErrRoundNotFound) {
			return 0, ErrRoundNotFound
		}
		return 0, fmt.Errorf("append buzz: %w", err)
	}
	return seq, nil
}

func (s *GormStore) ListBuzzes(ctx context.Context, roundID uint) ([]BuzzEvent, error) {
	var exists int64
	if err := s.db.WithContext(ctx).Model(&db.Round{}).Where("id = ?", roundID).Count(&exists).Error; err != nil {
		return nil, fmt.Errorf("load round: %w", err)
	}
	if exists == 0 {
		return nil, ErrRoundNotFound
	}
	var records []db.BuzzEvent
	err := s.db.WithContext(ctx).
		Where("round_id = ?", roundID).
		Order("sequence_number ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("list buzzes: %w", err)
	}
	buzzes := make([]BuzzEvent, 0, len(records))
	for _, record := range records {
		buzzes = append(buzzes, BuzzEvent{
			RoundID:         record.RoundID,
			SequenceNumber:  record.SequenceNumber,
			ParticipantName: record.ParticipantName,
			BuzzedAt:        record.BuzzedAt,
		})
	}
	return buzzes, nil
}

func roundFromRecord(record db.Round) Round {
	return Round{
		ID:        record.ID,
		Status:    record.Status,
		CreatedAt: record.CreatedAt,
	}
}

func appendAuditEvent(tx *gorm.DB, eventType string, payload eventPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	record := db.Event{
		Type:      eventType,
		Payload:   datatypes.JSON(data),
		CreatedAt: time.Now().UTC(),
	}
	if payload.RoundID != 0 {
		roundID := payload.RoundID
		record.RoundID = &roundID
	}
	return tx.Create(&record).Error
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
