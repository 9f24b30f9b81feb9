package db

import (
	"time"

	"gorm.io/datatypes"
)

type Round struct {
	ID        uint      `gorm:"primaryKey"`
	Status    string    `gorm:"size:16;not null"`
	CreatedAt time.Time `gorm:"not null"`
	Buzzes    []BuzzEvent
}

type BuzzEvent struct {
	ID              uint      `gorm:"primaryKey"`
	RoundID         uint      `gorm:"index;not null;uniqueIndex:idx_buzz_events_round_seq"`
	SequenceNumber  int       `gorm:"not null;uniqueIndex:idx_buzz_events_round_seq"`
	ParticipantName string    `gorm:"size:64;not null"`
	BuzzedAt        time.Time `gorm:"not null"`
}

type Event struct {
	ID        uint           `gorm:"primaryKey"`
	RoundID   *uint          `gorm:"index"`
	Type      string         `gorm:"size:64;not null"`
	Payload   datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt time.Time      `gorm:"not null"`
}
