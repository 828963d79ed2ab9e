package postgres

import (
	"time"

	"gorm.io/datatypes"
)

/*
 * 'GameSession' is the persisted shape of a scheduled gaming session: one
 * row per session, with the host and the participants list stored as JSONB
 * sub-documents. Mutations replace a whole sub-document (host or
 * participants) through a field-level update, never a delta inside it.
 */
type GameSession struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	DateStart time.Time `gorm:"not null;index:idx_game_sessions_start"`
	DateEnd   time.Time `gorm:"not null"`

	// NULL means unlimited places.
	Places  *int    `gorm:"default:null"`
	Address *string `gorm:"size:255"`
	Comment *string `gorm:"size:1000"`

	Host         datatypes.JSON `gorm:"type:jsonb;not null"`
	Participants datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'"`

	// Optimistic concurrency token, matched and bumped by every update.
	Version int `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP"`
}
