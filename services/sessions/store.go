package sessions

import (
	"context"
	"time"
)

/*
 * 'SessionStore' is the persistence port of the session domain. The
 * Postgres implementation lives in postgres_store.go; tests use an
 * in-memory fake. The query surface mirrors what rank resolution needs:
 * future sessions ordered by (date_start asc, id asc) with skip/limit,
 * plus point lookup, full-document insert, sub-document updates and
 * delete-by-id.
 *
 * Every update matches on the session's last-known version and bumps it,
 * so concurrent mutations of the same session surface as
 * ErrConcurrentModification instead of silently overwriting each other
 * (two users racing for the last place can no longer both be admitted).
 */
type SessionStore interface {
	// FindFuture returns sessions with date_start strictly after now,
	// ordered by (date_start asc, id asc), skipping `skip` rows and
	// returning at most `limit` rows (limit <= 0 means no limit).
	FindFuture(ctx context.Context, now time.Time, skip, limit int) ([]Session, error)

	// FindByID is the O(1) point lookup; it also returns past sessions.
	FindByID(ctx context.Context, id uint) (*Session, error)

	// Insert persists a new session and returns its assigned id.
	Insert(ctx context.Context, s *Session) (uint, error)

	// UpdateDetails replaces places/address/comment, matching on version.
	UpdateDetails(ctx context.Context, id uint, version int, places *int, address, comment *string) error

	// UpdateParticipants replaces the whole participants list, matching
	// on version.
	UpdateParticipants(ctx context.Context, id uint, version int, participants []User) error

	// UpdateHost replaces the whole host sub-document, matching on version.
	UpdateHost(ctx context.Context, id uint, version int, host User) error

	// Delete removes the session permanently.
	Delete(ctx context.Context, id uint) error
}
