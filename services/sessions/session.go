package sessions

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

/*
 * 'Session' is the aggregate root: one scheduled gaming get-together with a
 * host, a time window, an optional number of places and the members who
 * joined. It is loaded from the store at the start of a request, mutated in
 * memory and written back as a whole sub-document (host or participants).
 */
type Session struct {
	// ID is the store-assigned identifier. It is opaque for equality but
	// doubles as the tie-break key when two sessions start at the same time.
	ID uint `json:"id"`

	// Index is the 1-based rank among future sessions (1 = soonest). Zero
	// for sessions resolved by id outside of a ranked query.
	Index int `json:"index"`

	DateStart time.Time `json:"date_start"`
	DateEnd   time.Time `json:"date_end"`

	// Places is nil for an unlimited session.
	Places  *int    `json:"places"`
	Address *string `json:"address"`
	Comment *string `json:"comment"`

	Host         User   `json:"host"`
	Participants []User `json:"participants"`

	// Version is the optimistic-concurrency token matched by conditional
	// updates at the persistence boundary.
	Version int `json:"version"`
}

// IsHost reports whether the given user hosts this session.
func (s *Session) IsHost(u User) bool {
	return s.Host.ID == u.ID
}

// IsParticipant reports whether the given user already joined this session.
func (s *Session) IsParticipant(u User) bool {
	for _, p := range s.Participants {
		if p.ID == u.ID {
			return true
		}
	}
	return false
}

// NbParticipants counts the members who joined, host excluded.
func (s *Session) NbParticipants() int {
	return len(s.Participants)
}

// IsFull reports whether every place is taken. Unlimited sessions are
// never full.
func (s *Session) IsFull() bool {
	return s.Places != nil && len(s.Participants) >= *s.Places
}

// AddParticipant appends the user to the participants, preserving arrival
// order. The host cannot join their own session, nobody joins twice, and
// the (places+1)-th join is rejected.
func (s *Session) AddParticipant(u User) error {
	if s.IsHost(u) {
		return ErrUserIsAlreadyHost
	}
	if s.IsParticipant(u) {
		return ErrUserIsAlreadyParticipant
	}
	if s.IsFull() {
		return ErrSessionIsFull
	}
	s.Participants = append(s.Participants, u)
	return nil
}

// RemoveParticipant removes the user by identity, keeping the order of the
// remaining members. Hosts must delete their session instead of leaving it.
func (s *Session) RemoveParticipant(u User) error {
	if s.IsHost(u) {
		return ErrUserIsHost
	}
	if !s.IsParticipant(u) {
		return ErrUserIsNotParticipant
	}
	kept := s.Participants[:0]
	for _, p := range s.Participants {
		if p.ID != u.ID {
			kept = append(kept, p)
		}
	}
	s.Participants = kept
	return nil
}

// FindMember locates the user as host or participant and returns a pointer
// into the aggregate so equipment counters can be mutated in place. The
// second return tells whether the member is the host.
func (s *Session) FindMember(u User) (*User, bool, error) {
	if s.IsHost(u) {
		return &s.Host, true, nil
	}
	for i := range s.Participants {
		if s.Participants[i].ID == u.ID {
			return &s.Participants[i], false, nil
		}
	}
	return nil, false, ErrUserIsNotParticipant
}

// Title renders the canonical headline of a session, e.g.
// "#2   Saturday 15 March: 18:30 → 02:00". Interactive components fall back
// to parsing the rank out of this string when no interaction context is
// stored, so the "#<n>" prefix is load-bearing.
func (s *Session) Title() string {
	return fmt.Sprintf("#%d   %s → %s",
		s.Index,
		s.DateStart.Format("Monday 2 January: 15:04"),
		s.DateEnd.Format("15:04"))
}

var titleIndexRe = regexp.MustCompile(`#(\d+) `)

// IndexFromTitle extracts the 1-based rank from a rendered title.
func IndexFromTitle(title string) (int, error) {
	m := titleIndexRe.FindStringSubmatch(title)
	if m == nil {
		return 0, fmt.Errorf("no session number in title %q", title)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("bad session number in title %q: %w", title, err)
	}
	return n, nil
}
