package sessions_test

import (
	"context"
	"testing"
	"time"

	"SmashSessions/services/sessions"

	"github.com/stretchr/testify/assert"
)

func TestNthSession(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	t.Run("index below one", func(t *testing.T) {
		_, err := svc.NthSession(ctx, 0)
		assert.ErrorIs(t, err, sessions.ErrInvalidIndex)
		_, err = svc.NthSession(ctx, -3)
		assert.ErrorIs(t, err, sessions.ErrInvalidIndex)
	})

	t.Run("nothing scheduled at all", func(t *testing.T) {
		_, err := svc.NthSession(ctx, 1)
		assert.ErrorIs(t, err, sessions.ErrNoSessionAvailable)
	})

	// Created out of chronological order on purpose.
	third := mustCreate(t, svc, member("130", "nina"), 9, nil)
	first := mustCreate(t, svc, member("110", "marco"), 2, nil)
	second := mustCreate(t, svc, member("120", "lea"), 5, nil)

	t.Run("rank follows start time, not creation order", func(t *testing.T) {
		for n, want := range map[int]uint{1: first.ID, 2: second.ID, 3: third.ID} {
			s, err := svc.NthSession(ctx, n)
			assert.NoError(t, err)
			assert.Equal(t, want, s.ID)
			assert.Equal(t, n, s.Index)
		}
	})

	t.Run("beyond the last session", func(t *testing.T) {
		_, err := svc.NthSession(ctx, 4)
		assert.ErrorIs(t, err, sessions.ErrIndexOutOfRange)
	})
}

func TestTieBreakOnIdenticalStart(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	start := today.AddDate(0, 0, 2)
	a, err := svc.Create(ctx, member("110", "marco"), start, start.Add(3*time.Hour), nil, nil, nil)
	assert.NoError(t, err)
	b, err := svc.Create(ctx, member("120", "lea"), start, start.Add(3*time.Hour), nil, nil, nil)
	assert.NoError(t, err)

	// Same instant: the earlier creation id comes first.
	got, err := svc.AllFutureSessions(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []uint{a.ID, b.ID}, []uint{got[0].ID, got[1].ID})
}

func TestAllFutureSessionsStability(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	mustCreate(t, svc, member("110", "marco"), 3, nil)
	mustCreate(t, svc, member("120", "lea"), 1, nil)
	mustCreate(t, svc, member("130", "nina"), 7, nil)

	one, err := svc.AllFutureSessions(ctx)
	assert.NoError(t, err)
	two, err := svc.AllFutureSessions(ctx)
	assert.NoError(t, err)

	assert.Equal(t, len(one), len(two))
	for i := range one {
		assert.Equal(t, one[i].ID, two[i].ID)
		assert.Equal(t, i+1, one[i].Index)
		assert.Equal(t, one[i].Index, two[i].Index)
	}
}

func TestPastSessionsAreUnreachableByRank(t *testing.T) {
	store := sessions.NewMemoryStore()
	svc := sessions.NewServiceWithClock(store, func() time.Time { return today })
	ctx := context.Background()

	// Insert an already-finished session directly, the way an old record
	// would still sit in the database.
	past := &sessions.Session{
		DateStart:    today.AddDate(0, 0, -2),
		DateEnd:      today.AddDate(0, 0, -2).Add(4 * time.Hour),
		Host:         member("110", "marco"),
		Participants: []sessions.User{},
	}
	id, err := store.Insert(ctx, past)
	assert.NoError(t, err)

	_, err = svc.NthSession(ctx, 1)
	assert.ErrorIs(t, err, sessions.ErrNoSessionAvailable)

	// Archival records stay addressable by explicit id.
	s, err := svc.SessionByID(ctx, id)
	assert.NoError(t, err)
	assert.Equal(t, id, s.ID)
}
