package sessions_test

import (
	"context"
	"testing"
	"time"

	"SmashSessions/services/sessions"

	"github.com/stretchr/testify/assert"
)

func newTestService() (*sessions.Service, *sessions.MemoryStore) {
	store := sessions.NewMemoryStore()
	svc := sessions.NewServiceWithClock(store, func() time.Time { return today })
	return svc, store
}

func mustCreate(t *testing.T, svc *sessions.Service, host sessions.User, daysAhead int, places *int) *sessions.Session {
	t.Helper()
	start := today.AddDate(0, 0, daysAhead).Truncate(time.Hour)
	s, err := svc.Create(context.Background(), host, start, start.Add(5*time.Hour), places, nil, nil)
	assert.NoError(t, err)
	return s
}

func TestCreate(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	t.Run("fresh session has an id, no participants and a zeroed host", func(t *testing.T) {
		host, _ := sessions.NewUser("100", "marco", "0001", 2, 1, 0)
		start := today.AddDate(0, 0, 5)
		s, err := svc.Create(ctx, host, start, start.Add(4*time.Hour), intPtr(4), nil, nil)
		assert.NoError(t, err)
		assert.NotZero(t, s.ID)
		assert.Empty(t, s.Participants)
		// Whatever the host claimed to bring at creation, counters start at zero.
		assert.Equal(t, 0, s.Host.Consoles)
		assert.Equal(t, 0, s.Host.Screens)
	})

	t.Run("negative places rejected", func(t *testing.T) {
		start := today.AddDate(0, 0, 5)
		_, err := svc.Create(ctx, member("100", "marco"), start, start.Add(4*time.Hour), intPtr(-1), nil, nil)
		assert.ErrorIs(t, err, sessions.ErrInvalidCapacity)
	})
}

func TestJoinLeaveLifecycle(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	host := member("100", "marco")

	t.Run("join up to capacity then full", func(t *testing.T) {
		s := mustCreate(t, svc, host, 3, intPtr(4))
		for i, id := range []string{"201", "202", "203", "204"} {
			var err error
			s, err = svc.Join(ctx, s, member(id, "user"))
			assert.NoError(t, err, "join %d", i+1)
		}
		_, err := svc.Join(ctx, s, member("205", "latecomer"))
		assert.ErrorIs(t, err, sessions.ErrSessionIsFull)
	})

	t.Run("join persists and survives a reload", func(t *testing.T) {
		s := mustCreate(t, svc, host, 4, intPtr(4))
		s, err := svc.Join(ctx, s, member("301", "lea"))
		assert.NoError(t, err)

		fresh, err := svc.SessionByID(ctx, s.ID)
		assert.NoError(t, err)
		assert.Len(t, fresh.Participants, 1)
		assert.Equal(t, "301", fresh.Participants[0].ID)
	})

	t.Run("leave then join again", func(t *testing.T) {
		s := mustCreate(t, svc, host, 5, intPtr(2))
		s, err := svc.Join(ctx, s, member("401", "theo"))
		assert.NoError(t, err)
		s, err = svc.Leave(ctx, s, member("401", "theo"))
		assert.NoError(t, err)
		assert.Empty(t, s.Participants)
		_, err = svc.Join(ctx, s, member("401", "theo"))
		assert.NoError(t, err)
	})

	t.Run("leave by a stranger fails", func(t *testing.T) {
		s := mustCreate(t, svc, host, 6, nil)
		_, err := svc.Leave(ctx, s, member("999", "ghost"))
		assert.ErrorIs(t, err, sessions.ErrUserIsNotParticipant)
	})
}

func TestUpdate(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	host := member("100", "marco")

	t.Run("partial update keeps omitted fields", func(t *testing.T) {
		addr := "12 rue des Lilas"
		start := today.AddDate(0, 0, 3)
		s, err := svc.Create(ctx, host, start, start.Add(4*time.Hour), intPtr(4), &addr, nil)
		assert.NoError(t, err)

		comment := "bring snacks"
		s, err = svc.Update(ctx, s, host, nil, nil, &comment)
		assert.NoError(t, err)
		assert.Equal(t, addr, *s.Address)
		assert.Equal(t, comment, *s.Comment)
		assert.Equal(t, 4, *s.Places)
	})

	t.Run("non-host cannot update", func(t *testing.T) {
		s := mustCreate(t, svc, host, 4, intPtr(4))
		_, err := svc.Update(ctx, s, member("200", "lea"), intPtr(8), nil, nil)
		assert.ErrorIs(t, err, sessions.ErrUserIsNotHost)
	})

	t.Run("cannot lower places below occupancy", func(t *testing.T) {
		s := mustCreate(t, svc, host, 5, intPtr(4))
		var err error
		for _, id := range []string{"201", "202", "203"} {
			s, err = svc.Join(ctx, s, member(id, "user"))
			assert.NoError(t, err)
		}
		_, err = svc.Update(ctx, s, host, intPtr(2), nil, nil)
		assert.ErrorIs(t, err, sessions.ErrInvalidCapacity)

		// Lowering to exactly the occupancy is fine.
		_, err = svc.Update(ctx, s, host, intPtr(3), nil, nil)
		assert.NoError(t, err)
	})
}

func TestDelete(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	host := member("100", "marco")

	t.Run("only host deletes", func(t *testing.T) {
		s := mustCreate(t, svc, host, 3, nil)
		err := svc.Delete(ctx, s, member("200", "lea"))
		assert.ErrorIs(t, err, sessions.ErrUserIsNotHost)

		assert.NoError(t, svc.Delete(ctx, s, host))
		_, err = svc.SessionByID(ctx, s.ID)
		assert.ErrorIs(t, err, sessions.ErrSessionNotFound)
	})

	t.Run("rank moves up after the soonest session is deleted", func(t *testing.T) {
		svc, _ := newTestService()
		first := mustCreate(t, svc, host, 1, nil)
		second := mustCreate(t, svc, member("110", "sofia"), 2, nil)

		assert.NoError(t, svc.Delete(ctx, first, host))

		next, err := svc.NthSession(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, second.ID, next.ID)

		assert.NoError(t, svc.Delete(ctx, next, member("110", "sofia")))
		_, err = svc.NthSession(ctx, 1)
		assert.ErrorIs(t, err, sessions.ErrNoSessionAvailable)
	})
}

func TestBringEquipment(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	host := member("100", "marco")

	t.Run("participant counters", func(t *testing.T) {
		s := mustCreate(t, svc, host, 3, nil)
		s, err := svc.Join(ctx, s, member("200", "lea"))
		assert.NoError(t, err)

		for i := 0; i < 3; i++ {
			s, err = svc.BringEquipment(ctx, s, member("200", "lea"), sessions.EquipmentConsole)
			assert.NoError(t, err)
		}
		assert.Equal(t, 3, s.Participants[0].Consoles)

		_, err = svc.BringEquipment(ctx, s, member("200", "lea"), sessions.EquipmentConsole)
		assert.ErrorIs(t, err, sessions.ErrTooManyEquipment)
	})

	t.Run("host counters live on the host document", func(t *testing.T) {
		s := mustCreate(t, svc, host, 4, nil)
		s, err := svc.BringEquipment(ctx, s, host, sessions.EquipmentScreen)
		assert.NoError(t, err)
		assert.Equal(t, 1, s.Host.Screens)
		assert.Empty(t, s.Participants)
	})

	t.Run("stranger cannot bring equipment", func(t *testing.T) {
		s := mustCreate(t, svc, host, 5, nil)
		_, err := svc.BringEquipment(ctx, s, member("999", "ghost"), sessions.EquipmentAdapter)
		assert.ErrorIs(t, err, sessions.ErrUserIsNotParticipant)
	})
}

func TestConcurrentModification(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	host := member("100", "marco")

	// Two requests load the same aggregate; only the first conditional
	// write wins, the second surfaces the race instead of overbooking.
	s := mustCreate(t, svc, host, 3, intPtr(1))
	stale, err := svc.SessionByID(ctx, s.ID)
	assert.NoError(t, err)

	_, err = svc.Join(ctx, s, member("200", "lea"))
	assert.NoError(t, err)

	_, err = svc.Join(ctx, stale, member("300", "theo"))
	assert.ErrorIs(t, err, sessions.ErrConcurrentModification)
}
