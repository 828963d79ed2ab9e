package sessions_test

import (
	"testing"
	"time"

	"SmashSessions/services/sessions"

	"github.com/stretchr/testify/assert"
)

func member(id, name string) sessions.User {
	u, _ := sessions.NewUser(id, name, "0001", 0, 0, 0)
	return u
}

func testSession(places *int) *sessions.Session {
	return &sessions.Session{
		ID:           1,
		Index:        1,
		DateStart:    today.AddDate(0, 0, 2),
		DateEnd:      today.AddDate(0, 0, 2).Add(4 * time.Hour),
		Places:       places,
		Host:         member("100", "marco"),
		Participants: []sessions.User{},
	}
}

func intPtr(n int) *int { return &n }

func TestMembershipRules(t *testing.T) {
	t.Run("host cannot join own session", func(t *testing.T) {
		s := testSession(intPtr(4))
		assert.ErrorIs(t, s.AddParticipant(s.Host), sessions.ErrUserIsAlreadyHost)
	})

	t.Run("no duplicate identities", func(t *testing.T) {
		s := testSession(intPtr(4))
		assert.NoError(t, s.AddParticipant(member("200", "lea")))
		assert.ErrorIs(t, s.AddParticipant(member("200", "lea")), sessions.ErrUserIsAlreadyParticipant)
	})

	t.Run("capacity boundary", func(t *testing.T) {
		s := testSession(intPtr(2))
		assert.NoError(t, s.AddParticipant(member("200", "lea")))
		// places-1 occupied: the last place is still grantable.
		assert.NoError(t, s.AddParticipant(member("300", "theo")))
		// places occupied: the (places+1)-th join is rejected.
		assert.ErrorIs(t, s.AddParticipant(member("400", "nina")), sessions.ErrSessionIsFull)
	})

	t.Run("nil places means unlimited", func(t *testing.T) {
		s := testSession(nil)
		for i := 0; i < 25; i++ {
			assert.NoError(t, s.AddParticipant(member(string(rune('a'+i)), "user")))
		}
		assert.False(t, s.IsFull())
	})

	t.Run("leave restores the pre-join sequence", func(t *testing.T) {
		s := testSession(intPtr(10))
		assert.NoError(t, s.AddParticipant(member("200", "lea")))
		assert.NoError(t, s.AddParticipant(member("300", "theo")))
		assert.NoError(t, s.AddParticipant(member("400", "nina")))

		before := []string{"200", "300", "400"}
		assert.NoError(t, s.AddParticipant(member("500", "idris")))
		assert.NoError(t, s.RemoveParticipant(member("500", "idris")))

		var after []string
		for _, p := range s.Participants {
			after = append(after, p.ID)
		}
		assert.Equal(t, before, after)
	})

	t.Run("removal keeps order of remaining members", func(t *testing.T) {
		s := testSession(nil)
		assert.NoError(t, s.AddParticipant(member("200", "lea")))
		assert.NoError(t, s.AddParticipant(member("300", "theo")))
		assert.NoError(t, s.AddParticipant(member("400", "nina")))
		assert.NoError(t, s.RemoveParticipant(member("300", "theo")))
		assert.Equal(t, "200", s.Participants[0].ID)
		assert.Equal(t, "400", s.Participants[1].ID)
	})

	t.Run("host leaves via delete, not leave", func(t *testing.T) {
		s := testSession(nil)
		assert.ErrorIs(t, s.RemoveParticipant(s.Host), sessions.ErrUserIsHost)
	})

	t.Run("stranger cannot leave", func(t *testing.T) {
		s := testSession(nil)
		assert.ErrorIs(t, s.RemoveParticipant(member("999", "ghost")), sessions.ErrUserIsNotParticipant)
	})
}

func TestEquipmentCaps(t *testing.T) {
	t.Run("third console fits, fourth does not", func(t *testing.T) {
		u := member("200", "lea")
		for i := 0; i < 3; i++ {
			assert.NoError(t, u.AddEquipment(sessions.EquipmentConsole))
		}
		assert.ErrorIs(t, u.AddEquipment(sessions.EquipmentConsole), sessions.ErrTooManyEquipment)
		assert.Equal(t, 3, u.Consoles)
	})

	t.Run("caps are per kind", func(t *testing.T) {
		u := member("200", "lea")
		for i := 0; i < 3; i++ {
			assert.NoError(t, u.AddEquipment(sessions.EquipmentConsole))
		}
		assert.NoError(t, u.AddEquipment(sessions.EquipmentScreen))
		assert.NoError(t, u.AddEquipment(sessions.EquipmentAdapter))
	})

	t.Run("initial counters validated, not clamped", func(t *testing.T) {
		_, err := sessions.NewUser("200", "lea", "0001", 4, 0, 0)
		assert.ErrorIs(t, err, sessions.ErrTooManyEquipment)

		_, err = sessions.NewUser("200", "lea", "0001", 0, -1, 0)
		assert.ErrorIs(t, err, sessions.ErrTooManyEquipment)

		u, err := sessions.NewUser("200", "lea", "0001", 3, 3, 3)
		assert.NoError(t, err)
		assert.Equal(t, 3, u.EquipmentCount(sessions.EquipmentAdapter))
	})
}

func TestTitleRoundTrip(t *testing.T) {
	s := testSession(nil)
	s.Index = 7

	n, err := sessions.IndexFromTitle(s.Title())
	assert.NoError(t, err)
	assert.Equal(t, 7, n)

	_, err = sessions.IndexFromTitle("Sessions to come")
	assert.Error(t, err)
}
