package presentation_test

import (
	"testing"
	"time"

	"SmashSessions/services/presentation"
	"SmashSessions/services/sessions"

	"github.com/stretchr/testify/assert"
)

func user(id string) sessions.User {
	u, _ := sessions.NewUser(id, "user"+id, "0001", 0, 0, 0)
	return u
}

func intPtr(n int) *int { return &n }

func strPtr(s string) *string { return &s }

func sampleSession() *sessions.Session {
	start := time.Date(2026, time.March, 15, 18, 30, 0, 0, time.Local)
	return &sessions.Session{
		ID:           42,
		Index:        2,
		DateStart:    start,
		DateEnd:      start.Add(5 * time.Hour),
		Places:       intPtr(4),
		Host:         user("100"),
		Participants: []sessions.User{user("200"), user("300")},
	}
}

func TestOccupancy(t *testing.T) {
	s := sampleSession()
	assert.Equal(t, "2 / 4", presentation.Occupancy(s))

	s.Places = nil
	assert.Equal(t, "2 / ∞", presentation.Occupancy(s))
}

func TestMemberDetails(t *testing.T) {
	u := user("200")
	assert.NoError(t, u.AddEquipment(sessions.EquipmentConsole))
	assert.NoError(t, u.AddEquipment(sessions.EquipmentConsole))
	assert.NoError(t, u.AddEquipment(sessions.EquipmentScreen))

	details := presentation.MemberDetails(u)
	assert.Contains(t, details, "<@200>")
	glyphs := presentation.EquipmentGlyphs()
	assert.Equal(t, 2, countOccurrences(details, glyphs[sessions.EquipmentConsole]))
	assert.Equal(t, 1, countOccurrences(details, glyphs[sessions.EquipmentScreen]))
}

func countOccurrences(s, sub string) int {
	count := 0
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			count++
		}
	}
	return count
}

func TestBuildListView(t *testing.T) {
	first := sampleSession()
	first.Index = 1
	second := sampleSession()
	second.ID = 43
	second.Index = 2

	view := presentation.BuildListView([]sessions.Session{*first, *second})
	assert.Equal(t, "Upcoming sessions", view.Title)
	assert.Len(t, view.Entries, 2)
	assert.Len(t, view.Dropdown, 2)
	assert.Equal(t, "1", view.Dropdown[0].Value)
	assert.Contains(t, view.Entries[0].Title, "#1")
	assert.Equal(t, "2 / 4", view.Entries[0].Occupancy)
}

func TestBuildDetailView(t *testing.T) {
	t.Run("address placeholder and comment", func(t *testing.T) {
		s := sampleSession()
		view := presentation.BuildDetailView(s, user("999"))
		assert.Equal(t, presentation.AddressPlaceholder, view.Address)
		assert.Empty(t, view.Comment)

		s.Address = strPtr("12 rue des Lilas")
		s.Comment = strPtr("bring snacks")
		view = presentation.BuildDetailView(s, user("999"))
		assert.Equal(t, "12 rue des Lilas", view.Address)
		assert.Equal(t, "bring snacks", view.Comment)
	})

	t.Run("actions gated by viewer role", func(t *testing.T) {
		s := sampleSession()

		stranger := presentation.BuildDetailView(s, user("999"))
		assert.Equal(t, []string{presentation.ActionJoin}, stranger.Actions)

		participant := presentation.BuildDetailView(s, user("200"))
		assert.Contains(t, participant.Actions, presentation.ActionLeave)
		assert.Contains(t, participant.Actions, presentation.ActionBringConsole)
		assert.NotContains(t, participant.Actions, presentation.ActionJoin)

		host := presentation.BuildDetailView(s, user("100"))
		assert.NotContains(t, host.Actions, presentation.ActionJoin)
		assert.NotContains(t, host.Actions, presentation.ActionLeave)
		assert.Contains(t, host.Actions, presentation.ActionBringAdapter)
	})
}
