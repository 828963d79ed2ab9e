package presentation

import (
	"fmt"
	"strings"

	"SmashSessions/services/sessions"
)

// Action ids the gateway turns into buttons under a detail view. They double
// as component custom_ids on the way back in.
const (
	ActionJoin         = "btn_join_session"
	ActionLeave        = "btn_leave_session"
	ActionBringConsole = "btn_bring_console"
	ActionBringScreen  = "btn_bring_screen"
	ActionBringAdapter = "btn_bring_adapter"

	// DropdownSelectSession is the custom_id of the session picker under
	// a list view.
	DropdownSelectSession = "dropdown_select_session"
)

// AddressPlaceholder is shown when the host did not publish an address.
const AddressPlaceholder = "Ask the host in a private message!"

// ListEntry is one line of the upcoming-sessions view.
type ListEntry struct {
	Index     int    `json:"index"`
	Title     string `json:"title"`
	Host      string `json:"host"`
	Occupancy string `json:"occupancy"`
}

// DropdownOption is one selectable entry of the session picker.
type DropdownOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ListView is everything the gateway needs to render the /list reply.
type ListView struct {
	Title    string           `json:"title"`
	Entries  []ListEntry      `json:"entries"`
	Dropdown []DropdownOption `json:"dropdown"`
}

// DetailView is everything the gateway needs to render one session embed
// with its action buttons.
type DetailView struct {
	SessionID    uint     `json:"session_id"`
	Index        int      `json:"index"`
	Title        string   `json:"title"`
	Host         string   `json:"host"`
	Occupancy    string   `json:"occupancy"`
	Participants []string `json:"participants"`
	Address      string   `json:"address"`
	Comment      string   `json:"comment,omitempty"`
	Actions      []string `json:"actions"`
}

// Occupancy renders "taken / places", with ∞ for unlimited sessions.
func Occupancy(s *sessions.Session) string {
	if s.Places == nil {
		return fmt.Sprintf("%d / ∞", s.NbParticipants())
	}
	return fmt.Sprintf("%d / %d", s.NbParticipants(), *s.Places)
}

// MemberDetails renders a member as a mention followed by one glyph per
// piece of equipment they bring.
func MemberDetails(u sessions.User) string {
	glyphs := EquipmentGlyphs()
	var b strings.Builder
	fmt.Fprintf(&b, "<@%s>", u.ID)
	for _, kind := range sessions.AllEquipment() {
		for i := 0; i < u.EquipmentCount(kind); i++ {
			b.WriteString(" ")
			b.WriteString(glyphs[kind])
		}
	}
	return b.String()
}

// BuildListView assembles the /list reply from the ranked future sessions.
func BuildListView(future []sessions.Session) ListView {
	view := ListView{Title: "Upcoming sessions"}
	for i := range future {
		s := &future[i]
		view.Entries = append(view.Entries, ListEntry{
			Index:     s.Index,
			Title:     s.Title(),
			Host:      fmt.Sprintf("<@%s>", s.Host.ID),
			Occupancy: Occupancy(s),
		})
		view.Dropdown = append(view.Dropdown, DropdownOption{
			Label: fmt.Sprintf("#%d   Session at %s's", s.Index, s.Host.Name),
			Value: fmt.Sprintf("%d", s.Index),
		})
	}
	return view
}

// BuildDetailView assembles one session embed. The action set depends on
// who is looking: strangers may join, participants may leave or bring
// equipment, the host may only bring equipment (updating and deleting go
// through commands, not buttons).
func BuildDetailView(s *sessions.Session, viewer sessions.User) DetailView {
	view := DetailView{
		SessionID:    s.ID,
		Index:        s.Index,
		Title:        s.Title(),
		Host:         MemberDetails(s.Host),
		Occupancy:    Occupancy(s),
		Address:      AddressPlaceholder,
		Participants: []string{},
	}
	if s.Address != nil {
		view.Address = *s.Address
	}
	if s.Comment != nil {
		view.Comment = *s.Comment
	}
	for _, p := range s.Participants {
		view.Participants = append(view.Participants, MemberDetails(p))
	}

	switch {
	case s.IsHost(viewer):
		view.Actions = []string{ActionBringConsole, ActionBringScreen, ActionBringAdapter}
	case s.IsParticipant(viewer):
		view.Actions = []string{ActionLeave, ActionBringConsole, ActionBringScreen, ActionBringAdapter}
	default:
		// Join stays visible even when the session is full: pressing it
		// answers with the "no place left" message.
		view.Actions = []string{ActionJoin}
	}
	return view
}
