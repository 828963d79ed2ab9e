package sessions

import "fmt"

/*
 * 'User' is a community member inside a session: the identity the platform
 * handed over plus the equipment counters they bring. The same shape is used
 * for the host and for regular participants.
 */
type User struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Discriminator string `json:"discriminator"`
	Consoles      int    `json:"consoles"`
	Screens       int    `json:"screens"`
	Adapters      int    `json:"adapters"`
}

// NewUser builds a member with the given starting equipment, validating the
// counters against the per-kind caps. Negative or over-cap counts are
// rejected, not clamped.
func NewUser(id, name, discriminator string, consoles, screens, adapters int) (User, error) {
	u := User{
		ID:            id,
		Name:          name,
		Discriminator: discriminator,
		Consoles:      consoles,
		Screens:       screens,
		Adapters:      adapters,
	}
	if consoles < 0 || screens < 0 || adapters < 0 {
		return User{}, fmt.Errorf("%w: equipment counts cannot be negative", ErrTooManyEquipment)
	}
	if consoles > MaxConsoles || screens > MaxScreens || adapters > MaxAdapters {
		return User{}, ErrTooManyEquipment
	}
	return u, nil
}

// EquipmentCount returns the current counter for the given kind.
func (u *User) EquipmentCount(kind Equipment) int {
	switch kind {
	case EquipmentConsole:
		return u.Consoles
	case EquipmentScreen:
		return u.Screens
	case EquipmentAdapter:
		return u.Adapters
	}
	return 0
}

// AddEquipment increments the counter for the given kind, failing with
// ErrTooManyEquipment when the increment would exceed the per-kind cap.
func (u *User) AddEquipment(kind Equipment) error {
	switch kind {
	case EquipmentConsole:
		if u.Consoles+1 > MaxConsoles {
			return ErrTooManyEquipment
		}
		u.Consoles++
	case EquipmentScreen:
		if u.Screens+1 > MaxScreens {
			return ErrTooManyEquipment
		}
		u.Screens++
	case EquipmentAdapter:
		if u.Adapters+1 > MaxAdapters {
			return ErrTooManyEquipment
		}
		u.Adapters++
	default:
		return fmt.Errorf("unknown equipment kind %q", kind)
	}
	return nil
}
