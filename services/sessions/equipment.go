package sessions

// Equipment is the kind of hardware a member can bring to a session.
type Equipment string

const (
	EquipmentConsole Equipment = "console"
	EquipmentScreen  Equipment = "screen"
	EquipmentAdapter Equipment = "adapter"
)

// Per-member caps. Nobody shows up with four Switches.
const (
	MaxConsoles = 3
	MaxScreens  = 3
	MaxAdapters = 3
)

// MaxFor returns the per-member cap for the given equipment kind.
func MaxFor(kind Equipment) int {
	switch kind {
	case EquipmentConsole:
		return MaxConsoles
	case EquipmentScreen:
		return MaxScreens
	case EquipmentAdapter:
		return MaxAdapters
	}
	return 0
}

// AllEquipment lists the valid kinds, used by option validation and views.
func AllEquipment() []Equipment {
	return []Equipment{EquipmentConsole, EquipmentScreen, EquipmentAdapter}
}

// ParseEquipment converts a wire value ("console", "screen", "adapter")
// into an Equipment kind.
func ParseEquipment(s string) (Equipment, bool) {
	switch Equipment(s) {
	case EquipmentConsole, EquipmentScreen, EquipmentAdapter:
		return Equipment(s), true
	}
	return "", false
}
