package presentation

import (
	"os"

	"SmashSessions/services/sessions"
)

/*
 * Single configuration map from equipment kind to display glyph. The
 * defaults are the community's custom Discord emojis; each one can be
 * overridden from the environment so another server's emoji ids work
 * without a rebuild.
 */
var defaultGlyphs = map[sessions.Equipment]string{
	sessions.EquipmentConsole: "<:switch:801390051463397386>",
	sessions.EquipmentScreen:  "<:screen:801390701958791189>",
	sessions.EquipmentAdapter: "<:gc:885488021355495444>",
}

var glyphEnvKeys = map[sessions.Equipment]string{
	sessions.EquipmentConsole: "EMOJI_CONSOLE",
	sessions.EquipmentScreen:  "EMOJI_SCREEN",
	sessions.EquipmentAdapter: "EMOJI_ADAPTER",
}

// EquipmentGlyphs returns the glyph map, environment overrides applied.
func EquipmentGlyphs() map[sessions.Equipment]string {
	glyphs := make(map[sessions.Equipment]string, len(defaultGlyphs))
	for kind, glyph := range defaultGlyphs {
		if custom := os.Getenv(glyphEnvKeys[kind]); custom != "" {
			glyph = custom
		}
		glyphs[kind] = glyph
	}
	return glyphs
}
