package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/tilerpg/internal/game/world"
)

func TestColorize(t *testing.T) {
	assert.Equal(t, "\033[31mdanger\033[0m", Colorize(Red, "danger"))
}

func TestColorf(t *testing.T) {
	assert.Equal(t, "\033[32mhealth: 42\033[0m", Colorf(Green, "health: %d", 42))
}

func TestStripANSI(t *testing.T) {
	input := "\033[31mred\033[0m normal \033[1m\033[32mbold green\033[0m"
	assert.Equal(t, "red normal bold green", StripANSI(input))
}

func TestStripANSI_Unterminated(t *testing.T) {
	assert.Equal(t, "x\033[31", StripANSI("x\033[31"))
}

func TestPaletteColor(t *testing.T) {
	assert.Equal(t, Blue, paletteColor(world.NewTile(world.Water).BaseColor))
	assert.Equal(t, Green, paletteColor(world.NewTile(world.Tree).BaseColor))
	assert.Equal(t, Green, paletteColor(world.NewTile(world.Grass).BaseColor))
	assert.Equal(t, Yellow, paletteColor(world.NewTile(world.Sand).BaseColor))
	assert.Equal(t, White, paletteColor(world.NewTile(world.Stone).BaseColor))
}

// Property: StripANSI(Colorize(color, text)) == text for any ASCII text.
func TestPropertyStripANSIInversesColorize(t *testing.T) {
	colors := []string{Red, Green, Blue, Yellow, Cyan, Magenta, White, Bold, Dim}
	rapid.Check(t, func(t *rapid.T) {
		text := rapid.StringMatching(`[a-zA-Z0-9 @#.~^]{0,50}`).Draw(t, "text")
		color := colors[rapid.IntRange(0, len(colors)-1).Draw(t, "color")]
		if got := StripANSI(Colorize(color, text)); got != text {
			t.Fatalf("StripANSI(Colorize(%q)) = %q", text, got)
		}
	})
}

// Property: StripANSI output never contains a complete escape sequence.
func TestPropertyStripANSINoEscapeInOutput(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := rapid.StringMatching(`[a-zA-Z0-9 ]{0,30}`).Draw(t, "text")
		stripped := StripANSI(Bold + Red + text + Reset)
		if strings.ContainsRune(stripped, '\033') {
			t.Fatalf("escape left in %q", stripped)
		}
	})
}
