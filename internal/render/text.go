package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/cory-johannsen/tilerpg/internal/game/session"
)

// Text writes snapshots as colored, human-readable screens.
type Text struct {
	w     io.Writer
	color bool
}

// NewText creates a Text renderer. With color false all ANSI codes are
// stripped.
func NewText(w io.Writer, color bool) *Text {
	return &Text{w: w, color: color}
}

// Render writes snap as one screen. Write errors are ignored; the terminal
// is the only consumer.
func (t *Text) Render(snap session.Snapshot) {
	out := Screen(snap)
	if !t.color {
		out = StripANSI(out)
	}
	_, _ = io.WriteString(t.w, out)
}

// Screen formats snap as colored text.
//
// Postcondition: Returns a non-empty string ending in a newline.
func Screen(snap session.Snapshot) string {
	var b strings.Builder
	b.WriteString(Colorf(BrightWhite, "=== %s ===", strings.ToUpper(snap.State.String())))
	b.WriteString("\n")

	switch snap.State {
	case session.FeatureSelect:
		writeFeatures(&b, snap)
	case session.BossBattle:
		writePlayer(&b, snap.Player)
		writeBoss(&b, snap.Boss)
		if snap.Narrative != "" {
			b.WriteString(Colorize(BrightRed, snap.Narrative))
			b.WriteString("\n")
		}
	case session.Quit:
		b.WriteString(Colorize(Dim, "Goodbye."))
		b.WriteString("\n")
	default:
		writeMap(&b, snap)
		writePlayer(&b, snap.Player)
		writeSubsystems(&b, snap.Subsystems)
	}

	if snap.PendingMessage != "" {
		b.WriteString(Colorf(BrightCyan, "> %s", snap.PendingMessage))
		b.WriteString("\n")
	}
	if snap.Error != "" {
		b.WriteString(Colorize(Red, snap.Error))
		b.WriteString("\n")
	}
	return b.String()
}

func writeFeatures(b *strings.Builder, snap session.Snapshot) {
	for i, f := range snap.Features {
		cursor := "  "
		if i == snap.SelectedFeature {
			cursor = Colorize(BrightYellow, "> ")
		}
		box := "[ ]"
		if f.Enabled {
			box = Colorize(BrightGreen, "[x]")
		}
		fmt.Fprintf(b, "%s%s %d %s\n", cursor, box, i, f.Title)
	}
}

func writeMap(b *strings.Builder, snap session.Snapshot) {
	if snap.Grid == nil || snap.Player == nil {
		for _, line := range snap.Map {
			b.WriteString(line)
			b.WriteString("\n")
		}
		return
	}
	for y, row := range snap.Grid.Rows() {
		for x, tile := range row {
			if x == snap.Player.X && y == snap.Player.Y {
				b.WriteString(Colorize(BrightYellow, "@"))
				continue
			}
			b.WriteString(Colorize(paletteColor(tile.BaseColor), string(tile.Glyph)))
		}
		b.WriteString("\n")
	}
}

func writePlayer(b *strings.Builder, p *session.PlayerView) {
	if p == nil {
		return
	}
	hpColor := BrightGreen
	if p.Health*3 <= p.MaxHealth {
		hpColor = BrightRed
	}
	fmt.Fprintf(b, "HP %s  MP %s  Gold %s  Lv %d (%d/%d xp)\n",
		Colorf(hpColor, "%d/%d", p.Health, p.MaxHealth),
		Colorf(Cyan, "%d/%d", p.Mana, p.MaxMana),
		Colorf(Yellow, "%d", p.Gold),
		p.Level, p.Exp, p.ExpToNext,
	)
	if p.Confused > 0 {
		b.WriteString(Colorf(Magenta, "Confused (%d)", p.Confused))
		b.WriteString("\n")
	}
	if len(p.Achievements) > 0 {
		b.WriteString(Colorf(BrightYellow, "Achievements: %s", strings.Join(p.Achievements, ", ")))
		b.WriteString("\n")
	}
}

func writeBoss(b *strings.Builder, boss *session.BossView) {
	if boss == nil {
		return
	}
	fmt.Fprintf(b, "%s  HP %s  STR %d  round %d\n",
		Colorize(BrightRed, boss.Name),
		Colorf(Red, "%d/%d", boss.Health, boss.MaxHealth),
		boss.Strength, boss.Round,
	)
	if boss.Shielded {
		b.WriteString(Colorize(BrightCyan, "The boss is shielded."))
		b.WriteString("\n")
	}
	if len(boss.Conditions) > 0 {
		b.WriteString(Colorf(Magenta, "Conditions: %s", strings.Join(boss.Conditions, ", ")))
		b.WriteString("\n")
	}
}

func writeSubsystems(b *strings.Builder, subs map[string]string) {
	if len(subs) == 0 {
		return
	}
	names := make([]string, 0, len(subs))
	for name := range subs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(b, "%s %s\n", Colorf(Dim, "%-9s", name), subs[name])
	}
}
