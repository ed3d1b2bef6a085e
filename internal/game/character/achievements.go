package character

import "sort"

// Achievement is a named one-time milestone.
type Achievement string

// Achievements.
const (
	FirstBlood   Achievement = "First Blood"
	BossSlayer   Achievement = "Boss Slayer"
	PotionMaster Achievement = "Potion Master"
	Explorer     Achievement = "Explorer"
	Untouchable  Achievement = "Untouchable"
)

// AchievementDescriptions maps each achievement to its description.
var AchievementDescriptions = map[Achievement]string{
	FirstBlood:   "Defeat your first enemy.",
	BossSlayer:   "Defeat both bosses.",
	PotionMaster: "Use 5 potions.",
	Explorer:     "Reveal the entire map.",
	Untouchable:  "Defeat a boss without taking damage.",
}

const (
	potionMasterUses = 5
	bossSlayerKills  = 2
)

// Unlock records a as earned.
//
// Postcondition: returns true iff a was not earned before.
func (p *Player) Unlock(a Achievement) bool {
	if p.achievements[a] {
		return false
	}
	p.achievements[a] = true
	return true
}

// HasAchievement reports whether a has been earned.
func (p *Player) HasAchievement(a Achievement) bool { return p.achievements[a] }

// Achievements returns the earned achievements sorted by name.
func (p *Player) Achievements() []string {
	out := make([]string, 0, len(p.achievements))
	for a := range p.achievements {
		out = append(out, string(a))
	}
	sort.Strings(out)
	return out
}

// RecordEnemyDefeated counts a defeated encounter enemy.
func (p *Player) RecordEnemyDefeated() {
	p.EnemiesDefeated++
	p.Unlock(FirstBlood)
}

// RecordBossDefeated counts a defeated boss. untouched reports whether the
// player took no damage during that battle.
func (p *Player) RecordBossDefeated(untouched bool) {
	p.BossesDefeated++
	if p.BossesDefeated >= bossSlayerKills {
		p.Unlock(BossSlayer)
	}
	if untouched {
		p.Unlock(Untouchable)
	}
}
