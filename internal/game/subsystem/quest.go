package subsystem

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/tilerpg/internal/game/character"
	"github.com/cory-johannsen/tilerpg/internal/game/dice"
)

// QuestType is the kind of objective a quest tracks.
type QuestType uint8

const (
	KillEnemies QuestType = iota
	CollectItems
	ReachLocation
	SurviveTime
)

var questTypeNames = [...]string{
	KillEnemies:   "kill_enemies",
	CollectItems:  "collect_items",
	ReachLocation: "reach_location",
	SurviveTime:   "survive_time",
}

func (q QuestType) String() string {
	if int(q) < len(questTypeNames) {
		return questTypeNames[q]
	}
	return fmt.Sprintf("quest(%d)", q)
}

// MarshalText encodes the type by name.
func (q QuestType) MarshalText() ([]byte, error) { return []byte(q.String()), nil }

const (
	minReward      = 10
	maxReward      = 50
	collectGold    = 10
	ticksPerMinute = 60
)

var (
	questEnemies   = []string{"Goblin", "Orc", "Slime", "Wraith"}
	questItems     = []string{"Gold", "Potion", "Gem", "Rune"}
	questLocations = []string{"Forest", "Mountain", "Cave", "Tower"}
	questRegions   = []string{"Dungeon", "Wilderness", "Battlefield"}
)

// Quest is one generated objective.
type Quest struct {
	Type      QuestType
	Objective string
	Reward    int
	// Count is the kill or item target; Minutes the survival target.
	Count   int
	Minutes int

	startKills int
	ticks      int
}

// Quests keeps one active quest and replaces it on completion.
type Quests struct {
	roller    *dice.Roller
	logger    *zap.Logger
	current   Quest
	Completed int
}

// NewQuests generates the first quest for p.
//
// Precondition: p and roller non-nil.
func NewQuests(p *character.Player, roller *dice.Roller, logger *zap.Logger) *Quests {
	if logger == nil {
		logger = zap.NewNop()
	}
	q := &Quests{roller: roller, logger: logger}
	q.current = q.generate(p)
	return q
}

// Current returns the active quest.
func (q *Quests) Current() Quest { return q.current }

func (q *Quests) generate(p *character.Player) Quest {
	r := q.roller
	quest := Quest{Type: QuestType(r.Pick("quest type", len(questTypeNames)))}
	variant := r.Pick("quest objective", 2)
	switch quest.Type {
	case KillEnemies:
		quest.Count = r.Between("quest count", 3, 10)
		enemy := questEnemies[r.Pick("quest enemy", len(questEnemies))]
		if variant == 0 {
			quest.Objective = fmt.Sprintf("Defeat %d enemies", quest.Count)
		} else {
			quest.Objective = fmt.Sprintf("Slay the %s", enemy)
		}
	case CollectItems:
		quest.Count = r.Between("quest count", 2, 5)
		item := questItems[r.Pick("quest item", len(questItems))]
		if variant == 0 {
			quest.Objective = fmt.Sprintf("Collect %d %s", quest.Count, item)
		} else {
			quest.Objective = fmt.Sprintf("Find the rare %s", item)
		}
	case ReachLocation:
		loc := questLocations[r.Pick("quest location", len(questLocations))]
		if variant == 0 {
			quest.Objective = fmt.Sprintf("Reach the %s", loc)
		} else {
			quest.Objective = fmt.Sprintf("Explore the %s", loc)
		}
	case SurviveTime:
		quest.Minutes = r.Between("quest minutes", 2, 10)
		region := questRegions[r.Pick("quest region", len(questRegions))]
		if variant == 0 {
			quest.Objective = fmt.Sprintf("Survive for %d minutes", quest.Minutes)
		} else {
			quest.Objective = fmt.Sprintf("Last %d minutes in the %s", quest.Minutes, region)
		}
	}
	quest.Reward = r.Between("quest reward", minReward, maxReward)
	quest.startKills = p.EnemiesDefeated
	return quest
}

// Name returns "quests".
func (q *Quests) Name() string { return "quests" }

// Update checks the active quest against the frame. Completion pays the
// reward, starts a new quest and returns the completion message.
//
// Precondition: f.Player non-nil.
func (q *Quests) Update(f Frame) string {
	if !q.done(f) {
		return ""
	}
	p := f.Player
	reward := q.current.Reward
	p.AddGold(reward)
	q.Completed++
	q.logger.Info("quest completed",
		zap.Stringer("type", q.current.Type),
		zap.String("objective", q.current.Objective),
		zap.Int("reward", reward),
	)
	q.current = q.generate(p)
	return fmt.Sprintf("Quest completed! Received %d gold.", reward)
}

func (q *Quests) done(f Frame) bool {
	p := f.Player
	cur := &q.current
	switch cur.Type {
	case ReachLocation:
		// Strictly beyond 80% of both axes.
		return f.Trigger == TriggerMove && p.X*10 > f.Size*8 && p.Y*10 > f.Size*8
	case CollectItems:
		return f.Trigger == TriggerMove && p.Gold >= collectGold
	case KillEnemies:
		return f.Trigger != TriggerTick && p.EnemiesDefeated-cur.startKills >= cur.Count
	case SurviveTime:
		if f.Trigger != TriggerTick {
			return false
		}
		cur.ticks++
		return cur.ticks >= cur.Minutes*ticksPerMinute
	}
	return false
}

// Summary reports the active objective and its gold reward.
func (q *Quests) Summary() string {
	return fmt.Sprintf("%s (%d gold)", q.current.Objective, q.current.Reward)
}
