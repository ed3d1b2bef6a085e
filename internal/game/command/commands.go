// Package command provides the command registry, parser, and built-in
// command definitions that turn text lines into session intents.
package command

// Categories for organizing commands.
const (
	CategoryMenu     = "menu"
	CategoryMovement = "movement"
	CategoryShop     = "shop"
	CategoryCombat   = "combat"
	CategorySystem   = "system"
)

// Handler identifiers mapping commands to session intents.
const (
	HandlerMove    = "move"
	HandlerUp      = "up"
	HandlerDown    = "down"
	HandlerToggle  = "toggle"
	HandlerStart   = "start"
	HandlerPause   = "pause"
	HandlerResume  = "resume"
	HandlerMenu    = "menu"
	HandlerBuy     = "buy"
	HandlerCast    = "cast"
	HandlerAttack  = "attack"
	HandlerFlee    = "flee"
	HandlerRestart = "restart"
	HandlerQuit    = "quit"
	HandlerBoss    = "boss"
	HandlerTick    = "tick"
	HandlerHelp    = "help"
)

// Command defines a player-invocable command.
type Command struct {
	// Name is the canonical command name.
	Name string
	// Aliases are alternate names for this command.
	Aliases []string
	// Help is the short help text displayed to players.
	Help string
	// Category groups the command.
	Category string
	// Handler selects the intent the command produces.
	Handler string
}

// BuiltinCommands returns all built-in commands for the game.
func BuiltinCommands() []Command {
	return []Command{
		// Menu commands
		{Name: "up", Aliases: []string{"prev"}, Help: "Highlight the previous feature", Category: CategoryMenu, Handler: HandlerUp},
		{Name: "down", Aliases: []string{"next"}, Help: "Highlight the next feature", Category: CategoryMenu, Handler: HandlerDown},
		{Name: "toggle", Aliases: []string{"t", "space"}, Help: "Toggle a feature (toggle [index])", Category: CategoryMenu, Handler: HandlerToggle},
		{Name: "start", Aliases: []string{"confirm", "enter"}, Help: "Start the game with the selected features", Category: CategoryMenu, Handler: HandlerStart},
		{Name: "restart", Aliases: nil, Help: "Return to feature select after game over", Category: CategoryMenu, Handler: HandlerRestart},

		// Movement commands
		{Name: "north", Aliases: []string{"w"}, Help: "Move north", Category: CategoryMovement, Handler: HandlerMove},
		{Name: "south", Aliases: []string{"s"}, Help: "Move south", Category: CategoryMovement, Handler: HandlerMove},
		{Name: "east", Aliases: []string{"d"}, Help: "Move east", Category: CategoryMovement, Handler: HandlerMove},
		{Name: "west", Aliases: []string{"a"}, Help: "Move west", Category: CategoryMovement, Handler: HandlerMove},

		// Shop commands
		{Name: "buy", Aliases: []string{"b"}, Help: "Buy a shop item (buy <index>)", Category: CategoryShop, Handler: HandlerBuy},

		// Combat commands
		{Name: "boss", Aliases: nil, Help: "Challenge a boss (boss <index>)", Category: CategoryCombat, Handler: HandlerBoss},
		{Name: "attack", Aliases: []string{"att", "k"}, Help: "Attack the boss", Category: CategoryCombat, Handler: HandlerAttack},
		{Name: "cast", Aliases: []string{"c"}, Help: "Cast a spell at the boss (cast <index>)", Category: CategoryCombat, Handler: HandlerCast},
		{Name: "flee", Aliases: []string{"run", "abort"}, Help: "Leave the boss battle", Category: CategoryCombat, Handler: HandlerFlee},

		// System commands
		{Name: "pause", Aliases: []string{"p", "esc"}, Help: "Pause the game", Category: CategorySystem, Handler: HandlerPause},
		{Name: "resume", Aliases: []string{"continue"}, Help: "Resume a paused game", Category: CategorySystem, Handler: HandlerResume},
		{Name: "menu", Aliases: nil, Help: "Return to feature select from pause", Category: CategorySystem, Handler: HandlerMenu},
		{Name: "tick", Aliases: []string{"wait"}, Help: "Advance time (tick [frames])", Category: CategorySystem, Handler: HandlerTick},
		{Name: "quit", Aliases: []string{"q", "exit"}, Help: "Quit the game", Category: CategorySystem, Handler: HandlerQuit},
		{Name: "help", Aliases: []string{"?"}, Help: "Show available commands", Category: CategorySystem, Handler: HandlerHelp},
	}
}

// IsMovementCommand reports whether the command name is a movement direction.
func IsMovementCommand(name string) bool {
	switch name {
	case "north", "south", "east", "west":
		return true
	default:
		return false
	}
}
