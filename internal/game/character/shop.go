package character

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/tilerpg/internal/game/dice"
)

// ErrInsufficientGold is returned when the player cannot afford an item.
var ErrInsufficientGold = errors.New("not enough gold")

// ErrUnknownItem is returned for shop indices outside the catalog.
var ErrUnknownItem = errors.New("unknown shop item")

// ItemKind identifies a shop item.
type ItemKind uint8

// Shop items.
const (
	ItemSword ItemKind = iota
	ItemShield
	ItemBoots
	ItemPotion
)

// ShopItem is an entry in the fixed shop catalog.
type ShopItem struct {
	Kind        ItemKind
	Name        string
	Cost        int
	Description string
}

// ShopItems is the fixed shop catalog, indexed by item number.
var ShopItems = []ShopItem{
	{Kind: ItemSword, Name: "Sword", Cost: 3, Description: "+1 attack"},
	{Kind: ItemShield, Name: "Shield", Cost: 3, Description: "-1 enemy damage"},
	{Kind: ItemBoots, Name: "Boots", Cost: 2, Description: "Negate confusion"},
	{Kind: ItemPotion, Name: "Potion", Cost: 1, Description: "Restore 3 HP"},
}

const potionHP = 3

// Buy purchases shop item index. Gear raises its level by one; a potion is
// drunk immediately through Heal.
//
// Postcondition: on error Gold and gear are unchanged.
func (p *Player) Buy(index int, roller *dice.Roller) (string, error) {
	if index < 0 || index >= len(ShopItems) {
		return "", fmt.Errorf("%w: %d", ErrUnknownItem, index)
	}
	item := ShopItems[index]
	if p.Gold < item.Cost {
		return "", fmt.Errorf("%s costs %d, have %d: %w", item.Name, item.Cost, p.Gold, ErrInsufficientGold)
	}
	p.Gold -= item.Cost
	switch item.Kind {
	case ItemSword:
		p.SwordLevel++
		return fmt.Sprintf("Bought Sword! Sword level %d.", p.SwordLevel), nil
	case ItemShield:
		p.ShieldLevel++
		return fmt.Sprintf("Bought Shield! Shield level %d.", p.ShieldLevel), nil
	case ItemBoots:
		p.BootsLevel++
		return fmt.Sprintf("Bought Boots! Boots level %d.", p.BootsLevel), nil
	default:
		p.Heal(potionHP, roller)
		return fmt.Sprintf("Drank a Potion! +%d HP.", potionHP), nil
	}
}
