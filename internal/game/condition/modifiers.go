package condition

// DamagePerTurn returns the total damage the active conditions deal at the
// end of the holder's turn. Stackable conditions multiply by stack count.
//
// Postcondition: Returns >= 0.
func DamagePerTurn(s *ActiveSet) int {
	total := 0
	for _, ac := range s.conditions {
		if ac.Def.DamagePerTurn > 0 {
			total += ac.Def.DamagePerTurn * ac.Stacks
		}
	}
	return total
}

// IsActionRestricted reports whether the given action is blocked by any
// active condition's RestrictActions list.
func IsActionRestricted(s *ActiveSet, action string) bool {
	for _, ac := range s.conditions {
		for _, r := range ac.Def.RestrictActions {
			if r == action {
				return true
			}
		}
	}
	return false
}
