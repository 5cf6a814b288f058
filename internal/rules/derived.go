package rules

import "math"

// AbilityModifier is floor((score - 10) / 2).
func AbilityModifier(score float64) int {
	return int(math.Floor((score - 10) / 2))
}

// ProficiencyBonus for a character level, clamped to 1-20.
func ProficiencyBonus(level int) int {
	if level < 1 {
		level = 1
	}
	if level > 20 {
		level = 20
	}
	switch {
	case level <= 4:
		return 2
	case level <= 8:
		return 3
	case level <= 12:
		return 4
	case level <= 16:
		return 5
	default:
		return 6
	}
}

// Initiative is the dexterity modifier.
func Initiative(dexScore float64) int {
	return AbilityModifier(dexScore)
}

// PassivePerception is 10 plus the perception skill modifier.
func PassivePerception(perceptionMod int) int {
	return 10 + perceptionMod
}

// SavingThrow is the ability modifier plus the proficiency bonus when
// proficient.
func SavingThrow(abilityScore float64, proficient bool, proficiencyBonus int) int {
	mod := AbilityModifier(abilityScore)
	if proficient {
		return mod + proficiencyBonus
	}
	return mod
}

// SkillModifier uses the same formula as saving throws.
func SkillModifier(abilityScore float64, proficient bool, proficiencyBonus int) int {
	return SavingThrow(abilityScore, proficient, proficiencyBonus)
}
