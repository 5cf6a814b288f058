package schema

import "fmt"

// builtinFields is the full 5e sheet field list. Ability modifiers, passive
// perception and similar derived values are computed client-side and never
// stored.
var builtinFields = buildBuiltinFields()

func buildBuiltinFields() []FieldDef {
	fields := []FieldDef{
		// Identity
		{Path: "identity.characterName", Label: "Character Name", Type: FieldString, Section: "Identity"},
		{Path: "identity.background", Label: "Background", Type: FieldString, Section: "Identity"},
		{Path: "identity.class", Label: "Class", Type: FieldString, Section: "Identity"},
		{Path: "identity.subclass", Label: "Subclass", Type: FieldString, Section: "Identity"},
		{Path: "identity.species", Label: "Species", Type: FieldString, Section: "Identity"},
		{Path: "identity.level", Label: "Level", Type: FieldNumber, Section: "Identity"},
		{Path: "identity.xp", Label: "XP", Type: FieldNumber, Section: "Identity"},

		// Core Stats
		{Path: "core.proficiencyBonus", Label: "Proficiency Bonus", Type: FieldNumber, Section: "Core Stats"},
		{Path: "core.initiative", Label: "Initiative", Type: FieldNumber, Section: "Core Stats"},
		{Path: "core.speed", Label: "Speed", Type: FieldNumber, Section: "Core Stats"},
		{Path: "core.size", Label: "Size", Type: FieldString, Section: "Core Stats"},
		{Path: "core.passivePerception", Label: "Passive Perception", Type: FieldNumber, Section: "Core Stats"},

		// Defense
		{Path: "defense.armorClass", Label: "Armor Class", Type: FieldNumber, Section: "Defense"},
		{Path: "defense.shield", Label: "Shield", Type: FieldBoolean, Section: "Defense"},

		// Hit Points
		{Path: "hp.current", Label: "Current HP", Type: FieldNumber, Section: "Hit Points"},
		{Path: "hp.max", Label: "Max HP", Type: FieldNumber, Section: "Hit Points"},
		{Path: "hp.temp", Label: "Temp HP", Type: FieldNumber, Section: "Hit Points"},

		// Hit Dice
		{Path: "hitDice.max", Label: "Hit Dice Max", Type: FieldString, Section: "Hit Dice"},
		{Path: "hitDice.spent", Label: "Hit Dice Spent", Type: FieldString, Section: "Hit Dice"},

		// Death Saves
		{Path: "deathSaves.successes", Label: "Successes", Type: FieldNumber, Section: "Death Saves"},
		{Path: "deathSaves.failures", Label: "Failures", Type: FieldNumber, Section: "Death Saves"},

		// Heroic Inspiration
		{Path: "inspiration.heroic", Label: "Heroic Inspiration", Type: FieldBoolean, Section: "Heroic Inspiration"},
	}

	// Ability Scores
	for _, ability := range []struct{ key, label string }{
		{"str", "STR"}, {"dex", "DEX"}, {"con", "CON"},
		{"int", "INT"}, {"wis", "WIS"}, {"cha", "CHA"},
	} {
		fields = append(fields, FieldDef{
			Path:    fmt.Sprintf("abilities.%s.score", ability.key),
			Label:   ability.label + " Score",
			Type:    FieldNumber,
			Section: "Ability Scores",
		})
	}

	// Saving Throws
	for _, ability := range []struct{ key, label string }{
		{"str", "STR"}, {"dex", "DEX"}, {"con", "CON"},
		{"int", "INT"}, {"wis", "WIS"}, {"cha", "CHA"},
	} {
		fields = append(fields,
			FieldDef{
				Path:    fmt.Sprintf("saves.%s.proficient", ability.key),
				Label:   ability.label + " Save Proficient",
				Type:    FieldBoolean,
				Section: "Saving Throws",
			},
			FieldDef{
				Path:    fmt.Sprintf("saves.%s.value", ability.key),
				Label:   ability.label + " Save",
				Type:    FieldNumber,
				Section: "Saving Throws",
			},
		)
	}

	// Skills
	for _, skill := range []struct{ key, label string }{
		{"athletics", "Athletics"},
		{"acrobatics", "Acrobatics"},
		{"sleightOfHand", "Sleight of Hand"},
		{"stealth", "Stealth"},
		{"arcana", "Arcana"},
		{"history", "History"},
		{"investigation", "Investigation"},
		{"nature", "Nature"},
		{"religion", "Religion"},
		{"animalHandling", "Animal Handling"},
		{"insight", "Insight"},
		{"medicine", "Medicine"},
		{"perception", "Perception"},
		{"survival", "Survival"},
		{"deception", "Deception"},
		{"intimidation", "Intimidation"},
		{"performance", "Performance"},
		{"persuasion", "Persuasion"},
	} {
		fields = append(fields,
			FieldDef{
				Path:    fmt.Sprintf("skills.%s.proficient", skill.key),
				Label:   skill.label + " Proficient",
				Type:    FieldBoolean,
				Section: "Skills",
			},
			FieldDef{
				Path:    fmt.Sprintf("skills.%s.value", skill.key),
				Label:   skill.label,
				Type:    FieldNumber,
				Section: "Skills",
			},
		)
	}

	fields = append(fields, []FieldDef{
		// Weapons & Damage Cantrips
		{Path: "attacks.entries", Label: "Weapons & Damage / Cantrips (JSON)", Type: FieldString, Section: "Weapons & Damage Cantrips", Multiline: true},

		// Features
		{Path: "features.classFeatures", Label: "Class Features", Type: FieldString, Section: "Class Features", Multiline: true},
		{Path: "features.speciesTraits", Label: "Species Traits", Type: FieldString, Section: "Species Traits", Multiline: true},
		{Path: "features.feats", Label: "Feats", Type: FieldString, Section: "Feats", Multiline: true},

		// Equipment Training & Proficiencies
		{Path: "proficiencies.armor.light", Label: "Light Armor Training", Type: FieldBoolean, Section: "Equipment Training & Proficiencies"},
		{Path: "proficiencies.armor.medium", Label: "Medium Armor Training", Type: FieldBoolean, Section: "Equipment Training & Proficiencies"},
		{Path: "proficiencies.armor.heavy", Label: "Heavy Armor Training", Type: FieldBoolean, Section: "Equipment Training & Proficiencies"},
		{Path: "proficiencies.armor.shields", Label: "Shields Training", Type: FieldBoolean, Section: "Equipment Training & Proficiencies"},
		{Path: "proficiencies.weapons", Label: "Weapons", Type: FieldString, Section: "Equipment Training & Proficiencies", Multiline: true},
		{Path: "proficiencies.tools", Label: "Tools", Type: FieldString, Section: "Equipment Training & Proficiencies", Multiline: true},

		// Spellcasting Overview
		{Path: "spellcasting.ability", Label: "Spellcasting Ability", Type: FieldString, Section: "Spellcasting Overview"},
		{Path: "spellcasting.modifier", Label: "Spellcasting Modifier", Type: FieldNumber, Section: "Spellcasting Overview"},
		{Path: "spellcasting.saveDc", Label: "Spell Save DC", Type: FieldNumber, Section: "Spellcasting Overview"},
		{Path: "spellcasting.attackBonus", Label: "Spell Attack Bonus", Type: FieldNumber, Section: "Spellcasting Overview"},
	}...)

	// Spell Slots
	for level := 1; level <= 9; level++ {
		fields = append(fields,
			FieldDef{
				Path:    fmt.Sprintf("spellSlots.level%d.total", level),
				Label:   fmt.Sprintf("Level %d Total", level),
				Type:    FieldNumber,
				Section: "Spell Slots",
			},
			FieldDef{
				Path:    fmt.Sprintf("spellSlots.level%d.expended", level),
				Label:   fmt.Sprintf("Level %d Expended", level),
				Type:    FieldNumber,
				Section: "Spell Slots",
			},
		)
	}

	fields = append(fields, []FieldDef{
		// Cantrips & Prepared Spells
		{Path: "spells.prepared", Label: "Cantrips & Prepared Spells", Type: FieldString, Section: "Cantrips & Prepared Spells", Multiline: true},

		// Backstory & Personality
		{Path: "roleplay.backstoryAndPersonality", Label: "Backstory & Personality", Type: FieldString, Section: "Backstory & Personality", Multiline: true},
		{Path: "roleplay.alignment", Label: "Alignment", Type: FieldString, Section: "Backstory & Personality"},

		// Appearance
		{Path: "roleplay.appearance", Label: "Appearance", Type: FieldString, Section: "Appearance", Multiline: true},

		// Languages
		{Path: "roleplay.languages", Label: "Languages", Type: FieldString, Section: "Languages", Multiline: true},

		// Equipment
		{Path: "inventory.equipment", Label: "Equipment", Type: FieldString, Section: "Equipment", Multiline: true},

		// Coins
		{Path: "inventory.coins.cp", Label: "CP", Type: FieldNumber, Section: "Coins"},
		{Path: "inventory.coins.sp", Label: "SP", Type: FieldNumber, Section: "Coins"},
		{Path: "inventory.coins.ep", Label: "EP", Type: FieldNumber, Section: "Coins"},
		{Path: "inventory.coins.gp", Label: "GP", Type: FieldNumber, Section: "Coins"},
		{Path: "inventory.coins.pp", Label: "PP", Type: FieldNumber, Section: "Coins"},

		// Magic Item Attunement
		{Path: "inventory.attunement.slot1", Label: "Attunement Slot 1", Type: FieldString, Section: "Magic Item Attunement"},
		{Path: "inventory.attunement.slot2", Label: "Attunement Slot 2", Type: FieldString, Section: "Magic Item Attunement"},
		{Path: "inventory.attunement.slot3", Label: "Attunement Slot 3", Type: FieldString, Section: "Magic Item Attunement"},
	}...)

	return fields
}
